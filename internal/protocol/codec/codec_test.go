package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/hilo-trainer/internal/protocol"
)

func TestNewMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msgType protocol.MessageType
		payload any
	}{
		{"nil payload", protocol.MsgAdvance, nil},
		{"start", protocol.MsgStart, protocol.StartPayload{Mode: "tutorial"}},
		{"guess", protocol.MsgGuess, protocol.GuessPayload{Guess: "-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg, err := NewMessage(tt.msgType, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.msgType, msg.Type)
			if tt.payload == nil {
				assert.Nil(t, msg.Payload)
			} else {
				assert.NotEmpty(t, msg.Payload)
			}
			PutMessage(msg)
		})
	}
}

func TestNewMessage_Unencodable(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(protocol.MsgState, map[string]any{"bad": make(chan int)})
	assert.Error(t, err)
	assert.Nil(t, msg)

	assert.Panics(t, func() {
		MustNewMessage(protocol.MsgState, func() {})
	})
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	count := -3
	tests := []struct {
		name    string
		msgType protocol.MessageType
		payload any
	}{
		{"no payload", protocol.MsgAdvance, nil},
		{"ping", protocol.MsgPing, protocol.PingPayload{Timestamp: 9999}},
		{"error", protocol.MsgError, protocol.ErrorPayload{Code: protocol.ErrCodeInvalidGuess, Message: "bad"}},
		{"state", protocol.MsgState, protocol.StatePayload{
			Mode:         "automated",
			Card:         &protocol.CardInfo{Suit: 3, Rank: 14, Key: "Ace_Spades"},
			RunningCount: &count,
			Remaining:    40,
			CardsDealt:   12,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			original := MustNewMessage(tt.msgType, tt.payload)
			data, err := Encode(original)
			require.NoError(t, err)

			decoded, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, original.Type, decoded.Type)
			assert.Equal(t, string(original.Payload), string(decoded.Payload))
		})
	}
}

func TestDecode_StatePayload(t *testing.T) {
	t.Parallel()

	count := 2
	data, err := Encode(MustNewMessage(protocol.MsgState, protocol.StatePayload{
		Mode:         "automated",
		RunningCount: &count,
		Tally:        protocol.TallyInfo{Correct: 1},
	}))
	require.NoError(t, err)

	msg, err := Decode(data)
	require.NoError(t, err)

	state, err := ParsePayload[protocol.StatePayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "automated", state.Mode)
	require.NotNil(t, state.RunningCount)
	assert.Equal(t, 2, *state.RunningCount)
	assert.Equal(t, 1, state.Tally.Correct)
	assert.Nil(t, state.Card)
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)

	empty, err := proto.Marshal(&structpb.Struct{})
	require.NoError(t, err)
	_, err = Decode(empty)
	assert.ErrorIs(t, err, ErrMissingType)
}

func TestParsePayload(t *testing.T) {
	t.Parallel()

	msg := &protocol.Message{Type: protocol.MsgGuess, Payload: []byte(`{"guess":"4"}`)}
	payload, err := ParsePayload[protocol.GuessPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "4", payload.Guess)

	empty, err := ParsePayload[protocol.GuessPayload](&protocol.Message{Type: protocol.MsgGuess})
	require.NoError(t, err)
	assert.Equal(t, "", empty.Guess)

	_, err = ParsePayload[protocol.GuessPayload](&protocol.Message{Type: protocol.MsgGuess, Payload: []byte("{")})
	assert.Error(t, err)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(protocol.ErrCodeInvalidGuess)
	require.NotNil(t, msg)
	assert.Equal(t, protocol.MsgError, msg.Type)

	payload, err := ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeInvalidGuess, payload.Code)
	assert.Equal(t, protocol.ErrorMessages[protocol.ErrCodeInvalidGuess], payload.Message)
}

package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageType_IsReply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		msgType MessageType
		want    bool
	}{
		{MsgState, true},
		{MsgError, true},
		{MsgPong, true},
		{MsgConnected, true},
		{MsgReconnected, true},
		{MsgCardDealt, false},
		{MsgDeckExhausted, false},
		{MsgGuessScored, false},
		{MsgGoodbye, false},
		{MsgStart, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.msgType), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.msgType.IsReply())
		})
	}
}

package convert

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/hilo-trainer/internal/card"
	"github.com/palemoky/hilo-trainer/internal/protocol"
	"github.com/palemoky/hilo-trainer/internal/trainer"
)

func TestCardInfo(t *testing.T) {
	t.Parallel()

	c := card.Card{Suit: card.Clubs, Rank: card.RankQ}
	info := CardToInfo(c)

	assert.Equal(t, int(card.Clubs), info.Suit)
	assert.Equal(t, int(card.RankQ), info.Rank)
	assert.Equal(t, "Queen_Clubs", info.Key)
	assert.Equal(t, c, InfoToCard(info))
}

func TestStateToPayload_HidesCount(t *testing.T) {
	t.Parallel()

	st := trainer.State{
		Mode:       trainer.ModeTutorial,
		NumDecks:   1,
		Card:       card.Card{Suit: card.Hearts, Rank: card.Rank5},
		HasCard:    true,
		Remaining:  40,
		CardsDealt: 12,
		Tally:      trainer.Tally{Correct: 3, Incorrect: 8},
		Guessed:    true,
	}
	p := StateToPayload(st)

	assert.Equal(t, "tutorial", p.Mode)
	assert.Nil(t, p.RunningCount)
	assert.Nil(t, p.TrueCount)
	require.NotNil(t, p.LastGuess)
	assert.False(t, *p.LastGuess)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "running_count")

	assert.Equal(t, st, PayloadToState(p))
}

func TestStateToPayload_Automated(t *testing.T) {
	t.Parallel()

	st := trainer.State{
		Mode:         trainer.ModeAutomated,
		NumDecks:     2,
		Card:         card.Card{Suit: card.Spades, Rank: card.RankA},
		HasCard:      true,
		RunningCount: -3,
		CountVisible: true,
		TrueCount:    -1.5,
		Remaining:    104 - 7,
		CardsDealt:   7,
	}
	p := StateToPayload(st)

	require.NotNil(t, p.RunningCount)
	assert.Equal(t, -3, *p.RunningCount)
	require.NotNil(t, p.TrueCount)
	assert.InDelta(t, -1.5, *p.TrueCount, 1e-9)
	assert.Nil(t, p.LastGuess)

	assert.Equal(t, st, PayloadToState(p))
}

func TestPayloadToState_Idle(t *testing.T) {
	t.Parallel()

	st := PayloadToState(protocol.StatePayload{Mode: "idle", NumDecks: 1, Remaining: 52})
	assert.Equal(t, trainer.ModeIdle, st.Mode)
	assert.False(t, st.HasCard)
	assert.False(t, st.CountVisible)
	assert.Equal(t, trainer.ModeIdle, ParseMode("bogus"))
}

func TestCardDealtPayload(t *testing.T) {
	t.Parallel()

	c := card.Card{Suit: card.Diamonds, Rank: card.Rank2}

	hidden := CardDealtPayload(trainer.CardDealt{Card: c, RunningCount: 0})
	assert.Nil(t, hidden.RunningCount)

	shown := CardDealtPayload(trainer.CardDealt{Card: c, RunningCount: 4, CountVisible: true})
	require.NotNil(t, shown.RunningCount)
	assert.Equal(t, 4, *shown.RunningCount)
	assert.Equal(t, "2_Diamonds", shown.Card.Key)
}

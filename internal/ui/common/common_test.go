package common

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"

	"github.com/palemoky/hilo-trainer/internal/card"
)

func TestBindings_HelpKeyMap(t *testing.T) {
	t.Parallel()

	b := Bindings{Keys.Submit, Keys.Quit}
	assert.Equal(t, []key.Binding{Keys.Submit, Keys.Quit}, b.ShortHelp())
	assert.Equal(t, [][]key.Binding{{Keys.Submit, Keys.Quit}}, b.FullHelp())
}

func TestKeys_Quit(t *testing.T) {
	t.Parallel()

	assert.ElementsMatch(t, []string{"q", "ctrl+c"}, Keys.Quit.Keys())
	assert.ElementsMatch(t, []string{"h", "?"}, Keys.Help.Keys())
}

func TestCardTextStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		suit card.Suit
		want bool // red
	}{
		{"hearts", card.Hearts, true},
		{"diamonds", card.Diamonds, true},
		{"clubs", card.Clubs, false},
		{"spades", card.Spades, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			style := CardTextStyle(card.Card{Suit: tt.suit, Rank: card.RankQ})
			if tt.want {
				assert.Equal(t, RedStyle.GetForeground(), style.GetForeground())
			} else {
				assert.Equal(t, BlackStyle.GetForeground(), style.GetForeground())
			}
		})
	}
}

func TestHiLoStyle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SuccessStyle.GetForeground(), HiLoStyle(1).GetForeground())
	assert.Equal(t, DimStyle.GetForeground(), HiLoStyle(0).GetForeground())
	assert.Equal(t, ErrorStyle.GetForeground(), HiLoStyle(-1).GetForeground())
}

package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		card     Card
		expected string
		key      string
	}{
		{Card{Hearts, Rank2}, "2 of Hearts", "2_Hearts"},
		{Card{Diamonds, Rank10}, "10 of Diamonds", "10_Diamonds"},
		{Card{Hearts, RankJ}, "Jack of Hearts", "Jack_Hearts"},
		{Card{Clubs, RankQ}, "Queen of Clubs", "Queen_Clubs"},
		{Card{Spades, RankA}, "Ace of Spades", "Ace_Spades"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.card.String())
			assert.Equal(t, tt.key, tt.card.Key())
		})
	}
}

func TestCard_Equality(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Card{Hearts, RankK}, Card{Suit: Hearts, Rank: RankK})
	assert.NotEqual(t, Card{Hearts, RankK}, Card{Spades, RankK})
}

func TestCard_Color(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Red, Card{Hearts, Rank2}.Color())
	assert.Equal(t, Red, Card{Diamonds, Rank2}.Color())
	assert.Equal(t, Black, Card{Clubs, Rank2}.Color())
	assert.Equal(t, Black, Card{Spades, Rank2}.Color())
}

func TestRank_Short(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2", Rank2.Short())
	assert.Equal(t, "10", Rank10.Short())
	assert.Equal(t, "J", RankJ.Short())
	assert.Equal(t, "Q", RankQ.Short())
	assert.Equal(t, "K", RankK.Short())
	assert.Equal(t, "A", RankA.Short())
}

func TestSuit_Symbol(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "♥", Hearts.Symbol())
	assert.Equal(t, "♠", Spades.Symbol())
	assert.Equal(t, "Suit(7)", Suit(7).String())
}

func TestCatalogs(t *testing.T) {
	t.Parallel()

	assert.Len(t, Suits(), 4)
	assert.Len(t, Ranks(), 13)
	assert.Equal(t, Rank2, Ranks()[0])
	assert.Equal(t, RankA, Ranks()[12])
}

func TestHiLoValue(t *testing.T) {
	t.Parallel()

	expected := map[Rank]int{
		Rank2: 1, Rank3: 1, Rank4: 1, Rank5: 1, Rank6: 1,
		Rank7: 0, Rank8: 0, Rank9: 0,
		Rank10: -1, RankJ: -1, RankQ: -1, RankK: -1, RankA: -1,
	}
	for rank, value := range expected {
		assert.Equal(t, value, HiLoValue(rank), "rank %v", rank)
	}
	assert.Equal(t, 0, HiLoValue(Rank(1)))

	sum := 0
	for _, r := range Ranks() {
		sum += HiLoValue(r)
	}
	assert.Equal(t, 0, sum, "the Hi-Lo table is balanced")
}

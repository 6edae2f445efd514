package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck_Composition(t *testing.T) {
	t.Parallel()

	for _, numDecks := range []int{1, 2, 3, 8} {
		deck := NewDeck(numDecks, NewSeededRand(42))

		require.Equal(t, CardsPerDeck*numDecks, deck.Remaining(), "decks=%d", numDecks)
		assert.Equal(t, numDecks, deck.NumDecks())

		seen := make(map[Card]int)
		for _, c := range deck.Cards() {
			seen[c]++
		}
		assert.Len(t, seen, CardsPerDeck, "every (suit, rank) pair is present")
		for c, n := range seen {
			assert.Equal(t, numDecks, n, "%v should appear once per deck", c)
		}
	}
}

func TestNewDeck_InvalidNumDecks(t *testing.T) {
	t.Parallel()

	deck := NewDeck(0, NewSeededRand(1))
	assert.Equal(t, CardsPerDeck, deck.Remaining())
	assert.Equal(t, 1, deck.NumDecks())
}

func TestNewDeck_NilRand(t *testing.T) {
	t.Parallel()

	deck := NewDeck(1, nil)
	assert.Equal(t, CardsPerDeck, deck.Remaining())
}

// identityShuffler keeps construction order so tests can see it.
type identityShuffler struct{ calls int }

func (s *identityShuffler) Shuffle(n int, swap func(i, j int)) { s.calls++ }

func TestNewDeck_SuitMajorOrder(t *testing.T) {
	t.Parallel()

	rng := &identityShuffler{}
	deck := NewDeck(1, rng)
	cards := deck.Cards()

	assert.Equal(t, 1, rng.calls, "construction shuffles once")
	assert.Equal(t, Card{Hearts, Rank2}, cards[0])
	assert.Equal(t, Card{Hearts, RankA}, cards[12])
	assert.Equal(t, Card{Diamonds, Rank2}, cards[13])
	assert.Equal(t, Card{Spades, RankA}, cards[51])
}

func TestDeck_Deal(t *testing.T) {
	t.Parallel()

	deck := NewDeck(1, &identityShuffler{})

	c, ok := deck.Deal()
	require.True(t, ok)
	assert.Equal(t, Card{Spades, RankA}, c, "cards come off the tail")
	assert.Equal(t, CardsPerDeck-1, deck.Remaining())
}

func TestDeck_DealK(t *testing.T) {
	t.Parallel()

	for _, k := range []int{0, 1, 10, 51, 52} {
		deck := NewDeck(1, NewSeededRand(7))
		dealt := make(map[Card]bool)
		for range k {
			c, ok := deck.Deal()
			require.True(t, ok)
			assert.False(t, dealt[c], "a single deck never repeats a card")
			dealt[c] = true
		}
		assert.Equal(t, CardsPerDeck-k, deck.Remaining())
	}
}

func TestDeck_DealEmpty(t *testing.T) {
	t.Parallel()

	deck := NewDeck(1, NewSeededRand(3))
	for deck.Remaining() > 0 {
		_, ok := deck.Deal()
		require.True(t, ok)
	}
	assert.True(t, deck.IsEmpty())

	for range 3 {
		c, ok := deck.Deal()
		assert.False(t, ok)
		assert.Equal(t, Card{}, c)
		assert.Equal(t, 0, deck.Remaining())
	}
}

func TestDeck_ShuffleOrder(t *testing.T) {
	t.Parallel()

	a := NewDeck(1, NewSeededRand(1))
	b := NewDeck(1, NewSeededRand(2))
	assert.NotEqual(t, a.Cards(), b.Cards(), "different seeds give different orders")

	c := NewDeck(1, NewSeededRand(1))
	assert.Equal(t, a.Cards(), c.Cards(), "same seed is reproducible")
}

func TestDeck_ShuffleKeepsCards(t *testing.T) {
	t.Parallel()

	deck := NewDeck(2, NewSeededRand(11))
	before := make(map[Card]int)
	for _, c := range deck.Cards() {
		before[c]++
	}

	deck.Shuffle()

	after := make(map[Card]int)
	for _, c := range deck.Cards() {
		after[c]++
	}
	assert.Equal(t, before, after)
}

func TestRestoreDeck(t *testing.T) {
	t.Parallel()

	cards := []Card{{Hearts, Rank2}, {Clubs, RankK}}
	deck := RestoreDeck(cards, 1, nil)
	cards[0] = Card{Spades, RankA}

	require.Equal(t, 2, deck.Remaining())
	c, ok := deck.Deal()
	require.True(t, ok)
	assert.Equal(t, Card{Clubs, RankK}, c)
	c, ok = deck.Deal()
	require.True(t, ok)
	assert.Equal(t, Card{Hearts, Rank2}, c, "restored deck is a copy of the input")
}

func TestDeck_CardsIsCopy(t *testing.T) {
	t.Parallel()

	deck := NewDeck(1, NewSeededRand(5))
	cards := deck.Cards()
	cards[0] = Card{Suit: Suit(9), Rank: Rank(99)}

	assert.NotEqual(t, cards[0], deck.Cards()[0])
}

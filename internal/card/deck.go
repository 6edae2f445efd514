package card

import (
	"math/rand/v2"
)

// CardsPerDeck 一副牌的张数
const CardsPerDeck = 52

// Shuffler is the randomness a Deck needs. *rand.Rand from math/rand/v2
// satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// NewSeededRand returns a deterministic source for tests and seeded sessions.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Deck 定义一副（或多副）会逐张减少的牌
type Deck struct {
	cards    []Card
	numDecks int
	rng      Shuffler
}

// NewDeck builds numDecks standard decks in suit-major order and shuffles them.
// A nil rng uses the process-wide entropy source.
func NewDeck(numDecks int, rng Shuffler) *Deck {
	if numDecks < 1 {
		numDecks = 1
	}
	d := &Deck{
		cards:    make([]Card, 0, CardsPerDeck*numDecks),
		numDecks: numDecks,
		rng:      rng,
	}
	if d.rng == nil {
		d.rng = globalShuffler{}
	}
	for range numDecks {
		for _, s := range Suits() {
			for _, r := range Ranks() {
				d.cards = append(d.cards, Card{Suit: s, Rank: r})
			}
		}
	}
	d.Shuffle()
	return d
}

// RestoreDeck rebuilds a deck whose remaining cards are exactly cards, in order.
// The last element is dealt first.
func RestoreDeck(cards []Card, numDecks int, rng Shuffler) *Deck {
	if numDecks < 1 {
		numDecks = 1
	}
	if rng == nil {
		rng = globalShuffler{}
	}
	return &Deck{
		cards:    append([]Card(nil), cards...),
		numDecks: numDecks,
		rng:      rng,
	}
}

// Shuffle 洗牌
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes the card at the tail of the deck. It reports false once the
// deck is empty and leaves the deck untouched.
func (d *Deck) Deal() (Card, bool) {
	n := len(d.cards)
	if n == 0 {
		return Card{}, false
	}
	c := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return c, true
}

// Remaining 剩余张数
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty 是否已发完
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// NumDecks 牌副数
func (d *Deck) NumDecks() int {
	return d.numDecks
}

// Cards returns a copy of the remaining cards in deal-last order.
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}

package card

// Counter 记牌器：按 Hi-Lo 点数表累加流水计数
type Counter struct {
	runningCount int
	cardsDealt   int
	numDecks     int
}

// NewCounter creates a zeroed counter. numDecks is kept for reference only;
// the per-card increment does not depend on it.
func NewCounter(numDecks int) *Counter {
	return &Counter{numDecks: numDecks}
}

// Update adds the Hi-Lo value of c to the running count.
func (cc *Counter) Update(c Card) {
	cc.runningCount += HiLoValue(c.Rank)
	cc.cardsDealt++
}

// Reset 清零
func (cc *Counter) Reset() {
	cc.runningCount = 0
	cc.cardsDealt = 0
}

func (cc *Counter) RunningCount() int { return cc.runningCount }
func (cc *Counter) CardsDealt() int   { return cc.cardsDealt }
func (cc *Counter) NumDecks() int     { return cc.numDecks }

// TrueCount normalises the running count by the number of decks left.
// With no cards remaining the raw running count is returned.
func (cc *Counter) TrueCount(remaining int) float64 {
	if remaining <= 0 {
		return float64(cc.runningCount)
	}
	decksLeft := float64(remaining) / CardsPerDeck
	return float64(cc.runningCount) / decksLeft
}

// Restore overwrites both counters. Used when a session snapshot is reloaded.
func (cc *Counter) Restore(runningCount, cardsDealt int) {
	cc.runningCount = runningCount
	cc.cardsDealt = cardsDealt
}

package trainer

import "github.com/palemoky/hilo-trainer/internal/card"

// CardDealt describes a card that was just dealt. RunningCount is only
// filled in when CountVisible is true.
type CardDealt struct {
	Card         card.Card
	RunningCount int
	CountVisible bool
	Remaining    int
}

// Listener receives session signals. Calls happen synchronously inside the
// session operation that caused them.
type Listener interface {
	OnCardDealt(ev CardDealt)
	OnDeckExhausted()
	OnGuessScored(correct bool, tally Tally)
	OnQuit()
}

// NopListener ignores every signal. Embed it to implement only some methods.
type NopListener struct{}

func (NopListener) OnCardDealt(CardDealt)     {}
func (NopListener) OnDeckExhausted()          {}
func (NopListener) OnGuessScored(bool, Tally) {}
func (NopListener) OnQuit()                   {}

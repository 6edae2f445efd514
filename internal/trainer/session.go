// Package trainer binds a Deck and a Counter into a Hi-Lo training session.
//
// A Session moves Idle -> Tutorial|Automated -> Idle. Starting a mode always
// begins from a fresh deck and a zeroed counter. A Session is not safe for
// concurrent use.
package trainer

import (
	"strconv"
	"strings"

	"github.com/palemoky/hilo-trainer/internal/apperrors"
	"github.com/palemoky/hilo-trainer/internal/card"
)

// Session 一次训练会话
type Session struct {
	numDecks int
	rng      card.Shuffler
	listener Listener

	deck    *card.Deck
	counter *card.Counter

	mode        Mode
	current     card.Card
	hasCard     bool
	tally       Tally
	guessed     bool
	lastCorrect bool
	quit        bool
	exhausted   bool
}

// Option configures a Session.
type Option func(*Session)

// WithRand injects the shuffle source used for every deck the session builds.
func WithRand(rng card.Shuffler) Option {
	return func(s *Session) { s.rng = rng }
}

// WithListener routes session signals to l.
func WithListener(l Listener) Option {
	return func(s *Session) {
		if l != nil {
			s.listener = l
		}
	}
}

// NewSession creates an idle session playing with numDecks decks.
func NewSession(numDecks int, opts ...Option) *Session {
	s := &Session{
		numDecks: max(numDecks, 1),
		listener: NopListener{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.counter = card.NewCounter(s.numDecks)
	s.deck = card.NewDeck(s.numDecks, s.rng)
	return s
}

// Start restarts the session and enters mode, dealing the first card.
func (s *Session) Start(mode Mode) (card.Card, bool, error) {
	if !mode.Active() {
		return card.Card{}, false, apperrors.ErrInvalidMode
	}
	s.Restart()
	s.mode = mode
	return s.Advance()
}

// StartTutorial enters tutorial mode: the running count stays hidden and the
// user guesses it after every card.
func (s *Session) StartTutorial() (card.Card, bool) {
	c, ok, _ := s.Start(ModeTutorial)
	return c, ok
}

// StartAutomated enters automated mode: the running count is shown.
func (s *Session) StartAutomated() (card.Card, bool) {
	c, ok, _ := s.Start(ModeAutomated)
	return c, ok
}

// Advance deals the next card and feeds it to the counter. When the deck is
// empty it reports ok=false, marks the session exhausted and stays in the
// current mode.
func (s *Session) Advance() (card.Card, bool, error) {
	if s.quit {
		return card.Card{}, false, apperrors.ErrSessionClosed
	}
	if !s.mode.Active() {
		return card.Card{}, false, apperrors.ErrNoActiveMode
	}

	c, ok := s.deck.Deal()
	if !ok {
		s.exhausted = true
		s.listener.OnDeckExhausted()
		return card.Card{}, false, nil
	}

	s.counter.Update(c)
	s.current = c
	s.hasCard = true

	ev := CardDealt{Card: c, Remaining: s.deck.Remaining()}
	if s.countVisible() {
		ev.CountVisible = true
		ev.RunningCount = s.counter.RunningCount()
	}
	s.listener.OnCardDealt(ev)
	return c, true, nil
}

// SubmitGuess scores a tutorial guess against the running count and deals the
// next card. Input that is not an integer returns ErrInvalidGuess and changes
// nothing.
func (s *Session) SubmitGuess(input string) (bool, error) {
	if s.quit {
		return false, apperrors.ErrSessionClosed
	}
	if !s.mode.Active() {
		return false, apperrors.ErrNoActiveMode
	}
	if s.mode != ModeTutorial {
		return false, apperrors.ErrNotTutorial
	}

	guess, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return false, apperrors.ErrInvalidGuess
	}
	if s.exhausted {
		return false, apperrors.ErrDeckExhausted
	}

	correct := guess == s.counter.RunningCount()
	if correct {
		s.tally.Correct++
	} else {
		s.tally.Incorrect++
	}
	s.guessed = true
	s.lastCorrect = correct
	s.listener.OnGuessScored(correct, s.tally)

	if _, _, err := s.Advance(); err != nil {
		return correct, err
	}
	return correct, nil
}

// Restart returns to Idle with a fresh deck, a zeroed counter and empty
// tallies. Valid from any state.
func (s *Session) Restart() {
	s.mode = ModeIdle
	s.current = card.Card{}
	s.hasCard = false
	s.tally = Tally{}
	s.guessed = false
	s.lastCorrect = false
	s.quit = false
	s.exhausted = false
	s.counter.Reset()
	s.deck = card.NewDeck(s.numDecks, s.rng)
}

// Quit ends the session. Once quit, running out of cards is no longer
// reported.
func (s *Session) Quit() {
	if s.quit {
		return
	}
	s.quit = true
	s.listener.OnQuit()
}

func (s *Session) countVisible() bool {
	return s.mode != ModeTutorial
}

func (s *Session) Mode() Mode         { return s.mode }
func (s *Session) NumDecks() int      { return s.numDecks }
func (s *Session) Tally() Tally       { return s.tally }
func (s *Session) Remaining() int     { return s.deck.Remaining() }
func (s *Session) CardsDealt() int    { return s.counter.CardsDealt() }
func (s *Session) RunningCount() int  { return s.counter.RunningCount() }
func (s *Session) Exhausted() bool    { return s.exhausted }
func (s *Session) Quitting() bool     { return s.quit }
func (s *Session) TrueCount() float64 { return s.counter.TrueCount(s.deck.Remaining()) }
func (s *Session) CurrentCard() (card.Card, bool) {
	return s.current, s.hasCard
}

// State returns the view of the session a presentation layer may show. The
// running count is withheld in tutorial mode.
func (s *Session) State() State {
	st := State{
		Mode:        s.mode,
		NumDecks:    s.numDecks,
		Card:        s.current,
		HasCard:     s.hasCard,
		Remaining:   s.deck.Remaining(),
		CardsDealt:  s.counter.CardsDealt(),
		Tally:       s.tally,
		Guessed:     s.guessed,
		LastCorrect: s.lastCorrect,
		Exhausted:   s.exhausted,
		Quit:        s.quit,
	}
	if s.countVisible() {
		st.CountVisible = true
		st.RunningCount = s.counter.RunningCount()
		st.TrueCount = s.TrueCount()
	}
	return st
}

// Snapshot captures the session so it can be rebuilt with Restore.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		NumDecks:     s.numDecks,
		Mode:         s.mode,
		Deck:         s.deck.Cards(),
		RunningCount: s.counter.RunningCount(),
		CardsDealt:   s.counter.CardsDealt(),
		Tally:        s.tally,
		Guessed:      s.guessed,
		LastCorrect:  s.lastCorrect,
		Exhausted:    s.exhausted,
		Quit:         s.quit,
	}
	if s.hasCard {
		c := s.current
		snap.Current = &c
	}
	return snap
}

// Restore replaces the session state with snap. No signals are emitted.
func (s *Session) Restore(snap Snapshot) {
	s.numDecks = max(snap.NumDecks, 1)
	s.deck = card.RestoreDeck(snap.Deck, s.numDecks, s.rng)
	s.counter = card.NewCounter(s.numDecks)
	s.counter.Restore(snap.RunningCount, snap.CardsDealt)
	s.mode = snap.Mode
	s.current = card.Card{}
	s.hasCard = false
	if snap.Current != nil {
		s.current = *snap.Current
		s.hasCard = true
	}
	s.tally = snap.Tally
	s.guessed = snap.Guessed
	s.lastCorrect = snap.LastCorrect
	s.exhausted = snap.Exhausted
	s.quit = snap.Quit
}

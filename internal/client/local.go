package client

import (
	"context"
	"sync"

	"github.com/palemoky/hilo-trainer/internal/card"
	"github.com/palemoky/hilo-trainer/internal/logger"
	"github.com/palemoky/hilo-trainer/internal/trainer"
)

// eventRecorder 收集会话信号并写入调试日志
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) OnCardDealt(ev trainer.CardDealt) {
	r.events = append(r.events, Event{Kind: EventCardDealt, Card: ev.Card})
	logger.LogInfo("dealt %s, %d left", ev.Card, ev.Remaining)
}

func (r *eventRecorder) OnDeckExhausted() {
	r.events = append(r.events, Event{Kind: EventDeckExhausted})
	logger.LogInfo("deck exhausted")
}

func (r *eventRecorder) OnGuessScored(correct bool, tally trainer.Tally) {
	r.events = append(r.events, Event{Kind: EventGuessScored, Correct: correct})
	logger.LogInfo("guess scored: correct=%t tally=%d/%d", correct, tally.Correct, tally.Total())
}

func (r *eventRecorder) OnQuit() {
	r.events = append(r.events, Event{Kind: EventQuit})
	logger.LogInfo("session quit")
}

func (r *eventRecorder) take() []Event {
	events := r.events
	r.events = nil
	return events
}

// LocalBackend runs the session in process.
type LocalBackend struct {
	mu       sync.Mutex
	session  *trainer.Session
	recorder *eventRecorder
	tracker  *RankTracker
}

// NewLocalBackend creates an idle in-process session. rng may be nil.
func NewLocalBackend(numDecks int, rng card.Shuffler) *LocalBackend {
	rec := &eventRecorder{}
	opts := []trainer.Option{trainer.WithListener(rec)}
	if rng != nil {
		opts = append(opts, trainer.WithRand(rng))
	}
	s := trainer.NewSession(numDecks, opts...)
	return &LocalBackend{
		session:  s,
		recorder: rec,
		tracker:  NewRankTracker(s.NumDecks()),
	}
}

// result 须在持有 mu 时调用
func (b *LocalBackend) result(err error) (Result, error) {
	res := Result{State: b.session.State(), Events: b.recorder.take()}
	applyEvents(b.tracker, res.Events)
	res.Tracker = b.tracker.Snapshot()
	return res, err
}

func (b *LocalBackend) Start(_ context.Context, mode trainer.Mode) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if mode.Active() {
		b.tracker.Reset(b.session.NumDecks())
	}
	_, _, err := b.session.Start(mode)
	return b.result(err)
}

func (b *LocalBackend) Advance(context.Context) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _, err := b.session.Advance()
	return b.result(err)
}

func (b *LocalBackend) Guess(_ context.Context, input string) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.session.SubmitGuess(input)
	return b.result(err)
}

func (b *LocalBackend) Restart(context.Context) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.session.Restart()
	b.tracker.Reset(b.session.NumDecks())
	return b.result(nil)
}

func (b *LocalBackend) Quit(context.Context) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.session.Quit()
	return b.result(nil)
}

func (b *LocalBackend) State() trainer.State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session.State()
}

func (b *LocalBackend) Tracker() TrackerSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tracker.Snapshot()
}

func (b *LocalBackend) Close() error { return nil }

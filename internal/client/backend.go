// Package client drives a training session for the terminal UI, either in
// process or on a remote trainer server.
package client

import (
	"context"
	"errors"

	"github.com/palemoky/hilo-trainer/internal/card"
	"github.com/palemoky/hilo-trainer/internal/trainer"
)

// ErrReconnected is returned when the connection dropped during a request and
// the session was resumed. The returned state is the server's, the request
// may or may not have been applied.
var ErrReconnected = errors.New("connection restored, showing the saved session")

// EventKind 会话信号类型
type EventKind int

const (
	EventCardDealt EventKind = iota
	EventDeckExhausted
	EventGuessScored
	EventQuit
)

// Event 一次操作中产生的会话信号
type Event struct {
	Kind    EventKind
	Card    card.Card // EventCardDealt
	Correct bool      // EventGuessScored
}

// Result is the state after an operation plus the signals it produced, in
// order. Tracker is a copy taken after the events were applied.
type Result struct {
	State   trainer.State
	Events  []Event
	Tracker TrackerSnapshot
}

// Backend 训练会话的驱动接口
type Backend interface {
	Start(ctx context.Context, mode trainer.Mode) (Result, error)
	Advance(ctx context.Context) (Result, error)
	Guess(ctx context.Context, input string) (Result, error)
	Restart(ctx context.Context) (Result, error)
	Quit(ctx context.Context) (Result, error)

	State() trainer.State
	Tracker() TrackerSnapshot
	Close() error
}

// applyEvents 用本次操作发出的牌更新点数追踪
func applyEvents(rt *RankTracker, events []Event) {
	for _, ev := range events {
		if ev.Kind == EventCardDealt {
			rt.Deduct(ev.Card)
		}
	}
}

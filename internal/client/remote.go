package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/palemoky/hilo-trainer/internal/logger"
	"github.com/palemoky/hilo-trainer/internal/protocol"
	"github.com/palemoky/hilo-trainer/internal/protocol/codec"
	"github.com/palemoky/hilo-trainer/internal/protocol/convert"
	"github.com/palemoky/hilo-trainer/internal/trainer"
	"github.com/palemoky/hilo-trainer/internal/transport"
)

// RemoteBackend drives a session hosted by the trainer server.
type RemoteBackend struct {
	conn *transport.Client

	mu      sync.Mutex
	state   trainer.State
	tracker *RankTracker
	online  int64
}

// NewRemoteBackend connects to serverURL and returns a backend bound to a new
// idle session.
func NewRemoteBackend(ctx context.Context, serverURL string, numDecks int) (*RemoteBackend, error) {
	conn := transport.NewClient(serverURL)
	connected, err := conn.Connect(ctx)
	if err != nil {
		return nil, err
	}
	logger.LogInfo("connected to %s as %s", serverURL, connected.ClientID)

	return &RemoteBackend{
		conn:    conn,
		state:   trainer.State{Mode: trainer.ModeIdle, NumDecks: max(numDecks, 1)},
		tracker: NewRankTracker(numDecks),
		online:  connected.Online,
	}, nil
}

func (b *RemoteBackend) Start(ctx context.Context, mode trainer.Mode) (Result, error) {
	return b.call(ctx, protocol.MsgStart, protocol.StartPayload{Mode: mode.String()}, true)
}

func (b *RemoteBackend) Advance(ctx context.Context) (Result, error) {
	return b.call(ctx, protocol.MsgAdvance, nil, false)
}

func (b *RemoteBackend) Guess(ctx context.Context, input string) (Result, error) {
	return b.call(ctx, protocol.MsgGuess, protocol.GuessPayload{Guess: input}, false)
}

func (b *RemoteBackend) Restart(ctx context.Context) (Result, error) {
	return b.call(ctx, protocol.MsgRestart, nil, true)
}

func (b *RemoteBackend) Quit(ctx context.Context) (Result, error) {
	return b.call(ctx, protocol.MsgQuit, nil, false)
}

func (b *RemoteBackend) State() trainer.State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *RemoteBackend) Tracker() TrackerSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tracker.Snapshot()
}

// Online 连接时服务器上的训练人数
func (b *RemoteBackend) Online() int64 { return b.online }

// StartHeartbeat pings the server every interval until ctx is done.
func (b *RemoteBackend) StartHeartbeat(ctx context.Context, interval time.Duration) {
	b.conn.StartHeartbeat(ctx, interval)
}

// Latency 最近一次心跳的往返延迟（毫秒）
func (b *RemoteBackend) Latency() int64 { return b.conn.Latency() }

func (b *RemoteBackend) Close() error {
	return b.conn.Close()
}

// call sends one request. resetTracker is set for requests that begin a new
// shoe when they succeed.
func (b *RemoteBackend) call(ctx context.Context, msgType protocol.MessageType, payload any, resetTracker bool) (Result, error) {
	reply, signals, err := b.conn.Call(ctx, msgType, payload)
	if errors.Is(err, transport.ErrNotSent) {
		// 请求未发出，恢复会话后重试一次
		if _, rerr := b.resume(ctx); rerr != nil {
			return b.current(), rerr
		}
		reply, signals, err = b.conn.Call(ctx, msgType, payload)
	}
	if errors.Is(err, transport.ErrConnectionLost) {
		if _, rerr := b.resume(ctx); rerr != nil {
			return b.current(), rerr
		}
		return b.current(), ErrReconnected
	}
	if err != nil {
		return b.current(), fmt.Errorf("%s: %w", msgType, err)
	}
	defer func() {
		codec.PutMessage(reply)
		for _, s := range signals {
			codec.PutMessage(s)
		}
	}()

	events := decodeSignals(signals)
	if rerr := transport.ReplyError(reply); rerr != nil {
		b.mu.Lock()
		applyEvents(b.tracker, events)
		res := Result{State: b.state, Events: events, Tracker: b.tracker.Snapshot()}
		b.mu.Unlock()
		return res, rerr
	}
	st, err := codec.ParsePayload[protocol.StatePayload](reply)
	if err != nil {
		res := b.current()
		res.Events = events
		return res, err
	}

	state := convert.PayloadToState(*st)
	b.mu.Lock()
	if resetTracker {
		// 服务器已换了新牌靴，牌副数以服务器为准
		b.tracker.Reset(state.NumDecks)
	}
	applyEvents(b.tracker, events)
	b.state = state
	snap := b.tracker.Snapshot()
	b.mu.Unlock()
	return Result{State: state, Events: events, Tracker: snap}, nil
}

// current 当前状态与统计，不含事件
func (b *RemoteBackend) current() Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Result{State: b.state, Tracker: b.tracker.Snapshot()}
}

// resume reconnects with the saved token. Cards dealt before the drop are
// unknown afterwards, so the rank tracker is invalidated.
func (b *RemoteBackend) resume(ctx context.Context) (trainer.State, error) {
	logger.LogInfo("connection lost, resuming session")
	payload, err := b.conn.Reconnect(ctx)
	if err != nil {
		logger.LogError("resume failed: %v", err)
		return trainer.State{}, err
	}

	state := convert.PayloadToState(payload.State)
	b.mu.Lock()
	b.state = state
	b.tracker.Invalidate()
	b.mu.Unlock()
	return state, nil
}

func decodeSignals(signals []*protocol.Message) []Event {
	events := make([]Event, 0, len(signals))
	for _, msg := range signals {
		switch msg.Type {
		case protocol.MsgCardDealt:
			p, err := codec.ParsePayload[protocol.CardDealtPayload](msg)
			if err != nil {
				logger.LogError("bad card_dealt payload: %v", err)
				continue
			}
			events = append(events, Event{Kind: EventCardDealt, Card: convert.InfoToCard(p.Card)})
		case protocol.MsgDeckExhausted:
			events = append(events, Event{Kind: EventDeckExhausted})
		case protocol.MsgGuessScored:
			p, err := codec.ParsePayload[protocol.GuessScoredPayload](msg)
			if err != nil {
				logger.LogError("bad guess_scored payload: %v", err)
				continue
			}
			events = append(events, Event{Kind: EventGuessScored, Correct: p.Correct})
		case protocol.MsgGoodbye:
			events = append(events, Event{Kind: EventQuit})
		}
	}
	return events
}

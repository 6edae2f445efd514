package handler

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/hilo-trainer/internal/apperrors"
	"github.com/palemoky/hilo-trainer/internal/card"
	"github.com/palemoky/hilo-trainer/internal/client"
	"github.com/palemoky/hilo-trainer/internal/sound"
	"github.com/palemoky/hilo-trainer/internal/trainer"
	"github.com/palemoky/hilo-trainer/internal/ui/model"
)

type recordingPlayer struct {
	played []string
}

func (p *recordingPlayer) Play(name string) { p.played = append(p.played, name) }

func newModel(t *testing.T) (*model.TrainerModel, *client.LocalBackend, *recordingPlayer) {
	t.Helper()
	b := client.NewLocalBackend(1, card.NewSeededRand(11))
	p := &recordingPlayer{}
	m := model.NewTrainerModel(b, model.WithSound(p))
	m.SetResultHandler(HandleResult)
	return m, b, p
}

// apply runs op directly against the backend and feeds the result to m.
func apply(t *testing.T, m *model.TrainerModel, op model.Op) model.ResultMsg {
	t.Helper()
	res, err := op.Run(context.Background(), m.Backend())
	msg := model.ResultMsg{Op: op.Name, Result: res, Err: err}
	m.Update(msg)
	return msg
}

func TestHandleResult_StartTutorial(t *testing.T) {
	t.Parallel()

	m, _, p := newModel(t)
	m.Input().SetValue("12")

	msg := apply(t, m, model.OpStart(trainer.ModeTutorial))
	require.NoError(t, msg.Err)

	assert.Equal(t, model.PhaseTutorial, m.Phase())
	assert.True(t, m.Input().Focused())
	assert.Empty(t, m.Input().Value(), "pending input is discarded")
	assert.Equal(t, []string{sound.Deal}, p.played)
	assert.Equal(t, model.AnimationFrames, m.AnimationFrame())
}

func TestHandleResult_GuessSounds(t *testing.T) {
	t.Parallel()

	m, _, p := newModel(t)
	apply(t, m, model.OpStart(trainer.ModeTutorial))
	first := m.State().Card

	apply(t, m, model.OpGuess("99"))
	assert.Equal(t, sound.Wrong, p.played[len(p.played)-1])

	// 正确答案 = 前两张牌的点数和
	want := card.HiLoValue(first.Rank) + card.HiLoValue(m.State().Card.Rank)
	apply(t, m, model.OpGuess(strconv.Itoa(want)))
	assert.Equal(t, sound.Correct, p.played[len(p.played)-1])
	assert.Equal(t, 1, m.State().Tally.Correct)
	assert.Equal(t, 1, m.State().Tally.Incorrect)
}

func TestHandleResult_InvalidGuess(t *testing.T) {
	t.Parallel()

	m, _, _ := newModel(t)
	apply(t, m, model.OpStart(trainer.ModeTutorial))
	dealt := m.State().CardsDealt

	msg := model.ResultMsg{Op: "guess", Result: client.Result{State: m.State()}, Err: apperrors.ErrInvalidGuess}
	cmd := HandleResult(m, msg)
	assert.NotNil(t, cmd)
	assert.NotEmpty(t, m.InputError())
	assert.Equal(t, model.PhaseTutorial, m.Phase())
	assert.Equal(t, dealt, m.State().CardsDealt)

	// 第二次错误换新序号，第一个定时器不会把它清掉
	first := m.InputErrorSeq()
	require.NotNil(t, HandleResult(m, msg))
	assert.Equal(t, first+1, m.InputErrorSeq())
	m.Update(model.ClearInputErrorMsg{Seq: first})
	assert.NotEmpty(t, m.InputError())
}

func TestHandleResult_TrainerErrorNotice(t *testing.T) {
	t.Parallel()

	m, _, _ := newModel(t)
	cmd := HandleResult(m, model.ResultMsg{Op: "advance", Err: apperrors.ErrNoActiveMode})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.Notice(), apperrors.ErrNoActiveMode.Message)
	assert.Equal(t, model.PhaseMenu, m.Phase())

	HandleResult(m, model.ResultMsg{Op: "advance", Err: errors.New("boom")})
	assert.Contains(t, m.Notice(), "boom")
}

func TestHandleResult_Reconnected(t *testing.T) {
	t.Parallel()

	m, _, _ := newModel(t)
	st := trainer.State{Mode: trainer.ModeAutomated, NumDecks: 1, Remaining: 40, CardsDealt: 12}
	m.Update(model.ResultMsg{Op: "advance", Result: client.Result{State: st}, Err: client.ErrReconnected})

	assert.Equal(t, model.PhaseAutomated, m.Phase())
	assert.NotEmpty(t, m.Notice())
}

func TestHandleResult_Exhausted(t *testing.T) {
	t.Parallel()

	m, _, p := newModel(t)
	apply(t, m, model.OpStart(trainer.ModeAutomated))
	for m.Phase() == model.PhaseAutomated {
		apply(t, m, model.OpAdvance())
	}

	assert.Equal(t, model.PhaseGameOver, m.Phase())
	assert.Equal(t, sound.Exhausted, p.played[len(p.played)-1])
	assert.Equal(t, 52, m.State().CardsDealt)

	apply(t, m, model.OpRestart())
	assert.Equal(t, model.PhaseMenu, m.Phase())
}

func TestHandleResult_Quit(t *testing.T) {
	t.Parallel()

	m, _, _ := newModel(t)
	apply(t, m, model.OpStart(trainer.ModeAutomated))

	msg := apply(t, m, model.OpQuit())
	require.NoError(t, msg.Err)
	assert.Equal(t, model.PhaseGoodbye, m.Phase())

	// 退出失败也进入告别画面
	m2, _, _ := newModel(t)
	cmd := HandleResult(m2, model.ResultMsg{Op: "quit", Err: errors.New("connection lost")})
	assert.NotNil(t, cmd)
	assert.Equal(t, model.PhaseGoodbye, m2.Phase())
}

func TestPlayEvents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		events []client.Event
		want   []string
	}{
		{"none", nil, nil},
		{"deal", []client.Event{{Kind: client.EventCardDealt}}, []string{sound.Deal}},
		{"guess beats deal", []client.Event{{Kind: client.EventGuessScored, Correct: true}, {Kind: client.EventCardDealt}}, []string{sound.Correct}},
		{"wrong then exhausted", []client.Event{{Kind: client.EventGuessScored}, {Kind: client.EventDeckExhausted}}, []string{sound.Wrong}},
		{"exhausted", []client.Event{{Kind: client.EventDeckExhausted}}, []string{sound.Exhausted}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, _, p := newModel(t)
			playEvents(m, tt.events)
			assert.Equal(t, tt.want, p.played)
		})
	}
}

func TestResultHandler_Interface(t *testing.T) {
	t.Parallel()

	m, _, _ := newModel(t)
	var h model.ResultHandler = ResultHandler{}
	h.HandleResult(m, model.ResultMsg{Op: "restart", Result: client.Result{State: m.State()}})
	assert.Equal(t, model.PhaseMenu, m.Phase())
}

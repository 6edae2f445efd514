package ui

import (
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/hilo-trainer/internal/card"
	"github.com/palemoky/hilo-trainer/internal/client"
	"github.com/palemoky/hilo-trainer/internal/trainer"
	"github.com/palemoky/hilo-trainer/internal/ui/model"
)

// send delivers a key and completes the operation it starts.
func send(t *testing.T, m *model.TrainerModel, msg tea.KeyMsg) {
	t.Helper()
	_, cmd := m.Update(msg)
	if !m.Busy() {
		return
	}
	require.NotNil(t, cmd)
	res, ok := cmd().(model.ResultMsg)
	require.True(t, ok, "expected the operation result")
	m.Update(res)
}

func TestTrainerModel_TutorialSession(t *testing.T) {
	t.Parallel()

	m := NewTrainerModel(client.NewLocalBackend(1, card.NewSeededRand(41)), model.WithAnimation(false))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, m.View(), "Hi-Lo 算牌训练")

	send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	require.Equal(t, model.PhaseTutorial, m.Phase())
	assert.Contains(t, m.View(), "教学模式不显示流水计数")

	want := card.HiLoValue(m.State().Card.Rank)
	for _, r := range []rune(strconv.Itoa(want)) {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, strconv.Itoa(want), m.Input().Value())

	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.State().Tally.Correct)
	assert.Empty(t, m.Input().Value())

	send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Equal(t, model.PhaseGoodbye, m.Phase())
	assert.Contains(t, m.View(), "1 / 1 正确")
}

func TestTrainerModel_AutomatedToGameOver(t *testing.T) {
	t.Parallel()

	m := NewTrainerModel(client.NewLocalBackend(1, card.NewSeededRand(42)), model.WithAnimation(false))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	for i := 0; i < 60 && m.Phase() == model.PhaseAutomated; i++ {
		send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	require.Equal(t, model.PhaseGameOver, m.Phase())
	assert.Equal(t, 0, m.State().RunningCount)
	assert.Contains(t, m.View(), "牌已发完")

	send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, model.PhaseMenu, m.Phase())
	assert.Equal(t, trainer.ModeIdle, m.State().Mode)
}

// The operation runs on its own goroutine while the event loop keeps
// rendering, as it does for blink ticks and resizes. Run with -race.
func TestTrainerModel_ViewWhileOperationRuns(t *testing.T) {
	t.Parallel()

	m := NewTrainerModel(client.NewLocalBackend(1, card.NewSeededRand(43)), model.WithAnimation(false))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	require.Equal(t, model.PhaseAutomated, m.Phase())

	for range 20 {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.True(t, m.Busy())
		require.NotNil(t, cmd)

		done := make(chan tea.Msg, 1)
		go func() { done <- cmd() }()

		var msg tea.Msg
	render:
		for {
			select {
			case msg = <-done:
				break render
			default:
				assert.Contains(t, m.View(), "剩余牌统计")
			}
		}
		res, ok := msg.(model.ResultMsg)
		require.True(t, ok, "expected the operation result")
		m.Update(res)
	}

	low, neutral, high := m.Tracker().Groups()
	assert.Equal(t, m.State().Remaining, low+neutral+high)
}

package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/hilo-trainer/internal/card"
	"github.com/palemoky/hilo-trainer/internal/client"
	"github.com/palemoky/hilo-trainer/internal/trainer"
	"github.com/palemoky/hilo-trainer/internal/ui/model"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func newModel(t *testing.T) *model.TrainerModel {
	t.Helper()
	m := model.NewTrainerModel(client.NewLocalBackend(1, card.NewSeededRand(21)))
	m.SetResultHandler(func(m model.Model, msg model.ResultMsg) tea.Cmd {
		m.SetPhase(model.PhaseFor(msg.Result.State))
		return nil
	})
	return m
}

// press handles a key and, when it started an operation, completes it.
func press(t *testing.T, m *model.TrainerModel, msg tea.KeyMsg) (bool, *model.ResultMsg) {
	t.Helper()
	handled, cmd := HandleKeyPress(m, msg)
	if cmd == nil {
		return handled, nil
	}
	res, ok := cmd().(model.ResultMsg)
	require.True(t, ok)
	m.Update(res)
	return handled, &res
}

func TestHandleKeyPress_MenuStartsModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		mode  trainer.Mode
		phase model.Phase
	}{
		{"tutorial", "1", trainer.ModeTutorial, model.PhaseTutorial},
		{"automated", "2", trainer.ModeAutomated, model.PhaseAutomated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newModel(t)
			handled, res := press(t, m, runes(tt.key))
			assert.True(t, handled)
			require.NotNil(t, res)
			assert.Equal(t, "start", res.Op)
			assert.Equal(t, tt.mode, m.State().Mode)
			assert.Equal(t, tt.phase, m.Phase())
		})
	}
}

func TestHandleKeyPress_MenuIgnoresOtherKeys(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	handled, res := press(t, m, runes("3"))
	assert.True(t, handled)
	assert.Nil(t, res)
	_, res = press(t, m, enter)
	assert.Nil(t, res)
	assert.Equal(t, model.PhaseMenu, m.Phase())
}

func TestHandleKeyPress_TutorialGuess(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	press(t, m, runes("1"))

	// 数字交给输入框
	handled, _ := HandleKeyPress(m, runes("-"))
	assert.False(t, handled)
	handled, _ = HandleKeyPress(m, runes("7"))
	assert.False(t, handled)

	// 字母被吞掉
	handled, cmd := HandleKeyPress(m, runes("x"))
	assert.True(t, handled)
	assert.Nil(t, cmd)

	// 空输入不提交
	_, res := press(t, m, enter)
	assert.Nil(t, res)

	m.Input().SetValue("-7")
	_, res = press(t, m, enter)
	require.NotNil(t, res)
	assert.Equal(t, "guess", res.Op)
	require.NoError(t, res.Err)
	assert.Equal(t, 1, m.State().Tally.Total())
	assert.Equal(t, 2, m.State().CardsDealt)
}

func TestHandleKeyPress_AutomatedAdvance(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	press(t, m, runes("2"))

	_, res := press(t, m, enter)
	require.NotNil(t, res)
	assert.Equal(t, "advance", res.Op)
	_, res = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.NotNil(t, res)
	assert.Equal(t, 3, m.State().CardsDealt)
}

func TestHandleKeyPress_Restart(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"1", "2"} {
		m := newModel(t)
		press(t, m, runes(mode))
		_, res := press(t, m, runes("r"))
		require.NotNil(t, res)
		assert.Equal(t, "restart", res.Op)
		assert.Equal(t, model.PhaseMenu, m.Phase())
		assert.Equal(t, trainer.ModeIdle, m.State().Mode)
	}
}

func TestHandleKeyPress_GameOver(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	m.SetPhase(model.PhaseGameOver)
	handled, res := press(t, m, runes("x"))
	assert.True(t, handled)
	assert.Nil(t, res)

	_, res = press(t, m, enter)
	require.NotNil(t, res)
	assert.Equal(t, "restart", res.Op)
}

func TestHandleKeyPress_Help(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	press(t, m, runes("2"))

	_, res := press(t, m, runes("?"))
	assert.Nil(t, res)
	assert.True(t, m.ShowingHelp())

	// 帮助层打开时按键不会发牌
	_, res = press(t, m, enter)
	assert.Nil(t, res)
	assert.Equal(t, 1, m.State().CardsDealt)

	press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.ShowingHelp())

	press(t, m, runes("h"))
	assert.True(t, m.ShowingHelp())
	press(t, m, runes("h"))
	assert.False(t, m.ShowingHelp())
}

func TestHandleKeyPress_Quit(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	press(t, m, runes("1"))
	_, res := press(t, m, runes("q"))
	require.NotNil(t, res)
	assert.Equal(t, "quit", res.Op)
	assert.True(t, m.State().Quit)
	assert.Equal(t, model.PhaseGoodbye, m.Phase())

	// 告别画面只响应 ctrl+c
	handled, cmd := HandleKeyPress(m, runes("1"))
	assert.True(t, handled)
	assert.Nil(t, cmd)
	_, cmd = HandleKeyPress(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHandleKeyPress_Busy(t *testing.T) {
	t.Parallel()

	m := newModel(t)
	cmd := m.Run(model.OpRestart())
	require.NotNil(t, cmd)

	handled, next := HandleKeyPress(m, runes("1"))
	assert.True(t, handled)
	assert.Nil(t, next)

	_, quit := HandleKeyPress(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())
}

func TestIsGuessRunes(t *testing.T) {
	t.Parallel()

	assert.True(t, isGuessRunes([]rune("-12")))
	assert.True(t, isGuessRunes([]rune("+3")))
	assert.False(t, isGuessRunes([]rune("1a")))
	assert.False(t, isGuessRunes([]rune(" ")))
}

func TestKeyHandler_Interface(t *testing.T) {
	t.Parallel()

	var h model.InputHandler = KeyHandler{}
	m := newModel(t)
	handled, cmd := h.HandleKeyPress(m, runes("h"))
	assert.True(t, handled)
	assert.Nil(t, cmd)
	assert.True(t, m.ShowingHelp())
}

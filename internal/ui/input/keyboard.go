// Package input handles keyboard input processing.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/hilo-trainer/internal/trainer"
	"github.com/palemoky/hilo-trainer/internal/ui/common"
	"github.com/palemoky/hilo-trainer/internal/ui/model"
)

// KeyHandler implements model.InputHandler.
type KeyHandler struct{}

var _ model.InputHandler = KeyHandler{}

func (KeyHandler) HandleKeyPress(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	return HandleKeyPress(m, msg)
}

// HandleKeyPress handles keyboard input and returns whether it was handled.
// Unhandled keys fall through to the guess input.
func HandleKeyPress(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	keys := common.Keys

	if msg.Type == tea.KeyCtrlC {
		if m.Busy() || m.Phase() == model.PhaseGoodbye {
			return true, tea.Quit
		}
		return true, m.Run(model.OpQuit())
	}

	// 帮助层打开时只响应关闭
	if m.ShowingHelp() {
		if key.Matches(msg, keys.Close, keys.Help) {
			m.SetShowingHelp(false)
		}
		return true, nil
	}

	if m.Phase() == model.PhaseGoodbye {
		return true, nil
	}
	if m.Busy() {
		return true, nil
	}

	switch {
	case key.Matches(msg, keys.Help):
		m.SetShowingHelp(true)
		return true, nil
	case key.Matches(msg, keys.Quit):
		return true, m.Run(model.OpQuit())
	}

	switch m.Phase() {
	case model.PhaseMenu:
		return handleMenuKey(m, msg)
	case model.PhaseTutorial:
		return handleTutorialKey(m, msg)
	case model.PhaseAutomated:
		return handleAutomatedKey(m, msg)
	case model.PhaseGameOver:
		return handleGameOverKey(m, msg)
	}
	return false, nil
}

func handleMenuKey(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, common.Keys.Tutorial):
		return true, m.Run(model.OpStart(trainer.ModeTutorial))
	case key.Matches(msg, common.Keys.Automated):
		return true, m.Run(model.OpStart(trainer.ModeAutomated))
	}
	return true, nil
}

func handleTutorialKey(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, common.Keys.Submit):
		guess := strings.TrimSpace(m.Input().Value())
		if guess == "" {
			return true, nil
		}
		return true, m.Run(model.OpGuess(guess))
	case key.Matches(msg, common.Keys.Restart):
		return true, m.Run(model.OpRestart())
	case msg.Type == tea.KeyRunes && !isGuessRunes(msg.Runes):
		// 输入框只接受整数字符
		return true, nil
	}
	return false, nil
}

func handleAutomatedKey(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, common.Keys.Next):
		return true, m.Run(model.OpAdvance())
	case key.Matches(msg, common.Keys.Restart):
		return true, m.Run(model.OpRestart())
	}
	return true, nil
}

func handleGameOverKey(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if key.Matches(msg, common.Keys.Restart, common.Keys.Submit) {
		return true, m.Run(model.OpRestart())
	}
	return true, nil
}

func isGuessRunes(runes []rune) bool {
	for _, r := range runes {
		if (r < '0' || r > '9') && r != '-' && r != '+' {
			return false
		}
	}
	return true
}

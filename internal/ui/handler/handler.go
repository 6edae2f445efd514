// Package handler applies backend results to the UI model.
package handler

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/hilo-trainer/internal/apperrors"
	"github.com/palemoky/hilo-trainer/internal/client"
	"github.com/palemoky/hilo-trainer/internal/logger"
	"github.com/palemoky/hilo-trainer/internal/sound"
	"github.com/palemoky/hilo-trainer/internal/ui/model"
)

const (
	// 临时提示显示时长
	clearDelay = 3 * time.Second
	// 告别画面停留时长
	goodbyeDelay = 800 * time.Millisecond
)

// ResultHandler implements model.ResultHandler.
type ResultHandler struct{}

var _ model.ResultHandler = ResultHandler{}

func (ResultHandler) HandleResult(m model.Model, msg model.ResultMsg) tea.Cmd {
	return HandleResult(m, msg)
}

// HandleResult updates phase, input, sound and animation after an operation.
func HandleResult(m model.Model, msg model.ResultMsg) tea.Cmd {
	if msg.Err != nil && !errors.Is(msg.Err, client.ErrReconnected) {
		return handleError(m, msg)
	}

	var cmds []tea.Cmd
	if errors.Is(msg.Err, client.ErrReconnected) {
		m.SetNotice("🔄 连接已恢复，显示断线前保存的训练")
		cmds = append(cmds, clearNoticeLater())
	}

	switch msg.Op {
	case "start", "restart", "guess":
		// 开始、重来以及提交后都清空输入框
		m.Input().Reset()
		m.SetInputError("")
	}

	if cmd := playEvents(m, msg.Result.Events); cmd != nil {
		cmds = append(cmds, cmd)
	}

	phase := model.PhaseFor(m.State())
	m.SetPhase(phase)
	if phase == model.PhaseGoodbye {
		cmds = append(cmds, quitLater())
	}
	return tea.Batch(cmds...)
}

func handleError(m model.Model, msg model.ResultMsg) tea.Cmd {
	logger.LogError("%s failed: %v", msg.Op, msg.Err)

	if msg.Op == "quit" {
		// 退出失败也直接结束程序
		m.SetPhase(model.PhaseGoodbye)
		return quitLater()
	}

	if errors.Is(msg.Err, apperrors.ErrInvalidGuess) {
		m.SetInputError("⚠️ 请输入一个整数")
		seq := m.InputErrorSeq()
		return tea.Tick(clearDelay, func(time.Time) tea.Msg {
			return model.ClearInputErrorMsg{Seq: seq}
		})
	}

	var trainerErr *apperrors.TrainerError
	if errors.As(msg.Err, &trainerErr) {
		m.SetNotice("⚠️ " + trainerErr.Message)
	} else {
		m.SetNotice("⚠️ " + msg.Err.Error())
	}
	m.SetPhase(model.PhaseFor(m.State()))
	return clearNoticeLater()
}

// playEvents plays one effect per operation and animates a newly dealt card.
func playEvents(m model.Model, events []client.Event) tea.Cmd {
	var (
		effect string
		dealt  bool
	)
	for _, ev := range events {
		switch ev.Kind {
		case client.EventCardDealt:
			dealt = true
			if effect == "" {
				effect = sound.Deal
			}
		case client.EventGuessScored:
			effect = sound.Wrong
			if ev.Correct {
				effect = sound.Correct
			}
		case client.EventDeckExhausted:
			if effect == "" || effect == sound.Deal {
				effect = sound.Exhausted
			}
		}
	}

	if effect != "" {
		m.PlaySound(effect)
	}
	if dealt {
		return m.StartAnimation()
	}
	return nil
}

func clearNoticeLater() tea.Cmd {
	return tea.Tick(clearDelay, func(time.Time) tea.Msg {
		return model.ClearNoticeMsg{}
	})
}

func quitLater() tea.Cmd {
	return tea.Tick(goodbyeDelay, func(time.Time) tea.Msg {
		return tea.QuitMsg{}
	})
}

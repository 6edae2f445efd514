// Package view provides UI rendering functions.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/hilo-trainer/internal/card"
	"github.com/palemoky/hilo-trainer/internal/client"
	"github.com/palemoky/hilo-trainer/internal/trainer"
	"github.com/palemoky/hilo-trainer/internal/ui/common"
	"github.com/palemoky/hilo-trainer/internal/ui/model"
)

// CreateViewRenderer creates a view renderer function that can be injected into TrainerModel.
func CreateViewRenderer() func(model.Model, model.Phase) string {
	return func(m model.Model, phase model.Phase) string {
		if m.ShowingHelp() {
			return RenderOverlay(m.Width(), m.Height(), RenderHiLoGuide())
		}

		switch phase {
		case model.PhaseMenu:
			return MenuView(m)
		case model.PhaseTutorial, model.PhaseAutomated:
			return TrainingView(m)
		case model.PhaseGameOver:
			return GameOverView(m)
		case model.PhaseGoodbye:
			return GoodbyeView(m)
		default:
			return "Unknown phase"
		}
	}
}

// MenuView renders the mode selection screen.
func MenuView(m model.Model) string {
	var sb strings.Builder

	sb.WriteString(common.TitleStyle("🃏 Hi-Lo 算牌训练"))
	sb.WriteString("\n\n")

	var opts strings.Builder
	opts.WriteString("1. 📘 教学模式：每发一张牌，输入你的流水计数\n")
	opts.WriteString("2. 🤖 自动模式：逐张发牌并显示流水计数\n\n")
	opts.WriteString(fmt.Sprintf("牌靴: %d 副牌", max(m.State().NumDecks, 1)))
	if online, ok := m.Online(); ok {
		opts.WriteString(fmt.Sprintf("  ·  在线训练: %d 人", online))
	}
	sb.WriteString(common.BoxStyle.Render(opts.String()))
	sb.WriteString("\n")

	sb.WriteString(renderNotice(m))
	sb.WriteString(renderFooter(m, common.Bindings{
		common.Keys.Tutorial, common.Keys.Automated, common.Keys.Help, common.Keys.Quit,
	}))

	return lipgloss.Place(m.Width(), m.Height(), lipgloss.Center, lipgloss.Center, sb.String())
}

// TrainingView renders the tutorial and automated screens.
func TrainingView(m model.Model) string {
	st := m.State()
	var sb strings.Builder

	sb.WriteString(common.TitleStyle(modeTitle(st.Mode)))
	sb.WriteString("\n\n")

	var cardView string
	if st.HasCard {
		cardView = RenderCard(st.Card, m.AnimationFrame())
	} else {
		cardView = RenderCardBack()
	}
	panels := []string{cardView, "  ", renderCountPanel(st)}
	if tracker := renderTracker(m.Tracker(), st); tracker != "" {
		panels = append(panels, "  ", tracker)
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	sb.WriteString("\n\n")

	if st.HasCard {
		sb.WriteString(st.Card.String())
		sb.WriteString("\n")
	}
	sb.WriteString(renderDeckBar(m, st))
	sb.WriteString("\n")

	var keys common.Bindings
	if st.Mode == trainer.ModeTutorial {
		sb.WriteString(common.PromptStyle.Render(m.Input().View()))
		sb.WriteString("\n")
		keys = common.Bindings{common.Keys.Submit, common.Keys.Restart, common.Keys.Help, common.Keys.Quit}
	} else {
		keys = common.Bindings{common.Keys.Next, common.Keys.Restart, common.Keys.Help, common.Keys.Quit}
	}

	sb.WriteString(renderNotice(m))
	sb.WriteString(renderFooter(m, keys))

	return lipgloss.Place(m.Width(), m.Height(), lipgloss.Center, lipgloss.Center, sb.String())
}

// GameOverView renders the screen shown once the shoe runs out.
func GameOverView(m model.Model) string {
	st := m.State()

	var summary string
	if st.Mode == trainer.ModeTutorial {
		summary = fmt.Sprintf("✅ 正确: %d    ❌ 错误: %d    准确率: %s",
			st.Tally.Correct, st.Tally.Incorrect, accuracy(st.Tally))
	} else {
		summary = fmt.Sprintf("最终流水计数: %s", common.CountStyle.Render(fmt.Sprintf("%+d", st.RunningCount)))
	}

	msg := fmt.Sprintf("🎴 牌已发完!\n\n共发出 %d 张牌\n%s\n\n", st.CardsDealt, summary)

	var sb strings.Builder
	sb.WriteString(msg)
	sb.WriteString(renderNotice(m))
	sb.WriteString(renderFooter(m, common.Bindings{common.Keys.Restart, common.Keys.Quit}))

	return lipgloss.NewStyle().
		Width(m.Width()).
		Align(lipgloss.Center).
		Render(sb.String())
}

// GoodbyeView renders the farewell screen after quitting.
func GoodbyeView(m model.Model) string {
	msg := "👋 再见!"
	if st := m.State(); st.Tally.Total() > 0 {
		msg += fmt.Sprintf("\n\n本次教学: %d / %d 正确", st.Tally.Correct, st.Tally.Total())
	}
	return lipgloss.Place(m.Width(), m.Height(), lipgloss.Center, lipgloss.Center, msg)
}

// --- Helper rendering functions ---

func modeTitle(mode trainer.Mode) string {
	if mode == trainer.ModeTutorial {
		return "📘 教学模式：记住流水计数，每张牌后输入你的答案"
	}
	return "🤖 自动模式"
}

func renderCountPanel(st trainer.State) string {
	var sb strings.Builder

	if st.CountVisible {
		sb.WriteString(fmt.Sprintf("流水计数: %s\n", common.CountStyle.Render(fmt.Sprintf("%+d", st.RunningCount))))
		// 真数只在自动模式显示
		sb.WriteString(fmt.Sprintf("真数:     %s\n", common.CountStyle.Render(fmt.Sprintf("%+.1f", st.TrueCount))))
		if st.HasCard {
			v := hiLoValueOf(st)
			sb.WriteString(fmt.Sprintf("本张:     %s\n", common.HiLoStyle(v).Render(fmt.Sprintf("%+d", v))))
		}
	} else {
		sb.WriteString(common.DimStyle.Render("教学模式不显示流水计数"))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("✅ 正确: %d\n", st.Tally.Correct))
		sb.WriteString(fmt.Sprintf("❌ 错误: %d\n", st.Tally.Incorrect))
		if st.Guessed {
			if st.LastCorrect {
				sb.WriteString(common.SuccessStyle.Render("上一次: 正确"))
			} else {
				sb.WriteString(common.ErrorStyle.Render("上一次: 错误"))
			}
		}
	}

	return common.BoxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// renderTracker shows how many low, neutral and high cards are left. It
// would reveal the count in tutorial mode, so only automated mode shows it.
func renderTracker(rt client.TrackerSnapshot, st trainer.State) string {
	if !st.CountVisible {
		return ""
	}
	if !rt.Valid {
		return common.BoxStyle.Render(common.DimStyle.Render("剩余牌统计\n(重连后不可用)"))
	}

	low, neutral, high := rt.Groups()
	var sb strings.Builder
	sb.WriteString("剩余牌统计\n")
	sb.WriteString(fmt.Sprintf("%s 2-6:  %d\n", common.HiLoStyle(1).Render("+1"), low))
	sb.WriteString(fmt.Sprintf("%s 7-9:  %d\n", common.HiLoStyle(0).Render(" 0"), neutral))
	sb.WriteString(fmt.Sprintf("%s 10-A: %d", common.HiLoStyle(-1).Render("-1"), high))
	return common.BoxStyle.Render(sb.String())
}

func renderDeckBar(m model.Model, st trainer.State) string {
	total := st.Remaining + st.CardsDealt
	if total == 0 {
		return ""
	}
	percent := float64(st.Remaining) / float64(total)
	return fmt.Sprintf("%s  剩余 %d/%d", m.Progress().ViewAs(percent), st.Remaining, total)
}

func renderNotice(m model.Model) string {
	if notice := m.Notice(); notice != "" {
		return common.ErrorStyle.Render(notice) + "\n"
	}
	return ""
}

func renderFooter(m model.Model, keys common.Bindings) string {
	return "\n" + m.Help().View(keys)
}

func hiLoValueOf(st trainer.State) int {
	return card.HiLoValue(st.Card.Rank)
}

func accuracy(t trainer.Tally) string {
	if t.Total() == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", float64(t.Correct)*100/float64(t.Total()))
}

package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/hilo-trainer/internal/card"
	"github.com/palemoky/hilo-trainer/internal/ui/common"
)

// HiLoGroups lists rank labels by Hi-Lo value: +1, 0 and -1.
func HiLoGroups() (plus, zero, minus []string) {
	for _, r := range card.Ranks() {
		switch card.HiLoValue(r) {
		case 1:
			plus = append(plus, r.Short())
		case 0:
			zero = append(zero, r.Short())
		default:
			minus = append(minus, r.Short())
		}
	}
	return plus, zero, minus
}

// RenderHiLoGuide renders the help overlay explaining the Hi-Lo system.
func RenderHiLoGuide() string {
	plus, zero, minus := HiLoGroups()

	var sb strings.Builder
	sb.WriteString(common.TitleStyle("📘 Hi-Lo 算牌法"))
	sb.WriteString("\n\n")
	sb.WriteString("Hi-Lo 是二十一点中最常用的记牌方法：每看到一张牌，\n")
	sb.WriteString("就把它的点数加进流水计数 (running count)。\n")
	sb.WriteString("小牌 (2-6) 对庄家有利，大牌 (10-A) 对玩家有利。\n\n")

	rows := []struct {
		value int
		ranks []string
	}{
		{1, plus},
		{0, zero},
		{-1, minus},
	}
	for _, row := range rows {
		label := common.HiLoStyle(row.value).Render(fmt.Sprintf("%+d", row.value))
		sb.WriteString(fmt.Sprintf("  %s  %s\n", label, strings.Join(row.ranks, " ")))
	}

	sb.WriteString("\n计数越高，剩余牌中大牌越多，接下来的牌局越有利于玩家。\n")
	sb.WriteString("真数 (true count) = 流水计数 ÷ 剩余副数。\n\n")
	sb.WriteString(common.DimStyle.Render("按 ESC 关闭"))

	return common.BoxStyle.Padding(1, 3).Render(sb.String())
}

// RenderOverlay centers content on the screen.
func RenderOverlay(width, height int, content string) string {
	return lipgloss.Place(width, height,
		lipgloss.Center, lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
	)
}

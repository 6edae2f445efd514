package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/hilo-trainer/internal/card"
	"github.com/palemoky/hilo-trainer/internal/ui/common"
	"github.com/palemoky/hilo-trainer/internal/ui/model"
)

// 每帧动画向左移动的列数
const slideStep = 3

// RenderCard draws a card face. frame is the number of animation frames left;
// the card sits slideStep columns further right per frame.
func RenderCard(c card.Card, frame int) string {
	style := common.CardTextStyle(c)
	rank := c.Rank.Short()
	suit := c.Suit.Symbol()
	inner := common.CardWidth

	lines := make([]string, 0, common.CardHeight)
	lines = append(lines, style.Render(fmt.Sprintf("%-*s", inner, rank)))
	for i := 1; i < common.CardHeight-1; i++ {
		if i == common.CardHeight/2 {
			lines = append(lines, style.Render(centerText(suit, inner)))
		} else {
			lines = append(lines, style.Render(strings.Repeat(" ", inner)))
		}
	}
	lines = append(lines, style.Render(fmt.Sprintf("%*s", inner, rank)))

	face := common.CardStyle.Render(strings.Join(lines, "\n"))
	offset := max(frame, 0) * slideStep

	// 固定宽度，避免动画期间布局抖动
	return lipgloss.NewStyle().
		Width(common.CardWidth + 2 + model.AnimationFrames*slideStep).
		Render(lipgloss.NewStyle().MarginLeft(offset).Render(face))
}

// RenderCardBack draws the placeholder shown before the first card.
func RenderCardBack() string {
	lines := make([]string, common.CardHeight)
	for i := range lines {
		lines[i] = strings.Repeat("░", common.CardWidth)
	}
	return common.CardStyle.Background(lipgloss.NoColor{}).Render(strings.Join(lines, "\n"))
}

func centerText(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

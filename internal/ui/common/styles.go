// Package common provides shared styles and key bindings for the UI.
package common

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/hilo-trainer/internal/card"
)

// 牌面边框
const (
	CardWidth  = 11
	CardHeight = 7
)

// Lipgloss Styles
var (
	DocStyle     = lipgloss.NewStyle().Margin(1, 2)
	RedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	BlackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	TitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	PromptStyle  = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	CountStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	CardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("252")).
			Background(lipgloss.Color("#FFFFFF")).
			Width(CardWidth).
			Height(CardHeight)
)

// CardTextStyle 按花色颜色选择牌面文字样式
func CardTextStyle(c card.Card) lipgloss.Style {
	if c.Color() == card.Red {
		return RedStyle
	}
	return BlackStyle
}

// HiLoStyle colors a Hi-Lo value: green for +1, red for -1.
func HiLoStyle(value int) lipgloss.Style {
	switch {
	case value > 0:
		return SuccessStyle
	case value < 0:
		return ErrorStyle
	default:
		return DimStyle
	}
}

package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Palette. Gold marks whatever the learner is focused on.
const (
	colorBright = lipgloss.Color("#F0F0F0")
	colorText   = lipgloss.Color("#B8B8B8")
	colorMuted  = lipgloss.Color("#8C8C8C")
	colorDim    = lipgloss.Color("#6E6E6E")
	colorEdge   = lipgloss.Color("#4A4A4A")
	colorGold   = lipgloss.Color("#C89A3A")
	colorAlert  = lipgloss.Color("#FF4D4F")
)

func tabStyle(edge lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(edge)
}

func boxStyle(edge lipgloss.Color, vertical, horizontal int) lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(vertical, horizontal).
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(edge)
}

var (
	activeNavStyle   = tabStyle(colorGold).Foreground(colorBright).Bold(true)
	inactiveNavStyle = tabStyle(colorEdge).Foreground(colorMuted)

	cardStyle  = boxStyle(colorEdge, 1, 3)
	modalStyle = boxStyle(colorGold, 1, 2)

	headerStyle = lipgloss.NewStyle().Foreground(colorDim)
	footerStyle = lipgloss.NewStyle().Foreground(colorDim)
	errorStyle  = lipgloss.NewStyle().Foreground(colorAlert)

	titleStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	mutedStyle  = titleStyle
	textStyle   = lipgloss.NewStyle().Foreground(colorText)
	wordStyle   = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	hiddenStyle = lipgloss.NewStyle().Foreground(colorEdge)

	accentStyle = lipgloss.NewStyle().Foreground(colorGold)
	activeStyle = accentStyle.Bold(true)
	noticeStyle = accentStyle.Italic(true)
	cursorStyle = lipgloss.NewStyle().Foreground(colorBright).Underline(true)
)

// wordTableStyles styles the word list: an underlined header and a bold
// cursor row, with no left padding so the index column hugs the margin.
func wordTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colorEdge).
		Foreground(colorText).
		Bold(true).
		PaddingRight(1)
	styles.Cell = lipgloss.NewStyle().PaddingRight(1)
	styles.Selected = styles.Cell.Foreground(colorBright).Bold(true)
	return styles
}

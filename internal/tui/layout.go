package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

const (
	// cards and lists take this share of the terminal width
	contentShare    = 0.70
	minContentWidth = 20
	minModalWidth   = 30
	maxModalWidth   = 64
)

// fillWidth pads every line of a styled block with blanks up to width.
func fillWidth(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Left, s)
}

// fitLines turns s into a block of exactly height lines, each at least
// width cells wide.
func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return fillWidth(strings.Join(lines, "\n"), width)
}

// truncateLine clips plain text to width display cells.
func truncateLine(s string, width int) string {
	switch {
	case width <= 0, runewidth.StringWidth(s) <= width:
		return s
	case width <= 3:
		return runewidth.Truncate(s, width, "")
	default:
		return runewidth.Truncate(s, width, "...")
	}
}

// wrapText word-wraps plain text to width cells.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

func contentWidth(width int) int {
	w := int(float64(width) * contentShare)
	if w < minContentWidth {
		w = min(width, minContentWidth)
	}
	return max(1, w)
}

func modalWidth(width int) int {
	return max(minModalWidth, min(width-4, maxModalWidth))
}

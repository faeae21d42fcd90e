package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuivoca/internal/gesture"
	"github.com/verte-zerg/tuivoca/internal/nav"
)

const pickerColumns = 5

// picker is the chapter selection overlay.
type picker struct {
	title  string
	sel    *nav.Selector
	cursor int
	dots   paginator.Model
}

func newPicker(title string, sel *nav.Selector, current int) *picker {
	dots := paginator.New()
	dots.Type = paginator.Dots
	dots.ActiveDot = accentStyle.Render("•")
	dots.InactiveDot = hiddenStyle.Render("•")
	p := &picker{title: title, sel: sel, dots: dots}
	sel.Open(current)
	p.cursor = 0
	for i, ch := range sel.Items() {
		if ch == current {
			p.cursor = i
		}
	}
	return p
}

// update handles a key and returns the chosen chapter once one is picked.
// closed is true when the overlay should go away.
func (p *picker) update(msg tea.KeyMsg) (chapter int, closed bool) {
	items := p.sel.Items()
	switch {
	case key.Matches(msg, pickerKeyMap.Close):
		return 0, true
	case key.Matches(msg, pickerKeyMap.Select):
		if ch, ok := p.sel.SelectItem(p.cursor); ok {
			return ch, true
		}
		return 0, false
	case key.Matches(msg, pickerKeyMap.Left):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, pickerKeyMap.Right):
		if p.cursor < len(items)-1 {
			p.cursor++
		}
	case key.Matches(msg, pickerKeyMap.Up):
		if p.cursor-pickerColumns >= 0 {
			p.cursor -= pickerColumns
		}
	case key.Matches(msg, pickerKeyMap.Down):
		if p.cursor+pickerColumns < len(items) {
			p.cursor += pickerColumns
		}
	case key.Matches(msg, pickerKeyMap.NextPage):
		p.sel.NextPage()
		p.clampCursor()
	case key.Matches(msg, pickerKeyMap.PrevPage):
		p.sel.PrevPage()
		p.clampCursor()
	}
	return 0, false
}

func (p *picker) swipe(dir gesture.Direction) {
	switch dir {
	case gesture.Forward:
		p.sel.SwipePage(1)
	case gesture.Backward:
		p.sel.SwipePage(-1)
	default:
		return
	}
	p.clampCursor()
}

func (p *picker) clampCursor() {
	n := len(p.sel.Items())
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *picker) view(width, height int) string {
	items := p.sel.Items()
	rows := make([]string, 0, (len(items)+pickerColumns-1)/pickerColumns)
	var row []string
	for i, ch := range items {
		cell := fmt.Sprintf(" %3d ", ch)
		switch {
		case i == p.cursor:
			cell = cursorStyle.Render(cell)
		case ch == p.sel.Current():
			cell = activeStyle.Render(cell)
		default:
			cell = textStyle.Render(cell)
		}
		row = append(row, cell)
		if len(row) == pickerColumns {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}

	p.dots.TotalPages = p.sel.Pages()
	p.dots.Page = p.sel.Page() - 1
	parts := []string{
		wordStyle.Render(p.title),
		"",
		strings.Join(rows, "\n"),
		"",
		p.dots.View() + "  " + mutedStyle.Render(p.sel.Label()),
	}
	box := modalStyle.Render(strings.Join(parts, "\n"))
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (p *picker) help() []key.Binding {
	return []key.Binding{pickerKeyMap.Up, pickerKeyMap.Select, pickerKeyMap.PrevPage, pickerKeyMap.NextPage, pickerKeyMap.Close}
}

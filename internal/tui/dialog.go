package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type answer int

const (
	answerNone answer = iota
	answerAccept
	answerDecline
	answerRepeat
)

type choice struct {
	binding key.Binding
	answer  answer
}

// dialog is a modal confirmation with keyed answers.
type dialog struct {
	title   string
	body    string
	choices []choice
}

func acceptChoice(label string) choice {
	return choice{
		binding: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", label)),
		answer:  answerAccept,
	}
}

func declineChoice(label string) choice {
	return choice{
		binding: key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", label)),
		answer:  answerDecline,
	}
}

func repeatChoice(label string) choice {
	return choice{
		binding: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", label)),
		answer:  answerRepeat,
	}
}

func confirmDialog(title, body, yes, no string) *dialog {
	return &dialog{
		title:   title,
		body:    body,
		choices: []choice{acceptChoice(yes), declineChoice(no)},
	}
}

func (d *dialog) answer(msg tea.KeyMsg) answer {
	for _, c := range d.choices {
		if key.Matches(msg, c.binding) {
			return c.answer
		}
	}
	return answerNone
}

func (d *dialog) view(width, height int) string {
	w := modalWidth(width)
	inner := max(10, w-6)
	parts := []string{wordStyle.Render(d.title)}
	if d.body != "" {
		parts = append(parts, "", textStyle.Render(wrapText(d.body, inner)))
	}
	opts := make([]string, 0, len(d.choices))
	for _, c := range d.choices {
		h := c.binding.Help()
		opts = append(opts, accentStyle.Render(h.Key)+" "+mutedStyle.Render(h.Desc))
	}
	parts = append(parts, "", strings.Join(opts, "   "))
	box := modalStyle.Width(w).Render(strings.Join(parts, "\n"))
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

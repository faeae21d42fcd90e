package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuivoca/internal/browser"
	"github.com/verte-zerg/tuivoca/internal/gesture"
)

// aboutView shows the content pack details.
type aboutView struct {
	svc     *services
	chapter int
}

func newAboutView(svc *services) *aboutView {
	return &aboutView{svc: svc}
}

func (a *aboutView) load(chapter int, _ bool) tea.Cmd {
	a.chapter = chapter
	return nil
}

func (a *aboutView) loaded() int {
	return a.chapter
}

func (a *aboutView) enter() tea.Cmd {
	return nil
}

func (a *aboutView) leave() {}

func (a *aboutView) resize(int, int) {}

func (a *aboutView) modal() *dialog {
	return nil
}

func (a *aboutView) update(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, aboutKeyMap.Email) {
		if email := a.svc.content.Meta().Developer.Email; email != "" {
			return a.svc.openLink(browser.Mailto(email))
		}
	}
	return nil
}

func (a *aboutView) swipe(gesture.Direction) tea.Cmd {
	return nil
}

func (a *aboutView) render(width, height int) string {
	meta := a.svc.content.Meta()
	name := meta.Name
	if name == "" {
		name = "tuivoca"
	}
	lines := []string{wordStyle.Render(name)}
	if meta.Version != "" {
		lines = append(lines, mutedStyle.Render("Version "+meta.Version))
	}
	if meta.Description != "" {
		lines = append(lines, "", textStyle.Render(wrapText(meta.Description, max(20, contentWidth(width)-8))))
	}
	if dev := meta.Developer; dev.Name != "" || dev.Email != "" {
		lines = append(lines, "", titleStyle.Render("Developer"))
		if dev.Name != "" {
			lines = append(lines, textStyle.Render(dev.Name))
		}
		if dev.Email != "" {
			lines = append(lines, accentStyle.Render(dev.Email)+mutedStyle.Render("  (e)"))
		}
	}
	box := cardStyle.Render(strings.Join(lines, "\n"))
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (a *aboutView) help() []key.Binding {
	if a.svc.content.Meta().Developer.Email == "" {
		return nil
	}
	return []key.Binding{aboutKeyMap.Email}
}

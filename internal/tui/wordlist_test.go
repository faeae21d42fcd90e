package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuivoca/internal/content"
	"github.com/verte-zerg/tuivoca/internal/model"
	"github.com/verte-zerg/tuivoca/internal/store"
	"github.com/verte-zerg/tuivoca/internal/wordlist"
)

func wordListModel(t *testing.T, prefs memPrefs) *Model {
	t.Helper()
	m := newTestModel(t, Options{
		Content: content.New(testWords(2, 12), nil, model.Meta{}, model.Promo{}),
		Prefs:   prefs,
	})
	press(m, runes("2"))
	return m
}

func TestWordListModeCyclePersists(t *testing.T) {
	prefs := memPrefs{}
	m := wordListModel(t, prefs)
	if !strings.Contains(m.View(), "ch1. Level 1 (12)") || !strings.Contains(m.View(), "1 / 2") {
		t.Fatalf("unexpected word list view:\n%s", m.View())
	}
	press(m, runes("m"))
	if prefs[store.KeyWordListMode] != string(wordlist.WordOnly) {
		t.Fatalf("expected mode persisted, got %q", prefs[store.KeyWordListMode])
	}
	rows := m.wordList.table.Rows()
	if rows[0][1] != "c1w1" || rows[0][3] != hiddenCell {
		t.Fatalf("expected meaning hidden, got %v", rows[0])
	}

	press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	rows = m.wordList.table.Rows()
	if rows[1][3] != "meaning 1-2" || rows[0][3] != hiddenCell {
		t.Fatalf("expected only the second row revealed, got %v / %v", rows[0], rows[1])
	}

	m = wordListModel(t, prefs)
	if m.wordList.session.Mode() != wordlist.WordOnly {
		t.Fatalf("expected mode restored, got %s", m.wordList.session.Mode())
	}
}

func TestWordListPastLastPagePrompts(t *testing.T) {
	m := wordListModel(t, memPrefs{})
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.wordList.session.Page() != 2 {
		t.Fatalf("expected page 2")
	}
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if !strings.Contains(m.View(), "Continue with chapter 2?") {
		t.Fatalf("expected chapter prompt")
	}
	msgs := collect(press(m, runes("y")))
	if len(msgs) != 1 {
		t.Fatalf("expected chapter request")
	}
	press(m, msgs[0])
	if m.Chapter() != 2 || m.wordList.session.Page() != 1 {
		t.Fatalf("expected chapter 2 page 1, got chapter %d page %d", m.Chapter(), m.wordList.session.Page())
	}
}

func TestWordListBackFromFirstChapterWraps(t *testing.T) {
	m := wordListModel(t, memPrefs{})
	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if !strings.Contains(m.View(), "Go to the last chapter, 2?") {
		t.Fatalf("expected wrap prompt")
	}
	press(m, runes("n"))
	if m.wordList.modal() != nil || m.Chapter() != 1 {
		t.Fatalf("expected decline to stay")
	}
	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	for _, msg := range collect(press(m, runes("y"))) {
		press(m, msg)
	}
	if m.Chapter() != 2 || m.wordList.session.Page() != 2 {
		t.Fatalf("expected last page of chapter 2, got chapter %d page %d", m.Chapter(), m.wordList.session.Page())
	}
}

func TestWordListTwoStepSwipe(t *testing.T) {
	m := wordListModel(t, memPrefs{store.KeyWordListMode: string(wordlist.MeaningOnly)})
	drag := func() {
		press(m,
			tea.MouseMsg{X: 60, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
			tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone},
		)
	}
	drag()
	if m.wordList.session.Page() != 1 || !m.wordList.session.PageRevealed() {
		t.Fatalf("expected first swipe to reveal the page")
	}
	drag()
	if m.wordList.session.Page() != 2 || m.wordList.session.PageRevealed() {
		t.Fatalf("expected second swipe to turn the page")
	}
}

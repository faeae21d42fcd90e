package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuivoca/internal/content"
	"github.com/verte-zerg/tuivoca/internal/model"
	"github.com/verte-zerg/tuivoca/internal/nav"
	"github.com/verte-zerg/tuivoca/internal/review"
)

type reverseShuffler struct{}

func (reverseShuffler) Permutation(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - 1 - i
	}
	return out
}

func reviewModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Content == nil {
		opts.Content = content.New(testWords(2, 2), nil, model.Meta{}, model.Promo{})
	}
	m := newTestModel(t, opts)
	press(m, runes("3"))
	if m.ActiveView() != nav.ViewReview {
		t.Fatalf("expected review view")
	}
	return m
}

func TestReviewCompletionRecordsPassAndMovesOn(t *testing.T) {
	history := &fakeHistory{}
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m := reviewModel(t, Options{History: history, Now: func() time.Time { return clock }})
	m.review.startPass()

	press(m, runes(" "))
	if !strings.Contains(m.View(), "meaning 1-1") {
		t.Fatalf("expected revealed meaning")
	}
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	clock = clock.Add(90 * time.Second)
	press(m, tea.KeyMsg{Type: tea.KeyRight})

	if m.review.modal() == nil || !strings.Contains(m.View(), "Chapter 1 complete") {
		t.Fatalf("expected completion dialog")
	}
	if len(history.passes) != 1 {
		t.Fatalf("expected one recorded pass, got %d", len(history.passes))
	}
	pass := history.passes[0]
	if pass.Chapter != 1 || pass.Words != 2 || pass.Mode != string(review.WordFirst) || pass.EndedAt.Sub(pass.StartedAt) != 90*time.Second {
		t.Fatalf("unexpected pass %+v", pass)
	}

	msgs := collect(press(m, runes("y")))
	if len(msgs) != 1 {
		t.Fatalf("expected a chapter request, got %v", msgs)
	}
	press(m, msgs[0])
	if m.Chapter() != 2 || m.review.loaded() != 2 || m.review.session.Position() != 0 {
		t.Fatalf("expected chapter 2 from the start, got chapter %d", m.Chapter())
	}
}

func TestReviewRepeatStartsNewPass(t *testing.T) {
	history := &fakeHistory{}
	m := reviewModel(t, Options{History: history})
	press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	press(m, runes("r"))
	if m.review.modal() != nil || m.review.session.Studied() != 0 || m.review.session.Position() != 0 {
		t.Fatalf("expected fresh pass after repeat")
	}
	press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	if len(history.passes) != 2 {
		t.Fatalf("expected a second pass, got %d", len(history.passes))
	}
}

func TestReviewPrevBoundaryOnFirstChapter(t *testing.T) {
	m := reviewModel(t, Options{})
	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if !strings.Contains(m.View(), "Jump to the last word?") {
		t.Fatalf("expected wrap prompt on the first chapter")
	}
	press(m, runes("n"))
	if m.review.modal() != nil || m.review.session.Position() != 0 {
		t.Fatalf("expected decline to stay on the first word")
	}
	press(m, tea.KeyMsg{Type: tea.KeyLeft}, runes("y"))
	if m.review.session.Position() != 1 {
		t.Fatalf("expected accept to wrap to the last word, got %d", m.review.session.Position())
	}
}

func TestReviewPrevIntoPreviousChapterLandsOnLastWord(t *testing.T) {
	m := reviewModel(t, Options{Prefs: memPrefs{}})
	press(m, chapterRequestMsg{chapter: 2})
	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	msgs := collect(press(m, runes("y")))
	if len(msgs) != 1 {
		t.Fatalf("expected a chapter request")
	}
	press(m, msgs[0])
	if m.Chapter() != 1 || m.review.session.Position() != 1 {
		t.Fatalf("expected last word of chapter 1, got chapter %d position %d", m.Chapter(), m.review.session.Position())
	}
}

func TestReviewModeAndRandomToggles(t *testing.T) {
	m := reviewModel(t, Options{Shuffler: reverseShuffler{}})
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	press(m, runes("m"))
	if m.review.session.Mode() != review.MeaningFirst || m.review.session.Position() != 0 || m.review.session.Studied() != 0 {
		t.Fatalf("expected mode switch to start a new pass")
	}
	if !strings.Contains(m.View(), "meaning 1-1") || strings.Contains(m.View(), "c1w1") {
		t.Fatalf("expected meaning shown first and word hidden")
	}
	press(m, runes("r"))
	if !m.review.session.Random() {
		t.Fatalf("expected random order")
	}
	if w, _ := m.review.session.Current(); w.Word != "c1w2" {
		t.Fatalf("expected shuffled order to start with c1w2, got %s", w.Word)
	}
}

func TestReviewRandomNeedsShuffler(t *testing.T) {
	m := reviewModel(t, Options{})
	press(m, runes("r"))
	if m.review.session.Random() {
		t.Fatalf("expected random order to stay off without a shuffler")
	}
}

func TestReviewStartsOverAfterTabSwitch(t *testing.T) {
	m := reviewModel(t, Options{})
	press(m, runes(" "), tea.KeyMsg{Type: tea.KeyRight})
	if m.review.session.Position() != 1 || m.review.session.Studied() != 1 {
		t.Fatalf("expected progress before switching")
	}
	press(m, runes("1"), runes("3"))
	if m.review.session.Position() != 0 || m.review.session.Studied() != 0 {
		t.Fatalf("expected a fresh pass, got position %d studied %d", m.review.session.Position(), m.review.session.Studied())
	}
	if strings.Contains(m.View(), "meaning 1-1") {
		t.Fatalf("expected content hidden again")
	}
}

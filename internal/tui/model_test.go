package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuivoca/internal/content"
	"github.com/verte-zerg/tuivoca/internal/model"
	"github.com/verte-zerg/tuivoca/internal/nav"
	"github.com/verte-zerg/tuivoca/internal/player"
	"github.com/verte-zerg/tuivoca/internal/speech"
	"github.com/verte-zerg/tuivoca/internal/store"
)

type memPrefs map[string]string

func (p memPrefs) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := p[key]
	return v, ok, nil
}

func (p memPrefs) Set(_ context.Context, key, value string) error {
	p[key] = value
	return nil
}

type fakeSpeaker struct {
	said []string
}

func (f *fakeSpeaker) Say(req speech.Request) bool {
	f.said = append(f.said, req.Text)
	return true
}

type fakeHistory struct {
	passes []model.ReviewPass
}

func (f *fakeHistory) InsertReviewPass(_ context.Context, pass model.ReviewPass) (string, error) {
	f.passes = append(f.passes, pass)
	return fmt.Sprintf("pass-%d", len(f.passes)), nil
}

type fakePlayer struct {
	mu      sync.Mutex
	events  chan player.Event
	loaded  string
	seeks   []int
	plays   int
	pauses  int
	closed  bool
	loadErr error
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{events: make(chan player.Event, 8)}
}

func (f *fakePlayer) Load(_ context.Context, videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loaded = videoID
	return f.loadErr
}

func (f *fakePlayer) Seek(_ context.Context, seconds int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, seconds)
	return nil
}

func (f *fakePlayer) Play(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	return nil
}

func (f *fakePlayer) Pause(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
	return nil
}

func (f *fakePlayer) CurrentTime(context.Context) (int, error) {
	return 0, nil
}

func (f *fakePlayer) Events() <-chan player.Event {
	return f.events
}

func (f *fakePlayer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.events)
	}
	return nil
}

// testWords builds perChapter words for each of chapters chapters, named
// "c<chapter>w<n>".
func testWords(chapters, perChapter int) []model.WordEntry {
	var words []model.WordEntry
	id := 1
	for ch := 1; ch <= chapters; ch++ {
		for i := 1; i <= perChapter; i++ {
			words = append(words, model.WordEntry{
				ID:      id,
				Chapter: ch,
				Word:    fmt.Sprintf("c%dw%d", ch, i),
				POS:     "n",
				Meaning: fmt.Sprintf("meaning %d-%d", ch, i),
			})
			id++
		}
	}
	return words
}

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Content == nil {
		opts.Content = content.New(testWords(3, 4), nil, model.Meta{Name: "Test"}, model.Promo{})
	}
	if opts.Prefs == nil {
		opts.Prefs = memPrefs{}
	}
	if opts.Now == nil {
		base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		opts.Now = func() time.Time { return base }
	}
	m := NewModel(opts)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

// collect runs cmd and flattens batches. It must not be used on commands
// that wait for timers or player events.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func TestRestoresLastChapterClamped(t *testing.T) {
	m := newTestModel(t, Options{Prefs: memPrefs{store.KeyLastChapter: "9"}})
	if m.Chapter() != 3 {
		t.Fatalf("expected chapter clamped to 3, got %d", m.Chapter())
	}
	m = newTestModel(t, Options{Prefs: memPrefs{store.KeyLastChapter: "2"}})
	if m.Chapter() != 2 || m.home.loaded() != 2 {
		t.Fatalf("expected chapter 2, got %d", m.Chapter())
	}
}

func TestViewSwitchingKeys(t *testing.T) {
	m := newTestModel(t, Options{})
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.ActiveView() != nav.ViewWordList {
		t.Fatalf("expected word list, got %v", m.ActiveView())
	}
	press(m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.ActiveView() != nav.ViewAbout {
		t.Fatalf("expected about after wrapping back, got %v", m.ActiveView())
	}
	press(m, runes("3"))
	if m.ActiveView() != nav.ViewReview {
		t.Fatalf("expected review, got %v", m.ActiveView())
	}
}

func TestChapterRequestPersistsAndReloadsActiveView(t *testing.T) {
	prefs := memPrefs{}
	m := newTestModel(t, Options{Prefs: prefs})
	press(m, runes("2"))
	press(m, chapterRequestMsg{chapter: 7})
	if m.Chapter() != 3 {
		t.Fatalf("expected clamped chapter 3, got %d", m.Chapter())
	}
	if prefs[store.KeyLastChapter] != "3" {
		t.Fatalf("expected chapter persisted, got %q", prefs[store.KeyLastChapter])
	}
	if m.wordList.loaded() != 3 {
		t.Fatalf("expected word list reloaded, got %d", m.wordList.loaded())
	}
	if m.review.loaded() != 1 {
		t.Fatalf("expected inactive review untouched, got %d", m.review.loaded())
	}
	press(m, runes("3"))
	if m.review.loaded() != 3 {
		t.Fatalf("expected review to catch up on enter, got %d", m.review.loaded())
	}
}

func TestPickerSelectsChapter(t *testing.T) {
	prefs := memPrefs{}
	m := newTestModel(t, Options{Prefs: prefs})
	press(m, runes("c"))
	if m.picker == nil {
		t.Fatalf("expected picker to open")
	}
	if !strings.Contains(m.View(), "Select a chapter") {
		t.Fatalf("expected picker in view")
	}
	press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.picker != nil {
		t.Fatalf("expected picker to close")
	}
	if m.Chapter() != 3 || prefs[store.KeyLastChapter] != "3" {
		t.Fatalf("expected chapter 3, got %d", m.Chapter())
	}
}

func TestPickerEscapeKeepsChapter(t *testing.T) {
	m := newTestModel(t, Options{})
	press(m, runes("c"), tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.picker != nil || m.Chapter() != 1 {
		t.Fatalf("expected closed picker on chapter 1, got %d", m.Chapter())
	}
}

func TestMouseDragSwipes(t *testing.T) {
	m := newTestModel(t, Options{})
	press(m,
		tea.MouseMsg{X: 50, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 30, Y: 11, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone},
	)
	if m.home.session.Index() != 1 {
		t.Fatalf("expected swipe to advance, got index %d", m.home.session.Index())
	}
	press(m,
		tea.MouseMsg{X: 30, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 33, Y: 10, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone},
	)
	if m.home.session.Index() != 1 {
		t.Fatalf("expected short drag to be ignored, got index %d", m.home.session.Index())
	}
}

func TestHeaderAndStatusLine(t *testing.T) {
	m := newTestModel(t, Options{})
	out := m.View()
	if !strings.Contains(out, "Chapter 1 / 3") || !strings.Contains(out, "1 Home") {
		t.Fatalf("unexpected header: %s", out)
	}
	press(m, errMsg{err: fmt.Errorf("boom")})
	if !strings.Contains(m.View(), "boom") {
		t.Fatalf("expected error in status line")
	}
	press(m, runes("x"))
	if strings.Contains(m.View(), "boom") {
		t.Fatalf("expected status cleared on key press")
	}
}

func TestQuitClosesPlayer(t *testing.T) {
	fp := newFakePlayer()
	videos := []model.VideoChapter{{Chapter: 1, VideoID: "v1", Subtitles: []model.Subtitle{{ID: 1, Start: 0, Text: "hi"}}}}
	m := newTestModel(t, Options{
		Content:   content.New(testWords(1, 2), videos, model.Meta{}, model.Promo{}),
		NewPlayer: func(context.Context, model.VideoChapter) (player.Player, error) { return fp, nil },
	})
	for _, msg := range collect(press(m, runes("4"))) {
		press(m, msg)
	}
	if m.study.player == nil {
		t.Fatalf("expected player to start")
	}
	cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if !fp.closed {
		t.Fatalf("expected player closed on quit")
	}
}

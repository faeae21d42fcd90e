package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuivoca/internal/content"
	"github.com/verte-zerg/tuivoca/internal/model"
	"github.com/verte-zerg/tuivoca/internal/player"
)

func studyVideos() []model.VideoChapter {
	subs := make([]model.Subtitle, 0, 14)
	for i := 0; i < 14; i++ {
		subs = append(subs, model.Subtitle{ID: i + 1, Start: []int{0, 5, 12}[i%3] + 20*(i/3), Text: fmt.Sprintf("line %d", i+1)})
	}
	return []model.VideoChapter{
		{Chapter: 1, VideoID: "vid1", VideoTitle: "Chapter one video", Subtitles: subs},
		{Chapter: 3, VideoID: "vid3", VideoTitle: "Chapter three video", Subtitles: subs[:3]},
	}
}

type playerLog struct {
	players []*fakePlayer
	videos  []string
}

func (l *playerLog) factory(_ context.Context, video model.VideoChapter) (player.Player, error) {
	fp := newFakePlayer()
	l.players = append(l.players, fp)
	l.videos = append(l.videos, video.VideoID)
	return fp, nil
}

func studyModel(t *testing.T, log *playerLog) *Model {
	t.Helper()
	m := newTestModel(t, Options{
		Content:   content.New(testWords(3, 2), studyVideos(), model.Meta{}, model.Promo{}),
		NewPlayer: log.factory,
	})
	for _, msg := range collect(press(m, runes("4"))) {
		press(m, msg)
	}
	return m
}

func event(m *Model, kind player.Kind, seconds int) tea.Msg {
	return playerEventMsg{gen: m.study.gen, event: player.Event{Kind: kind, Seconds: seconds}, ok: true}
}

func TestStudyStartsPlayerAndFollowsTime(t *testing.T) {
	log := &playerLog{}
	m := studyModel(t, log)
	if len(log.players) != 1 || log.players[0].loaded != "vid1" || m.study.player == nil {
		t.Fatalf("expected player started with vid1, got %v", log.videos)
	}
	if cmd := press(m, event(m, player.Playing, 0)); cmd == nil {
		t.Fatalf("expected listener to re-arm")
	}
	press(m, event(m, player.Time, 8))
	if m.study.sync.Active() != 1 || m.study.cursor != 1 {
		t.Fatalf("expected second line active, got %d", m.study.sync.Active())
	}
	press(m, event(m, player.Time, 14))
	if m.study.sync.Active() != 2 {
		t.Fatalf("expected third line active, got %d", m.study.sync.Active())
	}
	press(m, event(m, player.Time, 66))
	if m.study.sync.Page() != 2 || m.study.sync.Active() != 10 {
		t.Fatalf("expected page to follow playback, got page %d active %d", m.study.sync.Page(), m.study.sync.Active())
	}
	if !strings.Contains(m.View(), "1:06") {
		t.Fatalf("expected formatted time in status")
	}
}

func TestStudySelectSeeksAndPlays(t *testing.T) {
	log := &playerLog{}
	m := studyModel(t, log)
	press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	collect(press(m, tea.KeyMsg{Type: tea.KeyEnter}))
	fp := log.players[0]
	if len(fp.seeks) != 1 || fp.seeks[0] != 12 || fp.plays != 1 {
		t.Fatalf("expected seek to 12 then play, got seeks %v plays %d", fp.seeks, fp.plays)
	}
	if m.study.sync.Time() != 12 || m.study.sync.Active() != 2 {
		t.Fatalf("expected highlighted selection")
	}

	press(m, event(m, player.Playing, 0))
	collect(press(m, runes(" ")))
	if fp.pauses != 1 {
		t.Fatalf("expected pause while playing")
	}
}

func TestStudyChapterChangeTearsDown(t *testing.T) {
	log := &playerLog{}
	m := studyModel(t, log)
	press(m, event(m, player.Playing, 0), event(m, player.Time, 66))
	stale := m.study.gen

	for _, msg := range collect(press(m, chapterRequestMsg{chapter: 3})) {
		press(m, msg)
	}
	if !log.players[0].closed {
		t.Fatalf("expected previous player closed")
	}
	if len(log.players) != 2 || log.videos[1] != "vid3" {
		t.Fatalf("expected new player for vid3, got %v", log.videos)
	}
	if m.study.sync.Time() != 0 || m.study.sync.Page() != 1 || m.study.vp.YOffset != 0 {
		t.Fatalf("expected reset playback state")
	}
	if cmd := press(m, playerEventMsg{gen: stale, event: player.Event{Kind: player.Time, Seconds: 30}, ok: true}); cmd != nil {
		t.Fatalf("expected stale listener to stop")
	}
	if m.study.sync.Time() != 0 {
		t.Fatalf("expected stale event ignored")
	}
}

func TestStudyFallbackNotice(t *testing.T) {
	log := &playerLog{}
	m := studyModel(t, log)
	for _, msg := range collect(press(m, chapterRequestMsg{chapter: 2})) {
		press(m, msg)
	}
	if !strings.Contains(m.View(), "No video for chapter 2; showing chapter 1.") {
		t.Fatalf("expected fallback notice:\n%s", m.View())
	}
	if log.videos[len(log.videos)-1] != "vid1" {
		t.Fatalf("expected fallback video to load")
	}
}

func TestStudyPickerListsVideoChapters(t *testing.T) {
	m := studyModel(t, &playerLog{})
	press(m, runes("c"))
	if m.picker == nil {
		t.Fatalf("expected picker")
	}
	if got := m.picker.sel.Chapters(); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("expected video chapters only, got %v", got)
	}
}

func TestStudyStartFailureShowsStatus(t *testing.T) {
	m := newTestModel(t, Options{
		Content: content.New(testWords(1, 2), studyVideos(), model.Meta{}, model.Promo{}),
		NewPlayer: func(context.Context, model.VideoChapter) (player.Player, error) {
			return nil, errors.New("mpv missing")
		},
	})
	for _, msg := range collect(press(m, runes("4"))) {
		press(m, msg)
	}
	if m.study.player != nil || !strings.Contains(m.View(), "mpv missing") {
		t.Fatalf("expected start failure in status line")
	}
}

func TestStudyWithoutVideos(t *testing.T) {
	m := newTestModel(t, Options{})
	press(m, runes("4"))
	if !strings.Contains(m.View(), "No subtitles") {
		t.Fatalf("expected placeholder without videos")
	}
}

func TestStudyLoadFailureClosesPlayer(t *testing.T) {
	fp := newFakePlayer()
	fp.loadErr = errors.New("no such video")
	m := newTestModel(t, Options{
		Content: content.New(testWords(1, 2), studyVideos(), model.Meta{}, model.Promo{}),
		NewPlayer: func(context.Context, model.VideoChapter) (player.Player, error) {
			return fp, nil
		},
	})
	for _, msg := range collect(press(m, runes("4"))) {
		press(m, msg)
	}
	if !fp.closed || m.study.player != nil {
		t.Fatalf("expected player closed after a failed load")
	}
	if !strings.Contains(m.View(), "no such video") {
		t.Fatalf("expected load failure in status line")
	}
}

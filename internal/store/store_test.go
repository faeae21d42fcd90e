package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuivoca/internal/model"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "tuivoca.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, KeyLastChapter); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, KeyLastChapter, "2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, KeyLastChapter, "3"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := s.Get(ctx, KeyLastChapter)
	if err != nil || !ok || v != "3" {
		t.Fatalf("expected 3, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestReviewHistory(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	passes := []model.ReviewPass{
		{Chapter: 2, Mode: "word-first", Words: 8, StartedAt: base, EndedAt: base.Add(2 * time.Minute)},
		{Chapter: 1, Mode: "meaning-first", Random: true, Words: 12, StartedAt: base.Add(time.Hour), EndedAt: base.Add(time.Hour + time.Minute)},
		{Chapter: 2, Mode: "word-first", Words: 8, StartedAt: base.Add(2 * time.Hour), EndedAt: base.Add(2*time.Hour + 30*time.Second)},
	}
	ids := map[string]bool{}
	for _, p := range passes {
		id, err := s.InsertReviewPass(ctx, p)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if id == "" || ids[id] {
			t.Fatalf("expected a fresh session id, got %q", id)
		}
		ids[id] = true
	}

	history, err := s.ListChapterHistory(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 || history[0].Chapter != 1 || history[1].Chapter != 2 {
		t.Fatalf("unexpected history %+v", history)
	}
	if history[1].Passes != 2 || history[1].DurationMs != 150000 {
		t.Fatalf("unexpected chapter 2 aggregate %+v", history[1])
	}
	if !history[1].LastEnded.Equal(base.Add(2*time.Hour + 30*time.Second)) {
		t.Fatalf("unexpected last ended %v", history[1].LastEnded)
	}

	since := base.Add(30 * time.Minute)
	recent, err := s.ListReviewPasses(ctx, &since)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recent) != 2 || recent[0].Chapter != 1 || !recent[0].Random || recent[0].Mode != "meaning-first" {
		t.Fatalf("unexpected recent passes %+v", recent)
	}
	all, err := s.ListReviewPasses(ctx, nil)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected all passes, got %d (%v)", len(all), err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuivoca.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(context.Background(), KeyWordListMode, "meaning"); err != nil {
		t.Fatalf("set: %v", err)
	}
	_ = s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s.Close() }()
	v, ok, err := s.Get(context.Background(), KeyWordListMode)
	if err != nil || !ok || v != "meaning" {
		t.Fatalf("expected persisted mode, got %q ok=%v err=%v", v, ok, err)
	}
}

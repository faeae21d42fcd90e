package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuivoca/internal/model"
	"github.com/verte-zerg/tuivoca/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "tuivoca.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ended := []time.Time{
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	}
	for i, end := range ended {
		pass := model.ReviewPass{
			Chapter:   i%2 + 1,
			Mode:      "word-first",
			Words:     10,
			StartedAt: end.Add(-time.Minute),
			EndedAt:   end,
		}
		if _, err := st.InsertReviewPass(ctx, pass); err != nil {
			t.Fatalf("insert pass: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, 7, now)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Passes) != 2 {
		t.Fatalf("expected 2 recent passes, got %d", len(report.Passes))
	}
	if len(report.Chapters) != 2 || report.Chapters[0].Passes != 2 {
		t.Fatalf("unexpected chapter totals %+v", report.Chapters)
	}
	if len(report.Daily) != 7 || report.Daily[5] != 1 || report.Daily[6] != 1 {
		t.Fatalf("unexpected daily counts %v", report.Daily)
	}

	var buf bytes.Buffer
	if err := RenderHistory(&buf, report, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Review passes: 2", "Words reviewed: 20", "Time spent: 3m0s", "Last 7 days: ["} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, Report{}, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No review passes") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

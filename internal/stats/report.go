package stats

import (
	"context"
	"time"

	"github.com/verte-zerg/tuivoca/internal/model"
)

// Source provides recorded review passes.
type Source interface {
	ListReviewPasses(ctx context.Context, since *time.Time) ([]model.ReviewPass, error)
	ListChapterHistory(ctx context.Context) ([]model.ChapterHistory, error)
}

// Report contains precomputed data for history rendering.
type Report struct {
	Passes   []model.ReviewPass
	Chapters []model.ChapterHistory
	Daily    []float64
}

// BuildReport loads passes of the last days (all when days <= 0) and the
// per-chapter totals.
func BuildReport(ctx context.Context, src Source, days int, now time.Time) (Report, error) {
	var since *time.Time
	if days > 0 {
		y, m, d := now.Date()
		start := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(days - 1))
		since = &start
	}
	passes, err := src.ListReviewPasses(ctx, since)
	if err != nil {
		return Report{}, err
	}
	chapters, err := src.ListChapterHistory(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Passes:   passes,
		Chapters: chapters,
		Daily:    DailyCounts(passes, days, now),
	}, nil
}

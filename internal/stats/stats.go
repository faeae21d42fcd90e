package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/verte-zerg/tuivoca/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
)

// ChapterRow is one line of the chapter overview.
type ChapterRow struct {
	Chapter   int
	Words     int
	Video     bool
	Subtitles int
	Passes    int
	LastEnded time.Time
}

// ChapterOverview joins word counts, video coverage and review history per
// chapter, lowest chapter first.
func ChapterOverview(words []model.WordEntry, videos []model.VideoChapter, history []model.ChapterHistory) []ChapterRow {
	rows := map[int]*ChapterRow{}
	row := func(ch int) *ChapterRow {
		r, ok := rows[ch]
		if !ok {
			r = &ChapterRow{Chapter: ch}
			rows[ch] = r
		}
		return r
	}
	for _, w := range words {
		row(w.Chapter).Words++
	}
	for _, v := range videos {
		r := row(v.Chapter)
		r.Video = true
		r.Subtitles += len(v.Subtitles)
	}
	for _, h := range history {
		r := row(h.Chapter)
		r.Passes = h.Passes
		r.LastEnded = h.LastEnded
	}

	out := make([]ChapterRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Chapter < out[j].Chapter })
	return out
}

// RenderChapters prints the chapter overview table clipped to width.
func RenderChapters(w io.Writer, rows []ChapterRow, width int) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No chapters found.")
		return err
	}
	table := newTextTable(
		column{title: "Chapter", numeric: true},
		column{title: "Words", numeric: true},
		column{title: "Video"},
		column{title: "Reviews", numeric: true},
		column{title: "Last review"},
	)
	for _, r := range rows {
		video := "-"
		if r.Video {
			video = fmt.Sprintf("yes (%d)", r.Subtitles)
		}
		table.add(
			strconv.Itoa(r.Chapter),
			strconv.Itoa(r.Words),
			video,
			strconv.Itoa(r.Passes),
			formatDate(r.LastEnded),
		)
	}
	return table.write(w, width)
}

// DailyCounts returns the number of passes ended on each of the last days
// calendar days (in now's location), oldest first.
func DailyCounts(passes []model.ReviewPass, days int, now time.Time) []float64 {
	if days <= 0 {
		return nil
	}
	counts := make([]float64, days)
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	for _, p := range passes {
		ey, em, ed := p.EndedAt.In(now.Location()).Date()
		day := time.Date(ey, em, ed, 0, 0, 0, 0, now.Location())
		ago := int(math.Round(today.Sub(day).Hours() / 24))
		if ago < 0 || ago >= days {
			continue
		}
		counts[days-1-ago]++
	}
	return counts
}

// Sparkline renders a single-line ASCII sparkline for the values. Zero maps
// to a blank so idle days stand out.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return strings.Repeat(string(sparkChars[0]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Ceil(v / maxVal * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderHistory prints the review summary, the daily activity line and the
// per-chapter table.
func RenderHistory(w io.Writer, report Report, width int) error {
	if len(report.Passes) == 0 && len(report.Chapters) == 0 {
		_, err := fmt.Fprintln(w, "No review passes recorded yet.")
		return err
	}
	var totalMs int64
	words := 0
	for _, h := range report.Chapters {
		totalMs += h.DurationMs
	}
	for _, p := range report.Passes {
		words += p.Words
	}
	if _, err := fmt.Fprintf(w, "Review passes: %d\n", len(report.Passes)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Words reviewed: %d\n", words); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Chapters reviewed: %d\n", len(report.Chapters)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Time spent: %s\n", formatDuration(totalMs)); err != nil {
		return err
	}
	if len(report.Daily) > 0 {
		if _, err := fmt.Fprintf(w, "Last %d days: [%s]\n", len(report.Daily), Sparkline(report.Daily)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	table := newTextTable(
		column{title: "Chapter", numeric: true},
		column{title: "Passes", numeric: true},
		column{title: "Time", numeric: true},
		column{title: "Last review"},
	)
	for _, h := range report.Chapters {
		table.add(
			strconv.Itoa(h.Chapter),
			strconv.Itoa(h.Passes),
			formatDuration(h.DurationMs),
			formatDate(h.LastEnded),
		)
	}
	return table.write(w, width)
}

// TerminalWidth returns the width of stdout, or 80 when it is not a
// terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatDuration(ms int64) string {
	if ms <= 0 {
		return "0s"
	}
	return (time.Duration(ms) * time.Millisecond).Round(time.Second).String()
}

package content

import (
	"testing"
	"testing/fstest"

	"github.com/verte-zerg/tuivoca/internal/model"
)

func TestDefaultContentLoads(t *testing.T) {
	st, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if len(st.Words()) == 0 {
		t.Fatalf("expected embedded words")
	}
	if st.MaxChapter() < 1 {
		t.Fatalf("expected max chapter >= 1, got %d", st.MaxChapter())
	}
	if len(st.VideoChapters()) == 0 {
		t.Fatalf("expected embedded videos")
	}
}

func TestLoadDecodesSubtitleTriples(t *testing.T) {
	fsys := fstest.MapFS{
		WordsFile:  {Data: []byte(`[{"id":1,"chapter":2,"word":"a","pos":"n","meaning":"x"},{"id":2,"word":"b","meaning":"y"}]`)},
		VideosFile: {Data: []byte(`[{"chapter":2,"videoId":"v2","videoTitle":"T","subtitles":[[1,0,"hi"],[2,5.7,"there"]]}]`)},
	}
	st, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st.MaxChapter() != 2 {
		t.Fatalf("expected max chapter 2, got %d", st.MaxChapter())
	}
	if got := len(st.ChapterWords(1)); got != 1 {
		t.Fatalf("expected word without chapter to land in chapter 1, got %d words", got)
	}
	video, fallback, ok := st.VideoFor(2)
	if !ok || fallback {
		t.Fatalf("expected direct video for chapter 2")
	}
	if len(video.Subtitles) != 2 || video.Subtitles[1].Start != 5 || video.Subtitles[1].Text != "there" {
		t.Fatalf("unexpected subtitles: %+v", video.Subtitles)
	}
	if st.Meta().Name != "" {
		t.Fatalf("expected empty meta when about.json is missing")
	}
}

func TestLoadRejectsMalformedSubtitle(t *testing.T) {
	fsys := fstest.MapFS{
		WordsFile:  {Data: []byte(`[]`)},
		VideosFile: {Data: []byte(`[{"chapter":1,"videoId":"v","subtitles":[[1,0]]}]`)},
	}
	if _, err := Load(fsys); err == nil {
		t.Fatalf("expected error for two-field subtitle")
	}
}

func TestLoadRequiresWords(t *testing.T) {
	if _, err := Load(fstest.MapFS{}); err == nil {
		t.Fatalf("expected error when words.json is missing")
	}
}

func TestVideoForFallsBackToFirst(t *testing.T) {
	st := New(nil, []model.VideoChapter{{Chapter: 3, VideoID: "c3"}, {Chapter: 1, VideoID: "c1"}}, model.Meta{}, model.Promo{})
	video, fallback, ok := st.VideoFor(7)
	if !ok || !fallback || video.VideoID != "c3" {
		t.Fatalf("expected fallback to first video, got %+v fallback=%v ok=%v", video, fallback, ok)
	}
	chapters := st.VideoChapters()
	if len(chapters) != 2 || chapters[0] != 1 || chapters[1] != 3 {
		t.Fatalf("expected sorted video chapters, got %v", chapters)
	}
	if _, _, ok := New(nil, nil, model.Meta{}, model.Promo{}).VideoFor(1); ok {
		t.Fatalf("expected no video without data")
	}
}

func TestMaxChapterDefaultsToOne(t *testing.T) {
	if got := MaxChapter(nil); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestParseMeanings(t *testing.T) {
	got := ParseMeanings("n, v", "접근, 접근하다")
	if len(got) != 2 || got[0].POS != "n" || got[1].Text != "접근하다" {
		t.Fatalf("unexpected positional pairs: %+v", got)
	}
	got = ParseMeanings("v", "버리다, 포기하다")
	if len(got) != 1 || got[0].Text != "버리다, 포기하다" {
		t.Fatalf("expected single tag to keep full meaning: %+v", got)
	}
	got = ParseMeanings("", "뜻")
	if len(got) != 1 || got[0].POS != "" {
		t.Fatalf("expected untagged meaning: %+v", got)
	}
	got = ParseMeanings("n, v, adj", "하나, 둘")
	if len(got) != 2 {
		t.Fatalf("expected extra tags to be dropped: %+v", got)
	}
	if ParseMeanings("n", "") != nil {
		t.Fatalf("expected nil for empty meaning")
	}
}

// Package content loads the static vocabulary and subtitle data.
package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sort"

	"github.com/verte-zerg/tuivoca/internal/model"
)

// File names inside a content directory.
const (
	WordsFile  = "words.json"
	VideosFile = "video-subtitles.json"
	AboutFile  = "about.json"
	PromoFile  = "youtube.json"
)

//go:embed data/*.json
var embedded embed.FS

// Store is the read-only content pack: words, videos and metadata.
type Store struct {
	words  []model.WordEntry
	videos []model.VideoChapter
	meta   model.Meta
	promo  model.Promo

	byChapter  map[int][]model.WordEntry
	maxChapter int
}

// Default returns the content pack compiled into the binary.
func Default() (*Store, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded content: %w", err)
	}
	return Load(sub)
}

// LoadDir reads a content pack from a directory on disk.
func LoadDir(dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path is not a directory: %s", dir)
	}
	return Load(os.DirFS(dir))
}

// Load reads a content pack from fsys. The word list is required; videos,
// metadata and the promo reference are optional.
func Load(fsys fs.FS) (*Store, error) {
	var words []model.WordEntry
	if err := readJSON(fsys, WordsFile, &words); err != nil {
		return nil, err
	}

	var rawVideos []rawVideo
	if err := readOptionalJSON(fsys, VideosFile, &rawVideos); err != nil {
		return nil, err
	}
	videos := make([]model.VideoChapter, 0, len(rawVideos))
	for _, rv := range rawVideos {
		v, err := rv.toModel()
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", VideosFile, err)
		}
		videos = append(videos, v)
	}

	var meta model.Meta
	if err := readOptionalJSON(fsys, AboutFile, &meta); err != nil {
		return nil, err
	}
	var promo model.Promo
	if err := readOptionalJSON(fsys, PromoFile, &promo); err != nil {
		return nil, err
	}
	return New(words, videos, meta, promo), nil
}

// New builds a Store from already decoded data.
func New(words []model.WordEntry, videos []model.VideoChapter, meta model.Meta, promo model.Promo) *Store {
	s := &Store{
		words:     make([]model.WordEntry, len(words)),
		videos:    append([]model.VideoChapter(nil), videos...),
		meta:      meta,
		promo:     promo,
		byChapter: map[int][]model.WordEntry{},
	}
	copy(s.words, words)
	for i := range s.words {
		if s.words[i].Chapter < 1 {
			s.words[i].Chapter = 1
		}
		w := s.words[i]
		s.byChapter[w.Chapter] = append(s.byChapter[w.Chapter], w)
	}
	s.maxChapter = MaxChapter(s.words)
	return s
}

// MaxChapter returns the highest chapter number, or 1 for an empty list.
func MaxChapter(words []model.WordEntry) int {
	maxCh := 1
	for _, w := range words {
		ch := w.Chapter
		if ch < 1 {
			ch = 1
		}
		if ch > maxCh {
			maxCh = ch
		}
	}
	return maxCh
}

// Words returns every word in data order.
func (s *Store) Words() []model.WordEntry {
	return s.words
}

// MaxChapter returns the highest chapter number in the word list.
func (s *Store) MaxChapter() int {
	return s.maxChapter
}

// ChapterWords returns the words of a chapter in data order.
func (s *Store) ChapterWords(chapter int) []model.WordEntry {
	return s.byChapter[chapter]
}

// Videos returns all video chapters in data order.
func (s *Store) Videos() []model.VideoChapter {
	return s.videos
}

// VideoChapters returns the sorted chapter numbers that have video data.
func (s *Store) VideoChapters() []int {
	seen := map[int]struct{}{}
	out := make([]int, 0, len(s.videos))
	for _, v := range s.videos {
		if _, ok := seen[v.Chapter]; ok {
			continue
		}
		seen[v.Chapter] = struct{}{}
		out = append(out, v.Chapter)
	}
	sort.Ints(out)
	return out
}

// VideoFor returns the video of a chapter. When the chapter has none, the
// first video is returned with fallback set; ok is false only when there are
// no videos at all.
func (s *Store) VideoFor(chapter int) (video model.VideoChapter, fallback, ok bool) {
	if len(s.videos) == 0 {
		return model.VideoChapter{}, false, false
	}
	for _, v := range s.videos {
		if v.Chapter == chapter {
			return v, false, true
		}
	}
	return s.videos[0], true, true
}

// Meta returns the content pack metadata.
func (s *Store) Meta() model.Meta {
	return s.meta
}

// Promo returns the promotional video reference.
func (s *Store) Promo() model.Promo {
	return s.promo
}

type rawVideo struct {
	Chapter    int                 `json:"chapter"`
	VideoID    string              `json:"videoId"`
	VideoTitle string              `json:"videoTitle"`
	Subtitles  [][]json.RawMessage `json:"subtitles"`
}

func (rv rawVideo) toModel() (model.VideoChapter, error) {
	v := model.VideoChapter{
		Chapter:    rv.Chapter,
		VideoID:    rv.VideoID,
		VideoTitle: rv.VideoTitle,
		Subtitles:  make([]model.Subtitle, 0, len(rv.Subtitles)),
	}
	if v.Chapter < 1 {
		v.Chapter = 1
	}
	for i, triple := range rv.Subtitles {
		if len(triple) != 3 {
			return model.VideoChapter{}, fmt.Errorf("chapter %d subtitle %d: expected [id, start, text], got %d fields", rv.Chapter, i, len(triple))
		}
		var id int
		var start float64
		var text string
		if err := json.Unmarshal(triple[0], &id); err != nil {
			return model.VideoChapter{}, fmt.Errorf("chapter %d subtitle %d id: %w", rv.Chapter, i, err)
		}
		if err := json.Unmarshal(triple[1], &start); err != nil {
			return model.VideoChapter{}, fmt.Errorf("chapter %d subtitle %d start: %w", rv.Chapter, i, err)
		}
		if err := json.Unmarshal(triple[2], &text); err != nil {
			return model.VideoChapter{}, fmt.Errorf("chapter %d subtitle %d text: %w", rv.Chapter, i, err)
		}
		if start < 0 {
			start = 0
		}
		v.Subtitles = append(v.Subtitles, model.Subtitle{ID: id, Start: int(math.Floor(start)), Text: text})
	}
	return v, nil
}

func readJSON(fsys fs.FS, name string, target any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

func readOptionalJSON(fsys fs.FS, name string, target any) error {
	err := readJSON(fsys, name, target)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

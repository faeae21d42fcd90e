// Package wordlist implements the paginated word table with per-cell reveal.
package wordlist

import (
	"fmt"

	"github.com/verte-zerg/tuivoca/internal/gesture"
	"github.com/verte-zerg/tuivoca/internal/model"
	"github.com/verte-zerg/tuivoca/internal/nav"
)

// WordsPerPage is the table page size.
const WordsPerPage = 10

// Mode selects which columns are shown.
type Mode string

// Display modes, in cycle order.
const (
	Both        Mode = "both"
	WordOnly    Mode = "word"
	MeaningOnly Mode = "meaning"
)

// ParseMode validates a stored mode, defaulting to Both.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case WordOnly, MeaningOnly:
		return Mode(s)
	default:
		return Both
	}
}

// Next returns the following mode: both, word, meaning, both.
func (m Mode) Next() Mode {
	switch m {
	case Both:
		return WordOnly
	case WordOnly:
		return MeaningOnly
	default:
		return Both
	}
}

// Label is the mode selector caption.
func (m Mode) Label() string {
	switch m {
	case WordOnly:
		return "Word"
	case MeaningOnly:
		return "Meaning"
	default:
		return "Word + Meaning"
	}
}

// Row is one table line.
type Row struct {
	Index       int
	Entry       model.WordEntry
	ShowWord    bool
	ShowMeaning bool
}

// Prompt asks to cross into another chapter.
type Prompt struct {
	Forward bool
	Target  int
	// Wrap is set when Target wraps from the last to the first chapter or
	// back.
	Wrap bool
}

// Session is the word list state of one chapter.
type Session struct {
	words      []model.WordEntry
	chapter    int
	maxChapter int

	mode     Mode
	page     int
	revealed map[int]bool
	armed    gesture.Direction
	prompt   *Prompt
}

// New returns a session in the given display mode.
func New(mode Mode) *Session {
	return &Session{mode: mode, page: 1, revealed: map[int]bool{}}
}

// SetChapter loads a chapter's words on its first page, or its last page
// when atEnd is true.
func (s *Session) SetChapter(chapter, maxChapter int, words []model.WordEntry, atEnd bool) {
	s.chapter = chapter
	s.maxChapter = maxChapter
	s.words = words
	s.prompt = nil
	s.page = 1
	if atEnd {
		s.page = s.pager().Pages()
	}
	s.clearReveal()
}

func (s *Session) pager() nav.Pager {
	return nav.Pager{Total: len(s.words), PerPage: WordsPerPage}
}

func (s *Session) clearReveal() {
	s.revealed = map[int]bool{}
	s.armed = gesture.None
}

// Chapter returns the loaded chapter.
func (s *Session) Chapter() int {
	return s.chapter
}

// Len returns the number of words in the chapter.
func (s *Session) Len() int {
	return len(s.words)
}

// Mode returns the display mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// CycleMode switches to the next display mode and hides revealed cells.
func (s *Session) CycleMode() Mode {
	s.mode = s.mode.Next()
	s.clearReveal()
	return s.mode
}

// Page returns the current 1-based page.
func (s *Session) Page() int {
	return s.page
}

// Pages returns the page count.
func (s *Session) Pages() int {
	return s.pager().Pages()
}

// PageLabel renders "page / pages".
func (s *Session) PageLabel() string {
	return s.pager().Label(s.page)
}

// Title renders the chapter caption with its word count.
func (s *Session) Title() string {
	return fmt.Sprintf("ch%d. Level %d (%d)", s.chapter, s.chapter, len(s.words))
}

// PageWords returns the words of the current page.
func (s *Session) PageWords() []model.WordEntry {
	return nav.Slice(s.words, WordsPerPage, s.page)
}

// Rows returns the current page with per-cell visibility.
func (s *Session) Rows() []Row {
	start, end := s.pager().Bounds(s.page)
	rows := make([]Row, 0, end-start)
	for i := start; i < end; i++ {
		row := Row{Index: i, Entry: s.words[i], ShowWord: true, ShowMeaning: true}
		switch s.mode {
		case WordOnly:
			row.ShowMeaning = s.revealed[i]
		case MeaningOnly:
			row.ShowWord = s.revealed[i]
		}
		rows = append(rows, row)
	}
	return rows
}

// Toggle flips the hidden half of the row at position i on the page. It has
// no effect in Both mode.
func (s *Session) Toggle(i int) {
	if s.mode == Both {
		return
	}
	start, end := s.pager().Bounds(s.page)
	idx := start + i
	if i < 0 || idx >= end {
		return
	}
	s.revealed[idx] = !s.revealed[idx]
	s.armed = gesture.None
}

// PageRevealed reports whether nothing on the page is hidden.
func (s *Session) PageRevealed() bool {
	if s.mode == Both {
		return true
	}
	start, end := s.pager().Bounds(s.page)
	for i := start; i < end; i++ {
		if !s.revealed[i] {
			return false
		}
	}
	return true
}

func (s *Session) revealPage() {
	start, end := s.pager().Bounds(s.page)
	for i := start; i < end; i++ {
		s.revealed[i] = true
	}
}

// Swipe performs the two-step gesture: in a single-column mode the first
// swipe reveals the hidden half of the page, the next swipe in the same
// direction turns the page.
func (s *Session) Swipe(dir gesture.Direction) *Prompt {
	if dir == gesture.None || s.prompt != nil {
		return s.prompt
	}
	if !s.PageRevealed() && s.armed != dir {
		s.revealPage()
		s.armed = dir
		return nil
	}
	if dir == gesture.Forward {
		return s.NextPage()
	}
	return s.PrevPage()
}

// NextPage turns to the next page, prompting past the last page.
func (s *Session) NextPage() *Prompt {
	if s.prompt != nil {
		return s.prompt
	}
	if s.page < s.pager().Pages() {
		s.page++
		s.clearReveal()
		return nil
	}
	target, wrap := s.chapter+1, false
	if target > s.maxChapter {
		target, wrap = 1, true
	}
	if target == s.chapter {
		s.turnTo(1)
		return nil
	}
	s.prompt = &Prompt{Forward: true, Target: target, Wrap: wrap}
	return s.prompt
}

// PrevPage turns to the previous page, prompting before the first page.
func (s *Session) PrevPage() *Prompt {
	if s.prompt != nil {
		return s.prompt
	}
	if s.page > 1 {
		s.page--
		s.clearReveal()
		return nil
	}
	target, wrap := s.chapter-1, false
	if target < 1 {
		target, wrap = s.maxChapter, true
	}
	if target == s.chapter {
		s.turnTo(s.pager().Pages())
		return nil
	}
	s.prompt = &Prompt{Forward: false, Target: target, Wrap: wrap}
	return s.prompt
}

// turnTo wraps within a single chapter; there is nothing to ask.
func (s *Session) turnTo(page int) {
	if page == s.page {
		return
	}
	s.page = page
	s.clearReveal()
}

// Pending returns the open prompt, or nil.
func (s *Session) Pending() *Prompt {
	return s.prompt
}

// Decline closes the prompt and stays on the current page.
func (s *Session) Decline() {
	s.prompt = nil
	s.armed = gesture.None
}

// Accept closes the prompt and returns the chapter to load and whether to
// open it on its last page.
func (s *Session) Accept() (target int, atEnd bool) {
	if s.prompt == nil {
		return 0, false
	}
	p := *s.prompt
	s.prompt = nil
	return p.Target, !p.Forward
}

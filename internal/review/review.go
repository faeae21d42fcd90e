// Package review implements the strict review session: studied tracking,
// random order and chapter-boundary prompts.
package review

import (
	"fmt"

	"github.com/verte-zerg/tuivoca/internal/model"
)

// Mode is the presentation order of a card.
type Mode string

// Presentation orders.
const (
	WordFirst    Mode = "word-first"
	MeaningFirst Mode = "meaning-first"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case WordFirst, MeaningFirst:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown review mode %q (use %s or %s)", s, WordFirst, MeaningFirst)
	}
}

// Other returns the opposite mode.
func (m Mode) Other() Mode {
	if m == MeaningFirst {
		return WordFirst
	}
	return MeaningFirst
}

// PromptKind tells the view which dialog to show.
type PromptKind int

const (
	// NoPrompt means the move happened without a dialog.
	NoPrompt PromptKind = iota
	// Completion is shown once per pass when every word was studied.
	Completion
	// Boundary is shown when moving past the first or last word.
	Boundary
)

// Prompt is a pending confirmation dialog.
type Prompt struct {
	Kind PromptKind
	// Forward is true past the last word, false before the first.
	Forward bool
	// Target is the adjacent chapter offered, 0 when there is none.
	Target int
}

// Shuffler produces random permutations of [0, n).
type Shuffler interface {
	Permutation(n int) []int
}

// Session is the review state of one chapter.
type Session struct {
	words      []model.WordEntry
	chapter    int
	maxChapter int

	pos      int
	order    []int
	random   bool
	shuffler Shuffler
	mode     Mode
	revealed bool

	studied   map[int]struct{}
	completed bool
	prompt    Prompt
}

// New returns a word-first session in data order.
func New(shuffler Shuffler) *Session {
	return &Session{
		shuffler: shuffler,
		mode:     WordFirst,
		studied:  map[int]struct{}{},
	}
}

// SetChapter loads a chapter and starts a new pass. When atEnd is true the
// session starts on the last word.
func (s *Session) SetChapter(chapter, maxChapter int, words []model.WordEntry, atEnd bool) {
	s.chapter = chapter
	s.maxChapter = maxChapter
	s.words = words
	s.reshuffle()
	s.resetPass()
	if atEnd && len(words) > 0 {
		s.pos = len(words) - 1
	}
}

func (s *Session) resetPass() {
	s.pos = 0
	s.revealed = false
	s.studied = map[int]struct{}{}
	s.completed = false
	s.prompt = Prompt{}
}

func (s *Session) reshuffle() {
	s.order = nil
	if s.random && s.shuffler != nil && len(s.words) > 0 {
		s.order = s.shuffler.Permutation(len(s.words))
	}
}

// Chapter returns the loaded chapter.
func (s *Session) Chapter() int {
	return s.chapter
}

// Len returns the number of words in the chapter.
func (s *Session) Len() int {
	return len(s.words)
}

// Position returns the 0-based traversal position.
func (s *Session) Position() int {
	return s.pos
}

// WordIndex maps the traversal position to an index into the chapter words.
func (s *Session) WordIndex() int {
	if len(s.order) == len(s.words) && s.pos < len(s.order) {
		return s.order[s.pos]
	}
	return s.pos
}

// Order returns the traversal order in use, nil for data order.
func (s *Session) Order() []int {
	return s.order
}

// Current returns the current word; ok is false for an empty chapter.
func (s *Session) Current() (model.WordEntry, bool) {
	if len(s.words) == 0 {
		return model.WordEntry{}, false
	}
	return s.words[s.WordIndex()], true
}

// Mode returns the presentation order.
func (s *Session) Mode() Mode {
	return s.mode
}

// SetMode switches presentation order and starts a new pass.
func (s *Session) SetMode(m Mode) {
	s.mode = m
	s.resetPass()
}

// Random reports whether random order is on.
func (s *Session) Random() bool {
	return s.random
}

// SetRandom turns random order on or off and starts a new pass. Turning it
// on draws a fresh permutation.
func (s *Session) SetRandom(on bool) {
	s.random = on
	s.reshuffle()
	s.resetPass()
}

// ToggleRandom flips random order.
func (s *Session) ToggleRandom() {
	s.SetRandom(!s.random)
}

// Revealed reports whether the hidden half is shown.
func (s *Session) Revealed() bool {
	return s.revealed
}

// Reveal shows the hidden half of the card.
func (s *Session) Reveal() {
	if len(s.words) > 0 {
		s.revealed = true
	}
}

// Studied returns the number of words studied in this pass.
func (s *Session) Studied() int {
	return len(s.studied)
}

// IsStudied reports whether the chapter word at index was studied.
func (s *Session) IsStudied(index int) bool {
	_, ok := s.studied[index]
	return ok
}

// Progress renders "studied / total".
func (s *Session) Progress() string {
	return fmt.Sprintf("%d / %d", len(s.studied), len(s.words))
}

// Pending returns the open prompt, if any.
func (s *Session) Pending() (Prompt, bool) {
	return s.prompt, s.prompt.Kind != NoPrompt
}

// Next marks the current word studied and advances. It returns a prompt
// instead of moving when the pass completes for the first time or when the
// current word is the last one.
func (s *Session) Next() Prompt {
	if len(s.words) == 0 || s.prompt.Kind != NoPrompt {
		return s.prompt
	}
	s.studied[s.WordIndex()] = struct{}{}
	s.revealed = false
	if len(s.studied) >= len(s.words) && !s.completed {
		s.completed = true
		s.prompt = Prompt{Kind: Completion, Forward: true, Target: s.adjacent(1)}
		return s.prompt
	}
	if s.pos >= len(s.words)-1 {
		s.prompt = Prompt{Kind: Boundary, Forward: true, Target: s.adjacent(1)}
		return s.prompt
	}
	s.pos++
	return Prompt{}
}

// Prev moves back one word, prompting at the first word.
func (s *Session) Prev() Prompt {
	if len(s.words) == 0 || s.prompt.Kind != NoPrompt {
		return s.prompt
	}
	s.revealed = false
	if s.pos == 0 {
		s.prompt = Prompt{Kind: Boundary, Forward: false, Target: s.adjacent(-1)}
		return s.prompt
	}
	s.pos--
	return Prompt{}
}

func (s *Session) adjacent(delta int) int {
	next := s.chapter + delta
	if next < 1 || next > s.maxChapter {
		return 0
	}
	return next
}

// Decline closes the prompt. A completion prompt keeps the position; a
// boundary prompt snaps to the last word (after Next) or the first word
// (after Prev).
func (s *Session) Decline() {
	switch {
	case s.prompt.Kind == NoPrompt:
		return
	case s.prompt.Kind == Completion:
		s.prompt = Prompt{}
		return
	case s.prompt.Forward:
		s.pos = len(s.words) - 1
	default:
		s.pos = 0
	}
	if s.pos < 0 {
		s.pos = 0
	}
	s.prompt = Prompt{}
}

// Repeat closes the prompt and starts the chapter over with a new pass.
func (s *Session) Repeat() {
	s.prompt = Prompt{}
	s.reshuffle()
	s.resetPass()
}

// Accept closes the prompt. When the prompt offers an adjacent chapter it
// returns that chapter and whether the view should land on its last word;
// the caller is expected to load it. Without a target the session wraps
// within the chapter.
func (s *Session) Accept() (target int, atEnd bool) {
	p := s.prompt
	if p.Kind == NoPrompt {
		return 0, false
	}
	s.prompt = Prompt{}
	if p.Target != 0 {
		return p.Target, !p.Forward
	}
	if p.Kind == Completion {
		s.Repeat()
		return 0, false
	}
	if p.Forward {
		s.pos = 0
	} else {
		s.pos = len(s.words) - 1
	}
	s.revealed = false
	return 0, false
}

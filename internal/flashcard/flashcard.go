// Package flashcard implements the flip-card session of the home view.
package flashcard

import (
	"time"

	"github.com/verte-zerg/tuivoca/internal/model"
)

// Auto-play interval limits, matching the settings slider.
const (
	MinInterval     = 1000 * time.Millisecond
	MaxInterval     = 10000 * time.Millisecond
	IntervalStep    = 500 * time.Millisecond
	DefaultInterval = 3000 * time.Millisecond
)

// TicksPerPhase is the number of timer ticks a phase lasts. The timer period
// is Interval / TicksPerPhase.
const TicksPerPhase = 2

// Phase is the visible part of the current card.
type Phase int

const (
	// WordOnly shows the word alone.
	WordOnly Phase = iota
	// WordWithDetail shows the word with meanings and example.
	WordWithDetail
)

// Session is the flashcard state of one chapter.
type Session struct {
	words    []model.WordEntry
	index    int
	phase    Phase
	ticks    int
	autoPlay bool
	saved    bool
	settings bool
	sound    bool
	interval time.Duration
}

// New returns a session over words with auto-play and sound on.
func New(words []model.WordEntry) *Session {
	s := &Session{
		autoPlay: true,
		sound:    true,
		interval: DefaultInterval,
	}
	s.SetWords(words)
	return s
}

// SetWords switches to another chapter's words and restarts at the first
// word with the detail hidden.
func (s *Session) SetWords(words []model.WordEntry) {
	s.words = words
	s.index = 0
	s.phase = WordOnly
	s.ticks = 0
}

// Len returns the number of words.
func (s *Session) Len() int {
	return len(s.words)
}

// Index returns the current 0-based word position.
func (s *Session) Index() int {
	return s.index
}

// Current returns the current word; ok is false for an empty chapter.
func (s *Session) Current() (model.WordEntry, bool) {
	if len(s.words) == 0 {
		return model.WordEntry{}, false
	}
	return s.words[s.index], true
}

// Phase returns the visible phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// DetailVisible reports whether meanings and example are shown.
func (s *Session) DetailVisible() bool {
	return s.phase == WordWithDetail
}

// Next moves to the following word, wrapping to the first. It reports
// whether the displayed word changed.
func (s *Session) Next() bool {
	return s.move(1)
}

// Prev moves to the preceding word, wrapping to the last.
func (s *Session) Prev() bool {
	return s.move(-1)
}

func (s *Session) move(delta int) bool {
	n := len(s.words)
	if n == 0 {
		return false
	}
	prev := s.index
	s.index = ((s.index+delta)%n + n) % n
	s.phase = WordOnly
	s.ticks = 0
	return prev != s.index
}

// ToggleDetail flips between the two phases.
func (s *Session) ToggleDetail() {
	if len(s.words) == 0 {
		return
	}
	if s.phase == WordOnly {
		s.phase = WordWithDetail
	} else {
		s.phase = WordOnly
	}
	s.ticks = 0
}

// Tick advances the auto-play cycle by one timer tick. Every TicksPerPhase
// ticks the phase transitions: the detail is revealed, then the next word is
// shown with the detail hidden. It reports whether a new word is showing.
func (s *Session) Tick() bool {
	if !s.Running() {
		return false
	}
	s.ticks++
	if s.ticks < TicksPerPhase {
		return false
	}
	s.ticks = 0
	if s.phase == WordOnly {
		s.phase = WordWithDetail
		return false
	}
	return s.Next()
}

// DwellTicks returns how many ticks of the current phase have elapsed.
func (s *Session) DwellTicks() int {
	return s.ticks
}

// Running reports whether the auto-play timer should be live.
func (s *Session) Running() bool {
	return s.autoPlay && !s.settings && len(s.words) > 0
}

// AutoPlay reports the user's auto-play choice.
func (s *Session) AutoPlay() bool {
	return s.autoPlay
}

// SetAutoPlay turns auto-play on or off.
func (s *Session) SetAutoPlay(on bool) {
	s.autoPlay = on
	s.ticks = 0
}

// ToggleAutoPlay flips auto-play.
func (s *Session) ToggleAutoPlay() {
	s.SetAutoPlay(!s.autoPlay)
}

// SettingsOpen reports whether the settings panel is open.
func (s *Session) SettingsOpen() bool {
	return s.settings
}

// ToggleSettings opens or closes the settings panel. Opening pauses
// auto-play; closing restores the state saved on open.
func (s *Session) ToggleSettings() {
	if !s.settings {
		s.saved = s.autoPlay
		s.autoPlay = false
		s.settings = true
		return
	}
	s.settings = false
	s.autoPlay = s.saved
	s.ticks = 0
}

// Sound reports whether pronunciation is on.
func (s *Session) Sound() bool {
	return s.sound
}

// SetSound turns pronunciation on or off.
func (s *Session) SetSound(on bool) {
	s.sound = on
}

// Interval returns the auto-play time per phase.
func (s *Session) Interval() time.Duration {
	return s.interval
}

// TickPeriod returns the timer period.
func (s *Session) TickPeriod() time.Duration {
	return s.interval / TicksPerPhase
}

// SetInterval sets the time per phase, clamped and rounded to IntervalStep.
func (s *Session) SetInterval(d time.Duration) {
	s.interval = ClampInterval(d)
}

// AdjustInterval changes the interval by steps of IntervalStep.
func (s *Session) AdjustInterval(steps int) {
	s.SetInterval(s.interval + time.Duration(steps)*IntervalStep)
}

// ClampInterval limits d to [MinInterval, MaxInterval] in IntervalStep units.
func ClampInterval(d time.Duration) time.Duration {
	if d < MinInterval {
		return MinInterval
	}
	if d > MaxInterval {
		return MaxInterval
	}
	return d.Round(IntervalStep)
}

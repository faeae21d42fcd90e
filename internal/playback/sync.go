// Package playback keeps the subtitle list in step with the player clock.
package playback

import (
	"fmt"

	"github.com/verte-zerg/tuivoca/internal/model"
	"github.com/verte-zerg/tuivoca/internal/nav"
)

const (
	// Window is the distance in seconds within which a subtitle counts as
	// active.
	Window = 3
	// SubtitlesPerPage is the subtitle list page size.
	SubtitlesPerPage = 10
	// ScrollMargin is the number of lines kept visible around the active
	// entry.
	ScrollMargin = 2
)

// ActiveIndex returns the subtitle highlighted at time t, or -1. Among the
// entries within Window seconds the most recently passed one wins; when none
// has started yet the earliest upcoming one is used.
func ActiveIndex(subs []model.Subtitle, t int) int {
	passed, upcoming := -1, -1
	for i, sub := range subs {
		d := t - sub.Start
		if d < -Window || d > Window {
			continue
		}
		if sub.Start <= t {
			if passed == -1 || sub.Start >= subs[passed].Start {
				passed = i
			}
			continue
		}
		if upcoming == -1 || sub.Start < subs[upcoming].Start {
			upcoming = i
		}
	}
	if passed != -1 {
		return passed
	}
	return upcoming
}

// FormatTime renders seconds as m:ss, or h:mm:ss from one hour on.
func FormatTime(sec int) string {
	if sec < 0 {
		sec = 0
	}
	h, m, s := sec/3600, (sec/60)%60, sec%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// ScrollTarget returns the viewport offset that keeps line visible with
// ScrollMargin lines around it. It returns offset unchanged when the line is
// already comfortably in view.
func ScrollTarget(line, offset, height, total int) int {
	if height <= 0 || line < 0 {
		return offset
	}
	maxOffset := total - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	margin := ScrollMargin
	if 2*margin >= height {
		margin = (height - 1) / 2
	}
	target := offset
	if line-margin < offset {
		target = line - margin
	} else if line+margin >= offset+height {
		target = line + margin - height + 1
	}
	if target < 0 {
		target = 0
	}
	if target > maxOffset {
		target = maxOffset
	}
	return target
}

// Sync is the playback state of one chapter's subtitles.
type Sync struct {
	subs    []model.Subtitle
	time    int
	playing bool
	active  int
	page    int
}

// New returns a Sync at time 0 on the first page.
func New(subs []model.Subtitle) *Sync {
	s := &Sync{}
	s.Reset(subs)
	return s
}

// Reset loads another chapter's subtitles and rewinds to the start.
func (s *Sync) Reset(subs []model.Subtitle) {
	s.subs = subs
	s.time = 0
	s.playing = false
	s.page = 1
	s.active = ActiveIndex(subs, 0)
}

func (s *Sync) pager() nav.Pager {
	return nav.Pager{Total: len(s.subs), PerPage: SubtitlesPerPage}
}

// Subtitles returns every subtitle of the chapter.
func (s *Sync) Subtitles() []model.Subtitle {
	return s.subs
}

// Time returns the last reported player time in seconds.
func (s *Sync) Time() int {
	return s.time
}

// Playing reports whether the player was last seen playing.
func (s *Sync) Playing() bool {
	return s.playing
}

// SetPlaying records a play or pause notification.
func (s *Sync) SetPlaying(on bool) {
	s.playing = on
	if on {
		s.follow()
	}
}

// Active returns the highlighted subtitle index, or -1.
func (s *Sync) Active() int {
	return s.active
}

// SetTime records the player time. It returns true when the highlighted
// entry changed.
func (s *Sync) SetTime(sec int) bool {
	if sec < 0 {
		sec = 0
	}
	s.time = sec
	prev := s.active
	s.active = ActiveIndex(s.subs, sec)
	if s.playing && s.active != prev {
		s.follow()
	}
	return s.active != prev
}

func (s *Sync) follow() {
	if s.active >= 0 {
		s.page = s.pager().PageOf(s.active)
	}
}

// Page returns the current 1-based subtitle page.
func (s *Sync) Page() int {
	return s.page
}

// Pages returns the subtitle page count.
func (s *Sync) Pages() int {
	return s.pager().Pages()
}

// PageLabel renders "page / pages".
func (s *Sync) PageLabel() string {
	return s.pager().Label(s.page)
}

// PageStart returns the index of the first subtitle on the current page.
func (s *Sync) PageStart() int {
	start, _ := s.pager().Bounds(s.page)
	return start
}

// PageItems returns the subtitles of the current page.
func (s *Sync) PageItems() []model.Subtitle {
	return nav.Slice(s.subs, SubtitlesPerPage, s.page)
}

// NextPage turns the subtitle page forward, stopping at the last page.
func (s *Sync) NextPage() {
	s.page = s.pager().Clamp(s.page + 1)
}

// PrevPage turns the subtitle page back, stopping at the first page.
func (s *Sync) PrevPage() {
	s.page = s.pager().Clamp(s.page - 1)
}

// Select jumps to the subtitle at index i and returns the time to seek to.
// The caller resumes playback.
func (s *Sync) Select(i int) (int, bool) {
	if i < 0 || i >= len(s.subs) {
		return 0, false
	}
	start := s.subs[i].Start
	s.time = start
	s.active = ActiveIndex(s.subs, start)
	s.page = s.pager().PageOf(i)
	return start, true
}

package nav

// View identifies one of the shell tabs.
type View int

// Shell views, in tab order.
const (
	ViewHome View = iota
	ViewWordList
	ViewReview
	ViewStudy
	ViewAbout
)

// Views lists every view in tab order.
var Views = []View{ViewHome, ViewWordList, ViewReview, ViewStudy, ViewAbout}

// Title returns the header title of v.
func (v View) Title() string {
	switch v {
	case ViewHome:
		return "Home"
	case ViewWordList:
		return "Word List"
	case ViewReview:
		return "Review"
	case ViewStudy:
		return "Study"
	case ViewAbout:
		return "About"
	default:
		return ""
	}
}

// State is the selected chapter and active view. Chapter always stays in
// [1, MaxChapter].
type State struct {
	chapter    int
	maxChapter int
	view       View
}

// NewState starts at chapter, clamped to [1, maxChapter].
func NewState(chapter, maxChapter int) State {
	if maxChapter < 1 {
		maxChapter = 1
	}
	s := State{maxChapter: maxChapter, view: ViewHome}
	s.chapter = s.clamp(chapter)
	return s
}

func (s State) clamp(chapter int) int {
	if chapter < 1 {
		return 1
	}
	if chapter > s.maxChapter {
		return s.maxChapter
	}
	return chapter
}

// Chapter returns the selected chapter.
func (s State) Chapter() int {
	return s.chapter
}

// MaxChapter returns the highest selectable chapter.
func (s State) MaxChapter() int {
	return s.maxChapter
}

// View returns the active view.
func (s State) View() View {
	return s.view
}

// WithChapter returns s with the chapter set, clamped, and whether it changed.
func (s State) WithChapter(chapter int) (State, bool) {
	next := s.clamp(chapter)
	changed := next != s.chapter
	s.chapter = next
	return s, changed
}

// WithView returns s with the active view set.
func (s State) WithView(v View) State {
	if v < ViewHome || v > ViewAbout {
		return s
	}
	s.view = v
	return s
}

// CycleView moves the active view by delta tabs, wrapping around.
func (s State) CycleView(delta int) State {
	n := len(Views)
	next := (int(s.view) + delta) % n
	if next < 0 {
		next += n
	}
	s.view = View(next)
	return s
}

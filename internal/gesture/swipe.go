// Package gesture turns pointer drags into swipe directions.
package gesture

// DefaultThreshold is the minimum travel, in pointer units, of a swipe.
const DefaultThreshold = 50

// Direction is the outcome of a drag.
type Direction int

const (
	// None means the drag was too short or mostly vertical.
	None Direction = iota
	// Forward is a right-to-left swipe: next item.
	Forward
	// Backward is a left-to-right swipe: previous item.
	Backward
)

// Classify maps a drag from (x0, y0) to (x1, y1) to a direction. Horizontal
// travel must exceed threshold; vertical travel beyond threshold cancels the
// swipe.
func Classify(x0, y0, x1, y1, threshold int) Direction {
	dx := x0 - x1
	dy := y0 - y1
	if dy < 0 {
		dy = -dy
	}
	if dy > threshold {
		return None
	}
	switch {
	case dx > threshold:
		return Forward
	case -dx > threshold:
		return Backward
	default:
		return None
	}
}

// Tracker follows one drag at a time.
type Tracker struct {
	Threshold int

	active bool
	x0, y0 int
	x1, y1 int
}

// NewTracker returns a tracker with the given threshold, or
// DefaultThreshold when threshold is not positive.
func NewTracker(threshold int) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Tracker{Threshold: threshold}
}

// Start begins a drag.
func (t *Tracker) Start(x, y int) {
	t.active = true
	t.x0, t.y0 = x, y
	t.x1, t.y1 = x, y
}

// Move records the latest pointer position.
func (t *Tracker) Move(x, y int) {
	if !t.active {
		return
	}
	t.x1, t.y1 = x, y
}

// End finishes the drag at (x, y) and classifies it.
func (t *Tracker) End(x, y int) Direction {
	if !t.active {
		return None
	}
	t.Move(x, y)
	t.active = false
	return Classify(t.x0, t.y0, t.x1, t.y1, t.Threshold)
}

// Active reports whether a drag is in progress.
func (t *Tracker) Active() bool {
	return t.active
}

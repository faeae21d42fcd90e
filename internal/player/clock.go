package player

import (
	"context"
	"sync"
	"time"
)

// Clock is a player that only keeps time. It stands in for a real player
// when none is available, so subtitles still advance.
type Clock struct {
	mu       sync.Mutex
	now      func() time.Time
	period   time.Duration
	duration int

	playing bool
	base    time.Duration
	since   time.Time

	events chan Event
	ctx    context.Context
	cancel context.CancelFunc
	stop   context.CancelFunc
	wg     sync.WaitGroup
	closed bool

	// sendMu guards events against close while a caller is still sending.
	sendMu sync.RWMutex
	done   bool
}

// ClockOption configures a Clock.
type ClockOption func(*Clock)

// WithNow replaces the wall clock.
func WithNow(now func() time.Time) ClockOption {
	return func(c *Clock) { c.now = now }
}

// WithPeriod sets how often Time events are emitted while playing.
func WithPeriod(d time.Duration) ClockOption {
	return func(c *Clock) {
		if d > 0 {
			c.period = d
		}
	}
}

// WithDuration makes the clock end at the given second; zero never ends.
func WithDuration(seconds int) ClockOption {
	return func(c *Clock) { c.duration = seconds }
}

// NewClock returns a stopped clock.
func NewClock(opts ...ClockOption) *Clock {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Clock{
		now:    time.Now,
		period: 250 * time.Millisecond,
		events: make(chan Event, eventBuffer),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Events returns the notification stream.
func (c *Clock) Events() <-chan Event {
	return c.events
}

// Load rewinds to zero and reports ready.
func (c *Clock) Load(_ context.Context, _ string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.stopTicker()
	c.playing = false
	c.base = 0
	c.mu.Unlock()
	c.send(Event{Kind: Ready})
	return nil
}

// Play starts the clock.
func (c *Clock) Play(_ context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.playing {
		c.mu.Unlock()
		return nil
	}
	c.playing = true
	c.since = c.now()
	c.startTicker()
	c.mu.Unlock()
	c.send(Event{Kind: Playing})
	return nil
}

// Pause stops the clock at its current position.
func (c *Clock) Pause(_ context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if !c.playing {
		c.mu.Unlock()
		return nil
	}
	c.base = c.elapsed()
	c.playing = false
	c.stopTicker()
	c.mu.Unlock()
	c.send(Event{Kind: Paused})
	return nil
}

// Seek moves the position.
func (c *Clock) Seek(_ context.Context, seconds int) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if seconds < 0 {
		seconds = 0
	}
	c.base = time.Duration(seconds) * time.Second
	c.since = c.now()
	c.mu.Unlock()
	c.send(Event{Kind: Time, Seconds: seconds})
	return nil
}

// CurrentTime returns the position in whole seconds.
func (c *Clock) CurrentTime(_ context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrClosed
	}
	return c.seconds(), nil
}

// Close stops the clock and closes the event stream.
func (c *Clock) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.stopTicker()
	c.mu.Unlock()
	c.cancel()
	c.wg.Wait()
	c.sendMu.Lock()
	c.done = true
	close(c.events)
	c.sendMu.Unlock()
	return nil
}

func (c *Clock) send(ev Event) {
	c.sendMu.RLock()
	defer c.sendMu.RUnlock()
	if c.done {
		return
	}
	emit(c.ctx, c.events, ev)
}

func (c *Clock) elapsed() time.Duration {
	if !c.playing {
		return c.base
	}
	return c.base + c.now().Sub(c.since)
}

func (c *Clock) seconds() int {
	sec := int(c.elapsed() / time.Second)
	if c.duration > 0 && sec > c.duration {
		sec = c.duration
	}
	return sec
}

// startTicker must be called with mu held.
func (c *Clock) startTicker() {
	ctx, stop := context.WithCancel(c.ctx)
	c.stop = stop
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.period)
		defer ticker.Stop()
		last := -1
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if c.step(ctx, &last) {
				return
			}
		}
	}()
}

// step emits the current position and reports whether playback ended.
func (c *Clock) step(ctx context.Context, last *int) bool {
	c.mu.Lock()
	if !c.playing || ctx.Err() != nil {
		c.mu.Unlock()
		return true
	}
	sec := c.seconds()
	ended := c.duration > 0 && sec >= c.duration
	if ended {
		c.base = time.Duration(c.duration) * time.Second
		c.playing = false
		c.stopTicker()
	}
	c.mu.Unlock()

	if sec != *last {
		*last = sec
		c.send(Event{Kind: Time, Seconds: sec})
	}
	if ended {
		c.send(Event{Kind: Ended})
	}
	return ended
}

// stopTicker must be called with mu held.
func (c *Clock) stopTicker() {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}

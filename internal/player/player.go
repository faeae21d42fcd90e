// Package player drives the video player behind the playback view.
package player

import (
	"context"
	"errors"
	"fmt"
)

// ErrClosed is returned by calls on a closed player.
var ErrClosed = errors.New("player closed")

// Kind is the type of a player notification.
type Kind int

const (
	Ready Kind = iota
	Playing
	Paused
	Ended
	Time
)

func (k Kind) String() string {
	switch k {
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	case Time:
		return "time"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is a player notification. Seconds is the playback position for Time
// events.
type Event struct {
	Kind    Kind
	Seconds int
}

// Player is an embedded video player.
type Player interface {
	Load(ctx context.Context, videoID string) error
	Seek(ctx context.Context, seconds int) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	CurrentTime(ctx context.Context) (int, error)
	// Events is closed when the player is closed.
	Events() <-chan Event
	Close() error
}

// WatchURL returns the web address of a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

const eventBuffer = 64

// emit delivers ev without blocking; position updates are dropped when the
// consumer lags, state changes wait for room.
func emit(ctx context.Context, ch chan<- Event, ev Event) {
	if ev.Kind == Time {
		select {
		case ch <- ev:
		default:
		}
		return
	}
	select {
	case ch <- ev:
	case <-ctx.Done():
	}
}

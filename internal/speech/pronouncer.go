package speech

import (
	"context"
	"log"
	"strings"
	"sync"
)

// Pronouncer speaks one utterance at a time in the background. A new
// request interrupts the previous one; repeating the text that is still
// being spoken is ignored.
type Pronouncer struct {
	backend Backend
	onErr   func(error)

	mu      sync.Mutex
	current string
	cancel  context.CancelFunc
	done    chan struct{}
	closed  bool
}

// NewPronouncer wraps backend. Failures go to onErr, or the standard logger
// when onErr is nil. A nil backend makes every Say a no-op.
func NewPronouncer(backend Backend, onErr func(error)) *Pronouncer {
	if onErr == nil {
		onErr = func(err error) { log.Printf("speech: %v", err) }
	}
	return &Pronouncer{backend: backend, onErr: onErr}
}

// Available reports whether a backend is configured.
func (p *Pronouncer) Available() bool {
	return p != nil && p.backend != nil
}

// Say starts speaking req and returns immediately. It reports whether a new
// utterance was started.
func (p *Pronouncer) Say(req Request) bool {
	if !p.Available() || strings.TrimSpace(req.Text) == "" {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	if p.done != nil && p.current == req.Text {
		select {
		case <-p.done:
		default:
			return false
		}
	}
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	prev, done := p.done, make(chan struct{})
	p.current, p.cancel, p.done = req.Text, cancel, done

	go func() {
		defer close(done)
		defer cancel()
		if prev != nil {
			<-prev
		}
		if ctx.Err() != nil {
			return
		}
		if err := p.backend.Speak(ctx, req); err != nil && ctx.Err() == nil {
			p.onErr(err)
		}
	}()
	return true
}

// Stop interrupts the current utterance.
func (p *Pronouncer) Stop() {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()
}

// Wait blocks until the last started utterance is over.
func (p *Pronouncer) Wait() {
	if p == nil {
		return
	}
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Close stops speaking and rejects further requests.
func (p *Pronouncer) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.Stop()
	p.Wait()
}

package state

import (
	"sync"
	"time"
)

// Preloader gates the startup loading screen behind a one-shot timer.
type Preloader struct {
	mu      sync.Mutex
	loading bool
	stopped bool
	timer   *time.Timer
}

// NewPreloader starts the timer. A non-positive delay skips loading entirely.
func NewPreloader(delay time.Duration) *Preloader {
	p := &Preloader{}
	if delay > 0 {
		p.loading = true
		p.timer = time.AfterFunc(delay, p.finish)
	}
	return p
}

func (p *Preloader) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.loading = false
}

func (p *Preloader) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Stop cancels a pending timer. After Stop the loading flag never changes.
func (p *Preloader) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	if p.timer != nil {
		p.timer.Stop()
	}
}

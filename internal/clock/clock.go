// Package clock abstracts the frame delays so effects can run against a
// virtual timeline in tests and headless captures.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	// Wait blocks the calling goroutine for d.
	Wait(d time.Duration)
}

// Sleep is the wall clock.
type Sleep struct{}

func (Sleep) Wait(d time.Duration) { time.Sleep(d) }

// Virtual advances instantly and records the total time waited.
type Virtual struct {
	mu    sync.Mutex
	now   time.Duration
	waits int
}

func (v *Virtual) Wait(d time.Duration) {
	v.mu.Lock()
	v.now += d
	v.waits++
	v.mu.Unlock()
}

// Now returns the virtual time elapsed so far.
func (v *Virtual) Now() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

func (v *Virtual) Waits() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.waits
}

package mock

import (
	"sync"
	"time"
)

// Time is a clock that can be moved to an arbitrary instant and keeps ticking from there.
type Time struct {
	mu     sync.Mutex
	base   time.Time
	setAt  time.Time
	pinned bool
}

// NewTime creates a clock that follows the wall clock.
func NewTime() *Time {
	return &Time{}
}

// SetCurrentTime moves the clock to current.
func (t *Time) SetCurrentTime(current time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.base = current.UTC()
	t.setAt = time.Now()
	t.pinned = true
}

// Reset returns the clock to the wall clock.
func (t *Time) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pinned = false
}

// Now returns the simulated current time.
func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.pinned {
		return time.Now().UTC()
	}
	return t.base.Add(time.Since(t.setAt))
}

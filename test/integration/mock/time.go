package mock

import (
	"sync"
	"time"
)

// Time is a settable clock for tests. It satisfies the insight Clock interface.
type Time struct {
	mu      sync.Mutex
	current time.Time
}

// NewTime creates a clock pinned to the real current time.
func NewTime() *Time {
	return &Time{current: time.Now().UTC()}
}

// SetCurrentTime pins the clock to the given instant.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = currentTime
}

// Now returns the pinned instant.
func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

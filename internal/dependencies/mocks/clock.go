package mocks

import (
	"time"

	"github.com/hurlingham/leaguesync/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing.
// After fires immediately regardless of the requested duration, so
// debounce windows collapse to zero in tests; the requested durations
// are recorded for assertions.
type MockClock struct {
	CurrentTime    time.Time
	AfterDurations []time.Duration
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// After records the duration and returns an already-fired channel
func (c *MockClock) After(d time.Duration) <-chan time.Time {
	c.AfterDurations = append(c.AfterDurations, d)
	ch := make(chan time.Time, 1)
	ch <- c.CurrentTime.Add(d)
	return ch
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Set sets the clock to the given time
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}

package clock

import "time"

// Clock is the time source used by services, swappable in tests
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock
type RealClock struct{}

// New returns a wall-clock backed Clock
func New() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

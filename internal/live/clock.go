// Package live schedules incrementally-typed text onto a shared audio clock
// for gapless playback.
package live

import "time"

// Clock is a monotonically advancing audio clock measured in seconds.
type Clock interface {
	Now() float64
}

// Output accepts sample buffers scheduled to start at an absolute time on
// the clock the scheduler was built with.
type Output interface {
	ScheduleAt(samples []float32, start float64)
}

// SystemClock implements Clock over the process monotonic clock, starting
// at zero when created.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a clock anchored at the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

package utils

import "time"

// Timer measures wall-clock time from its creation (or last [Timer.Start])
// to [Timer.Stop].
type Timer struct {
	startTime time.Time
	duration  time.Duration
}

// NewTimer returns a running Timer.
func NewTimer() *Timer {
	return &Timer{startTime: time.Now()}
}

// Start restarts the measurement.
func (t *Timer) Start() {
	t.startTime = time.Now()
}

// Stop records and returns the time elapsed since the last start.
func (t *Timer) Stop() time.Duration {
	t.duration = time.Since(t.startTime)
	return t.duration
}

// GetDuration returns the duration captured by the most recent Stop, or zero.
func (t *Timer) GetDuration() time.Duration {
	return t.duration
}

// Milliseconds returns the captured duration as fractional milliseconds,
// the unit used by the extraction latency histogram.
func (t *Timer) Milliseconds() float64 {
	return float64(t.duration) / float64(time.Millisecond)
}

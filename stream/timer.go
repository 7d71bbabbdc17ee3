package stream

import "time"

// Timer measures time since it was last restarted.
type Timer struct {
	lastReset time.Time
}

// NewTimer creates a Timer started at now.
func NewTimer(now time.Time) Timer {
	return Timer{lastReset: now}
}

// Elapsed returns the time passed since the last restart.
func (t *Timer) Elapsed(now time.Time) time.Duration {
	return now.Sub(t.lastReset)
}

// Restart resets the timer to now.
func (t *Timer) Restart(now time.Time) {
	t.lastReset = now
}

// Fired reports whether more than period has elapsed, restarting the timer if
// so. Ticks missed while the caller was busy are dropped, not replayed.
func (t *Timer) Fired(now time.Time, period time.Duration) bool {
	if t.Elapsed(now) <= period {
		return false
	}
	t.Restart(now)
	return true
}

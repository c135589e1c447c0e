package clock

import "time"

// Clock is the time source of the simulation. Readings from System carry
// Go's monotonic clock, so Sub between them ignores wall-clock jumps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System is the process clock.
var System Clock = systemClock{}

// Manual is a clock that only moves when told to. Used by tests and by
// headless replays.
type Manual struct {
	now time.Time
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time { return m.now }

func (m *Manual) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}

// Timer measures time since the last Reset, excluding time spent paused.
// Resume shifts the start forward by the paused span instead of restarting,
// so pausing never changes the remaining time to the next tick.
type Timer struct {
	clock    Clock
	start    time.Time
	pausedAt time.Time
	paused   bool
}

func NewTimer(c Clock) *Timer {
	t := &Timer{clock: c}
	t.Reset()
	return t
}

// Reset restarts the measurement from now and clears the paused state.
func (t *Timer) Reset() {
	t.start = t.clock.Now()
	t.pausedAt = t.start
	t.paused = false
}

func (t *Timer) Pause() {
	if t.paused {
		return
	}
	t.pausedAt = t.clock.Now()
	t.paused = true
}

func (t *Timer) Resume() {
	if !t.paused {
		return
	}
	t.start = t.start.Add(t.clock.Now().Sub(t.pausedAt))
	t.paused = false
}

func (t *Timer) Paused() bool {
	return t.paused
}

// Elapsed is frozen while paused.
func (t *Timer) Elapsed() time.Duration {
	if t.paused {
		return t.pausedAt.Sub(t.start)
	}
	return t.clock.Now().Sub(t.start)
}

package drill

import "time"

// Clock abstracts timer creation so playback tests run on a manual
// clock instead of wall time.
type Clock interface {
	NewTimer(d time.Duration) Timer
}

// Timer is the subset of time.Timer the player needs.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// SystemClock returns the wall-time clock.
func SystemClock() Clock { return systemClock{} }

type systemClock struct{}

func (systemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{t: time.NewTimer(d)}
}

type systemTimer struct{ t *time.Timer }

func (s systemTimer) C() <-chan time.Time { return s.t.C }
func (s systemTimer) Stop() bool          { return s.t.Stop() }

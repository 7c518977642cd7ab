package speech

import (
	"math"
	"time"
)

// Playback rate policy. Short command intervals get faster speech so a
// cue never bleeds into the next command.
const (
	// BaseRate is the automatic rate at intervals of one second or more.
	BaseRate = 2.0
	// RateStep is added per full 0.1s the interval falls below 1s.
	RateStep = 0.3
	// MinRate and MaxRate clamp both automatic and manual rates.
	MinRate = 0.5
	MaxRate = 10.0
)

// PlaybackRate selects the speech rate multiplier for a cue. Manual
// mode returns the operator's value; automatic mode scales with how
// far the interval falls below one second. Both modes clamp to
// [MinRate, MaxRate].
func PlaybackRate(interval time.Duration, manual bool, manualRate float64) float64 {
	rate := manualRate
	if !manual {
		rate = BaseRate
		if secs := interval.Seconds(); secs < 1.0 {
			// The epsilon keeps 0.9s at exactly one full step despite
			// float subtraction error.
			steps := math.Floor((1.0-secs)*10 + 1e-9)
			rate += RateStep * steps
		}
	}
	return math.Min(MaxRate, math.Max(MinRate, rate))
}

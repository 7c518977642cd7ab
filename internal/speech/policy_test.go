package speech

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlaybackRate(t *testing.T) {
	tests := []struct {
		name       string
		interval   time.Duration
		manual     bool
		manualRate float64
		want       float64
	}{
		{name: "one second baseline", interval: time.Second, want: 2.0},
		{name: "700ms gains three steps", interval: 700 * time.Millisecond, want: 2.9},
		{name: "above one second stays at base", interval: 1500 * time.Millisecond, want: 2.0},
		{name: "900ms gains exactly one step", interval: 900 * time.Millisecond, want: 2.3},
		{name: "950ms is not a full step", interval: 950 * time.Millisecond, want: 2.0},
		{name: "300ms gains seven steps", interval: 300 * time.Millisecond, want: 4.1},
		{name: "manual value wins", interval: 700 * time.Millisecond, manual: true, manualRate: 1.5, want: 1.5},
		{name: "manual clamps low", interval: time.Second, manual: true, manualRate: 0.1, want: 0.5},
		{name: "manual clamps high", interval: time.Second, manual: true, manualRate: 50, want: 10.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlaybackRate(tt.interval, tt.manual, tt.manualRate)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPlaybackRate_NeverOutsideClamp(t *testing.T) {
	for interval := time.Duration(0); interval <= 3*time.Second; interval += 37 * time.Millisecond {
		got := PlaybackRate(interval, false, 0)
		assert.GreaterOrEqual(t, got, MinRate, "interval %v", interval)
		assert.LessOrEqual(t, got, MaxRate, "interval %v", interval)
	}
}

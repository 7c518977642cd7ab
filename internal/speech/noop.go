package speech

import (
	"context"
	"time"

	"github.com/zerodrill/zerodrill/internal/drill"
)

// Noop returns a synthesizer that does nothing. It keeps the cue path
// wired when audio is unavailable or muted.
func Noop() Synthesizer { return noop{} }

type noop struct{}

func (noop) Preload(context.Context, []int) error { return nil }

func (noop) Speak(drill.Command, time.Duration) error { return nil }

func (noop) Stop() {}

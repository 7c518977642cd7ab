package speech

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zerodrill/zerodrill/internal/drill"
)

// Beeper plays the embedded beep for every cue when no speech engine
// is installed. The operator still gets command-start timing; the
// direction has to be read off the screen.
type Beeper struct {
	out  *playback
	once sync.Once
	path string
	err  error
}

// NewBeeper returns a beep-only synthesizer on the given output.
func NewBeeper(out *playback) *Beeper {
	return &Beeper{out: out}
}

// Preload extracts the embedded WAV so Speak only shells out.
func (b *Beeper) Preload(context.Context, []int) error {
	return b.prepare()
}

// Speak plays the beep regardless of the command content.
func (b *Beeper) Speak(drill.Command, time.Duration) error {
	if err := b.prepare(); err != nil {
		return err
	}
	return b.out.play(b.path)
}

// Stop halts an in-flight beep.
func (b *Beeper) Stop() { b.out.stop() }

func (b *Beeper) prepare() error {
	b.once.Do(func() {
		path := filepath.Join(os.TempDir(), "zerodrill-beep.wav")
		if err := os.WriteFile(path, beepWAV, 0600); err != nil {
			b.err = err
			return
		}
		b.path = path
	})
	return b.err
}

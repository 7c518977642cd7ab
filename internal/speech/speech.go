// Package speech voices drill commands through a host text-to-speech
// engine, with graceful degradation to a beep cue or to silence when
// the host lacks audio tooling. Playback never blocks the drill
// simulation.
package speech

import (
	"context"
	"time"

	"github.com/zerodrill/zerodrill/internal/drill"
	"github.com/zerodrill/zerodrill/internal/log"
)

// Synthesizer is the capability interface for audible command cues.
// It is a superset of drill.CueSpeaker, so any Synthesizer plugs
// straight into the player.
type Synthesizer interface {
	// Preload renders every direction and click value combination
	// before a run starts, so cue dispatch has no synthesis latency.
	Preload(ctx context.Context, clickValues []int) error
	// Speak voices cmd, cancelling any cue still playing.
	Speak(cmd drill.Command, interval time.Duration) error
	// Stop halts the in-flight cue. Safe to call repeatedly.
	Stop()
}

// Options fixes the cue parameters for one run.
type Options struct {
	// Interval is the run's command interval, used to pick the
	// automatic playback rate at preload time.
	Interval time.Duration
	// ManualRate switches rate selection to the operator's value.
	ManualRate bool
	// Rate is the operator's rate multiplier when ManualRate is set.
	Rate float64
	// CacheDir receives synthesized WAV files. Empty uses a temp dir.
	CacheDir string
}

// New returns the best synthesizer the host supports: the TTS-backed
// service, the embedded beep when only an audio player exists, or the
// silent no-op. The drill runs identically in every case.
func New(opts Options) Synthesizer {
	out, err := detectPlayback()
	if err != nil {
		log.Warn(log.CatSpeech, "no audio player found, cues are silent")
		return Noop()
	}
	engine, err := DetectEngine()
	if err != nil {
		log.Warn(log.CatSpeech, "no speech engine found, using beep cues")
		return NewBeeper(out)
	}
	svc, err := NewService(engine, out, opts)
	if err != nil {
		log.ErrorErr(log.CatSpeech, "speech service unavailable, using beep cues", err)
		return NewBeeper(out)
	}
	log.Info(log.CatSpeech, "speech cues enabled", "engine", engine.Name())
	return svc
}

package speech

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zerodrill/zerodrill/internal/drill"
	"github.com/zerodrill/zerodrill/internal/log"
)

const (
	cueTTL   = 30 * time.Minute
	cueSweep = 10 * time.Minute
	// synthesisBudget bounds a lazy synthesis during Speak so a hung
	// engine cannot stall cue dispatch indefinitely.
	synthesisBudget = 2 * time.Second
)

// Service synthesizes spoken cues through a host TTS engine and plays
// them from a WAV cache keyed by direction, click value, and rate.
type Service struct {
	engine Engine
	out    *playback
	opts   Options
	dir    string
	cues   *gocache.Cache
}

// NewService builds a cue service writing WAV files under the options'
// cache dir, or a fresh temp dir when none is set.
func NewService(engine Engine, out *playback, opts Options) (*Service, error) {
	dir := opts.CacheDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "zerodrill-cues-")
		if err != nil {
			return nil, fmt.Errorf("creating cue dir: %w", err)
		}
		dir = tmp
	} else if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating cue dir: %w", err)
	}

	cues := gocache.New(cueTTL, cueSweep)
	cues.OnEvicted(func(_ string, v interface{}) {
		if path, ok := v.(string); ok {
			os.Remove(path)
		}
	})

	return &Service{engine: engine, out: out, opts: opts, dir: dir, cues: cues}, nil
}

// Preload renders every direction and click value cue at the run's
// rate. Files left by earlier runs are reused without re-synthesis.
func (s *Service) Preload(ctx context.Context, clickValues []int) error {
	rate := PlaybackRate(s.opts.Interval, s.opts.ManualRate, s.opts.Rate)
	dirs := []drill.Direction{drill.Up, drill.Down, drill.Left, drill.Right}
	for _, v := range clickValues {
		for _, d := range dirs {
			cmd := drill.Command{Direction: d, Clicks: v}
			if _, err := s.ensure(ctx, cmd, rate); err != nil {
				return fmt.Errorf("preloading %q: %w", cmd.Words(), err)
			}
		}
	}
	log.Debug(log.CatSpeech, "cues preloaded",
		"values", len(clickValues), "rate", rate, "dir", s.dir)
	return nil
}

// Speak plays the cue for cmd, synthesizing on the fly if the preload
// missed it. Any cue still playing is cancelled first.
func (s *Service) Speak(cmd drill.Command, interval time.Duration) error {
	rate := PlaybackRate(interval, s.opts.ManualRate, s.opts.Rate)
	ctx, cancel := context.WithTimeout(context.Background(), synthesisBudget)
	defer cancel()

	path, err := s.ensure(ctx, cmd, rate)
	if err != nil {
		return err
	}
	return s.out.play(path)
}

// Stop halts the in-flight cue.
func (s *Service) Stop() { s.out.stop() }

// ensure returns the WAV path for cmd at rate, synthesizing it on a
// cache miss. A file already on disk is adopted without synthesis.
func (s *Service) ensure(ctx context.Context, cmd drill.Command, rate float64) (string, error) {
	key := cueKey(cmd, rate)
	if v, ok := s.cues.Get(key); ok {
		return v.(string), nil
	}

	path := filepath.Join(s.dir, key+".wav")
	if _, err := os.Stat(path); err == nil {
		s.cues.SetDefault(key, path)
		return path, nil
	}

	if err := s.engine.Synthesize(ctx, cmd.Words(), rate, path); err != nil {
		return "", err
	}
	s.cues.SetDefault(key, path)
	return path, nil
}

func cueKey(cmd drill.Command, rate float64) string {
	return fmt.Sprintf("%s-%d-r%03d", cmd.Direction.Word(), cmd.Clicks, int(math.Round(rate*100)))
}

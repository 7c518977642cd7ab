package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerodrill/zerodrill/internal/drill"
)

type fakeEngine struct {
	mu    sync.Mutex
	texts []string
	rates []float64
	fail  bool
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Synthesize(_ context.Context, text string, rate float64, outPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("synthesis failed")
	}
	f.texts = append(f.texts, text)
	f.rates = append(f.rates, rate)
	return os.WriteFile(outPath, []byte("RIFF"), 0600)
}

func (f *fakeEngine) synthCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.texts)
}

// silentOutput plays through /bin/true so no audio hardware is needed.
func silentOutput() *playback {
	return &playback{bin: "true", args: func(string) []string { return nil }}
}

func newTestService(t *testing.T, engine Engine, opts Options) *Service {
	t.Helper()
	if opts.CacheDir == "" {
		opts.CacheDir = t.TempDir()
	}
	svc, err := NewService(engine, silentOutput(), opts)
	require.NoError(t, err)
	return svc
}

func TestService_PreloadRendersEveryCue(t *testing.T) {
	engine := &fakeEngine{}
	svc := newTestService(t, engine, Options{Interval: time.Second})

	require.NoError(t, svc.Preload(context.Background(), []int{1, 5}))

	// Two click values across four directions.
	assert.Equal(t, 8, engine.synthCount())
	for _, rate := range engine.rates {
		assert.InDelta(t, 2.0, rate, 1e-9, "one second interval preloads at the base rate")
	}

	entries, err := os.ReadDir(svc.dir)
	require.NoError(t, err)
	assert.Len(t, entries, 8)
}

func TestService_PreloadReusesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	engine := &fakeEngine{}
	svc := newTestService(t, engine, Options{Interval: time.Second, CacheDir: dir})
	require.NoError(t, svc.Preload(context.Background(), []int{3}))
	require.Equal(t, 4, engine.synthCount())

	// A fresh service over the same dir adopts the files on disk.
	engine2 := &fakeEngine{}
	svc2 := newTestService(t, engine2, Options{Interval: time.Second, CacheDir: dir})
	require.NoError(t, svc2.Preload(context.Background(), []int{3}))
	assert.Zero(t, engine2.synthCount(), "files on disk should be adopted, not re-synthesized")
}

func TestService_SpeakHitsPreloadedCache(t *testing.T) {
	engine := &fakeEngine{}
	svc := newTestService(t, engine, Options{Interval: time.Second})
	require.NoError(t, svc.Preload(context.Background(), []int{5}))
	before := engine.synthCount()

	err := svc.Speak(drill.Command{Direction: drill.Left, Clicks: 5}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, before, engine.synthCount(), "a preloaded cue must not re-synthesize")
}

func TestService_SpeakSynthesizesMissedCue(t *testing.T) {
	engine := &fakeEngine{}
	svc := newTestService(t, engine, Options{Interval: time.Second})

	err := svc.Speak(drill.Command{Direction: drill.Up, Clicks: 9}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, engine.synthCount())
	assert.Equal(t, []string{"up 9"}, engine.texts)
}

func TestService_SpeakReportsEngineFailure(t *testing.T) {
	engine := &fakeEngine{fail: true}
	svc := newTestService(t, engine, Options{Interval: time.Second})

	err := svc.Speak(drill.Command{Direction: drill.Up, Clicks: 2}, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "synthesis failed")
}

func TestService_ManualRateKeysTheCache(t *testing.T) {
	engine := &fakeEngine{}
	svc := newTestService(t, engine, Options{Interval: time.Second, ManualRate: true, Rate: 3.0})
	require.NoError(t, svc.Preload(context.Background(), []int{5}))

	for _, rate := range engine.rates {
		assert.InDelta(t, 3.0, rate, 1e-9)
	}

	// Speak at a different interval still resolves to the manual rate,
	// so the preloaded cue is found.
	before := engine.synthCount()
	err := svc.Speak(drill.Command{Direction: drill.Down, Clicks: 5}, 700*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, before, engine.synthCount())
}

func TestService_StopIsIdempotent(t *testing.T) {
	svc := newTestService(t, &fakeEngine{}, Options{Interval: time.Second})
	svc.Stop()
	svc.Stop()
}

func TestBeeper_SpeakAndStop(t *testing.T) {
	b := NewBeeper(silentOutput())
	require.NoError(t, b.Preload(context.Background(), []int{1, 2}))
	require.NoError(t, b.Speak(drill.Command{Direction: drill.Right, Clicks: 4}, time.Second))
	b.Stop()
	b.Stop()

	data, err := os.ReadFile(filepath.Join(os.TempDir(), "zerodrill-beep.wav"))
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data[:4]), "extracted beep should be a WAV container")
}

func TestNoop(t *testing.T) {
	n := Noop()
	assert.NoError(t, n.Preload(context.Background(), []int{1}))
	assert.NoError(t, n.Speak(drill.Command{Direction: drill.Up, Clicks: 1}, time.Second))
	n.Stop()
}

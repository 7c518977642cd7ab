package speech

import (
	"context"
	"errors"
	"os/exec"
	"sync"

	"github.com/zerodrill/zerodrill/internal/log"
)

// ErrNoPlayer is returned when no supported audio player is on PATH.
var ErrNoPlayer = errors.New("no audio player found")

// playback shells WAV files out to the host audio player. Starting a
// new file cancels the previous one, so cues never stack.
type playback struct {
	bin  string
	args func(path string) []string

	mu     sync.Mutex
	cancel context.CancelFunc
}

type playerCandidate struct {
	bin  string
	args func(path string) []string
}

func playerCandidates() []playerCandidate {
	passthrough := func(path string) []string { return []string{path} }
	return []playerCandidate{
		{bin: "paplay", args: passthrough},
		{bin: "aplay", args: func(path string) []string { return []string{"-q", path} }},
		{bin: "afplay", args: passthrough},
		{bin: "ffplay", args: func(path string) []string {
			return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}
		}},
	}
}

// detectPlayback returns a playback handle for the first supported
// audio player found on PATH.
func detectPlayback() (*playback, error) {
	for _, cand := range playerCandidates() {
		if _, err := exec.LookPath(cand.bin); err == nil {
			return &playback{bin: cand.bin, args: cand.args}, nil
		}
	}
	return nil, ErrNoPlayer
}

// play starts path asynchronously, cancelling any cue still playing.
// The caller never waits on the audio process.
func (p *playback) play(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, p.bin, p.args(path)...)
	if err := cmd.Start(); err != nil {
		cancel()
		return err
	}
	p.cancel = cancel

	go func() {
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			log.Debug(log.CatSpeech, "audio player exited", "error", err)
		}
		cancel()
	}()
	return nil
}

// stop kills the in-flight cue, if any.
func (p *playback) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

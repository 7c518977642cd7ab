package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrNoEngine is returned by DetectEngine when no supported
// text-to-speech binary is on PATH.
var ErrNoEngine = errors.New("no speech engine found")

// Engine renders spoken text into a WAV file.
type Engine interface {
	Name() string
	Synthesize(ctx context.Context, text string, rate float64, outPath string) error
}

// espeak and say take a words-per-minute figure; this is the baseline
// multiplied by the playback rate.
const baseWordsPerMinute = 175

type ttsEngine struct {
	name string
	bin  string
	args func(text string, rate float64, outPath string) []string
}

func (e *ttsEngine) Name() string { return e.name }

func (e *ttsEngine) Synthesize(ctx context.Context, text string, rate float64, outPath string) error {
	cmd := exec.CommandContext(ctx, e.bin, e.args(text, rate, outPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", e.name, err, string(out))
	}
	return nil
}

func wordsPerMinute(rate float64) int {
	return int(baseWordsPerMinute * rate)
}

// engineCandidates lists supported engines in preference order.
func engineCandidates() []*ttsEngine {
	return []*ttsEngine{
		{
			name: "espeak-ng",
			bin:  "espeak-ng",
			args: func(text string, rate float64, outPath string) []string {
				return []string{"-v", "en-us", "-s", fmt.Sprint(wordsPerMinute(rate)), "-w", outPath, text}
			},
		},
		{
			name: "espeak",
			bin:  "espeak",
			args: func(text string, rate float64, outPath string) []string {
				return []string{"-v", "en-us", "-s", fmt.Sprint(wordsPerMinute(rate)), "-w", outPath, text}
			},
		},
		{
			name: "say",
			bin:  "say",
			args: func(text string, rate float64, outPath string) []string {
				return []string{"-r", fmt.Sprint(wordsPerMinute(rate)), "-o", outPath, "--data-format=LEI16@22050", text}
			},
		},
		{
			name: "flite",
			bin:  "flite",
			args: func(text string, rate float64, outPath string) []string {
				stretch := 1.0
				if rate > 0 {
					stretch = 1.0 / rate
				}
				return []string{"-t", text, "--setf", fmt.Sprintf("duration_stretch=%.3f", stretch), "-o", outPath}
			},
		},
	}
}

// DetectEngine returns the first supported engine found on PATH.
func DetectEngine() (Engine, error) {
	for _, cand := range engineCandidates() {
		if _, err := exec.LookPath(cand.bin); err == nil {
			return cand, nil
		}
	}
	return nil, ErrNoEngine
}

// Package headless runs a drill in a plain terminal, without the TUI.
// The transcript prints one line per command and a final verdict, so
// the output works in scripts, logs, and screen readers.
package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/zerodrill/zerodrill/internal/config"
	"github.com/zerodrill/zerodrill/internal/drill"
	"github.com/zerodrill/zerodrill/internal/log"
	"github.com/zerodrill/zerodrill/internal/paths"
	"github.com/zerodrill/zerodrill/internal/speech"
)

// ErrStopped is returned by Run when the drill ended before its last
// command, normally because the context was canceled.
var ErrStopped = errors.New("drill stopped before finishing")

var (
	headerColor  = color.New(color.FgCyan)
	commandColor = color.New(color.FgMagenta, color.Bold)
	cueColor     = color.New(color.FgCyan)
	noticeColor  = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen, color.Bold)
	failColor    = color.New(color.FgRed, color.Bold)
	mutedColor   = color.New(color.FgHiBlack)
)

// Options configures a headless run.
type Options struct {
	Drill config.DrillConfig
	Cue   config.CueConfig
	// Out receives the transcript. Defaults to stdout.
	Out io.Writer
	// NewSpeaker builds the cue synthesizer. Defaults to speech.New;
	// tests inject a fake.
	NewSpeaker func(speech.Options) speech.Synthesizer
	// Clock drives run timing. Nil uses wall time.
	Clock drill.Clock
	// Source seeds sequence generation. Nil uses wall-clock seeding.
	Source rand.Source
}

// Report summarizes a completed run.
type Report struct {
	Final    drill.Position
	Commands int
	Elapsed  time.Duration
	OnZero   bool
}

// Runner executes one drill against the configured output.
type Runner struct {
	opts Options
}

// New returns a runner for opts.
func New(opts Options) *Runner {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.NewSpeaker == nil {
		opts.NewSpeaker = speech.New
	}
	return &Runner{opts: opts}
}

// Run generates a sequence, plays it, and prints the transcript. It
// blocks until the drill finishes or ctx is canceled.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	dcfg := r.opts.Drill
	out := r.opts.Out

	gcfg := drill.GenerationConfig{
		CommandCount:     dcfg.CommandCount,
		ClickValues:      dcfg.ClickValues,
		Bound:            dcfg.Bound,
		OrderingFallback: dcfg.OrderingFallback,
	}
	total := gcfg.EffectiveCount()

	headerColor.Fprintf(out, "zerodrill: %d commands @ %s within ±%d clicks\n",
		total, dcfg.Interval, dcfg.Bound)
	if total != dcfg.CommandCount {
		noticeColor.Fprintf(out, "note: command count rounded up to %d so every command has a mirror\n", total)
	}

	seq, err := drill.NewGenerator(r.opts.Source).Generate(ctx, gcfg)
	if err != nil {
		return Report{}, fmt.Errorf("generating sequence: %w", err)
	}

	var speaker speech.Synthesizer
	if r.opts.Cue.Enabled {
		speaker = r.opts.NewSpeaker(speech.Options{
			Interval:   dcfg.Interval,
			ManualRate: r.opts.Cue.ManualRate,
			Rate:       r.opts.Cue.Rate,
			CacheDir:   cueCacheDir(),
		})
		if err := speaker.Preload(ctx, dcfg.ClickValues); err != nil {
			log.ErrorErr(log.CatSpeech, "cue preload failed", err)
		}
	}

	player := drill.NewPlayer(drill.PlayerConfig{
		Interval: dcfg.Interval,
		Bound:    dcfg.Bound,
		Cue:      speaker,
		Clock:    r.opts.Clock,
	})
	events, err := player.Run(seq)
	if err != nil {
		return Report{}, fmt.Errorf("starting run: %w", err)
	}

	// The player has no context of its own; a cancellation stops it and
	// the event channel closes.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			player.Stop()
		case <-watchDone:
		}
	}()

	fmt.Fprintln(out)
	var (
		finished bool
		report   Report
		openLine bool
	)
	for e := range events {
		switch e := e.(type) {
		case drill.CommandStarted:
			if openLine {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%3d/%d  ", e.Index+1, total)
			commandColor.Fprintf(out, "%-9s", e.Command.String())
			if e.Cued {
				cueColor.Fprint(out, " ♪")
			}
			openLine = true
		case drill.PositionUpdated:
			mutedColor.Fprintf(out, "  →  %s", e.Position.String())
			fmt.Fprintln(out)
			openLine = false
		case drill.RunFinished:
			if openLine {
				fmt.Fprintln(out)
				openLine = false
			}
			finished = true
			report = Report{
				Final:    e.Final,
				Commands: len(seq),
				Elapsed:  e.Elapsed,
				OnZero:   e.Final.IsZero(),
			}
		}
	}

	if !finished {
		if ctx.Err() != nil {
			return Report{}, ctx.Err()
		}
		return Report{}, ErrStopped
	}

	fmt.Fprintln(out)
	mutedColor.Fprintf(out, "%s\n", "────────────────────────────────")
	if report.OnZero {
		successColor.Fprint(out, "ON ZERO")
	} else {
		off := abs(report.Final.Traverse) + abs(report.Final.Elevation)
		failColor.Fprintf(out, "OFF ZERO by %d %s (%s)", off, clicksWord(off), report.Final.String())
	}
	fmt.Fprintf(out, "  in %.1fs over %d commands\n", report.Elapsed.Seconds(), report.Commands)

	return report, nil
}

func clicksWord(n int) string {
	if n == 1 {
		return "click"
	}
	return "clicks"
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func cueCacheDir() string {
	dir, err := paths.CueCacheDir()
	if err != nil {
		return ""
	}
	return dir
}

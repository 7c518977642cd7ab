package drill

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/zerodrill/zerodrill/internal/log"
	"github.com/zerodrill/zerodrill/internal/tracing"
)

// MinCueInterval is the shortest command interval at which speech cues
// are still dispatched. Below it a cue would overlap the next command,
// so none is played.
const MinCueInterval = 300 * time.Millisecond

// CueSpeaker voices a command at the start of its interval. The player
// only gates and dispatches; rate selection lives with the speaker.
type CueSpeaker interface {
	Speak(cmd Command, interval time.Duration) error
	Stop()
}

// PlayerState tracks where the run loop is inside the current command.
type PlayerState int

const (
	PlayerIdle PlayerState = iota
	PlayerAwaitingMidpoint
	PlayerAwaitingAdvance
	PlayerDone
)

func (s PlayerState) String() string {
	switch s {
	case PlayerIdle:
		return "idle"
	case PlayerAwaitingMidpoint:
		return "awaiting-midpoint"
	case PlayerAwaitingAdvance:
		return "awaiting-advance"
	case PlayerDone:
		return "done"
	default:
		return "unknown"
	}
}

// Event is delivered on the channel returned by Run. Concrete types are
// CommandStarted, PositionUpdated, and RunFinished.
type Event interface{ isEvent() }

// CommandStarted marks the start of a command interval. Cued reports
// whether a speech cue was dispatched for it.
type CommandStarted struct {
	Index   int
	Command Command
	Cued    bool
}

// PositionUpdated carries the simulated position after the midpoint
// update of the command at Index. The position is re-clamped to the
// bound as a guard against malformed sequences.
type PositionUpdated struct {
	Index    int
	Position Position
}

// RunFinished is delivered exactly once when the run completes
// naturally, at the full-interval mark of the last command or
// immediately for an empty sequence. A stopped run closes the event
// channel without it.
type RunFinished struct {
	Final   Position
	Elapsed time.Duration
}

func (CommandStarted) isEvent()  {}
func (PositionUpdated) isEvent() {}
func (RunFinished) isEvent()     {}

// PlayerConfig fixes the run parameters. They are captured at
// construction and never re-read mid-run, so a config edit during
// playback cannot skew an active drill.
type PlayerConfig struct {
	// Interval is the time budget per command. Must be positive for a
	// non-empty sequence.
	Interval time.Duration
	// Bound re-clamps the position after every midpoint update.
	Bound int
	// Cue, when non-nil, voices each command subject to MinCueInterval.
	Cue CueSpeaker
	// Clock defaults to wall time. Tests install a manual clock.
	Clock Clock
}

// Player executes one sequence on a single run-loop goroutine. All
// timing flows through that goroutine: each command arms one timer at
// a time (midpoint, then advance) and a stop releases whichever is
// pending, so the midpoint update and the advance always cancel as a
// pair. A Player is single-use: construct, Run once, Stop to cancel.
type Player struct {
	cfg PlayerConfig

	mu      sync.Mutex
	state   PlayerState
	started bool

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewPlayer returns an idle player for one run of cfg.
func NewPlayer(cfg PlayerConfig) *Player {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	return &Player{cfg: cfg, stopCh: make(chan struct{})}
}

// Run starts the run loop and returns its event channel. The channel
// is buffered for the whole run and closes when the loop exits,
// whether the run finished or was stopped.
func (p *Player) Run(seq Sequence) (<-chan Event, error) {
	if p.cfg.Interval <= 0 && len(seq) > 0 {
		return nil, ErrInvalidInterval
	}

	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return nil, ErrAlreadyStarted
	}
	p.started = true
	p.mu.Unlock()

	events := make(chan Event, len(seq)*2+1)
	go p.loop(seq, events)
	return events, nil
}

// Stop cancels the run. The pending timer is released, any in-flight
// cue is halted, and no further position mutation occurs. Safe to call
// repeatedly and before Run.
func (p *Player) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
		if p.cfg.Cue != nil {
			p.cfg.Cue.Stop()
		}
	})
}

// State returns the run loop's current state.
func (p *Player) State() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Player) setState(s PlayerState) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

func (p *Player) loop(seq Sequence, events chan<- Event) {
	defer close(events)

	_, span := tracing.Tracer().Start(context.Background(), "drill.play", oteltrace.WithAttributes(
		attribute.Int("drill.commands", len(seq)),
		attribute.Int64("drill.interval_ms", p.cfg.Interval.Milliseconds()),
	))
	defer span.End()

	finished := false
	defer func() {
		if !finished {
			p.setState(PlayerIdle)
			span.SetAttributes(attribute.String("drill.outcome", "stopped"))
			log.Debug(log.CatDrill, "run stopped")
		}
	}()

	select {
	case <-p.stopCh:
		return
	default:
	}

	start := time.Now()
	var pos Position
	for i, cmd := range seq {
		p.setState(PlayerAwaitingMidpoint)
		cued := p.dispatchCue(cmd)
		if !p.emit(events, CommandStarted{Index: i, Command: cmd, Cued: cued}) {
			return
		}
		if !p.wait(p.cfg.Interval / 2) {
			return
		}
		pos = pos.Apply(cmd).Clamp(p.cfg.Bound)
		if !p.emit(events, PositionUpdated{Index: i, Position: pos}) {
			return
		}
		p.setState(PlayerAwaitingAdvance)
		if !p.wait(p.cfg.Interval - p.cfg.Interval/2) {
			return
		}
	}

	p.setState(PlayerDone)
	p.emit(events, RunFinished{Final: pos, Elapsed: time.Since(start)})
	finished = true
	span.SetAttributes(attribute.String("drill.outcome", "finished"))
	log.Debug(log.CatDrill, "run finished", "final", pos.String())
}

// wait blocks for d on the run clock. It returns false when the player
// was stopped, with the pending timer released.
func (p *Player) wait(d time.Duration) bool {
	t := p.cfg.Clock.NewTimer(d)
	select {
	case <-t.C():
		return true
	case <-p.stopCh:
		t.Stop()
		return false
	}
}

// emit delivers e unless the player was stopped first.
func (p *Player) emit(ch chan<- Event, e Event) bool {
	select {
	case ch <- e:
		return true
	case <-p.stopCh:
		return false
	}
}

// dispatchCue voices cmd when a speaker is configured and the interval
// leaves room for a cue at all.
func (p *Player) dispatchCue(cmd Command) bool {
	if p.cfg.Cue == nil || p.cfg.Interval < MinCueInterval {
		return false
	}
	if err := p.cfg.Cue.Speak(cmd, p.cfg.Interval); err != nil {
		log.ErrorErr(log.CatDrill, "cue dispatch failed", err, "command", cmd.String())
		return false
	}
	return true
}

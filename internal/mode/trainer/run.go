package trainer

import (
	"context"
	"math/rand"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/zerodrill/zerodrill/internal/config"
	"github.com/zerodrill/zerodrill/internal/drill"
	"github.com/zerodrill/zerodrill/internal/log"
	"github.com/zerodrill/zerodrill/internal/paths"
	"github.com/zerodrill/zerodrill/internal/speech"
	"github.com/zerodrill/zerodrill/internal/ui/drillview"
	"github.com/zerodrill/zerodrill/internal/ui/resultview"
)

const (
	generateTimeout = 5 * time.Second
	// Preloading synthesizes one cue per direction and click value, so
	// the first run on a cold cache can take a while.
	preloadTimeout = 20 * time.Second
)

// runStartedMsg reports that generation and preload finished and the
// player is live.
type runStartedMsg struct {
	runID   string
	seq     drill.Sequence
	player  *drill.Player
	events  <-chan drill.Event
	speaker speech.Synthesizer
}

// runFailedMsg reports that a run could not start.
type runFailedMsg struct {
	runID string
	err   error
}

// runEventMsg wraps one player event. The runID identifies which run
// produced it.
type runEventMsg struct {
	runID string
	event drill.Event
}

// runClosedMsg reports that a run's event channel closed without a
// finish event, which happens when the run was stopped.
type runClosedMsg struct {
	runID string
}

// configReloadedMsg carries a freshly loaded config from the watcher.
type configReloadedMsg struct {
	cfg config.Config
}

// beginRun resets the run panes and kicks off generation, preload, and
// playback in the background. The trainer switches to the run screen
// immediately; the drill pane shows "standing by" until events arrive.
func (m Model) beginRun(dcfg config.DrillConfig, ccfg config.CueConfig) (Model, tea.Cmd) {
	runID := uuid.NewString()
	m.runID = runID
	m.runDrill = dcfg
	m.runCue = ccfg
	m.runSeq = nil
	m.state = StateRunning
	m.startErr = ""
	m.showMenu = false

	total := drill.GenerationConfig{CommandCount: dcfg.CommandCount}.EffectiveCount()
	m.grid = m.grid.SetBound(dcfg.Bound).SetPosition(drill.Position{})
	m.drill = drillview.New(m.cfg.UI.ShowCommandLog)
	m = m.layout()
	m.drill = m.drill.Begin(total)

	// A seeded root source is stepped here, on the update loop, so a
	// restart racing a still-generating predecessor never shares it.
	var src rand.Source
	if m.source != nil {
		src = rand.NewSource(m.source.Int63())
	}

	log.Info(log.CatDrill, "run starting",
		"run_id", runID, "commands", total, "interval", dcfg.Interval, "cues", ccfg.Enabled)
	return m, m.startRunCmd(runID, src, dcfg, ccfg)
}

// restartRun stops the active run, if any, and starts a fresh one with
// the same parameters.
func (m Model) restartRun() (Model, tea.Cmd) {
	m = m.stopRun()
	return m.beginRun(m.runDrill, m.runCue)
}

// stopRun tears down the active run. Safe to call when none is active.
func (m Model) stopRun() Model {
	if m.player != nil {
		m.player.Stop()
	}
	if m.speaker != nil {
		m.speaker.Stop()
	}
	m.player = nil
	m.events = nil
	m.speaker = nil
	m.runID = ""
	return m
}

func (m Model) handleRunStarted(msg runStartedMsg) (tea.Model, tea.Cmd) {
	if msg.runID != m.runID {
		// The operator moved on before the run came up.
		msg.player.Stop()
		if msg.speaker != nil {
			msg.speaker.Stop()
		}
		return m, nil
	}
	m.player = msg.player
	m.events = msg.events
	m.speaker = msg.speaker
	m.runSeq = msg.seq
	log.Info(log.CatDrill, "run started", "run_id", msg.runID, "commands", len(msg.seq))
	return m, listenRun(msg.runID, msg.events)
}

func (m Model) handleRunFailed(msg runFailedMsg) (tea.Model, tea.Cmd) {
	if msg.runID != m.runID {
		return m, nil
	}
	log.ErrorErr(log.CatDrill, "run start failed", msg.err)
	m = m.stopRun()
	m.state = StateConfiguring
	m.showMenu = false
	m.startErr = msg.err.Error()
	return m, nil
}

func (m Model) handleRunEvent(msg runEventMsg) (tea.Model, tea.Cmd) {
	if msg.runID != m.runID {
		return m, nil
	}
	switch e := msg.event.(type) {
	case drill.CommandStarted:
		m.drill = m.drill.StartCommand(e)
	case drill.PositionUpdated:
		m.drill = m.drill.UpdatePosition(e)
		m.grid = m.grid.SetPosition(e.Position)
	case drill.RunFinished:
		return m.finishRun(e), nil
	}
	return m, listenRun(msg.runID, m.events)
}

func (m Model) finishRun(e drill.RunFinished) Model {
	log.Info(log.CatDrill, "run finished",
		"run_id", m.runID, "final", e.Final.String(), "elapsed", e.Elapsed)
	m.result = m.result.SetResult(resultview.Summary{
		RunID:    m.runID,
		Final:    e.Final,
		Commands: len(m.runSeq),
		Interval: m.runDrill.Interval,
		Elapsed:  e.Elapsed,
		Preset:   m.presetName(),
	})
	m.player = nil
	m.events = nil
	m.speaker = nil
	m.runID = ""
	m.state = StateFinished
	m.showMenu = false
	return m
}

// presetName returns the applied preset's name, but only while the run
// parameters still match it.
func (m Model) presetName() string {
	p := m.lastPreset
	if p == nil {
		return ""
	}
	if p.CommandCount != m.runDrill.CommandCount ||
		p.Bound != m.runDrill.Bound ||
		p.Interval.Std() != m.runDrill.Interval ||
		!slices.Equal(p.ClickValues, m.runDrill.ClickValues) {
		return ""
	}
	return p.Name
}

// startRunCmd generates a sequence, warms the cue cache, and starts the
// player, all off the update loop.
func (m Model) startRunCmd(runID string, src rand.Source, dcfg config.DrillConfig, ccfg config.CueConfig) tea.Cmd {
	newSpeaker := m.newSpeaker
	clock := m.clock
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		seq, err := drill.NewGenerator(src).Generate(ctx, drill.GenerationConfig{
			CommandCount:     dcfg.CommandCount,
			ClickValues:      dcfg.ClickValues,
			Bound:            dcfg.Bound,
			OrderingFallback: dcfg.OrderingFallback,
		})
		if err != nil {
			return runFailedMsg{runID: runID, err: err}
		}

		var speaker speech.Synthesizer
		if ccfg.Enabled {
			speaker = newSpeaker(speech.Options{
				Interval:   dcfg.Interval,
				ManualRate: ccfg.ManualRate,
				Rate:       ccfg.Rate,
				CacheDir:   cueCacheDir(),
			})
			pctx, pcancel := context.WithTimeout(context.Background(), preloadTimeout)
			if err := speaker.Preload(pctx, dcfg.ClickValues); err != nil {
				// A cold or failing engine degrades to on-demand cues.
				log.ErrorErr(log.CatSpeech, "cue preload failed", err)
			}
			pcancel()
		}

		player := drill.NewPlayer(drill.PlayerConfig{
			Interval: dcfg.Interval,
			Bound:    dcfg.Bound,
			Cue:      speaker,
			Clock:    clock,
		})
		events, err := player.Run(seq)
		if err != nil {
			if speaker != nil {
				speaker.Stop()
			}
			return runFailedMsg{runID: runID, err: err}
		}
		return runStartedMsg{runID: runID, seq: seq, player: player, events: events, speaker: speaker}
	}
}

// listenRun waits for the next player event. The handler re-issues it
// after each event, so exactly one receive is outstanding per run.
func listenRun(runID string, events <-chan drill.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return runClosedMsg{runID: runID}
		}
		return runEventMsg{runID: runID, event: e}
	}
}

// listenReload waits for the next config reload. Nil watchers disable
// auto reload.
func listenReload(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-w.C()
		if !ok {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}

func cueCacheDir() string {
	dir, err := paths.CueCacheDir()
	if err != nil {
		return ""
	}
	return dir
}

// Package trainer implements the interactive drill screen flow:
// configure a drill, watch it play against the simulated sight, and
// review the final position against zero.
package trainer

import (
	"fmt"
	"math/rand"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zerodrill/zerodrill/internal/config"
	"github.com/zerodrill/zerodrill/internal/drill"
	"github.com/zerodrill/zerodrill/internal/log"
	"github.com/zerodrill/zerodrill/internal/mode/shared"
	"github.com/zerodrill/zerodrill/internal/preset"
	"github.com/zerodrill/zerodrill/internal/speech"
	"github.com/zerodrill/zerodrill/internal/ui/art"
	"github.com/zerodrill/zerodrill/internal/ui/drillview"
	"github.com/zerodrill/zerodrill/internal/ui/grid"
	"github.com/zerodrill/zerodrill/internal/ui/helpview"
	"github.com/zerodrill/zerodrill/internal/ui/presetpicker"
	"github.com/zerodrill/zerodrill/internal/ui/resultview"
	"github.com/zerodrill/zerodrill/internal/ui/setupform"
	"github.com/zerodrill/zerodrill/internal/ui/stopmenu"
	"github.com/zerodrill/zerodrill/internal/ui/styles"
)

// RunState is the trainer's top-level screen state.
type RunState int

const (
	// StateConfiguring shows the setup form.
	StateConfiguring RunState = iota
	// StateRunning shows the reticle and drill panes while a run plays.
	StateRunning
	// StateFinished shows the result view.
	StateFinished
)

// Config carries the trainer's dependencies. Zero-value fields fall
// back to production implementations.
type Config struct {
	// AppConfig seeds the setup form and the UI toggles.
	AppConfig config.Config
	// Presets backs the preset picker. May be nil.
	Presets *preset.Registry
	// Watcher delivers config file reloads. May be nil.
	Watcher *config.Watcher
	// NewSpeaker builds the cue synthesizer for a run. Defaults to
	// speech.New; tests inject a fake.
	NewSpeaker func(speech.Options) speech.Synthesizer
	// Clock drives run timing. Nil uses wall time.
	Clock drill.Clock
	// Source seeds sequence generation. Nil uses wall-clock seeding.
	Source rand.Source
	// InitialPreset labels results until the form diverges from it.
	InitialPreset *preset.Preset
}

// Model is the root bubbletea model.
type Model struct {
	cfg        config.Config
	presets    *preset.Registry
	watcher    *config.Watcher
	newSpeaker func(speech.Options) speech.Synthesizer
	clock      drill.Clock
	source     rand.Source

	state    RunState
	showMenu bool
	showHelp bool

	form   setupform.Model
	picker presetpicker.Model
	grid   grid.Model
	drill  drillview.Model
	result resultview.Model
	menu   stopmenu.Model
	help   helpview.Model

	// Active run. The player owns its own goroutine; runID ties its
	// event stream to this model so stale messages from a stopped run
	// are dropped.
	runID      string
	runSeq     drill.Sequence
	runDrill   config.DrillConfig
	runCue     config.CueConfig
	player     *drill.Player
	events     <-chan drill.Event
	speaker    speech.Synthesizer
	lastPreset *preset.Preset

	startErr string

	width     int
	height    int
	gridWidth int
}

// New creates a trainer model.
func New(cfg Config) Model {
	if cfg.NewSpeaker == nil {
		cfg.NewSpeaker = speech.New
	}
	return Model{
		cfg:        cfg.AppConfig,
		presets:    cfg.Presets,
		watcher:    cfg.Watcher,
		newSpeaker: cfg.NewSpeaker,
		clock:      cfg.Clock,
		source:     cfg.Source,
		state:      StateConfiguring,
		form:       setupform.New(cfg.AppConfig),
		picker:     presetpicker.New(),
		grid:       grid.New(cfg.AppConfig.Drill.Bound),
		drill:      drillview.New(cfg.AppConfig.UI.ShowCommandLog),
		result:     resultview.New(shared.SystemClipboard{}),
		menu:       stopmenu.New(),
		help:       helpview.New(),
		lastPreset: cfg.InitialPreset,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), listenReload(m.watcher))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.layout(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case setupform.StartMsg:
		return m.beginRun(msg.Drill, msg.Cue)

	case stopmenu.SelectMsg:
		return m.handleMenuSelect(msg.Option)

	case stopmenu.CancelMsg:
		m.showMenu = false
		return m, nil

	case runStartedMsg:
		return m.handleRunStarted(msg)

	case runFailedMsg:
		return m.handleRunFailed(msg)

	case runEventMsg:
		return m.handleRunEvent(msg)

	case runClosedMsg:
		// The event channel of a stopped run drained; nothing to do.
		return m, nil

	case configReloadedMsg:
		return m.handleReload(msg)
	}

	// Blink and other component ticks route to the focused component.
	if m.state == StateConfiguring && !m.showMenu && !m.showHelp {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m = m.stopRun()
		return m, tea.Quit
	}

	if m.showMenu {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		switch key {
		case "?", "esc", "q":
			m.showHelp = false
			return m, nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	if m.picker.IsActive() {
		picker, _, selected := m.picker.HandleKey(msg)
		m.picker = picker
		if selected != nil {
			m.form = m.form.ApplyPreset(*selected)
			m.lastPreset = selected
			log.Info(log.CatUI, "preset applied", "preset", selected.Name)
		}
		// Keys the picker leaves unhandled stay swallowed so they
		// cannot reach the form underneath.
		return m, nil
	}

	switch m.state {
	case StateConfiguring:
		switch key {
		case "q":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "p":
			if m.presets != nil && m.presets.Len() > 0 {
				m.picker = m.picker.Activate(m.presets.List())
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case StateRunning:
		if key == "esc" {
			m.menu = stopmenu.New().SetSize(m.width, m.height)
			m.showMenu = true
			return m, nil
		}
		var cmd tea.Cmd
		m.drill, cmd = m.drill.Update(msg)
		return m, cmd

	default: // StateFinished
		switch key {
		case "q":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "r":
			return m.restartRun()
		case "s", "esc":
			m.state = StateConfiguring
			return m, nil
		}
		var cmd tea.Cmd
		m.result, cmd = m.result.Update(msg)
		return m, cmd
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.cfg.UI.Mouse || m.showMenu {
		return m, nil
	}
	if m.showHelp {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}
	switch m.state {
	case StateConfiguring:
		if m.picker.IsActive() {
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	case StateRunning:
		var cmd tea.Cmd
		m.drill, cmd = m.drill.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleMenuSelect(opt stopmenu.Option) (tea.Model, tea.Cmd) {
	m.showMenu = false
	switch opt {
	case stopmenu.OptionRestart:
		return m.restartRun()
	case stopmenu.OptionSetup:
		m = m.stopRun()
		m.state = StateConfiguring
		return m, nil
	}
	// Resume leaves the still-playing run in place.
	return m, nil
}

func (m Model) handleReload(msg configReloadedMsg) (tea.Model, tea.Cmd) {
	relisten := listenReload(m.watcher)
	if m.state != StateConfiguring {
		log.Debug(log.CatConfig, "config reload ignored outside setup")
		return m, relisten
	}

	if msg.cfg.UI.Mode != m.cfg.UI.Mode {
		if err := styles.ApplyMode(msg.cfg.UI.Mode); err != nil {
			log.ErrorErr(log.CatConfig, "applying reloaded ui mode", err)
		}
	}
	mouseChanged := msg.cfg.UI.Mouse != m.cfg.UI.Mouse

	m.cfg = msg.cfg
	m.form = m.form.SetConfig(msg.cfg)
	m.lastPreset = nil
	m = m.layout()
	log.Info(log.CatConfig, "configuration reloaded")

	if mouseChanged {
		if m.cfg.UI.Mouse {
			return m, tea.Batch(relisten, tea.EnableMouseCellMotion)
		}
		return m, tea.Batch(relisten, tea.DisableMouse)
	}
	return m, relisten
}

// layout distributes the window across the panes.
func (m Model) layout() Model {
	if m.width == 0 || m.height == 0 {
		return m
	}
	contentH := m.contentHeight()

	m.form = m.form.SetSize(min(m.width, 64))
	m.help = m.help.SetSize(m.width, contentH)
	m.result = m.result.SetSize(m.width, contentH)
	m.menu = m.menu.SetSize(m.width, m.height)

	gridW := min(m.width/2, contentH*2)
	m.gridWidth = max(min(gridW, m.width), 20)
	m.grid = m.grid.SetSize(max(m.gridWidth-2, 1), max(contentH-2, 1))
	m.drill = m.drill.SetSize(max(m.width-m.gridWidth, 20), contentH)
	return m
}

func (m Model) contentHeight() int {
	if m.cfg.UI.ShowStatusBar {
		return max(m.height-1, 1)
	}
	return m.height
}

// View renders the active screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.showMenu {
		return zone.Scan(m.menu.Overlay())
	}

	contentH := m.contentHeight()
	var body string
	switch {
	case m.showHelp:
		body = m.help.View()
	case m.state == StateRunning:
		body = m.runningView(contentH)
	case m.state == StateFinished:
		body = m.result.View()
	default:
		body = m.configuringView(contentH)
	}

	if m.cfg.UI.ShowStatusBar {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar())
	}
	return zone.Scan(body)
}

func (m Model) configuringView(contentH int) string {
	parts := []string{art.BuildBanner(), "", m.form.View()}
	if m.startErr != "" {
		parts = append(parts, "", styles.ErrorTextStyle.Render("cannot start: "+m.startErr))
	}
	if m.picker.IsActive() {
		parts = append(parts, "", m.picker.View(min(m.width-4, 72)))
	}
	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) runningView(contentH int) string {
	bound := fmt.Sprintf("±%d", m.runDrill.Bound)
	gridPane := styles.PaneBorder(m.grid.View(), "Reticle", bound, m.gridWidth, contentH, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, gridPane, m.drill.View())
}

type keyHint struct {
	key  string
	desc string
}

func (m Model) statusBar() string {
	var hints []keyHint
	switch {
	case m.showHelp:
		hints = []keyHint{{"pgup/pgdn", "scroll"}, {"?", "close"}}
	case m.state == StateRunning:
		hints = []keyHint{{"esc", "menu"}, {"pgup/pgdn", "log"}}
	case m.state == StateFinished:
		hints = []keyHint{{"y", "copy"}, {"r", "again"}, {"s", "setup"}, {"q", "quit"}}
	default:
		hints = []keyHint{{"tab", "next field"}, {"enter", "start"}, {"p", "presets"}, {"?", "help"}, {"q", "quit"}}
	}

	var b strings.Builder
	for i, h := range hints {
		if i > 0 {
			b.WriteString(styles.HelpDescStyle.Render(" · "))
		}
		b.WriteString(styles.HelpKeyStyle.Render(h.key))
		b.WriteString(styles.HelpDescStyle.Render(" " + h.desc))
	}
	return lipgloss.NewStyle().Width(m.width).Padding(0, 1).Render(b.String())
}

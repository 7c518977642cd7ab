// Package drillview renders the live run pane: the current command, run
// progress, the position readout, and the scrolling command log.
package drillview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zerodrill/zerodrill/internal/drill"
	"github.com/zerodrill/zerodrill/internal/ui/styles"
)

// headerHeight counts the fixed lines above the log: command, progress,
// position, divider.
const headerHeight = 4

// runEntry is one issued command and, once the midpoint passes, the
// position it produced.
type runEntry struct {
	index int
	cmd   drill.Command
	pos   drill.Position
	done  bool
}

// Model holds the drill pane state.
type Model struct {
	vp      viewport.Model
	prog    progress.Model
	showLog bool

	total     int
	completed int
	current   drill.Command
	started   bool
	cued      bool
	pos       drill.Position
	entries   []runEntry

	// dirty marks freshly appended log content; hasNew remembers content
	// that arrived while scrolled up.
	dirty  bool
	hasNew bool

	width  int
	height int
}

// New creates a drill pane. The command log can be disabled in config.
func New(showLog bool) Model {
	return Model{
		prog: progress.New(
			progress.WithGradient("#5F3DC4", "#54A0FF"),
			progress.WithoutPercentage(),
		),
		showLog: showLog,
	}
}

// Begin resets the pane for a fresh run of total commands.
func (m Model) Begin(total int) Model {
	m.total = total
	m.completed = 0
	m.started = false
	m.cued = false
	m.current = drill.Command{}
	m.pos = drill.Position{}
	m.entries = nil
	m.dirty = true
	m.hasNew = false
	return m.syncLog()
}

// StartCommand records a dispatched command.
func (m Model) StartCommand(e drill.CommandStarted) Model {
	m.current = e.Command
	m.started = true
	m.cued = e.Cued
	m.entries = append(m.entries, runEntry{index: e.Index, cmd: e.Command})
	m.dirty = true
	return m.syncLog()
}

// UpdatePosition records the post-midpoint position of a command.
func (m Model) UpdatePosition(e drill.PositionUpdated) Model {
	m.pos = e.Position
	m.completed++
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].index == e.Index {
			m.entries[i].pos = e.Position
			m.entries[i].done = true
			break
		}
	}
	m.dirty = true
	return m.syncLog()
}

// Position returns the latest simulated position.
func (m Model) Position() drill.Position {
	return m.pos
}

// SetSize updates the pane dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.prog.Width = max(m.width-14, 8)
	return m.syncLog()
}

// Update forwards scroll keys and wheel events to the log viewport.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.showLog {
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	if m.vp.AtBottom() {
		m.hasNew = false
	}
	return m, cmd
}

// View renders the bordered pane.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	innerWidth := max(m.width-2, 1)

	var b strings.Builder
	b.WriteString(m.renderCommand())
	b.WriteString("\n")
	b.WriteString(m.renderProgress())
	b.WriteString("\n")
	b.WriteString(m.renderPosition())
	if m.showLog {
		b.WriteString("\n")
		b.WriteString(styles.MutedStyle.Render(strings.Repeat("─", innerWidth)))
		b.WriteString("\n")
		b.WriteString(m.vp.View())
	}

	return styles.PaneBorder(b.String(), "Drill", m.scrollStatus(), m.width, m.height, true)
}

func (m Model) renderCommand() string {
	if !m.started {
		return styles.MutedStyle.Render("standing by")
	}
	line := styles.CommandStyle.Render(m.current.String())
	if m.cued {
		line += " " + styles.HelpKeyStyle.Render("♪")
	}
	return line
}

func (m Model) renderProgress() string {
	if m.total == 0 {
		return ""
	}
	percent := float64(m.completed) / float64(m.total)
	counter := fmt.Sprintf("%d/%d", m.completed, m.total)
	return m.prog.ViewAs(percent) + " " + styles.SubtitleStyle.Render(counter)
}

func (m Model) renderPosition() string {
	t := lipgloss.NewStyle().Foreground(styles.TraverseColor).
		Render("T " + styles.FormatOffset(m.pos.Traverse))
	e := lipgloss.NewStyle().Foreground(styles.ElevationColor).
		Render("E " + styles.FormatOffset(m.pos.Elevation))
	return t + "  " + e
}

func (m Model) scrollStatus() string {
	if !m.showLog {
		return ""
	}
	if m.hasNew {
		return "↓ new"
	}
	if !m.vp.AtBottom() && len(m.entries) > 0 {
		return fmt.Sprintf("%d%%", int(m.vp.ScrollPercent()*100))
	}
	return ""
}

// syncLog rebuilds the viewport content. The at-bottom check runs before
// SetContent so a reader scrolled up keeps their place; fresh content only
// pulls the view down when it was already at the bottom.
func (m Model) syncLog() Model {
	if !m.showLog {
		return m
	}
	vpWidth := max(m.width-2, 1)
	vpHeight := max(m.height-2-headerHeight, 1)
	m.vp.Width = vpWidth
	m.vp.Height = vpHeight

	wasAtBottom := m.vp.AtBottom()

	lines := make([]string, 0, max(len(m.entries), vpHeight))
	for _, e := range m.entries {
		lines = append(lines, m.renderEntry(e))
	}
	// Prepend padding so a short log sticks to the bottom edge.
	if len(lines) < vpHeight {
		pad := make([]string, vpHeight-len(lines))
		lines = append(pad, lines...)
	}
	m.vp.SetContent(strings.Join(lines, "\n"))

	if m.dirty {
		if wasAtBottom {
			m.vp.GotoBottom()
		} else {
			m.hasNew = true
		}
		m.dirty = false
	}
	if m.vp.AtBottom() {
		m.hasNew = false
	}
	return m
}

func (m Model) renderEntry(e runEntry) string {
	num := styles.MutedStyle.Render(fmt.Sprintf("%3d", e.index+1))
	cmd := fmt.Sprintf("%-9s", e.cmd.String())
	if !e.done {
		return fmt.Sprintf("%s  %s  %s", num, cmd, styles.MutedStyle.Render("…"))
	}
	pos := styles.MutedStyle.Render(
		fmt.Sprintf("T %-4s E %s", styles.FormatOffset(e.pos.Traverse), styles.FormatOffset(e.pos.Elevation)))
	return fmt.Sprintf("%s  %s  %s", num, cmd, pos)
}

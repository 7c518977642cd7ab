// Package stopmenu provides the interrupt menu shown when the operator
// presses Esc during a run. The run keeps going behind the overlay;
// only Restart and Back to setup stop it.
package stopmenu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zerodrill/zerodrill/internal/ui/styles"
)

// Option represents an interrupt menu option.
type Option int

const (
	OptionResume Option = iota
	OptionRestart
	OptionSetup
)

// optionLabels maps options to their display labels.
var optionLabels = map[Option]string{
	OptionResume:  "Resume run",
	OptionRestart: "Restart drill",
	OptionSetup:   "Back to setup",
}

// SelectMsg is sent when an option is selected.
type SelectMsg struct {
	Option Option
}

// CancelMsg is sent when the menu is dismissed.
type CancelMsg struct{}

// Model holds the interrupt menu state.
type Model struct {
	selected       Option
	viewportWidth  int
	viewportHeight int
}

// New creates an interrupt menu with the resume option selected.
func New() Model {
	return Model{
		selected: OptionResume,
	}
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down", "ctrl+n":
			if m.selected < OptionSetup {
				m.selected++
			}
		case "k", "up", "ctrl+p":
			if m.selected > OptionResume {
				m.selected--
			}
		case "enter":
			return m, func() tea.Msg {
				return SelectMsg{Option: m.selected}
			}
		case "esc":
			return m, func() tea.Msg {
				return CancelMsg{}
			}
		}
	}
	return m, nil
}

// View renders the menu box (without positioning).
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.AccentColor).
		PaddingLeft(1)

	width := 25

	var options strings.Builder
	for i := OptionResume; i <= OptionSetup; i++ {
		var line string
		if i == m.selected {
			labelStyle := lipgloss.NewStyle().Bold(true)
			line = styles.HelpKeyStyle.Render(">") + labelStyle.Render(" "+optionLabels[i])
		} else {
			line = "  " + optionLabels[i]
		}
		options.WriteString(line)
		if i < OptionSetup {
			options.WriteString("\n")
		}
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderFocusColor).
		Width(width)

	dividerStyle := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)
	divider := dividerStyle.Render(strings.Repeat("─", width))
	content := titleStyle.Render("Run interrupted") + "\n" +
		divider + "\n" +
		options.String()

	return boxStyle.Render(content)
}

// Overlay renders the menu centered in the viewport.
func (m Model) Overlay() string {
	return lipgloss.Place(
		m.viewportWidth, m.viewportHeight,
		lipgloss.Center, lipgloss.Center,
		m.View(),
	)
}

// Selected returns the currently selected option.
func (m Model) Selected() Option {
	return m.selected
}

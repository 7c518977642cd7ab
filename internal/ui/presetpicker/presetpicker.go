// Package presetpicker provides preset selection UI for the setup screen.
package presetpicker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zerodrill/zerodrill/internal/preset"
	"github.com/zerodrill/zerodrill/internal/ui/styles"
)

// Model holds the preset picker state.
type Model struct {
	// Available presets, registry order.
	presets []preset.Preset

	// Current state
	active       bool   // Whether picker is showing
	query        string // Filter query
	filtered     []preset.Preset
	cursor       int // Selected item in filtered list
	maxVisible   int // Max items to show before scrolling
	scrollOffset int // First visible item index
}

// New creates a new preset picker model.
func New() Model {
	return Model{
		presets:    make([]preset.Preset, 0),
		filtered:   make([]preset.Preset, 0),
		maxVisible: 6,
	}
}

// IsActive returns whether the picker is currently showing.
func (m Model) IsActive() bool {
	return m.active
}

// PresetCount returns the number of available presets.
func (m Model) PresetCount() int {
	return len(m.presets)
}

// Selected returns the currently selected preset, or nil if none.
func (m Model) Selected() *preset.Preset {
	if !m.active || len(m.filtered) == 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	return &m.filtered[m.cursor]
}

// Activate opens the picker with the given presets.
func (m Model) Activate(presets []preset.Preset) Model {
	m.presets = presets
	m.active = true
	m.query = ""
	m.cursor = 0
	m.scrollOffset = 0
	m = m.updateFilter()
	return m
}

// Deactivate closes the picker.
func (m Model) Deactivate() Model {
	m.active = false
	m.query = ""
	m.cursor = 0
	m.scrollOffset = 0
	m.filtered = nil
	return m
}

// updateFilter filters presets by name, description, and source.
func (m Model) updateFilter() Model {
	query := strings.ToLower(m.query)

	m.filtered = make([]preset.Preset, 0, len(m.presets))
	for _, p := range m.presets {
		nameLower := strings.ToLower(p.Name)
		descLower := strings.ToLower(p.Description)
		if query == "" || strings.Contains(nameLower, query) ||
			strings.Contains(descLower, query) ||
			strings.Contains(p.Source.String(), query) {
			m.filtered = append(m.filtered, p)
		}
	}

	// Reset cursor if out of bounds
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
		m.scrollOffset = 0
	}

	return m
}

// Next moves to the next item.
func (m Model) Next() Model {
	if len(m.filtered) == 0 {
		return m
	}
	m.cursor = (m.cursor + 1) % len(m.filtered)
	m = m.ensureVisible()
	return m
}

// Prev moves to the previous item.
func (m Model) Prev() Model {
	if len(m.filtered) == 0 {
		return m
	}
	m.cursor = (m.cursor - 1 + len(m.filtered)) % len(m.filtered)
	m = m.ensureVisible()
	return m
}

// ensureVisible ensures the cursor is visible within the scroll window.
func (m Model) ensureVisible() Model {
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+m.maxVisible {
		m.scrollOffset = m.cursor - m.maxVisible + 1
	}
	return m
}

// HandleKey processes key events during picker display. Printable runes
// feed the filter query, so navigation sticks to non-rune bindings.
// Returns (updated model, consumed bool, selected preset if enter pressed).
func (m Model) HandleKey(msg tea.KeyMsg) (Model, bool, *preset.Preset) {
	if !m.active {
		return m, false, nil
	}

	switch msg.String() {
	case "ctrl+n", "down":
		return m.Next(), true, nil
	case "ctrl+p", "up":
		return m.Prev(), true, nil
	case "enter":
		selected := m.Selected()
		if selected != nil {
			return m.Deactivate(), true, selected
		}
		return m, true, nil
	case "esc":
		return m.Deactivate(), true, nil
	case "backspace":
		if m.query != "" {
			m.query = m.query[:len(m.query)-1]
			m = m.updateFilter()
		}
		return m, true, nil
	}

	if msg.Type == tea.KeyRunes && !msg.Alt {
		m.query += string(msg.Runes)
		m = m.updateFilter()
		return m, true, nil
	}

	return m, false, nil
}

// View renders the preset picker popup.
func (m Model) View(maxWidth int) string {
	if !m.active || len(m.presets) == 0 {
		return ""
	}

	// Calculate visible items
	visibleCount := min(m.maxVisible, len(m.filtered))
	endIdx := min(m.scrollOffset+visibleCount, len(m.filtered))

	// Column widths
	nameWidth := 14
	specWidth := 14 // "20 cmd @ 750ms"
	sourceWidth := 8
	// Description gets remaining space minus separators, padding, and border
	// Layout: " name │ spec │ source │ desc " with border
	fixedWidth := 1 + nameWidth + 3 + specWidth + 3 + sourceWidth + 3 + 1 + 2
	descWidth := max(maxWidth-fixedWidth, 10)

	// Total inner width (without border)
	innerWidth := maxWidth - 2

	// Styles
	normalStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimaryColor).
		Width(innerWidth)
	selectedStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimaryColor).
		Background(styles.SelectionBackgroundColor).
		Width(innerWidth)
	mutedStyle := lipgloss.NewStyle().
		Foreground(styles.TextMutedColor)

	var lines []string
	if m.query != "" {
		lines = append(lines, mutedStyle.Render(" filter: "+m.query))
	}
	if len(m.filtered) == 0 {
		lines = append(lines, mutedStyle.Render(" no matching presets"))
	}

	for i := m.scrollOffset; i < endIdx; i++ {
		p := m.filtered[i]

		name := styles.TruncateString(p.Name, nameWidth)
		spec := fmt.Sprintf("%d cmd @ %s", p.CommandCount, styles.FormatInterval(p.Interval.Std()))
		spec = styles.TruncateString(spec, specWidth)
		desc := styles.TruncateString(strings.Split(p.Description, "\n")[0], descWidth)

		// Row: " name │ spec │ source │ desc " (highlight shows selection)
		row := fmt.Sprintf(" %-*s │ %-*s │ %-*s │ %-*s ",
			nameWidth, name,
			specWidth, spec,
			sourceWidth, p.Source,
			descWidth, desc)

		if i == m.cursor {
			lines = append(lines, selectedStyle.Render(row))
		} else {
			lines = append(lines, normalStyle.Render(row))
		}
	}

	// Add scroll indicator if needed
	if len(m.filtered) > m.maxVisible {
		scrollInfo := fmt.Sprintf(" %d-%d of %d presets",
			m.scrollOffset+1,
			min(m.scrollOffset+m.maxVisible, len(m.filtered)),
			len(m.filtered))
		lines = append(lines, mutedStyle.Render(scrollInfo))
	}

	content := strings.Join(lines, "\n")

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderDefaultColor)

	return borderStyle.Render(content)
}

// Package helpview renders the embedded help text in a scrollable pane.
package helpview

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zerodrill/zerodrill/internal/ui/styles"
)

//go:embed help.md
var helpMarkdown string

// Model holds the help pane state.
type Model struct {
	vp        viewport.Model
	width     int
	height    int
	lastWidth int
}

// New creates the help pane.
func New() Model {
	return Model{}
}

// SetSize updates the pane dimensions and re-renders the markdown when
// the width changed.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.vp.Width = max(width-2, 1)
	m.vp.Height = max(height-2, 1)
	if width != m.lastWidth {
		m.vp.SetContent(renderMarkdown(m.vp.Width))
		m.vp.GotoTop()
		m.lastWidth = width
	}
	return m
}

// Update forwards scroll keys and wheel events to the viewport.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View renders the bordered pane.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	return styles.PaneBorder(m.vp.View(), "Help", m.scrollStatus(), m.width, m.height, true)
}

func (m Model) scrollStatus() string {
	if m.vp.TotalLineCount() <= m.vp.Height {
		return ""
	}
	return fmt.Sprintf("%d%%", int(m.vp.ScrollPercent()*100))
}

// renderMarkdown styles the help text for the terminal. A renderer
// failure falls back to wrapped plain markdown.
func renderMarkdown(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return wordwrap.String(helpMarkdown, width)
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return wordwrap.String(helpMarkdown, width)
	}
	return strings.TrimRight(out, "\n")
}

// Package grid renders the traverse and elevation reticle plot.
package grid

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zerodrill/zerodrill/internal/drill"
	"github.com/zerodrill/zerodrill/internal/ui/styles"
)

// Plot glyphs. Each logical cell is one glyph plus one filler column, so
// the plot reads roughly square in a terminal's 2:1 cell aspect.
const (
	markerGlyph = "●"
	centerGlyph = "┼"
	vertGlyph   = "│"
	horizGlyph  = "─"
	tickGlyph   = "·"
)

// tickEvery spaces the background dot lattice, in cells.
const tickEvery = 5

// Model holds the reticle plot state. The plot covers ±bound clicks on
// both axes and degrades by sampling when the bound exceeds the cells the
// pane can show.
type Model struct {
	bound  int
	pos    drill.Position
	width  int
	height int
}

// New creates a reticle plot for the given bound.
func New(bound int) Model {
	return Model{bound: max(bound, 1)}
}

// SetSize updates the drawing area.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// SetBound replaces the per-axis bound.
func (m Model) SetBound(bound int) Model {
	m.bound = max(bound, 1)
	return m
}

// SetPosition moves the sight marker.
func (m Model) SetPosition(pos drill.Position) Model {
	m.pos = pos
	return m
}

// Position returns the marker position in clicks.
func (m Model) Position() drill.Position {
	return m.pos
}

// View renders the plot centered in the drawing area.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	half := m.half()
	if half < 1 {
		return ""
	}

	mt := m.scale(m.pos.Traverse, half)
	me := m.scale(m.pos.Elevation, half)

	axisStyle := lipgloss.NewStyle().Foreground(styles.GridLineColor)
	tickStyle := lipgloss.NewStyle().Faint(true).Foreground(styles.GridLineColor)
	markerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.MarkerColor)

	rows := make([]string, 0, 2*half+1)
	for e := half; e >= -half; e-- {
		var b strings.Builder
		for t := -half; t <= half; t++ {
			switch {
			case t == mt && e == me:
				b.WriteString(markerStyle.Render(markerGlyph))
			case t == 0 && e == 0:
				b.WriteString(axisStyle.Render(centerGlyph))
			case e == 0:
				b.WriteString(axisStyle.Render(horizGlyph))
			case t == 0:
				b.WriteString(axisStyle.Render(vertGlyph))
			case t%tickEvery == 0 && e%tickEvery == 0:
				b.WriteString(tickStyle.Render(tickGlyph))
			default:
				b.WriteString(" ")
			}
			// Filler column between cells; the horizontal axis runs
			// through it.
			if t < half {
				if e == 0 {
					b.WriteString(axisStyle.Render(horizGlyph))
				} else {
					b.WriteString(" ")
				}
			}
		}
		rows = append(rows, b.String())
	}

	plot := strings.Join(rows, "\n")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, plot)
}

// half returns the plot radius in cells: the largest radius the drawing
// area can hold, capped at the bound for 1:1 click mapping.
func (m Model) half() int {
	half := min((m.height-1)/2, (m.width-1)/4)
	if m.bound < half {
		half = m.bound
	}
	return half
}

// scale maps a click offset onto the cell radius. Below the cap the
// mapping is 1:1; above it positions are sampled proportionally.
func (m Model) scale(v, half int) int {
	if m.bound <= half {
		return v
	}
	return int(math.Round(float64(v) * float64(half) / float64(m.bound)))
}

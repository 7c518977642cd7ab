// Package styles contains Lip Gloss style definitions.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// PaneBorder frames content in a rounded border sized exactly width by
// height cells. The title is woven into the top edge on the left and the
// status on the right; either may be empty. Content is clipped and padded
// to fit. Focused panes draw the border in the focus color.
//
// Format: ╭─ Title ──────────── status ─╮
func PaneBorder(content, title, status string, width, height int, focused bool) string {
	borderColor := BorderDefaultColor
	if focused {
		borderColor = BorderFocusColor
	}
	border := lipgloss.NewStyle().Foreground(borderColor)

	innerWidth := max(width-2, 1)
	innerHeight := max(height-2, 1)

	top := topEdge(title, status, innerWidth, border)
	bottom := border.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight)

	// lipgloss handles wrapping and truncation of the body.
	body := lipgloss.NewStyle().Width(innerWidth).Height(innerHeight).Render(content)
	bodyLines := strings.Split(body, "\n")

	var b strings.Builder
	b.WriteString(top)
	b.WriteString("\n")
	for i := range innerHeight {
		var line string
		if i < len(bodyLines) {
			line = bodyLines[i]
		}
		// Pad to innerWidth so the right border aligns.
		if pad := innerWidth - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		b.WriteString(border.Render(borderVertical))
		b.WriteString(line)
		b.WriteString(border.Render(borderVertical))
		b.WriteString("\n")
	}
	b.WriteString(bottom)

	return b.String()
}

// topEdge builds the top border line. Too-narrow edges shed the status
// first, then truncate the title, then fall back to a plain edge.
func topEdge(title, status string, innerWidth int, border lipgloss.Style) string {
	plain := border.Render(borderTopLeft + strings.Repeat(borderHorizontal, max(innerWidth, 0)) + borderTopRight)
	if innerWidth < 4 || (title == "" && status == "") {
		return plain
	}

	titleWidth := lipgloss.Width(title)
	statusWidth := lipgloss.Width(status)

	if status != "" {
		// A bare status edge is "───── status ─"; with a title present the
		// edge also carries "─ Title " and a separating dash.
		need := statusWidth + 4
		if title != "" {
			need = titleWidth + statusWidth + 7
		}
		if innerWidth < need {
			status, statusWidth = "", 0
		}
	}
	if title != "" && titleWidth > innerWidth-4 {
		title = TruncateString(title, innerWidth-4)
		titleWidth = lipgloss.Width(title)
	}
	if title == "" && status == "" {
		return plain
	}

	var fill int
	switch {
	case title != "" && status != "":
		fill = innerWidth - titleWidth - statusWidth - 6
	case title != "":
		fill = innerWidth - titleWidth - 3
	default:
		fill = innerWidth - statusWidth - 3
	}
	fill = max(fill, 1)

	var b strings.Builder
	b.WriteString(border.Render(borderTopLeft))
	if title != "" {
		b.WriteString(border.Render(borderHorizontal + " "))
		b.WriteString(TitleStyle.Render(title))
		b.WriteString(border.Render(" "))
	}
	b.WriteString(border.Render(strings.Repeat(borderHorizontal, fill)))
	if status != "" {
		b.WriteString(border.Render(" "))
		b.WriteString(MutedStyle.Render(status))
		b.WriteString(border.Render(" " + borderHorizontal))
	}
	b.WriteString(border.Render(borderTopRight))

	return b.String()
}

// TruncateString shortens s to at most maxWidth columns, appending an
// ellipsis when anything was cut. Grapheme clusters are never split.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	budget := maxWidth - 3
	used := 0
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if used+w > budget {
			break
		}
		b.WriteString(cluster)
		used += w
	}

	return b.String() + "..."
}

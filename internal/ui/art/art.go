// Package art provides the sight reticle ASCII art shown on the setup screen.
package art

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Banner color definitions (internal to package).
var (
	reticleColor = lipgloss.Color("#54A0FF") // Blue
	titleColor   = lipgloss.Color("#FECA57") // Yellow
	ruleColor    = lipgloss.Color("#CCCCCC") // Light
	taglineColor = lipgloss.Color("#696969") // Grey
)

// Reticle piece, rendered once per side of the wordmark.
var reticleLines = []string{
	"     │     ",
	"  ╭──┼──╮  ",
	" ╱   │   ╲ ",
	"─┼───●───┼─",
	" ╲   │   ╱ ",
	"  ╰──┼──╯  ",
	"     │     ",
}

// BuildBanner constructs the colored banner: a reticle on each side of the
// wordmark, joined horizontally with the wordmark centered vertically.
func BuildBanner() string {
	reticleStyle := lipgloss.NewStyle().Foreground(reticleColor)
	reticle := renderLines(reticleLines, reticleStyle)

	wordmark := lipgloss.JoinVertical(
		lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Foreground(titleColor).Render("Z E R O D R I L L"),
		lipgloss.NewStyle().Foreground(ruleColor).Render(strings.Repeat("─", 25)),
		lipgloss.NewStyle().Foreground(taglineColor).Render("traverse & elevation trainer"),
	)

	gap := strings.Repeat(" ", 3)

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		reticle,
		gap,
		wordmark,
		gap,
		reticle,
	)
}

// renderLines joins lines with newlines and applies a style.
func renderLines(lines []string, style lipgloss.Style) string {
	return style.Render(strings.Join(lines, "\n"))
}

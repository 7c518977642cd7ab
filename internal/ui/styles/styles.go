// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette. Every color carries a light and a dark variant; lipgloss picks
// one at render time from the active background setting (see ApplyMode).
var (
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1A1A2E", Dark: "#EAEAEA"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#4A4A68", Dark: "#B8B8C8"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#9090A8", Dark: "#696969"}

	AccentColor  = lipgloss.AdaptiveColor{Light: "#2E86DE", Dark: "#54A0FF"}
	CommandColor = lipgloss.AdaptiveColor{Light: "#5F3DC4", Dark: "#7D56F4"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#10AC84", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#EE5253", Dark: "#FF6B6B"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#C8C8D8", Dark: "#3A3A4A"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#2E86DE", Dark: "#54A0FF"}

	SelectionBackgroundColor = lipgloss.AdaptiveColor{Light: "#D8E2FA", Dark: "#32324E"}

	// Reticle plot colors. Traverse is the horizontal axis, elevation the
	// vertical one.
	GridLineColor  = lipgloss.AdaptiveColor{Light: "#B0B0C0", Dark: "#44445A"}
	TraverseColor  = lipgloss.AdaptiveColor{Light: "#2E86DE", Dark: "#54A0FF"}
	ElevationColor = lipgloss.AdaptiveColor{Light: "#10AC84", Dark: "#73F59F"}
	MarkerColor    = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FECA57"}
)

var (
	// TitleStyle renders pane and screen headings.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)

	// SubtitleStyle renders field labels and secondary headings.
	SubtitleStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)

	// MutedStyle renders hints, footers, and other low-emphasis text.
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// ErrorTextStyle renders validation and failure text.
	ErrorTextStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)

	// NoticeStyle renders advisory text, like the odd-count rounding note.
	NoticeStyle = lipgloss.NewStyle().Foreground(StatusWarningColor)

	// SuccessStyle renders positive outcomes.
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(StatusSuccessColor)

	// CommandStyle renders the command currently being called out.
	CommandStyle = lipgloss.NewStyle().Bold(true).Foreground(CommandColor)

	// HelpKeyStyle and HelpDescStyle render key binding hints.
	HelpKeyStyle  = lipgloss.NewStyle().Foreground(AccentColor)
	HelpDescStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Button styles for the setup form and menus.
	PrimaryButtonStyle = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1A1A2E"}).
				Background(AccentColor).Padding(0, 2)
	SecondaryButtonStyle = lipgloss.NewStyle().
				Foreground(TextSecondaryColor).Padding(0, 2)
	DangerButtonStyle = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1A1A2E"}).
				Background(StatusErrorColor).Padding(0, 2)
)

package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ApplyMode pins the palette variant. "dark" and "light" force the matching
// variant; the empty mode keeps whatever the terminal background reports.
func ApplyMode(mode string) error {
	switch mode {
	case "":
		lipgloss.SetHasDarkBackground(termenv.HasDarkBackground())
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	default:
		return fmt.Errorf("unknown ui mode %q (want dark, light, or empty)", mode)
	}
	return nil
}

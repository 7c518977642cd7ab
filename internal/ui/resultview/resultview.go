// Package resultview renders the end-of-run pane: the verdict, the final
// position, and run statistics, with a plain-text summary copy on "y".
package resultview

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zerodrill/zerodrill/internal/drill"
	"github.com/zerodrill/zerodrill/internal/mode/shared"
	"github.com/zerodrill/zerodrill/internal/ui/styles"
)

// Summary captures one finished run.
type Summary struct {
	RunID    string
	Final    drill.Position
	Commands int
	Interval time.Duration
	Elapsed  time.Duration
	Preset   string
}

// Model holds the result pane state.
type Model struct {
	clip shared.Clipboard
	sum  Summary
	have bool

	notice    string
	noticeErr bool

	width  int
	height int
}

// New creates a result pane that copies summaries through clip.
func New(clip shared.Clipboard) Model {
	return Model{clip: clip}
}

// SetResult installs a finished run and clears any prior notice.
func (m Model) SetResult(sum Summary) Model {
	m.sum = sum
	m.have = true
	m.notice = ""
	m.noticeErr = false
	return m
}

// SetSize updates the pane dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Update handles the copy key. Run control keys are the caller's.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.have {
		return m, nil
	}
	if key.String() == "y" {
		if err := m.clip.Copy(m.summaryText()); err != nil {
			m.notice = "copy failed: " + err.Error()
			m.noticeErr = true
		} else {
			m.notice = "summary copied"
			m.noticeErr = false
		}
	}
	return m, nil
}

// View renders the bordered pane.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 || !m.have {
		return ""
	}

	innerWidth := max(m.width-2, 1)
	innerHeight := max(m.height-2, 1)

	lines := []string{
		m.renderVerdict(),
		"",
		m.renderFinal(),
		"",
	}
	lines = append(lines, m.renderStats()...)
	if m.notice != "" {
		style := styles.NoticeStyle
		if m.noticeErr {
			style = styles.ErrorTextStyle
		}
		lines = append(lines, "", style.Render(m.notice))
	}
	lines = append(lines, "", m.renderHints(innerWidth))

	body := lipgloss.Place(innerWidth, innerHeight, lipgloss.Center, lipgloss.Center,
		strings.Join(lines, "\n"))
	return styles.PaneBorder(body, "Result", "", m.width, m.height, true)
}

func (m Model) renderVerdict() string {
	if m.sum.Final.IsZero() {
		return styles.SuccessStyle.Render("ON ZERO")
	}
	off := abs(m.sum.Final.Traverse) + abs(m.sum.Final.Elevation)
	noun := "clicks"
	if off == 1 {
		noun = "click"
	}
	return styles.ErrorTextStyle.Render(fmt.Sprintf("OFF ZERO by %d %s", off, noun))
}

func (m Model) renderFinal() string {
	t := lipgloss.NewStyle().Foreground(styles.TraverseColor).
		Render("T " + styles.FormatOffset(m.sum.Final.Traverse))
	e := lipgloss.NewStyle().Foreground(styles.ElevationColor).
		Render("E " + styles.FormatOffset(m.sum.Final.Elevation))
	return t + "  " + e
}

func (m Model) renderStats() []string {
	stats := []string{
		fmt.Sprintf("%d commands at %s", m.sum.Commands, styles.FormatInterval(m.sum.Interval)),
		fmt.Sprintf("elapsed %.1fs", m.sum.Elapsed.Seconds()),
	}
	if m.sum.Preset != "" {
		stats = append(stats, "preset "+m.sum.Preset)
	}
	stats = append(stats, "run "+shortID(m.sum.RunID))
	for i, s := range stats {
		stats[i] = styles.SubtitleStyle.Render(s)
	}
	return stats
}

func (m Model) renderHints(width int) string {
	hints := []string{
		styles.HelpKeyStyle.Render("y") + " " + styles.HelpDescStyle.Render("copy summary"),
		styles.HelpKeyStyle.Render("r") + " " + styles.HelpDescStyle.Render("run again"),
		styles.HelpKeyStyle.Render("s") + " " + styles.HelpDescStyle.Render("setup"),
		styles.HelpKeyStyle.Render("q") + " " + styles.HelpDescStyle.Render("quit"),
	}
	return wordwrap.String(strings.Join(hints, "   "), width)
}

// summaryText is the plain-text form placed on the clipboard.
func (m Model) summaryText() string {
	verdict := "on zero"
	if !m.sum.Final.IsZero() {
		verdict = fmt.Sprintf("off zero by %d", abs(m.sum.Final.Traverse)+abs(m.sum.Final.Elevation))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "zerodrill run %s\n", shortID(m.sum.RunID))
	fmt.Fprintf(&b, "verdict: %s\n", verdict)
	fmt.Fprintf(&b, "final: %s\n", m.sum.Final)
	fmt.Fprintf(&b, "commands: %d at %s\n", m.sum.Commands, styles.FormatInterval(m.sum.Interval))
	fmt.Fprintf(&b, "elapsed: %.1fs\n", m.sum.Elapsed.Seconds())
	if m.sum.Preset != "" {
		fmt.Fprintf(&b, "preset: %s\n", m.sum.Preset)
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Package setupform provides the drill parameter form shown before a run.
package setupform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zerodrill/zerodrill/internal/config"
	"github.com/zerodrill/zerodrill/internal/drill"
	"github.com/zerodrill/zerodrill/internal/preset"
	"github.com/zerodrill/zerodrill/internal/speech"
	"github.com/zerodrill/zerodrill/internal/ui/styles"
)

// Field identifies a focusable element of the form, in display order.
type Field int

const (
	FieldCount Field = iota
	FieldClickValues
	FieldBound
	FieldInterval
	FieldCues
	FieldManualRate
	FieldRate
	FieldStart
)

// fieldZones are the bubblezone ids, prefixed to stay unique app-wide.
var fieldZones = map[Field]string{
	FieldCount:       "setup.count",
	FieldClickValues: "setup.values",
	FieldBound:       "setup.bound",
	FieldInterval:    "setup.interval",
	FieldCues:        "setup.cues",
	FieldManualRate:  "setup.manualrate",
	FieldRate:        "setup.rate",
	FieldStart:       "setup.start",
}

const labelWidth = 14

// StartMsg is sent when the operator submits a valid form.
type StartMsg struct {
	Drill config.DrillConfig
	Cue   config.CueConfig
}

// Model holds the setup form state.
type Model struct {
	inputs     [5]textinput.Model
	cues       bool
	manualRate bool
	fallback   bool

	focus  Field
	errs   map[Field]string
	notice string

	width int
}

// inputIndex maps text fields to their slot in inputs; -1 for toggles and
// the start button.
func inputIndex(f Field) int {
	switch f {
	case FieldCount:
		return 0
	case FieldClickValues:
		return 1
	case FieldBound:
		return 2
	case FieldInterval:
		return 3
	case FieldRate:
		return 4
	}
	return -1
}

// New creates a setup form seeded from cfg.
func New(cfg config.Config) Model {
	m := Model{errs: map[Field]string{}}

	placeholders := [5]string{"10", "1, 2, 5", "25", "1s", "2.0"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 32
		ti.Width = 16
		ti.Placeholder = placeholders[i]
		m.inputs[i] = ti
	}

	m = m.SetConfig(cfg)
	m.focus = FieldCount
	m.inputs[inputIndex(FieldCount)].Focus()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetConfig reseeds every field from cfg and drops transient errors. The
// trainer calls this when the config file reloads while configuring.
func (m Model) SetConfig(cfg config.Config) Model {
	m.inputs[inputIndex(FieldCount)].SetValue(strconv.Itoa(cfg.Drill.CommandCount))
	m.inputs[inputIndex(FieldClickValues)].SetValue(styles.FormatClickValues(cfg.Drill.ClickValues))
	m.inputs[inputIndex(FieldBound)].SetValue(strconv.Itoa(cfg.Drill.Bound))
	m.inputs[inputIndex(FieldInterval)].SetValue(styles.FormatInterval(cfg.Drill.Interval))
	m.inputs[inputIndex(FieldRate)].SetValue(strconv.FormatFloat(cfg.Cue.Rate, 'f', 1, 64))
	m.cues = cfg.Cue.Enabled
	m.manualRate = cfg.Cue.ManualRate
	m.fallback = cfg.Drill.OrderingFallback
	m.errs = map[Field]string{}
	m.notice = m.roundingNotice()
	return m
}

// ApplyPreset fills the drill fields from p, leaving cue settings alone.
func (m Model) ApplyPreset(p preset.Preset) Model {
	m.inputs[inputIndex(FieldCount)].SetValue(strconv.Itoa(p.CommandCount))
	m.inputs[inputIndex(FieldClickValues)].SetValue(styles.FormatClickValues(p.ClickValues))
	m.inputs[inputIndex(FieldBound)].SetValue(strconv.Itoa(p.Bound))
	m.inputs[inputIndex(FieldInterval)].SetValue(styles.FormatInterval(p.Interval.Std()))
	m.errs = map[Field]string{}
	m.notice = m.roundingNotice()
	return m
}

// SetSize updates the drawing width.
func (m Model) SetSize(width int) Model {
	m.width = width
	inputWidth := min(20, max(8, width-labelWidth-10))
	for i := range m.inputs {
		m.inputs[i].Width = inputWidth
	}
	return m
}

// Focused returns the field holding focus.
func (m Model) Focused() Field {
	return m.focus
}

// Notice returns the advisory line, empty when none applies.
func (m Model) Notice() string {
	return m.notice
}

// Err returns the validation message for a field, empty when valid.
func (m Model) Err(f Field) string {
	return m.errs[f]
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		onToggle := m.focus == FieldCues || m.focus == FieldManualRate
		switch {
		case key == "tab" || key == "down":
			return m.focusField(m.nextField())
		case key == "shift+tab" || key == "up":
			return m.focusField(m.prevField())
		case key == "enter" && m.focus == FieldStart:
			return m.submit()
		case (key == "enter" || key == " ") && onToggle:
			return m.toggle(m.focus)
		case key == "enter":
			return m.focusField(m.nextField())
		}
		if i := inputIndex(m.focus); i >= 0 {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			m.errs = m.validateAll(false)
			m.notice = m.roundingNotice()
			return m, cmd
		}

	case tea.MouseMsg:
		return m.click(msg)
	}
	return m, nil
}

// View renders the form.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.textRow(FieldCount, "Commands"))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(strings.Repeat(" ", labelWidth+2))
		b.WriteString(styles.NoticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.textRow(FieldClickValues, "Click values"))
	b.WriteString("\n")
	b.WriteString(m.textRow(FieldBound, "Bound"))
	b.WriteString("\n")
	b.WriteString(m.textRow(FieldInterval, "Interval"))
	b.WriteString("\n\n")
	b.WriteString(m.toggleRow(FieldCues, "Voice cues", m.cues))
	b.WriteString("\n")
	b.WriteString(m.toggleRow(FieldManualRate, "Manual rate", m.manualRate))
	b.WriteString("\n")
	b.WriteString(m.rateRow())
	b.WriteString("\n\n")

	label := " Start drill "
	btn := styles.SecondaryButtonStyle.Render(label)
	if m.focus == FieldStart {
		btn = styles.PrimaryButtonStyle.Render(label)
	}
	b.WriteString("  ")
	b.WriteString(zone.Mark(fieldZones[FieldStart], btn))

	return b.String()
}

func (m Model) textRow(f Field, label string) string {
	row := m.indicator(f) + m.label(f, label) + m.inputs[inputIndex(f)].View()
	if msg, ok := m.errs[f]; ok {
		row += "  " + styles.ErrorTextStyle.Render(msg)
	}
	return zone.Mark(fieldZones[f], row)
}

func (m Model) toggleRow(f Field, label string, on bool) string {
	box := "[ ]"
	if on {
		box = "[x]"
	}
	row := m.indicator(f) + m.label(f, label) + box
	return zone.Mark(fieldZones[f], row)
}

func (m Model) rateRow() string {
	if !m.manualRate {
		row := "  " + styles.MutedStyle.Width(labelWidth).Render("Rate") +
			styles.MutedStyle.Render("auto (follows interval)")
		return zone.Mark(fieldZones[FieldRate], row)
	}
	return m.textRow(FieldRate, "Rate")
}

func (m Model) indicator(f Field) string {
	if m.focus == f {
		return styles.HelpKeyStyle.Render("> ")
	}
	return "  "
}

func (m Model) label(f Field, text string) string {
	style := styles.SubtitleStyle
	if m.focus == f {
		style = styles.TitleStyle
	}
	return style.Width(labelWidth).Render(text)
}

func (m Model) focusField(f Field) (Model, tea.Cmd) {
	if i := inputIndex(m.focus); i >= 0 {
		m.inputs[i].Blur()
	}
	m.focus = f
	if i := inputIndex(f); i >= 0 {
		return m, m.inputs[i].Focus()
	}
	return m, nil
}

func (m Model) nextField() Field {
	f := m.focus + 1
	if f > FieldStart {
		f = FieldCount
	}
	if f == FieldRate && !m.manualRate {
		f++
	}
	return f
}

func (m Model) prevField() Field {
	f := m.focus
	if f == FieldCount {
		f = FieldStart
	} else {
		f--
	}
	if f == FieldRate && !m.manualRate {
		f--
	}
	return f
}

func (m Model) toggle(f Field) (Model, tea.Cmd) {
	switch f {
	case FieldCues:
		m.cues = !m.cues
	case FieldManualRate:
		m.manualRate = !m.manualRate
		if !m.manualRate {
			delete(m.errs, FieldRate)
			if m.focus == FieldRate {
				return m.focusField(FieldStart)
			}
		}
	}
	return m, nil
}

func (m Model) click(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for f := FieldCount; f <= FieldStart; f++ {
		if f == FieldRate && !m.manualRate {
			continue
		}
		if !zone.Get(fieldZones[f]).InBounds(msg) {
			continue
		}
		switch f {
		case FieldCues, FieldManualRate:
			m, _ = m.focusField(f)
			return m.toggle(f)
		case FieldStart:
			m, _ = m.focusField(f)
			return m.submit()
		default:
			return m.focusField(f)
		}
	}
	return m, nil
}

func (m Model) submit() (Model, tea.Cmd) {
	m.errs = m.validateAll(true)
	m.notice = m.roundingNotice()
	if len(m.errs) > 0 {
		return m, nil
	}

	d, c := m.build()
	return m, func() tea.Msg {
		return StartMsg{Drill: d, Cue: c}
	}
}

// build assembles the configs from the inputs. Only called after a strict
// validation pass.
func (m Model) build() (config.DrillConfig, config.CueConfig) {
	count, _, _ := m.intField(FieldCount)
	values, _, _ := m.valuesField()
	bound, _, _ := m.intField(FieldBound)
	interval, _, _ := m.durationField()
	rate, rateSet, _ := m.floatField()
	if !rateSet {
		rate = config.Defaults().Cue.Rate
	}

	d := config.DrillConfig{
		CommandCount:     count,
		ClickValues:      values,
		Bound:            bound,
		Interval:         interval,
		OrderingFallback: m.fallback,
	}
	c := config.CueConfig{
		Enabled:    m.cues,
		ManualRate: m.manualRate,
		Rate:       rate,
	}
	return d, c
}

// validateAll recomputes per-field errors. In the relaxed pass empty
// fields stay silent so the operator can type; the strict pass flags them.
func (m Model) validateAll(strict bool) map[Field]string {
	errs := map[Field]string{}

	count, countSet, err := m.intField(FieldCount)
	switch {
	case err != nil:
		errs[FieldCount] = "not a number"
	case countSet && count < 2:
		errs[FieldCount] = "at least 2 commands"
	case strict && !countSet:
		errs[FieldCount] = "required"
	}

	bound, boundSet, err := m.intField(FieldBound)
	switch {
	case err != nil:
		errs[FieldBound] = "not a number"
	case strict && !boundSet:
		errs[FieldBound] = "required"
	}

	values, valuesSet, err := m.valuesField()
	switch {
	case err != nil:
		errs[FieldClickValues] = "not numbers"
	case strict && !valuesSet:
		errs[FieldClickValues] = "required"
	}

	if valuesSet && boundSet && errs[FieldClickValues] == "" && errs[FieldBound] == "" {
		gc := drill.GenerationConfig{CommandCount: count, ClickValues: values, Bound: bound}
		var infeasible *drill.InfeasibleConfigError
		if gcErr := gc.Validate(); errors.As(gcErr, &infeasible) {
			switch {
			case infeasible.Bound <= 0:
				errs[FieldBound] = "bound must be positive"
			case infeasible.Empty:
				errs[FieldClickValues] = "list at least one click value"
			case infeasible.ClickValue <= 0:
				errs[FieldClickValues] = "clicks must be positive"
			default:
				errs[FieldClickValues] = fmt.Sprintf("%d exceeds bound %d",
					infeasible.ClickValue, infeasible.Bound)
			}
		}
	} else if boundSet && errs[FieldBound] == "" && bound < 1 {
		errs[FieldBound] = "bound must be positive"
	}

	interval, intervalSet, err := m.durationField()
	switch {
	case err != nil:
		errs[FieldInterval] = "use 700ms or 1.5s"
	case intervalSet && interval <= 0:
		errs[FieldInterval] = "must be positive"
	case strict && !intervalSet:
		errs[FieldInterval] = "required"
	}

	if m.manualRate {
		rate, rateSet, err := m.floatField()
		switch {
		case err != nil:
			errs[FieldRate] = "not a number"
		case rateSet && (rate < speech.MinRate || rate > speech.MaxRate):
			errs[FieldRate] = fmt.Sprintf("between %.1f and %.1f", speech.MinRate, speech.MaxRate)
		case strict && !rateSet:
			errs[FieldRate] = "required"
		}
	}

	return errs
}

func (m Model) roundingNotice() string {
	count, set, err := m.intField(FieldCount)
	if err != nil || !set || count < 2 || count%2 == 0 {
		return ""
	}
	gc := drill.GenerationConfig{CommandCount: count}
	return fmt.Sprintf("odd count, drill runs %d commands", gc.EffectiveCount())
}

func (m Model) fieldValue(f Field) string {
	return strings.TrimSpace(m.inputs[inputIndex(f)].Value())
}

func (m Model) intField(f Field) (int, bool, error) {
	raw := m.fieldValue(f)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	return v, true, err
}

func (m Model) valuesField() ([]int, bool, error) {
	raw := m.fieldValue(FieldClickValues)
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(parts) == 0 {
		return nil, false, nil
	}
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, true, err
		}
		values = append(values, v)
	}
	return values, true, nil
}

func (m Model) durationField() (time.Duration, bool, error) {
	raw := m.fieldValue(FieldInterval)
	if raw == "" {
		return 0, false, nil
	}
	d, err := time.ParseDuration(raw)
	return d, true, err
}

func (m Model) floatField() (float64, bool, error) {
	raw := m.fieldValue(FieldRate)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	return v, true, err
}

// Package preset provides named drill configurations, shipped with the
// binary or dropped into the user's preset directory as YAML files.
package preset

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zerodrill/zerodrill/internal/drill"
)

// Source indicates where a preset originated from.
type Source int

const (
	// SourceBuiltIn indicates a preset bundled with the application.
	SourceBuiltIn Source = iota
	// SourceUser indicates a preset from the user's preset directory.
	SourceUser
)

// String returns a human-readable representation of the Source.
func (s Source) String() string {
	switch s {
	case SourceBuiltIn:
		return "built-in"
	case SourceUser:
		return "user"
	default:
		return "unknown"
	}
}

// Duration wraps time.Duration with YAML support for forms like "1.5s".
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	td, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(td)
	return nil
}

// MarshalYAML renders the duration string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Preset is a named drill configuration.
type Preset struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	CommandCount int      `yaml:"command_count"`
	ClickValues  []int    `yaml:"click_values"`
	Bound        int      `yaml:"bound"`
	Interval     Duration `yaml:"interval"`

	// ID and Source are assigned by the registry, not the file.
	ID     string `yaml:"-"`
	Source Source `yaml:"-"`
}

// Validate reports whether the preset describes a runnable drill.
func (p Preset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("preset name is required")
	}
	if p.CommandCount < 2 {
		return fmt.Errorf("command_count must be at least 2, got %d", p.CommandCount)
	}
	if p.Interval.Std() <= 0 {
		return fmt.Errorf("interval must be positive, got %s", p.Interval.Std())
	}
	return p.GenerationConfig().Validate()
}

// GenerationConfig returns the generator parameters of the preset.
func (p Preset) GenerationConfig() drill.GenerationConfig {
	return drill.GenerationConfig{
		CommandCount: p.CommandCount,
		ClickValues:  append([]int(nil), p.ClickValues...),
		Bound:        p.Bound,
	}
}

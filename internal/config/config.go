// Package config provides configuration types and defaults for zerodrill.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zerodrill/zerodrill/internal/speech"
)

// DrillConfig holds the generation and playback parameters seeding the
// setup form.
type DrillConfig struct {
	CommandCount     int           `mapstructure:"command_count"`
	ClickValues      []int         `mapstructure:"click_values"`
	Bound            int           `mapstructure:"bound"`
	Interval         time.Duration `mapstructure:"interval"`
	OrderingFallback bool          `mapstructure:"ordering_fallback"`
}

// CueConfig holds the speech cue options.
type CueConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// ManualRate pins the speech rate to Rate instead of deriving it
	// from the command interval.
	ManualRate bool    `mapstructure:"manual_rate"`
	Rate       float64 `mapstructure:"rate"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar  bool `mapstructure:"show_status_bar"`
	ShowCommandLog bool `mapstructure:"show_command_log"`
	Mouse          bool `mapstructure:"mouse"`

	// Mode forces light or dark rendering. If empty, uses terminal
	// detection. Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// AutoReload re-reads the config file while on the setup screen.
	AutoReload         bool          `mapstructure:"auto_reload"`
	AutoReloadDebounce time.Duration `mapstructure:"auto_reload_debounce"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `mapstructure:"level"`
	// File overrides the default log location under the cache dir.
	File string `mapstructure:"file"`
}

// TraceConfig controls span export for the drill engine.
type TraceConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Endpoint is an OTLP gRPC collector address.
	Endpoint string `mapstructure:"endpoint"`
	// File receives spans when no endpoint is set; empty resolves
	// under the cache dir.
	File string `mapstructure:"file"`
}

// Config holds all configuration options for zerodrill.
type Config struct {
	Drill DrillConfig `mapstructure:"drill"`
	Cue   CueConfig   `mapstructure:"cue"`
	UI    UIConfig    `mapstructure:"ui"`
	Log   LogConfig   `mapstructure:"log"`
	Trace TraceConfig `mapstructure:"trace"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Drill: DrillConfig{
			CommandCount:     10,
			ClickValues:      []int{1, 2, 5},
			Bound:            25,
			Interval:         1 * time.Second,
			OrderingFallback: true,
		},
		Cue: CueConfig{
			Enabled:    true,
			ManualRate: false,
			Rate:       2.0,
		},
		UI: UIConfig{
			ShowStatusBar:      true,
			ShowCommandLog:     true,
			Mouse:              true,
			Mode:               "",
			AutoReload:         true,
			AutoReloadDebounce: 1 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Trace: TraceConfig{
			Enabled: false,
		},
	}
}

// ValidateDrill checks the drill parameters for errors.
func ValidateDrill(d DrillConfig) error {
	if d.CommandCount < 2 {
		return fmt.Errorf("drill.command_count must be at least 2, got %d", d.CommandCount)
	}
	if d.Bound < 1 {
		return fmt.Errorf("drill.bound must be at least 1, got %d", d.Bound)
	}
	if len(d.ClickValues) == 0 {
		return fmt.Errorf("drill.click_values must not be empty")
	}
	for i, v := range d.ClickValues {
		if v < 1 {
			return fmt.Errorf("drill.click_values[%d]: %d is not positive", i, v)
		}
		if v > d.Bound {
			return fmt.Errorf("drill.click_values[%d]: %d exceeds bound %d", i, v, d.Bound)
		}
	}
	if d.Interval <= 0 {
		return fmt.Errorf("drill.interval must be positive, got %s", d.Interval)
	}
	return nil
}

// ValidateCue checks the cue parameters for errors.
func ValidateCue(c CueConfig) error {
	if c.ManualRate && (c.Rate < speech.MinRate || c.Rate > speech.MaxRate) {
		return fmt.Errorf("cue.rate must be between %.1f and %.1f, got %g",
			speech.MinRate, speech.MaxRate, c.Rate)
	}
	return nil
}

// ValidateUI checks the interface parameters for errors.
func ValidateUI(u UIConfig) error {
	switch u.Mode {
	case "", "light", "dark":
	default:
		return fmt.Errorf("ui.mode must be \"light\", \"dark\", or empty, got %q", u.Mode)
	}
	if u.AutoReloadDebounce < 0 {
		return fmt.Errorf("ui.auto_reload_debounce must not be negative, got %s", u.AutoReloadDebounce)
	}
	return nil
}

// Validate checks the whole configuration for errors.
func Validate(c Config) error {
	if err := ValidateDrill(c.Drill); err != nil {
		return err
	}
	if err := ValidateCue(c.Cue); err != nil {
		return err
	}
	return ValidateUI(c.UI)
}

// DefaultConfigTemplate returns the default config as a YAML string
// with comments. It parses back to exactly Defaults().
func DefaultConfigTemplate() string {
	return `# Zerodrill Configuration

# Drill parameters seeding the setup screen. All of them can still be
# edited per run before starting.
drill:
  # Number of commands per drill. Odd values round up to the next even
  # number so the sequence can return to zero.
  command_count: 10

  # Click values commands draw from. Every value must be positive and
  # no larger than the bound.
  click_values: [1, 2, 5]

  # Symmetric mechanical limit per axis, in clicks. Keep it at 5 or
  # more, otherwise most click values become unusable.
  bound: 25

  # Time budget per command. The position updates halfway through and
  # the next command starts at the end.
  interval: 1s

  # Fall back to a deterministic paired layout instead of failing when
  # random ordering cannot place all commands.
  ordering_fallback: true

# Spoken command cues
cue:
  enabled: true

  # Pin the speech rate instead of speeding up with short intervals:
  # manual_rate: true
  # Rate multiplier used when manual_rate is set (0.5 to 10).
  manual_rate: false
  rate: 2.0

# UI settings
ui:
  show_status_bar: true   # Status bar at the bottom
  show_command_log: true  # Scrollback of fired commands during a run
  mouse: true             # Click support on the setup screen and menus

  # Force light or dark rendering ("" uses terminal detection):
  # mode: dark
  mode: ""

  # Re-read this file while on the setup screen
  auto_reload: true
  auto_reload_debounce: 1s

# Log file settings (debug, info, warn, error)
log:
  level: info
  # file: /path/to/zerodrill.log

# OpenTelemetry spans for generation and playback
trace:
  enabled: false
  # endpoint: localhost:4317
  # file: /path/to/trace.json
`
}

// WriteDefaultConfig creates a config file at the given path with
// default settings and comments. Creates the parent directory if it
// doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

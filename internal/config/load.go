package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Load reads the config file at path over the defaults. A missing file
// is not an error: the defaults apply unchanged. Environment variables
// prefixed ZERODRILL_ override file values, with dots replaced by
// underscores (ZERODRILL_DRILL_BOUND, ...).
func Load(path string) (Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("ZERODRILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	registerDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// registerDefaults seeds every key so environment overrides apply even
// for keys absent from the file.
func registerDefaults(v *viper.Viper, c Config) {
	v.SetDefault("drill.command_count", c.Drill.CommandCount)
	v.SetDefault("drill.click_values", c.Drill.ClickValues)
	v.SetDefault("drill.bound", c.Drill.Bound)
	v.SetDefault("drill.interval", c.Drill.Interval)
	v.SetDefault("drill.ordering_fallback", c.Drill.OrderingFallback)
	v.SetDefault("cue.enabled", c.Cue.Enabled)
	v.SetDefault("cue.manual_rate", c.Cue.ManualRate)
	v.SetDefault("cue.rate", c.Cue.Rate)
	v.SetDefault("ui.show_status_bar", c.UI.ShowStatusBar)
	v.SetDefault("ui.show_command_log", c.UI.ShowCommandLog)
	v.SetDefault("ui.mouse", c.UI.Mouse)
	v.SetDefault("ui.mode", c.UI.Mode)
	v.SetDefault("ui.auto_reload", c.UI.AutoReload)
	v.SetDefault("ui.auto_reload_debounce", c.UI.AutoReloadDebounce)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.file", c.Log.File)
	v.SetDefault("trace.enabled", c.Trace.Enabled)
	v.SetDefault("trace.endpoint", c.Trace.Endpoint)
	v.SetDefault("trace.file", c.Trace.File)
}

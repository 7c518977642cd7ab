// Package cmd wires the zerodrill command line interface.
package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/zerodrill/zerodrill/internal/config"
	"github.com/zerodrill/zerodrill/internal/log"
	"github.com/zerodrill/zerodrill/internal/mode/trainer"
	"github.com/zerodrill/zerodrill/internal/paths"
	"github.com/zerodrill/zerodrill/internal/preset"
	"github.com/zerodrill/zerodrill/internal/tracing"
	"github.com/zerodrill/zerodrill/internal/ui/styles"
)

var (
	// cfgFile is the --config flag value; cfgPath is the resolved path
	// every subcommand reads from.
	cfgFile string
	cfgPath string
	cfg     config.Config

	logLevelFlag string
	logFileFlag  string
	presetFlag   string
	seedFlag     int64
	muteFlag     bool
	noMouseFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "zerodrill",
	Short: "Traverse and elevation return-to-zero trainer",
	Long: `Zerodrill drills the "return to zero" exercise for weapon sight
traverse and elevation wheels: it calls out a balanced sequence of
click adjustments and shows whether you ended back on zero.

Run it bare for the interactive trainer, or use "zerodrill play" for
a plain-terminal drill.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	_ = log.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the rootCmd literal: setup and
	// runTrainer both refer back to rootCmd, which the compiler rejects
	// as an initialization cycle in a var initializer.
	rootCmd.PersistentPreRunE = setup
	rootCmd.RunE = runTrainer

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ~/.config/zerodrill/config.yaml)")
	pf.StringVar(&logLevelFlag, "log-level", "", "override the configured log level (debug, info, warn, error)")
	pf.StringVar(&logFileFlag, "log-file", "", "override the configured log file path")
	pf.StringVar(&presetFlag, "preset", "", "start with the named preset applied")
	pf.Int64Var(&seedFlag, "seed", 0, "seed the sequence generator for reproducible drills")
	pf.BoolVar(&muteFlag, "mute", false, "disable voice cues")

	rootCmd.Flags().BoolVar(&noMouseFlag, "no-mouse", false, "disable mouse support in the trainer")
}

// setup loads the config and routes logging to the log file before any
// subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	cfgPath = cfgFile
	if cfgPath == "" {
		p, err := paths.DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}
		cfgPath = p
	}

	loaded, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	cfg = loaded

	pf := rootCmd.PersistentFlags()
	if pf.Changed("log-level") {
		cfg.Log.Level = logLevelFlag
	}
	if pf.Changed("log-file") {
		cfg.Log.File = logFileFlag
	}
	if muteFlag {
		cfg.Cue.Enabled = false
	}

	logPath := cfg.Log.File
	if logPath == "" {
		logPath, err = paths.LogPath()
		if err != nil {
			return fmt.Errorf("resolving log path: %w", err)
		}
	}
	if err := log.Init(logPath, log.ParseLevel(cfg.Log.Level)); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}

	if err := styles.ApplyMode(cfg.UI.Mode); err != nil {
		log.Warn(log.CatUI, "applying ui mode", "mode", cfg.UI.Mode, "error", err)
	}
	return nil
}

func runTrainer(cmd *cobra.Command, args []string) error {
	shutdown, err := tracing.Init(cmd.Context(), tracing.Config{
		Enabled:  cfg.Trace.Enabled,
		Endpoint: cfg.Trace.Endpoint,
		File:     cfg.Trace.File,
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	registry, err := preset.NewRegistry(userPresetDirOrEmpty())
	if err != nil {
		return fmt.Errorf("loading presets: %w", err)
	}
	initialPreset, err := applyPresetFlag(&cfg, registry)
	if err != nil {
		return err
	}
	if noMouseFlag {
		cfg.UI.Mouse = false
	}

	var watcher *config.Watcher
	if cfg.UI.AutoReload {
		w, werr := config.NewWatcher(cfgPath, cfg.UI.AutoReloadDebounce)
		if werr != nil {
			log.Warn(log.CatConfig, "config auto reload unavailable", "error", werr)
		} else {
			watcher = w
			defer func() { _ = watcher.Close() }()
		}
	}

	zone.NewGlobal()
	defer zone.Close()

	model := trainer.New(trainer.Config{
		AppConfig:     cfg,
		Presets:       registry,
		Watcher:       watcher,
		Source:        drillSource(),
		InitialPreset: initialPreset,
	})
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	log.Info(log.CatApp, "trainer starting", "config", cfgPath)
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("running trainer: %w", err)
	}
	return nil
}

// userPresetDirOrEmpty resolves the user preset directory, tolerating
// hosts without a resolvable config dir.
func userPresetDirOrEmpty() string {
	dir, err := paths.UserPresetDir()
	if err != nil {
		log.Warn(log.CatApp, "user preset dir unavailable", "error", err)
		return ""
	}
	return dir
}

// drillSource returns a seeded source when --seed was given, nil for
// wall-clock seeding.
func drillSource() rand.Source {
	if rootCmd.PersistentFlags().Changed("seed") {
		return rand.NewSource(seedFlag)
	}
	return nil
}

// applyPresetFlag overlays the preset named by --preset onto c.Drill.
// Names match case-insensitively; an unknown name is an error.
func applyPresetFlag(c *config.Config, registry *preset.Registry) (*preset.Preset, error) {
	if presetFlag == "" {
		return nil, nil
	}
	for _, p := range registry.List() {
		if strings.EqualFold(p.Name, presetFlag) {
			c.Drill.CommandCount = p.CommandCount
			c.Drill.ClickValues = slices.Clone(p.ClickValues)
			c.Drill.Bound = p.Bound
			c.Drill.Interval = p.Interval.Std()
			return &p, nil
		}
	}
	return nil, fmt.Errorf("unknown preset %q (run \"zerodrill presets\" for the list)", presetFlag)
}

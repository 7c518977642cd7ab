package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/zerodrill/zerodrill/internal/config"
	"github.com/zerodrill/zerodrill/internal/headless"
	"github.com/zerodrill/zerodrill/internal/log"
	"github.com/zerodrill/zerodrill/internal/preset"
	"github.com/zerodrill/zerodrill/internal/tracing"
)

var (
	playInteractive bool
	playCommands    int
	playValues      []int
	playBound       int
	playInterval    time.Duration
	playCues        bool
	playManualRate  bool
	playRate        float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run one drill in the plain terminal",
	Long: `Play runs a single drill without the full-screen trainer: commands
are printed line by line and the final position decides the verdict.
Parameters default to the config file; flags override them, and
--interactive prompts for each one.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolVarP(&playInteractive, "interactive", "i", false, "prompt for drill parameters")
	playCmd.Flags().IntVar(&playCommands, "commands", 0, "number of commands")
	playCmd.Flags().IntSliceVar(&playValues, "values", nil, "click values, e.g. 1,2,5")
	playCmd.Flags().IntVar(&playBound, "bound", 0, "bound in clicks per axis")
	playCmd.Flags().DurationVar(&playInterval, "interval", 0, "interval per command, e.g. 1s")
	playCmd.Flags().BoolVar(&playCues, "cues", false, "voice cues")
	playCmd.Flags().BoolVar(&playManualRate, "manual-rate", false, "use --rate instead of fitting cues to the interval")
	playCmd.Flags().Float64Var(&playRate, "rate", 0, "cue rate multiplier")
}

func runPlay(cmd *cobra.Command, args []string) error {
	shutdown, err := tracing.Init(cmd.Context(), tracing.Config{
		Enabled:  cfg.Trace.Enabled,
		Endpoint: cfg.Trace.Endpoint,
		File:     cfg.Trace.File,
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	if presetFlag != "" {
		registry, rerr := preset.NewRegistry(userPresetDirOrEmpty())
		if rerr != nil {
			return fmt.Errorf("loading presets: %w", rerr)
		}
		if _, err := applyPresetFlag(&cfg, registry); err != nil {
			return err
		}
	}

	dcfg := cfg.Drill
	ccfg := cfg.Cue
	flags := cmd.Flags()
	if flags.Changed("commands") {
		dcfg.CommandCount = playCommands
	}
	if flags.Changed("values") {
		dcfg.ClickValues = playValues
	}
	if flags.Changed("bound") {
		dcfg.Bound = playBound
	}
	if flags.Changed("interval") {
		dcfg.Interval = playInterval
	}
	if flags.Changed("cues") {
		ccfg.Enabled = playCues
	}
	if flags.Changed("manual-rate") {
		ccfg.ManualRate = playManualRate
	}
	if flags.Changed("rate") {
		ccfg.Rate = playRate
	}

	if playInteractive {
		dcfg, ccfg, err = headless.Prompt(dcfg, ccfg)
		if err != nil {
			return err
		}
	} else {
		if err := config.ValidateDrill(dcfg); err != nil {
			return err
		}
		if err := config.ValidateCue(ccfg); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log.Info(log.CatApp, "headless run starting",
		"commands", dcfg.CommandCount, "interval", dcfg.Interval.String())
	_, err = headless.New(headless.Options{
		Drill:  dcfg,
		Cue:    ccfg,
		Source: drillSource(),
	}).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return errors.New("run canceled")
	}
	return err
}

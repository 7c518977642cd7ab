package headless

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"

	"github.com/zerodrill/zerodrill/internal/config"
)

// Prompt interactively fills the drill and cue parameters, seeding each
// question with the given defaults. The answers are validated as a
// whole before they are returned.
func Prompt(dcfg config.DrillConfig, ccfg config.CueConfig) (config.DrillConfig, config.CueConfig, error) {
	count, err := promptInt("Number of commands", dcfg.CommandCount)
	if err != nil {
		return dcfg, ccfg, err
	}
	dcfg.CommandCount = count

	values, err := promptClickValues("Click values (comma separated)", dcfg.ClickValues)
	if err != nil {
		return dcfg, ccfg, err
	}
	dcfg.ClickValues = values

	bound, err := promptInt("Bound in clicks per axis", dcfg.Bound)
	if err != nil {
		return dcfg, ccfg, err
	}
	dcfg.Bound = bound

	interval, err := promptDuration("Interval per command", dcfg.Interval)
	if err != nil {
		return dcfg, ccfg, err
	}
	dcfg.Interval = interval

	cues, err := promptBool("Voice cues", ccfg.Enabled)
	if err != nil {
		return dcfg, ccfg, err
	}
	ccfg.Enabled = cues

	if ccfg.Enabled {
		manual, err := promptBool("Manual cue rate", ccfg.ManualRate)
		if err != nil {
			return dcfg, ccfg, err
		}
		ccfg.ManualRate = manual
		if ccfg.ManualRate {
			rate, err := promptFloat("Cue rate multiplier", ccfg.Rate)
			if err != nil {
				return dcfg, ccfg, err
			}
			ccfg.Rate = rate
		}
	}

	if err := config.ValidateDrill(dcfg); err != nil {
		return dcfg, ccfg, err
	}
	if err := config.ValidateCue(ccfg); err != nil {
		return dcfg, ccfg, err
	}
	return dcfg, ccfg, nil
}

func promptInt(message string, def int) (int, error) {
	prompt := &survey.Input{
		Message: message,
		Default: strconv.Itoa(def),
	}
	var answer string
	if err := survey.AskOne(prompt, &answer, survey.WithValidator(survey.Required)); err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, fmt.Errorf("invalid number: %w", err)
	}
	return value, nil
}

func promptFloat(message string, def float64) (float64, error) {
	prompt := &survey.Input{
		Message: message,
		Default: strconv.FormatFloat(def, 'f', 1, 64),
	}
	var answer string
	if err := survey.AskOne(prompt, &answer, survey.WithValidator(survey.Required)); err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %w", err)
	}
	return value, nil
}

func promptBool(message string, def bool) (bool, error) {
	prompt := &survey.Confirm{
		Message: message,
		Default: def,
	}
	var answer bool
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, err
	}
	return answer, nil
}

func promptDuration(message string, def time.Duration) (time.Duration, error) {
	prompt := &survey.Input{
		Message: message + " (e.g., 500ms, 1s, 2s)",
		Default: def.String(),
	}
	var answer string
	if err := survey.AskOne(prompt, &answer, survey.WithValidator(func(val interface{}) error {
		str, _ := val.(string)
		if _, err := time.ParseDuration(strings.TrimSpace(str)); err != nil {
			return fmt.Errorf("invalid duration, use forms like 500ms or 2s")
		}
		return nil
	})); err != nil {
		return 0, err
	}
	return time.ParseDuration(strings.TrimSpace(answer))
}

func promptClickValues(message string, def []int) ([]int, error) {
	parts := make([]string, len(def))
	for i, v := range def {
		parts[i] = strconv.Itoa(v)
	}
	prompt := &survey.Input{
		Message: message,
		Default: strings.Join(parts, ", "),
	}
	var answer string
	if err := survey.AskOne(prompt, &answer, survey.WithValidator(func(val interface{}) error {
		str, _ := val.(string)
		_, err := parseClickValues(str)
		return err
	})); err != nil {
		return nil, err
	}
	return parseClickValues(answer)
}

// parseClickValues parses a comma separated click value list, e.g.
// "1, 2, 5".
func parseClickValues(s string) ([]int, error) {
	var values []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid click value %q", part)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("at least one click value is required")
	}
	return values, nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerodrill/zerodrill/internal/config"
	"github.com/zerodrill/zerodrill/internal/preset"
)

func TestSetup_ResolvesFlagConfigPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	logFile := filepath.Join(dir, "zerodrill.log")
	yaml := fmt.Sprintf("drill:\n  command_count: 14\nlog:\n  file: %s\n", logFile)
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	prev := cfgFile
	t.Cleanup(func() { cfgFile = prev })
	cfgFile = path

	require.NoError(t, setup(nil, nil))
	assert.Equal(t, path, cfgPath)
	assert.Equal(t, 14, cfg.Drill.CommandCount)
}

func TestSetup_MissingConfigFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	prev := cfgFile
	t.Cleanup(func() { cfgFile = prev })
	cfgFile = filepath.Join(dir, "nope.yaml")

	require.NoError(t, setup(nil, nil))
	assert.Equal(t, 10, cfg.Drill.CommandCount)
	assert.Equal(t, []int{1, 2, 5}, cfg.Drill.ClickValues)
}

func TestRunInit_RefusesExistingConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("drill:\n"), 0o644))

	prevPath, prevForce := cfgPath, initForce
	t.Cleanup(func() { cfgPath, initForce = prevPath, prevForce })
	cfgPath = path

	initForce = false
	err := runInit(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	initForce = true
	require.NoError(t, runInit(nil, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "command_count")
}

func TestRunPresets_ListsWithoutError(t *testing.T) {
	require.NoError(t, runPresets(nil, nil))
}

func TestApplyPresetFlag(t *testing.T) {
	registry, err := preset.NewRegistry("")
	require.NoError(t, err)

	prev := presetFlag
	t.Cleanup(func() { presetFlag = prev })

	presetFlag = "warm-up"
	c := config.Defaults()
	p, err := applyPresetFlag(&c, registry)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Warm-Up", p.Name, "names match case-insensitively")
	assert.Equal(t, p.CommandCount, c.Drill.CommandCount)
	assert.Equal(t, p.Bound, c.Drill.Bound)
	assert.Equal(t, p.Interval.Std(), c.Drill.Interval)

	presetFlag = "no such preset"
	_, err = applyPresetFlag(&c, registry)
	require.Error(t, err)

	presetFlag = ""
	p, err = applyPresetFlag(&c, registry)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestMaxNameLen(t *testing.T) {
	presets := []preset.Preset{
		{Name: "Warm-Up"},
		{Name: "Fine Adjustment"},
		{Name: "Standard"},
	}
	assert.Equal(t, len("Fine Adjustment"), maxNameLen(presets))
	assert.Zero(t, maxNameLen(nil))
}

package speech

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// installFakeBin places an executable stub named bin on a private PATH.
func installFakeBin(t *testing.T, dir, bin string) {
	t.Helper()
	path := filepath.Join(dir, bin)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0755))
}

func TestDetectEngine_PreferenceOrder(t *testing.T) {
	dir := t.TempDir()
	installFakeBin(t, dir, "espeak")
	installFakeBin(t, dir, "espeak-ng")
	t.Setenv("PATH", dir)

	engine, err := DetectEngine()
	require.NoError(t, err)
	assert.Equal(t, "espeak-ng", engine.Name(), "espeak-ng outranks espeak")
}

func TestDetectEngine_FallsBackDownTheList(t *testing.T) {
	dir := t.TempDir()
	installFakeBin(t, dir, "flite")
	t.Setenv("PATH", dir)

	engine, err := DetectEngine()
	require.NoError(t, err)
	assert.Equal(t, "flite", engine.Name())
}

func TestDetectEngine_NoneFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := DetectEngine()
	assert.ErrorIs(t, err, ErrNoEngine)
}

func TestDetectPlayback_NoneFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := detectPlayback()
	assert.ErrorIs(t, err, ErrNoPlayer)
}

func TestDetectPlayback_Found(t *testing.T) {
	dir := t.TempDir()
	installFakeBin(t, dir, "paplay")
	t.Setenv("PATH", dir)

	out, err := detectPlayback()
	require.NoError(t, err)
	assert.Equal(t, "paplay", out.bin)
}

func TestNew_DegradesToNoopWithoutAudio(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	synth := New(Options{})
	_, ok := synth.(noop)
	assert.True(t, ok, "no audio player should yield the silent synthesizer")
}

func TestNew_DegradesToBeeperWithoutEngine(t *testing.T) {
	dir := t.TempDir()
	installFakeBin(t, dir, "aplay")
	t.Setenv("PATH", dir)

	synth := New(Options{})
	_, ok := synth.(*Beeper)
	assert.True(t, ok, "a player without a speech engine should yield the beeper")
}

func TestWordsPerMinute(t *testing.T) {
	assert.Equal(t, 350, wordsPerMinute(2.0))
	assert.Equal(t, 507, wordsPerMinute(2.9))
	assert.Equal(t, 87, wordsPerMinute(0.5))
}

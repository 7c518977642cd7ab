// Package paths resolves the directories zerodrill reads and writes.
package paths

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigDir overrides the config directory when set.
	EnvConfigDir = "ZERODRILL_CONFIG_DIR"
	// EnvCacheDir overrides the cache directory when set.
	EnvCacheDir = "ZERODRILL_CACHE_DIR"
)

// ConfigDir returns the directory holding config.yaml and user presets.
// $ZERODRILL_CONFIG_DIR wins over the platform config dir.
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return filepath.Clean(dir), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "zerodrill"), nil
}

// CacheDir returns the directory for synthesized cues and the log file.
// $ZERODRILL_CACHE_DIR wins over the platform cache dir.
func CacheDir() (string, error) {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		return filepath.Clean(dir), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "zerodrill"), nil
}

// DefaultConfigPath returns the path of the main config file.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// UserPresetDir returns the directory scanned for user drill presets.
func UserPresetDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "presets"), nil
}

// LogPath returns the default log file location.
func LogPath() (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "zerodrill.log"), nil
}

// CueCacheDir returns the directory synthesized speech cues are written to.
func CueCacheDir() (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cues"), nil
}

package preset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zerodrill/zerodrill/internal/log"
)

// Registry holds the built-in and user presets. A user preset whose id
// matches a built-in one overrides it, so shipped drills can be tuned
// without rebuilding.
type Registry struct {
	presets []Preset
}

// NewRegistry loads the bundled presets and, when userDir exists, the
// user's YAML presets on top. A broken user file is logged and skipped;
// it never blocks startup. A broken bundled preset is a build defect
// and fails loudly.
func NewRegistry(userDir string) (*Registry, error) {
	r := &Registry{}

	builtin, err := loadFS(BuiltinFS(), "builtin", SourceBuiltIn)
	if err != nil {
		return nil, fmt.Errorf("loading bundled presets: %w", err)
	}
	for _, p := range builtin {
		r.add(p)
	}

	if userDir != "" {
		r.loadUserDir(userDir)
	}
	return r, nil
}

// List returns all presets, built-in first, in load order.
func (r *Registry) List() []Preset {
	return append([]Preset(nil), r.presets...)
}

// ListBySource returns the presets from one source in load order.
func (r *Registry) ListBySource(s Source) []Preset {
	var out []Preset
	for _, p := range r.presets {
		if p.Source == s {
			out = append(out, p)
		}
	}
	return out
}

// Get returns the preset with the given id.
func (r *Registry) Get(id string) (Preset, bool) {
	for _, p := range r.presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// Len returns the number of presets.
func (r *Registry) Len() int { return len(r.presets) }

func (r *Registry) add(p Preset) {
	for i, existing := range r.presets {
		if existing.ID == p.ID {
			log.Info(log.CatConfig, "preset overridden",
				"id", p.ID, "source", p.Source.String())
			r.presets[i] = p
			return
		}
	}
	r.presets = append(r.presets, p)
}

func (r *Registry) loadUserDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn(log.CatConfig, "reading user preset dir", "dir", dir, "error", err.Error())
		}
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn(log.CatConfig, "reading user preset", "path", path, "error", err.Error())
			continue
		}
		p, err := parsePreset(data, idFromFilename(entry.Name()), SourceUser)
		if err != nil {
			log.Warn(log.CatConfig, "skipping invalid user preset", "path", path, "error", err.Error())
			continue
		}
		r.add(p)
	}
}

func loadFS(fsys fs.FS, root string, source Source) ([]Preset, error) {
	paths, err := fs.Glob(fsys, root+"/*.yaml")
	if err != nil {
		return nil, err
	}

	var out []Preset
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		p, err := parsePreset(data, idFromFilename(filepath.Base(path)), source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func parsePreset(data []byte, id string, source Source) (Preset, error) {
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("parsing preset: %w", err)
	}
	p.ID = id
	p.Source = source
	if err := p.Validate(); err != nil {
		return Preset{}, err
	}
	return p, nil
}

func idFromFilename(name string) string {
	return strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// Package preset loads named request presets and shared defaults from YAML.
//
// Layout under the base directory:
//
//	defaults.yaml          overrides fields of equity.SystemDefaults
//	presets/<name>.yaml    raw request fields layered under a request
//
// Both files are optional.
package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/equity-backend/internal/equity"
)

var (
	ErrPresetNotFound = errors.New("preset not found")
	ErrBadName        = errors.New("invalid preset name")
)

var nameRE = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Paths resolves file locations under BaseDir.
type Paths struct {
	BaseDir string
}

func (p Paths) DefaultsPath() string {
	return filepath.Join(p.BaseDir, "defaults.yaml")
}

func (p Paths) PresetDir() string {
	return filepath.Join(p.BaseDir, "presets")
}

func (p Paths) PresetPath(name string) string {
	return filepath.Join(p.PresetDir(), name+".yaml")
}

// Loader reads and caches defaults and presets. It is safe for concurrent use.
type Loader struct {
	paths Paths

	mu       sync.RWMutex
	defaults *equity.Defaults
	presets  map[string]equity.Raw
}

func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths:   Paths{BaseDir: baseDir},
		presets: make(map[string]equity.Raw),
	}
}

func (l *Loader) Paths() Paths { return l.paths }

// defaultsFile mirrors equity.Defaults with presence tracking.
type defaultsFile struct {
	Board      *string `yaml:"board"`
	BoardSize  *int    `yaml:"boardSize"`
	HandSize   *int    `yaml:"handSize"`
	NumDecks   *int    `yaml:"numDecks"`
	Iterations *int    `yaml:"iterations"`
}

// Defaults returns the system defaults with defaults.yaml applied on top.
// A missing file yields equity.SystemDefaults.
func (l *Loader) Defaults() (equity.Defaults, error) {
	l.mu.RLock()
	if l.defaults != nil {
		d := *l.defaults
		l.mu.RUnlock()
		return d, nil
	}
	l.mu.RUnlock()

	var f defaultsFile
	if _, err := readYAML(l.paths.DefaultsPath(), &f); err != nil {
		return equity.Defaults{}, fmt.Errorf("read defaults: %w", err)
	}

	d := equity.SystemDefaults()
	if f.Board != nil {
		d.Board = *f.Board
	}
	if f.BoardSize != nil {
		d.BoardSize = *f.BoardSize
	}
	if f.HandSize != nil {
		d.HandSize = *f.HandSize
	}
	if f.NumDecks != nil {
		d.NumDecks = *f.NumDecks
	}
	if f.Iterations != nil {
		d.Iterations = *f.Iterations
	}
	if err := d.Validate(); err != nil {
		return equity.Defaults{}, fmt.Errorf("%s: %w", l.paths.DefaultsPath(), err)
	}

	l.mu.Lock()
	l.defaults = &d
	l.mu.Unlock()
	return d, nil
}

// Preset returns the raw fields of the named preset. The returned map is a copy.
func (l *Loader) Preset(name string) (equity.Raw, error) {
	if !nameRE.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrBadName, name)
	}

	l.mu.RLock()
	if raw, ok := l.presets[name]; ok {
		l.mu.RUnlock()
		return clone(raw), nil
	}
	l.mu.RUnlock()

	raw := equity.Raw{}
	found, err := readYAML(l.paths.PresetPath(name), &raw)
	if err != nil {
		return nil, fmt.Errorf("read preset %q: %w", name, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}

	l.mu.Lock()
	l.presets[name] = raw
	l.mu.Unlock()
	return clone(raw), nil
}

// Apply layers raw over the named preset: fields present in raw win.
// An empty name returns a copy of raw. Neither input is modified.
func (l *Loader) Apply(name string, raw equity.Raw) (equity.Raw, error) {
	if name == "" {
		return clone(raw), nil
	}
	base, err := l.Preset(name)
	if err != nil {
		return nil, err
	}
	for k, v := range raw {
		base[k] = v
	}
	return base, nil
}

// Names lists the presets on disk, sorted.
func (l *Loader) Names() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(l.paths.PresetDir(), "*.yaml"))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, f := range files {
		name := filepath.Base(f)
		name = name[:len(name)-len(".yaml")]
		if nameRE.MatchString(name) {
			names = append(names, name)
		}
	}
	return names, nil
}

// Invalidate clears the cache. Call after the watcher reports a change.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.defaults = nil
	l.presets = make(map[string]equity.Raw)
}

// readYAML decodes path into out. A missing file reports found=false and no error.
func readYAML(path string, out any) (found bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return true, err
	}
	return true, nil
}

func clone(raw equity.Raw) equity.Raw {
	out := make(equity.Raw, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	return out
}

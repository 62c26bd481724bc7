// Package config provides the configuration loader for incr.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// Filename is the configuration file looked up during discovery.
	Filename = "incr.yaml"
	// DefaultStatePath is where build reports go when the file does not say.
	DefaultStatePath = ".incr/state.json"
	// DefaultDebounce is the watch mode coalescing window.
	DefaultDebounce = 50 * time.Millisecond
	// SupportedVersion is the only accepted value of the version key.
	SupportedVersion = "1"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{Logger: log}
}

// Load reads the configuration at path. If path is a directory, the nearest
// incr.yaml in it or one of its parents is used.
func (l *Loader) Load(path string) (*domain.Config, error) {
	configPath, err := l.locate(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, err
	}

	l.Logger.Debug(fmt.Sprintf("config: loaded %s (%d bundles)", configPath, len(cfg.Bundles)))
	return cfg, nil
}

func (l *Loader) locate(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve config path"), "path", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to read config file"), "path", abs)
	}
	if !info.IsDir() {
		return abs, nil
	}

	// Bubble up until a config file is found or the filesystem root is reached.
	for dir := abs; ; {
		candidate := filepath.Join(dir, Filename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(err, "failed to stat config file"), "path", candidate)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(zerr.New("config file not found"), "search_root", abs)
		}
		dir = parent
	}
}

// Load reads a configuration file from the given path and returns a domain.Config.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var incrfile Incrfile
	if err := yaml.Unmarshal(data, &incrfile); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve config root")
	}

	return build(&incrfile, root)
}

func build(incrfile *Incrfile, root string) (*domain.Config, error) {
	if incrfile.Version != "" && incrfile.Version != SupportedVersion {
		return nil, zerr.With(zerr.New("unsupported config version"), "version", incrfile.Version)
	}

	if len(incrfile.Bundles) == 0 {
		return nil, zerr.New("no bundles configured")
	}

	debounce := DefaultDebounce
	if incrfile.Watch.Debounce != "" {
		d, err := time.ParseDuration(incrfile.Watch.Debounce)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid watch debounce"), "debounce", incrfile.Watch.Debounce)
		}
		if d < 0 {
			return nil, zerr.With(zerr.New("watch debounce must not be negative"), "debounce", incrfile.Watch.Debounce)
		}
		debounce = d
	}

	state := incrfile.State
	if state == "" {
		state = DefaultStatePath
	}

	cfg := &domain.Config{
		Root:      root,
		StatePath: resolve(root, state),
		Debounce:  debounce,
		Bundles:   make([]domain.BundleConfig, 0, len(incrfile.Bundles)),
	}

	names := make([]string, 0, len(incrfile.Bundles))
	for name := range incrfile.Bundles {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		dto := incrfile.Bundles[name]

		if len(dto.Entries) == 0 {
			return nil, zerr.With(zerr.New("bundle has no entries"), "bundle", name)
		}
		if dto.Output == "" {
			return nil, zerr.With(zerr.New("bundle has no output"), "bundle", name)
		}

		cfg.Bundles = append(cfg.Bundles, domain.BundleConfig{
			Name:    name,
			Entries: canonicalizeStrings(dto.Entries),
			Output:  resolve(root, dto.Output),
			Labels:  dto.Labels,
			Ignore:  canonicalizeStrings(dto.Ignore),
		})
	}

	return cfg, nil
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

func canonicalizeStrings(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}

	sorted := slices.Clone(strs)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

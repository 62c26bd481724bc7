package domain

import "time"

// Config is the validated project configuration.
type Config struct {
	// Root is the directory relative paths are resolved against.
	Root string
	// StatePath is where build reports are persisted.
	StatePath string
	// Bundles are sorted by name.
	Bundles []BundleConfig
	// Debounce is the watch mode coalescing window.
	Debounce time.Duration
}

// BundleConfig describes one bundle.
type BundleConfig struct {
	Name    string
	Entries []string
	Output  string
	Labels  bool
	Ignore  []string
}

// Bundle returns the bundle with the given name.
func (c *Config) Bundle(name string) (BundleConfig, bool) {
	for _, b := range c.Bundles {
		if b.Name == name {
			return b, true
		}
	}
	return BundleConfig{}, false
}

package config

// Incrfile represents the structure of the incr.yaml configuration file.
type Incrfile struct {
	Version string               `yaml:"version"`
	State   string               `yaml:"state"`
	Bundles map[string]BundleDTO `yaml:"bundles"`
	Watch   WatchDTO             `yaml:"watch"`
}

// BundleDTO represents a bundle definition in the configuration.
type BundleDTO struct {
	Entries []string `yaml:"entries"`
	Output  string   `yaml:"output"`
	Labels  bool     `yaml:"labels"`
	Ignore  []string `yaml:"ignore"`
}

// WatchDTO holds watch mode settings.
type WatchDTO struct {
	Debounce string `yaml:"debounce"`
}

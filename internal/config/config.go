package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Config holds all gresql configuration.
type Config struct {
	Defaults  Defaults  `yaml:"defaults"`
	Exclude   Exclude   `yaml:"exclude"`
	Normalize Normalize `yaml:"normalize"`
}

// Defaults holds default CLI flag values, applied when the flag is not set
// on the command line.
type Defaults struct {
	Format    string `yaml:"format"`
	Delimiter string `yaml:"delimiter"`
	Parallel  int    `yaml:"parallel"` // 0 = all CPUs
}

// Exclude lists directories the file walk skips and tables that are never
// reported.
type Exclude struct {
	Dirs   []string `yaml:"dirs"`
	Tables []string `yaml:"tables"`
}

// Normalize controls identifier normalization during extraction.
type Normalize struct {
	StripQuotes *bool `yaml:"strip_quotes"` // default true
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Defaults: Defaults{
			Format:    "text",
			Delimiter: ",",
		},
	}
}

// Load reads configuration from .gresql.yml in the given directory, falling
// back to ~/.gresql.yml. Returns DefaultConfig if no file is found.
func Load(dir string) (Config, error) {
	cfg := DefaultConfig()

	paths := []string{filepath.Join(dir, ".gresql.yml")}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".gresql.yml"))
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		return cfg, nil
	}

	return cfg, nil
}

// StripQuotes reports whether quote and bracket delimiters are stripped
// from identifiers. Unset means true.
func (c *Config) StripQuotes() bool {
	return c.Normalize.StripQuotes == nil || *c.Normalize.StripQuotes
}

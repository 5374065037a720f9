// Package rpgconfig loads the project-level .rpg/config.toml: drift
// thresholds, lifting batch sizes and the auto-ignore glob list. Built-in
// defaults apply first and the file's values override them; no environment
// variables are read.
package rpgconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full .rpg/config.toml document.
type Config struct {
	Drift   DriftConfig   `toml:"drift"`
	Lifting LiftingConfig `toml:"lifting"`
	Ignore  IgnoreConfig  `toml:"ignore"`
}

// DriftConfig holds the Jaccard-distance drift-zone thresholds: below
// DriftIgnore a re-lift is applied silently, between DriftIgnore and
// DriftAuto it is applied and routed as "borderline drift", and above
// DriftAuto it is applied and routed as "drifted".
type DriftConfig struct {
	DriftIgnore float64 `toml:"drift_ignore"`
	DriftAuto   float64 `toml:"drift_auto"`
}

// LiftingConfig controls semantic-lifting batch construction.
type LiftingConfig struct {
	MaxTokensPerBatch int `toml:"max_tokens_per_batch"`
	MaxEntitiesPerBatch int `toml:"max_entities_per_batch"`
}

// IgnoreConfig lists additional .rpgignore-style globs. They are decoded
// from the file, but no other package reads them, so they do not affect
// which files are walked or parsed.
type IgnoreConfig struct {
	Globs []string `toml:"globs"`
}

// Default returns the built-in defaults used when no config file exists.
func Default() *Config {
	return &Config{
		Drift: DriftConfig{DriftIgnore: 0.3, DriftAuto: 0.7},
		Lifting: LiftingConfig{
			MaxTokensPerBatch:   6000,
			MaxEntitiesPerBatch: 40,
		},
	}
}

// Load reads .rpg/config.toml under repoRoot, falling back to Default()
// when the file is absent. A malformed file is an error.
func Load(repoRoot string) (*Config, error) {
	cfg := Default()
	path := filepath.Join(repoRoot, ".rpg", "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("rpgconfig: decode %s: %w", path, err)
	}
	return cfg, nil
}

// DriftIgnoreThreshold is the lower bound below which a changed entity's
// semantic drift is applied silently.
func (c *Config) DriftIgnoreThreshold() float64 { return c.Drift.DriftIgnore }

// DriftAutoThreshold is the upper bound above which drift is routed with
// reason "drifted" rather than "borderline drift".
func (c *Config) DriftAutoThreshold() float64 { return c.Drift.DriftAuto }

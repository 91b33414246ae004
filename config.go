package server

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"thicket/server/logging"
)

const defaultWorldSeed = "prototype"

// Config carries the tunable parts of the server. Gameplay invariants that
// are not meant to be tuned per deployment live in constants.go.
type Config struct {
	Addr      string `yaml:"addr"`
	ClientDir string `yaml:"clientDir"`

	TickRate    int     `yaml:"tickRate"`
	WorldWidth  float64 `yaml:"worldWidth"`
	WorldHeight float64 `yaml:"worldHeight"`

	ResourceCount int `yaml:"resourceCount"`

	// HarvestCooldownMs throttles how often a single resource node pays out,
	// regardless of how many attackers strike it. Zero collects on every
	// qualifying swing.
	HarvestCooldownMs int `yaml:"harvestCooldownMs"`

	ChatRange float64 `yaml:"chatRange"`

	Seed string `yaml:"seed"`

	Log logging.Config `yaml:"log"`
}

// DefaultConfig mirrors the reference deployment: a 4000x4000 world ticking
// at 30 Hz with 30 resource nodes.
func DefaultConfig() Config {
	return Config{
		Addr:              ":8080",
		ClientDir:         "../client",
		TickRate:          30,
		WorldWidth:        4000,
		WorldHeight:       4000,
		ResourceCount:     30,
		HarvestCooldownMs: int(baseSwingCooldown.Milliseconds()),
		ChatRange:         500,
		Seed:              defaultWorldSeed,
		Log:               logging.DefaultConfig(),
	}
}

// LoadConfig reads a YAML config file on top of the defaults. A missing file
// is not an error; the defaults stand.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg.normalized(), nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg.normalized(), nil
}

// normalized returns a config with defaults applied to out-of-range values.
func (cfg Config) normalized() Config {
	normalized := cfg
	if normalized.Addr == "" {
		normalized.Addr = ":8080"
	}
	if normalized.TickRate <= 0 {
		normalized.TickRate = 30
	}
	if normalized.WorldWidth <= 4*playerRadius {
		normalized.WorldWidth = 4000
	}
	if normalized.WorldHeight <= 4*playerRadius {
		normalized.WorldHeight = 4000
	}
	if normalized.ResourceCount < 0 {
		normalized.ResourceCount = 0
	}
	if normalized.HarvestCooldownMs < 0 {
		normalized.HarvestCooldownMs = 0
	}
	if normalized.ChatRange <= 0 {
		normalized.ChatRange = 500
	}
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = defaultWorldSeed
	}
	return normalized
}

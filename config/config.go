package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jakecoffman/cp"
)

type Config struct {
	Sim     SimConfig     `toml:"sim"`
	Logging LoggingConfig `toml:"logging"`
	Prefabs PrefabsConfig `toml:"prefabs"`
}

type SimConfig struct {
	TileWidth  float64 `toml:"tile_width"`
	TileHeight float64 `toml:"tile_height"`
	OriginX    float64 `toml:"origin_x"`
	OriginY    float64 `toml:"origin_y"`

	PathCooldown  time.Duration `toml:"path_cooldown"`
	SearchLimit   int           `toml:"search_limit"`   // max A* expansions per search, 0 = unbounded
	CenterEpsilon float64       `toml:"center_epsilon"` // world units counted as "on the tile center"
	RevealRadius  int           `toml:"reveal_radius"`  // tiles streamed around the player each tick

	Invulnerability   time.Duration `toml:"invulnerability"`
	DeathTimer        time.Duration `toml:"death_timer"`
	CorpseTimer       time.Duration `toml:"corpse_timer"`
	KnockbackDuration time.Duration `toml:"knockback_duration"`
	KnockbackSpeed    float64       `toml:"knockback_speed"`
	PushEpsilon       float64       `toml:"push_epsilon"`
}

// TileSize returns the per-axis tile size as a vector.
func (c SimConfig) TileSize() cp.Vector {
	return cp.Vector{X: c.TileWidth, Y: c.TileHeight}
}

// Origin returns the world-to-grid origin offset.
func (c SimConfig) Origin() cp.Vector {
	return cp.Vector{X: c.OriginX, Y: c.OriginY}
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type PrefabsConfig struct {
	Dir   string `toml:"dir"`   // disk override for the embedded prefabs
	Watch bool   `toml:"watch"` // hot reload prefab specs from Dir
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse overlays TOML data on the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Sim.TileWidth <= 0 || c.Sim.TileHeight <= 0 {
		return fmt.Errorf("config: tile size must be positive, got %vx%v", c.Sim.TileWidth, c.Sim.TileHeight)
	}
	if c.Sim.SearchLimit < 0 {
		return fmt.Errorf("config: search_limit must not be negative")
	}
	if c.Sim.CenterEpsilon < 0 || c.Sim.PushEpsilon < 0 {
		return fmt.Errorf("config: epsilons must not be negative")
	}
	return nil
}

func Default() *Config {
	return &Config{
		Sim: SimConfig{
			TileWidth:         32,
			TileHeight:        32,
			PathCooldown:      500 * time.Millisecond,
			SearchLimit:       4096,
			CenterEpsilon:     0.5,
			RevealRadius:      8,
			Invulnerability:   1000 * time.Millisecond,
			DeathTimer:        1500 * time.Millisecond,
			CorpseTimer:       600 * time.Millisecond,
			KnockbackDuration: 200 * time.Millisecond,
			KnockbackSpeed:    360,
			PushEpsilon:       1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Prefabs: PrefabsConfig{
			Dir: "prefabs",
		},
	}
}

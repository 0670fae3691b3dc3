// Package config loads server, logging and rule settings from YAML.
package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"bombfour/internal/game"

	"gopkg.in/yaml.v2"
)

type Server struct {
	Addr          string        `yaml:"addr"`
	OpponentDelay time.Duration `yaml:"opponent_delay"`
	// SessionKeyDir keeps the cookie signing key across restarts; empty means a fresh key per process
	SessionKeyDir string        `yaml:"session_key_dir"`
	MaxRooms      int           `yaml:"max_rooms"`
	RoomTTL       time.Duration `yaml:"room_ttl"`
	EventLog      int           `yaml:"event_log"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Server  Server                `yaml:"server"`
	Log     Log                   `yaml:"log"`
	Rules   game.Rules            `yaml:"rules"`
	Presets map[string]game.Rules `yaml:"presets"`
	// Seed fixes the random source of every new game; 0 draws a fresh seed per game
	Seed int64 `yaml:"seed"`
}

// Default returns the built-in configuration
func Default() Config {
	small := game.DefaultRules()
	small.Rows, small.Cols, small.HazardCount = 4, 4, 3
	large := game.DefaultRules()
	large.Rows, large.Cols, large.HazardCount = 8, 6, 8

	return Config{
		Server: Server{
			Addr:          ":8090",
			OpponentDelay: 600 * time.Millisecond,
			MaxRooms:      1000,
			RoomTTL:       2 * time.Hour,
			EventLog:      20,
		},
		Log:   Log{Level: "info", Format: "text"},
		Rules: game.DefaultRules(),
		Presets: map[string]game.Rules{
			"4x4": small,
			"6x6": game.DefaultRules(),
			"8x6": large,
		},
	}
}

// Load reads path over the defaults; an empty path returns the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks values that would otherwise fail later at game creation
func (c Config) Validate() error {
	if _, err := c.Rules.Normalize(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	for name, r := range c.Presets {
		if _, err := r.Normalize(); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q: must be text or json", c.Log.Format)
	}
	if c.Server.OpponentDelay < 0 {
		return fmt.Errorf("opponent_delay must not be negative")
	}
	return nil
}

// PresetNames returns the preset keys sorted by board size
func (c Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for n := range c.Presets {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := c.Presets[names[i]], c.Presets[names[j]]
		if a.Rows*a.Cols != b.Rows*b.Cols {
			return a.Rows*a.Cols < b.Rows*b.Cols
		}
		return names[i] < names[j]
	})
	return names
}

// RulesFor resolves a preset name, falling back to the default rules
func (c Config) RulesFor(preset string) game.Rules {
	if r, ok := c.Presets[preset]; ok {
		return r
	}
	return c.Rules
}

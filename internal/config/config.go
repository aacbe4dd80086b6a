package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig configures the WebSocket table server.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig configures the leaderboard store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig configures one round. All peers at a table must agree on
// every field here; the server rejects a joiner whose values differ.
type GameConfig struct {
	// Players is the number of seats, 2 to 4.
	Players int `yaml:"players"`
	// Discard is how many cards are set aside before dealing, so that
	// hands can be shortened for faster rounds.
	Discard int `yaml:"discard"`
	// ControlMode is "beat_chance" (the seat after a winner gets one
	// uncontested throw) or "immediate" (the winner is simply skipped).
	ControlMode string `yaml:"control_mode"`
	// Seed fixes the shuffle for replays; 0 means randomize.
	Seed uint64 `yaml:"seed"`
	// SuitLabels is the display order of suit symbols. Purely cosmetic:
	// relabeling never changes which throws beat which.
	SuitLabels string `yaml:"suit_labels"`
	// ShowCounts displays opponents' remaining card counts.
	ShowCounts bool `yaml:"show_counts"`
}

// Validate rejects settings the dealer cannot honor.
func (c *GameConfig) Validate() error {
	if c.Players < 2 || c.Players > 4 {
		return fmt.Errorf("players must be 2..4, got %d", c.Players)
	}
	if c.Discard < 0 || c.Discard > 52-c.Players {
		return fmt.Errorf("discard must leave at least one card per player, got %d", c.Discard)
	}
	switch c.ControlMode {
	case "beat_chance", "immediate":
	default:
		return fmt.Errorf("control_mode must be beat_chance or immediate, got %q", c.ControlMode)
	}
	return nil
}

// Load reads the YAML config file, filling defaults for missing fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	if err := cfg.Game.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 1526
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Game.Players == 0 {
		cfg.Game.Players = 4
	}
	if cfg.Game.ControlMode == "" {
		cfg.Game.ControlMode = "beat_chance"
	}
	if cfg.Game.SuitLabels == "" {
		cfg.Game.SuitLabels = "♣♠♥♦"
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Game.ShowCounts = true
	return cfg
}

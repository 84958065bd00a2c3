// Package config loads process settings from the environment.
package config

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"

	"anima/meta"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Player provider names.
const (
	PlayerAuto    = "auto"
	PlayerSampler = "sampler"
	PlayerConsole = "console"
)

type Config struct {
	// Seed drives card shuffling and random teams. Unset means a fresh random seed.
	Seed        *uint64 `env:"ANIMA_SEED"`
	Roster      string  `env:"ANIMA_ROSTER"`
	Catalog     string  `env:"ANIMA_CATALOG"`
	PlayerTeam  string  `env:"ANIMA_PLAYER_TEAM" envDefault:"starters"`
	EnemyTeam   string  `env:"ANIMA_ENEMY_TEAM" envDefault:"gray_patrol"`
	RandomEnemy int     `env:"ANIMA_RANDOM_ENEMY"` // random enemy team size, 0 uses EnemyTeam
	Player      string  `env:"ANIMA_PLAYER" envDefault:"auto"`
	Temperature float64 `env:"ANIMA_TEMPERATURE" envDefault:"1"`
	Battles     int     `env:"ANIMA_BATTLES" envDefault:"1"`
	OutDir      string  `env:"ANIMA_OUT_DIR" envDefault:"experiments"`
	MaxRounds   int     `env:"ANIMA_MAX_ROUNDS" envDefault:"50"`
	LogLevel    string  `env:"ANIMA_LOG_LEVEL" envDefault:"info"`
	LogJSON     bool    `env:"ANIMA_LOG_JSON"`
}

// FromEnv loads the configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Player) {
	case PlayerAuto, PlayerSampler, PlayerConsole:
	default:
		return fmt.Errorf("unknown player %q", c.Player)
	}
	if c.Temperature <= 0 {
		return fmt.Errorf("temperature must be positive, got %v", c.Temperature)
	}
	if c.Battles < 1 {
		return fmt.Errorf("battles must be at least 1, got %d", c.Battles)
	}
	if c.MaxRounds < 1 {
		return fmt.Errorf("max rounds must be at least 1, got %d", c.MaxRounds)
	}
	if c.RandomEnemy < 0 || c.RandomEnemy > meta.TeamSlots {
		return fmt.Errorf("random enemy size must be 0..%d, got %d", meta.TeamSlots, c.RandomEnemy)
	}
	if c.Roster != "" && c.Catalog != "" {
		return fmt.Errorf("roster and catalog are mutually exclusive")
	}
	if strings.EqualFold(c.Player, PlayerConsole) && c.Battles > 1 {
		return fmt.Errorf("console player cannot run batches")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// ResolveSeed returns the configured seed, or a fresh one and true when none is set.
func (c Config) ResolveSeed() (uint64, bool, error) {
	if c.Seed != nil {
		return *c.Seed, false, nil
	}
	seed, err := NewSeed()
	if err != nil {
		return 0, false, err
	}
	return seed, true, nil
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

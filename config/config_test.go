package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	require.Nil(t, cfg.Seed)
	require.Equal(t, "starters", cfg.PlayerTeam)
	require.Equal(t, "gray_patrol", cfg.EnemyTeam)
	require.Equal(t, PlayerAuto, cfg.Player)
	require.Equal(t, 1, cfg.Battles)
	require.Equal(t, 50, cfg.MaxRounds)
	require.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ANIMA_SEED", "42")
	t.Setenv("ANIMA_PLAYER", "sampler")
	t.Setenv("ANIMA_BATTLES", "10")
	t.Setenv("ANIMA_RANDOM_ENEMY", "3")
	t.Setenv("ANIMA_LOG_LEVEL", "debug")
	t.Setenv("ANIMA_LOG_JSON", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	seed, generated, err := cfg.ResolveSeed()
	require.NoError(t, err)
	require.False(t, generated)
	require.Equal(t, uint64(42), seed)
	require.Equal(t, 10, cfg.Battles)
	require.Equal(t, 3, cfg.RandomEnemy)
	require.True(t, cfg.LogJSON)

	level, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, zerolog.DebugLevel, level)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("ANIMA_BATTLES", "many")

	_, err := FromEnv()
	require.ErrorContains(t, err, "parse env:")
}

func TestValidate(t *testing.T) {
	base, err := FromEnv()
	require.NoError(t, err)

	cases := map[string]func(c *Config){
		"unknown player":    func(c *Config) { c.Player = "robot" },
		"zero temperature":  func(c *Config) { c.Temperature = 0 },
		"no battles":        func(c *Config) { c.Battles = 0 },
		"no rounds":         func(c *Config) { c.MaxRounds = 0 },
		"oversized enemy":   func(c *Config) { c.RandomEnemy = 5 },
		"two sources":       func(c *Config) { c.Roster, c.Catalog = "a.yaml", "b.db" },
		"console batch":     func(c *Config) { c.Player, c.Battles = PlayerConsole, 3 },
		"unknown log level": func(c *Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}

func TestResolveSeedGenerates(t *testing.T) {
	a, generated, err := Config{}.ResolveSeed()
	require.NoError(t, err)
	require.True(t, generated)

	b, _, err := Config{}.ResolveSeed()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

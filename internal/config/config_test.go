package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spf13/viper"

	"github.com/mkerrigan/wildbound/internal/config"
)

func newViperWithValues(values map[string]any) *viper.Viper {
	v := viper.New()
	for key, value := range values {
		v.Set(key, value)
	}
	return v
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "content:\n  dir: content\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "content", cfg.Content.Dir)
	assert.Equal(t, int64(1), cfg.Simulation.Seed)
	assert.Equal(t, 10, cfg.Simulation.Battles)
	assert.Equal(t, 3, cfg.Simulation.EnemyLevel)
}

func TestLoad_FileValuesOverrideDefaults(t *testing.T) {
	path := writeConfig(t, `logging:
  level: debug
  format: json
content:
  dir: /srv/wildbound/content
simulation:
  seed: 99
  battles: 25
  enemy_level: 7
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/srv/wildbound/content", cfg.Content.Dir)
	assert.Equal(t, int64(99), cfg.Simulation.Seed)
	assert.Equal(t, 25, cfg.Simulation.Battles)
	assert.Equal(t, 7, cfg.Simulation.EnemyLevel)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	path := writeConfig(t, `logging:
  level: verbose
content:
  dir: content
`)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestValidate_AggregatesAllViolations(t *testing.T) {
	cfg := config.Config{
		Logging: config.LoggingConfig{Level: "loud", Format: "xml"},
		Content: config.ContentConfig{Dir: ""},
		Simulation: config.SimulationConfig{
			Battles:    0,
			EnemyLevel: 0,
		},
	}

	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "logging.level")
	assert.Contains(t, msg, "content.dir")
	assert.Contains(t, msg, "simulation.battles")
	assert.Contains(t, msg, "simulation.enemy_level")
}

func TestValidate_AcceptsAllLevelsAndFormats(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		for _, format := range []string{"json", "console"} {
			cfg := config.Config{
				Logging: config.LoggingConfig{Level: level, Format: format},
				Content: config.ContentConfig{Dir: "content"},
				Simulation: config.SimulationConfig{
					Seed: 1, Battles: 1, EnemyLevel: 1,
				},
			}
			assert.NoError(t, cfg.Validate(), "level=%s format=%s", level, format)
		}
	}
}

func TestLoadFromViper(t *testing.T) {
	v := newViperWithValues(map[string]any{
		"logging.level":          "warn",
		"logging.format":         "json",
		"content.dir":            "data",
		"simulation.seed":        int64(7),
		"simulation.battles":     3,
		"simulation.enemy_level": 2,
	})

	cfg, err := config.LoadFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "data", cfg.Content.Dir)
	assert.Equal(t, 3, cfg.Simulation.Battles)
}

func TestLoadFromViper_InvalidRejected(t *testing.T) {
	v := newViperWithValues(map[string]any{
		"logging.level":  "info",
		"logging.format": "console",
		// content.dir left unset
		"simulation.battles":     1,
		"simulation.enemy_level": 1,
	})

	_, err := config.LoadFromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content.dir")
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"bracket-explorer/datastore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, sourceCSV, cfg.Data.Source)
	assert.Equal(t, ".", cfg.Data.Dir)
	assert.Equal(t, datastore.DefaultAdvancementFile, cfg.Data.AdvancementFile)
	assert.Equal(t, datastore.DefaultWinnersFile, cfg.Data.WinnersFile)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.NoError(t, Validate(cfg))
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  source: sqlite
  dir: data
  sqlite_path: /var/lib/bracket.db
  strict: true
server:
  addr: ":9090"
log:
  level: debug
  format: json
`), 0o644))

	cfg, err := LoadFromPath(path, true)
	require.NoError(t, err)
	assert.Equal(t, sourceSQLite, cfg.Data.Source)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.Data.Dir)
	assert.Equal(t, "/var/lib/bracket.db", cfg.Data.SQLitePath)
	assert.True(t, cfg.Data.Strict)
	assert.Equal(t, datastore.DefaultWinnersFile, cfg.Data.WinnersFile)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, Validate(cfg))
}

func TestLoadFromPathMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := LoadFromPath(path, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = LoadFromPath(path, true)
	assert.Error(t, err)
}

func TestLoadFromPathBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("data: [unclosed"), 0o644))
	_, err := LoadFromPath(path, true)
	assert.ErrorContains(t, err, "parsing config file")
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.applyEnv(env(map[string]string{
		"RAILWAY_VOLUME_MOUNT_PATH": "/data",
		"BRACKET_SOURCE":            "SQLite",
		"BRACKET_STRICT":            "true",
		"BRACKET_RELOAD_ON_CHANGE":  "1",
		"BRACKET_LOG_LEVEL":         "warn",
		"PORT":                      "3000",
	})))
	assert.Equal(t, "/data", cfg.Data.Dir)
	assert.Equal(t, "/data/bracket.db", cfg.Data.SQLitePath)
	assert.Equal(t, sourceSQLite, cfg.Data.Source)
	assert.True(t, cfg.Data.Strict)
	assert.True(t, cfg.Data.ReloadOnChange)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, ":3000", cfg.Server.Addr)
}

func TestApplyEnvExplicitPathsWin(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.applyEnv(env(map[string]string{
		"RAILWAY_VOLUME_MOUNT_PATH": "/data",
		"BRACKET_DATA_DIR":          "/srv/csv",
		"BRACKET_SQLITE_PATH":       "/srv/b.db",
	})))
	assert.Equal(t, "/srv/csv", cfg.Data.Dir)
	assert.Equal(t, "/srv/b.db", cfg.Data.SQLitePath)
}

func TestApplyEnvBadBool(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.applyEnv(env(map[string]string{"BRACKET_STRICT": "sometimes"}))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfigUsesEnvironment(t *testing.T) {
	t.Setenv("BRACKET_DATA_DIR", "/env/data")
	t.Setenv("PORT", "4000")
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("data:\n  dir: /file/data\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/env/data", cfg.Data.Dir)
	assert.Equal(t, ":4000", cfg.Server.Addr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown source", func(c *Config) { c.Data.Source = "postgres" }},
		{"empty dir", func(c *Config) { c.Data.Dir = "" }},
		{"empty sqlite path", func(c *Config) { c.Data.Source = sourceSQLite; c.Data.SQLitePath = "" }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), ErrInvalidConfig)
		})
	}
}

func TestNewSource(t *testing.T) {
	cfg := DefaultConfig().Data
	cfg.Dir = "/data"
	cfg.WinnersFile = "winners_2025.csv"
	src, ok := newSource(cfg).(*datastore.CSVSource)
	require.True(t, ok)
	assert.Equal(t, "/data", src.Dir)
	assert.Equal(t, "winners_2025.csv", src.WinnersFile)

	cfg.Source = sourceSQLite
	cfg.SQLitePath = "/data/bracket.db"
	sq, ok := newSource(cfg).(*datastore.SQLiteSource)
	require.True(t, ok)
	assert.Equal(t, "/data/bracket.db", sq.Path)
}

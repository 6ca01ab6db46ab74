package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"bracket-explorer/datastore"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up in the working directory when --config is not set.
const ConfigFileName = "bracket-explorer.yaml"

const (
	sourceCSV    = "csv"
	sourceSQLite = "sqlite"
)

// Config holds all bracket-explorer configuration
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// DataConfig says where the two tables come from and how they are loaded
type DataConfig struct {
	Source          string `yaml:"source"`
	Dir             string `yaml:"dir"`
	AdvancementFile string `yaml:"advancement_file"`
	WinnersFile     string `yaml:"winners_file"`
	SQLitePath      string `yaml:"sqlite_path"`
	Strict          bool   `yaml:"strict"`
	ReloadOnChange  bool   `yaml:"reload_on_change"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Source:          sourceCSV,
			Dir:             ".",
			AdvancementFile: datastore.DefaultAdvancementFile,
			WinnersFile:     datastore.DefaultWinnersFile,
			SQLitePath:      "bracket.db",
		},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads .env, the YAML file at path (or ConfigFileName when path
// is empty) and the environment, in that order of increasing precedence.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}
	cfg, err := LoadFromPath(path, explicit)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath reads config from a specific path on top of the defaults.
// A missing file yields the defaults unless required is set.
func LoadFromPath(path string, required bool) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Relative data paths are relative to the config file.
	base := filepath.Dir(path)
	cfg.Data.Dir = resolve(base, cfg.Data.Dir)
	cfg.Data.SQLitePath = resolve(base, cfg.Data.SQLitePath)
	return cfg, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	// Railway mounts the data volume here.
	if v, ok := lookup("RAILWAY_VOLUME_MOUNT_PATH"); ok && v != "" {
		c.Data.Dir = v
		c.Data.SQLitePath = filepath.Join(v, filepath.Base(c.Data.SQLitePath))
	}
	if v, ok := lookup("BRACKET_DATA_DIR"); ok && v != "" {
		c.Data.Dir = v
	}
	if v, ok := lookup("BRACKET_SOURCE"); ok && v != "" {
		c.Data.Source = strings.ToLower(v)
	}
	if v, ok := lookup("BRACKET_SQLITE_PATH"); ok && v != "" {
		c.Data.SQLitePath = v
	}
	if v, ok := lookup("BRACKET_STRICT"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: BRACKET_STRICT: %v", ErrInvalidConfig, err)
		}
		c.Data.Strict = b
	}
	if v, ok := lookup("BRACKET_RELOAD_ON_CHANGE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: BRACKET_RELOAD_ON_CHANGE: %v", ErrInvalidConfig, err)
		}
		c.Data.ReloadOnChange = b
	}
	if v, ok := lookup("BRACKET_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Server.Addr = ":" + v
	}
	return nil
}

// Validate checks that the config values are usable
func Validate(c *Config) error {
	switch c.Data.Source {
	case sourceCSV:
		if c.Data.Dir == "" {
			return fmt.Errorf("%w: data.dir is required for the csv source", ErrInvalidConfig)
		}
	case sourceSQLite:
		if c.Data.SQLitePath == "" {
			return fmt.Errorf("%w: data.sqlite_path is required for the sqlite source", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: data.source must be csv or sqlite, got %q", ErrInvalidConfig, c.Data.Source)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalidConfig, c.Log.Format)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalidConfig)
	}
	return nil
}

// newSource builds the configured datastore source.
func newSource(c DataConfig) datastore.Source {
	if c.Source == sourceSQLite {
		return datastore.NewSQLiteSource(c.SQLitePath)
	}
	src := datastore.NewCSVSource(c.Dir)
	if c.AdvancementFile != "" {
		src.AdvancementFile = c.AdvancementFile
	}
	if c.WinnersFile != "" {
		src.WinnersFile = c.WinnersFile
	}
	return src
}

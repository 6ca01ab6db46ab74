package main

import (
	"fmt"

	"bracket-explorer/datastore"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is the current version of bracket-explorer
var Version = "0.1.0"

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// cli carries the global flags and what setup builds from them.
type cli struct {
	configPath string
	dataDir    string
	source     string
	sqlitePath string
	strict     bool
	format     string
	logLevel   string

	cfg   *Config
	log   *logrus.Logger
	store *datastore.Store
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "bracket-explorer",
		Short: "Explore March Madness bracket model output",
		Long: `bracket-explorer serves and queries a bracket model's output: per-team
round advancement probabilities and predicted first-round winners.

Data comes from two CSV files in a directory (advancement_probabilities.csv and
bracket_winners.csv) or from the same two tables in a SQLite database.

Examples:
  bracket-explorer serve --data-dir ./data        # Start the dashboard
  bracket-explorer show Duke                      # Round-by-round probabilities
  bracket-explorer compare Duke UNC --format json # Side by side
  bracket-explorer export Duke -o -               # Transposed CSV on stdout`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "Path to config file (default: ./"+ConfigFileName+")")
	pf.StringVar(&c.dataDir, "data-dir", "", "Directory holding the CSV files")
	pf.StringVar(&c.source, "source", "", "Data source (csv|sqlite)")
	pf.StringVar(&c.sqlitePath, "sqlite-path", "", "SQLite database path for --source sqlite")
	pf.BoolVar(&c.strict, "strict", false, "Fail on probability range, ordering and winner warnings")
	pf.StringVar(&c.format, "format", formatTable, "Output format (table|json|yaml)")
	pf.StringVar(&c.logLevel, "log-level", "", "Log level (debug|info|warn|error)")

	root.AddCommand(
		c.serveCmd(),
		c.teamsCmd(),
		c.roundsCmd(),
		c.winnersCmd(),
		c.showCmd(),
		c.compareCmd(),
		c.roundCmd(),
		c.exportCmd(),
		c.validateCmd(),
		c.importCmd(),
	)
	return root
}

// setup merges config file, environment and flags, then builds the logger
// and the store every subcommand uses.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.Data.Dir = c.dataDir
	}
	if flags.Changed("source") {
		cfg.Data.Source = c.source
	}
	if flags.Changed("sqlite-path") {
		cfg.Data.SQLitePath = c.sqlitePath
		if !flags.Changed("source") {
			cfg.Data.Source = sourceSQLite
		}
	}
	if flags.Changed("strict") {
		cfg.Data.Strict = c.strict
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = c.logLevel
	}
	if err := Validate(cfg); err != nil {
		return err
	}
	switch c.format {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown --format %q (want table, json or yaml)", c.format)
	}

	log, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = log
	c.store = c.newStore(cfg.Data.Strict)
	return nil
}

func (c *cli) newStore(strict bool) *datastore.Store {
	return datastore.NewStore(newSource(c.cfg.Data), datastore.Options{
		Strict:         strict,
		ReloadOnChange: c.cfg.Data.ReloadOnChange,
		Logger:         logrus.NewEntry(c.log),
	})
}

func (c *cli) load(cmd *cobra.Command) (*datastore.Dataset, error) {
	return c.store.Load(cmd.Context())
}

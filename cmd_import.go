package main

import (
	"fmt"

	"bracket-explorer/datastore"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (c *cli) importCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "import-sqlite",
		Short: "Copy the CSV data directory into a SQLite database",
		Long: `Read advancement_probabilities.csv and bracket_winners.csv from the data
directory and write them as tables of the same names into a SQLite file, which
can then be served with --source sqlite.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = c.cfg.Data.SQLitePath
			}
			dc := c.cfg.Data
			dc.Source = sourceCSV
			ds, err := datastore.NewStore(newSource(dc), datastore.Options{
				Strict: dc.Strict,
				Logger: logrus.NewEntry(c.log),
			}).Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := datastore.WriteSQLite(cmd.Context(), out, ds); err != nil {
				return fmt.Errorf("importing into %s: %w", out, err)
			}
			c.log.WithFields(logrus.Fields{
				"path":  out,
				"teams": ds.Advancement.Len(),
				"games": ds.Winners.Len(),
			}).Info("✅ Imported bracket data into SQLite")
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Database path (default: data.sqlite_path)")
	return cmd
}

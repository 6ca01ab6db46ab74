package main

import (
	"fmt"
	"os"

	"bracket-explorer/datastore"

	"github.com/spf13/cobra"
)

func (c *cli) exportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <team>",
		Short: "Write one team's probabilities as a Round,<team> CSV",
		Long: `Write one team's round-by-round probabilities transposed into a two-column
CSV. The default file name is <team>_advancement.csv in the current directory;
use -o - to write to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			team := args[0]
			ds, err := c.load(cmd)
			if err != nil {
				return err
			}
			data, err := ds.ExportTeam(team)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if output == "" {
				output = datastore.ExportFileName(team)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			c.log.WithField("path", output).Info("💾 Exported team probabilities")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path, or - for stdout")
	return cmd
}

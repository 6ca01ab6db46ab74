package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check probability ranges, round ordering and winner names",
		Long: `Load the data without strict checks and print every warning. With --strict
the command exits non-zero when any warning is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// A strict store would refuse to load, leaving nothing to report.
			ds, err := c.newStore(false).Load(cmd.Context())
			if err != nil {
				return err
			}
			rep := ds.Validate()

			w := cmd.OutOrStdout()
			if rep.OK() && c.format == formatTable {
				fmt.Fprintln(w, "✅ No data warnings")
			} else {
				rows := make([][]string, len(rep.Issues))
				for i, issue := range rep.Issues {
					rows[i] = []string{string(issue.Kind), issue.Message}
				}
				if err := c.emit(w, rep, []string{"Kind", "Message"}, rows); err != nil {
					return err
				}
			}

			if c.cfg.Data.Strict && !rep.OK() {
				return fmt.Errorf("%d data warnings: %w", len(rep.Issues), rep.Err())
			}
			return nil
		},
	}
}

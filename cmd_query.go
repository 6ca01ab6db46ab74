package main

import (
	"strconv"

	"bracket-explorer/datastore"

	"github.com/spf13/cobra"
)

func prob(p float64) string { return strconv.FormatFloat(p, 'f', 2, 64) }

func (c *cli) teamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List teams in advancement table order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := c.load(cmd)
			if err != nil {
				return err
			}
			teams := ds.TeamNames()
			return c.emit(cmd.OutOrStdout(), teams, []string{"Team"}, singleColumn(teams))
		},
	}
}

func (c *cli) roundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rounds",
		Short: "List round columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := c.load(cmd)
			if err != nil {
				return err
			}
			rounds := ds.RoundColumns()
			return c.emit(cmd.OutOrStdout(), rounds, []string{"Round"}, singleColumn(rounds))
		},
	}
}

type winnersOutput struct {
	Games  []datastore.Game        `json:"games" yaml:"games"`
	Counts []datastore.WinnerCount `json:"counts" yaml:"counts"`
}

func (c *cli) winnersCmd() *cobra.Command {
	var countsOnly bool
	cmd := &cobra.Command{
		Use:   "winners",
		Short: "Show predicted first-round winners and how often each team wins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := c.load(cmd)
			if err != nil {
				return err
			}
			out := winnersOutput{Games: ds.Games(), Counts: ds.WinnerCounts()}
			w := cmd.OutOrStdout()

			var countRows [][]string
			for _, wc := range out.Counts {
				countRows = append(countRows, []string{wc.Team, strconv.Itoa(wc.Count)})
			}
			if countsOnly {
				return c.emit(w, out.Counts, []string{"Team", "Wins"}, countRows)
			}
			if c.format != formatTable {
				return c.emit(w, out, nil, nil)
			}

			var gameRows [][]string
			for _, g := range out.Games {
				gameRows = append(gameRows, []string{g.Game, g.Winner})
			}
			if err := c.emit(w, nil, []string{"Game", "Winner"}, gameRows); err != nil {
				return err
			}
			return c.emit(w, nil, []string{"Team", "Wins"}, countRows)
		},
	}
	cmd.Flags().BoolVar(&countsOnly, "counts", false, "Only print per-team win counts")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <team>",
		Short: "Show one team's round-by-round advancement probabilities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := c.load(cmd)
			if err != nil {
				return err
			}
			probs, err := ds.AdvancementFor(args[0])
			if err != nil {
				return err
			}
			rows := make([][]string, len(probs))
			for i, p := range probs {
				rows[i] = []string{p.Round, prob(p.Probability)}
			}
			return c.emit(cmd.OutOrStdout(), teamResponse{Team: args[0], Rounds: probs},
				[]string{"Round", args[0]}, rows)
		},
	}
}

func (c *cli) compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <team-a> <team-b>",
		Short: "Compare two teams round by round",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := c.load(cmd)
			if err != nil {
				return err
			}
			cmp, err := ds.Compare(args[0], args[1])
			if err != nil {
				return err
			}
			rows := make([][]string, len(cmp.Rounds))
			for i, r := range cmp.Rounds {
				rows[i] = []string{r.Round, prob(r.A), prob(r.B)}
			}
			return c.emit(cmd.OutOrStdout(), cmp, []string{"Round", cmp.TeamA, cmp.TeamB}, rows)
		},
	}
}

func (c *cli) roundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "round <name>",
		Short: "Show every team's probability of reaching one round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := c.load(cmd)
			if err != nil {
				return err
			}
			slice, err := ds.RoundSlice(args[0])
			if err != nil {
				return err
			}
			rows := make([][]string, len(slice))
			for i, tp := range slice {
				rows[i] = []string{tp.Team, prob(tp.Probability)}
			}
			return c.emit(cmd.OutOrStdout(), roundResponse{Round: args[0], Teams: slice},
				[]string{"Team", args[0]}, rows)
		},
	}
}

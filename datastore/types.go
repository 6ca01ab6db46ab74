package datastore

import (
	"fmt"
	"time"
)

// TeamColumn and WinnerColumn are the canonical column names after
// normalization.
const (
	TeamColumn   = "Team"
	GameColumn   = "Game"
	WinnerColumn = "Winner"
)

// TeamRow is one team's probabilities, aligned with the table's rounds.
type TeamRow struct {
	Team          string
	Probabilities []float64
}

// AdvancementTable is the wide per-team, per-round probability table.
// It is immutable once built.
type AdvancementTable struct {
	rounds     []string
	rows       []TeamRow
	teamIndex  map[string]int
	roundIndex map[string]int
}

// NewAdvancementTable validates shape (unique teams, unique rounds, one
// value per round) and builds the lookup indexes.
func NewAdvancementTable(rounds []string, rows []TeamRow) (*AdvancementTable, error) {
	if len(rounds) == 0 {
		return nil, fmt.Errorf("no round columns")
	}
	t := &AdvancementTable{
		rounds:     append([]string(nil), rounds...),
		rows:       make([]TeamRow, 0, len(rows)),
		teamIndex:  make(map[string]int, len(rows)),
		roundIndex: make(map[string]int, len(rounds)),
	}
	for i, r := range rounds {
		if r == "" {
			return nil, fmt.Errorf("round column %d has no name", i+1)
		}
		if _, dup := t.roundIndex[r]; dup {
			return nil, fmt.Errorf("duplicate round column %q", r)
		}
		t.roundIndex[r] = i
	}
	for _, row := range rows {
		if row.Team == "" {
			return nil, fmt.Errorf("row %d has an empty team name", len(t.rows)+1)
		}
		if _, dup := t.teamIndex[row.Team]; dup {
			return nil, fmt.Errorf("duplicate team %q", row.Team)
		}
		if len(row.Probabilities) != len(rounds) {
			return nil, fmt.Errorf("team %q has %d values for %d rounds", row.Team, len(row.Probabilities), len(rounds))
		}
		t.teamIndex[row.Team] = len(t.rows)
		t.rows = append(t.rows, TeamRow{
			Team:          row.Team,
			Probabilities: append([]float64(nil), row.Probabilities...),
		})
	}
	return t, nil
}

// Rounds returns the round columns in source order.
func (t *AdvancementTable) Rounds() []string { return append([]string(nil), t.rounds...) }

// Len returns the number of teams.
func (t *AdvancementTable) Len() int { return len(t.rows) }

func (t *AdvancementTable) row(team string) (TeamRow, bool) {
	i, ok := t.teamIndex[team]
	if !ok {
		return TeamRow{}, false
	}
	return t.rows[i], true
}

// Game is one first-round matchup and its predicted winner.
type Game struct {
	Game   string `json:"game" yaml:"game"`
	Winner string `json:"winner" yaml:"winner"`
}

// WinnersTable holds the predicted winners keyed by game.
type WinnersTable struct {
	games []Game
}

// NewWinnersTable rejects empty and duplicate game keys. Winners are not
// checked against any team list.
func NewWinnersTable(games []Game) (*WinnersTable, error) {
	seen := make(map[string]struct{}, len(games))
	out := make([]Game, 0, len(games))
	for i, g := range games {
		if g.Game == "" {
			return nil, fmt.Errorf("row %d has an empty game id", i+1)
		}
		if g.Winner == "" {
			return nil, fmt.Errorf("game %q has no winner", g.Game)
		}
		if _, dup := seen[g.Game]; dup {
			return nil, fmt.Errorf("duplicate game %q", g.Game)
		}
		seen[g.Game] = struct{}{}
		out = append(out, g)
	}
	return &WinnersTable{games: out}, nil
}

// Len returns the number of games.
func (w *WinnersTable) Len() int { return len(w.games) }

// Dataset is the loaded pair of tables. Nothing writes to it after load, so
// one instance is shared by every request.
type Dataset struct {
	Advancement *AdvancementTable
	Winners     *WinnersTable
	LoadedAt    time.Time
	Fingerprint string
}

// RoundProbability is one entry of a team's round-by-round projection.
type RoundProbability struct {
	Round       string  `json:"round" yaml:"round"`
	Probability float64 `json:"probability" yaml:"probability"`
}

// RoundProbabilities keeps round order; use Map for keyed access.
type RoundProbabilities []RoundProbability

func (rp RoundProbabilities) Map() map[string]float64 {
	m := make(map[string]float64, len(rp))
	for _, p := range rp {
		m[p.Round] = p.Probability
	}
	return m
}

// WinnerCount is how many games a team is predicted to win.
type WinnerCount struct {
	Team  string `json:"team" yaml:"team"`
	Count int    `json:"count" yaml:"count"`
}

// RoundComparison pairs two teams' probabilities for one round.
type RoundComparison struct {
	Round string  `json:"round" yaml:"round"`
	A     float64 `json:"a" yaml:"a"`
	B     float64 `json:"b" yaml:"b"`
}

// Comparison is the side-by-side view of two teams.
type Comparison struct {
	TeamA  string            `json:"team_a" yaml:"team_a"`
	TeamB  string            `json:"team_b" yaml:"team_b"`
	Rounds []RoundComparison `json:"rounds" yaml:"rounds"`
}

// TeamProbability is one cell of a single-round slice.
type TeamProbability struct {
	Team        string  `json:"team" yaml:"team"`
	Probability float64 `json:"probability" yaml:"probability"`
}

// Heatmap is the full team x round matrix. Values[i][j] belongs to Teams[i]
// and Rounds[j].
type Heatmap struct {
	Teams  []string    `json:"teams" yaml:"teams"`
	Rounds []string    `json:"rounds" yaml:"rounds"`
	Values [][]float64 `json:"values" yaml:"values"`
}

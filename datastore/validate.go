package datastore

import (
	"errors"
	"fmt"
)

// IssueKind classifies a validation finding.
type IssueKind string

const (
	IssueRange         IssueKind = "range"
	IssueMonotonic     IssueKind = "monotonic"
	IssueUnknownWinner IssueKind = "unknown_winner"
)

// Issue is one validation finding. None of them stop a non-strict load.
type Issue struct {
	Kind    IssueKind `json:"kind" yaml:"kind"`
	Team    string    `json:"team,omitempty" yaml:"team,omitempty"`
	Round   string    `json:"round,omitempty" yaml:"round,omitempty"`
	Game    string    `json:"game,omitempty" yaml:"game,omitempty"`
	Message string    `json:"message" yaml:"message"`
}

// ValidationReport collects issues in table order.
type ValidationReport struct {
	Issues []Issue `json:"issues" yaml:"issues"`
}

func (r ValidationReport) OK() bool { return len(r.Issues) == 0 }

// Err joins the issue messages, or returns nil for a clean report.
func (r ValidationReport) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, len(r.Issues))
	for i, issue := range r.Issues {
		errs[i] = errors.New(issue.Message)
	}
	return errors.Join(errs...)
}

// Validate checks probabilities are in [0,1], do not increase from one round
// to the next, and that every predicted winner is a known team.
func (d *Dataset) Validate() ValidationReport {
	var rep ValidationReport
	rounds := d.Advancement.rounds
	for _, row := range d.Advancement.rows {
		for j, p := range row.Probabilities {
			if p < 0 || p > 1 {
				rep.Issues = append(rep.Issues, Issue{
					Kind:    IssueRange,
					Team:    row.Team,
					Round:   rounds[j],
					Message: fmt.Sprintf("%s: %s probability %g outside [0, 1]", row.Team, rounds[j], p),
				})
			}
			if j > 0 && p > row.Probabilities[j-1] {
				rep.Issues = append(rep.Issues, Issue{
					Kind:  IssueMonotonic,
					Team:  row.Team,
					Round: rounds[j],
					Message: fmt.Sprintf("%s: %s probability %g exceeds %s probability %g",
						row.Team, rounds[j], p, rounds[j-1], row.Probabilities[j-1]),
				})
			}
		}
	}
	for _, g := range d.Winners.games {
		if !d.HasTeam(g.Winner) {
			rep.Issues = append(rep.Issues, Issue{
				Kind:    IssueUnknownWinner,
				Game:    g.Game,
				Team:    g.Winner,
				Message: fmt.Sprintf("%s: winner %q is not in the advancement table", g.Game, g.Winner),
			})
		}
	}
	return rep
}

package datastore

import "sort"

// TeamNames returns the distinct teams in source order.
func (d *Dataset) TeamNames() []string {
	out := make([]string, len(d.Advancement.rows))
	for i, r := range d.Advancement.rows {
		out[i] = r.Team
	}
	return out
}

// HasTeam reports whether team is a row of the advancement table.
func (d *Dataset) HasTeam(team string) bool {
	_, ok := d.Advancement.teamIndex[team]
	return ok
}

// RoundColumns returns the advancement columns other than Team, in source
// order. The order is the round progression.
func (d *Dataset) RoundColumns() []string {
	return d.Advancement.Rounds()
}

// AdvancementFor returns one team's probability per round.
func (d *Dataset) AdvancementFor(team string) (RoundProbabilities, error) {
	row, ok := d.Advancement.row(team)
	if !ok {
		return nil, &TeamNotFoundError{Team: team}
	}
	out := make(RoundProbabilities, len(d.Advancement.rounds))
	for i, round := range d.Advancement.rounds {
		out[i] = RoundProbability{Round: round, Probability: row.Probabilities[i]}
	}
	return out, nil
}

// Games returns the first-round predictions in source order.
func (d *Dataset) Games() []Game {
	return append([]Game(nil), d.Winners.games...)
}

// WinnerCounts tallies games per predicted winner, most wins first. Ties
// keep the order in which the winner first appears.
func (d *Dataset) WinnerCounts() []WinnerCount {
	pos := make(map[string]int)
	var counts []WinnerCount
	for _, g := range d.Winners.games {
		i, ok := pos[g.Winner]
		if !ok {
			i = len(counts)
			pos[g.Winner] = i
			counts = append(counts, WinnerCount{Team: g.Winner})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// Compare pairs two teams' probabilities round by round.
func (d *Dataset) Compare(teamA, teamB string) (Comparison, error) {
	a, err := d.AdvancementFor(teamA)
	if err != nil {
		return Comparison{}, err
	}
	b, err := d.AdvancementFor(teamB)
	if err != nil {
		return Comparison{}, err
	}
	c := Comparison{TeamA: teamA, TeamB: teamB, Rounds: make([]RoundComparison, len(a))}
	for i := range a {
		c.Rounds[i] = RoundComparison{Round: a[i].Round, A: a[i].Probability, B: b[i].Probability}
	}
	return c, nil
}

// RoundSlice returns every team's probability for one round, in team order.
func (d *Dataset) RoundSlice(round string) ([]TeamProbability, error) {
	j, ok := d.Advancement.roundIndex[round]
	if !ok {
		return nil, &RoundNotFoundError{Round: round}
	}
	out := make([]TeamProbability, len(d.Advancement.rows))
	for i, r := range d.Advancement.rows {
		out[i] = TeamProbability{Team: r.Team, Probability: r.Probabilities[j]}
	}
	return out, nil
}

// Heatmap returns the full team x round matrix.
func (d *Dataset) Heatmap() Heatmap {
	h := Heatmap{
		Teams:  d.TeamNames(),
		Rounds: d.RoundColumns(),
		Values: make([][]float64, len(d.Advancement.rows)),
	}
	for i, r := range d.Advancement.rows {
		h.Values[i] = append([]float64(nil), r.Probabilities...)
	}
	return h
}

package datastore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvancementForEveryTeam(t *testing.T) {
	ds := loadDukeUNC(t)
	rounds := ds.RoundColumns()

	for _, team := range ds.TeamNames() {
		probs, err := ds.AdvancementFor(team)
		require.NoError(t, err)
		require.Len(t, probs, len(rounds))
		for i, p := range probs {
			assert.Equal(t, rounds[i], p.Round)
			assert.GreaterOrEqual(t, p.Probability, 0.0)
			assert.LessOrEqual(t, p.Probability, 1.0)
		}
	}
}

func TestAdvancementForUnknownTeam(t *testing.T) {
	ds := loadDukeUNC(t)

	probs, err := ds.AdvancementFor("Gonzaga")
	assert.Nil(t, probs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTeamNotFound))

	var notFound *TeamNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Gonzaga", notFound.Team)
}

func TestTeamNamesAreDistinct(t *testing.T) {
	ds := loadDukeUNC(t)
	names := ds.TeamNames()

	seen := map[string]bool{}
	for _, n := range names {
		assert.False(t, seen[n], "duplicate team %q", n)
		seen[n] = true
	}
	for _, g := range ds.Games() {
		if ds.HasTeam(g.Winner) {
			assert.True(t, seen[g.Winner])
		}
	}
}

func TestWinnerCounts(t *testing.T) {
	ds := loadDukeUNC(t)

	counts := ds.WinnerCounts()
	assert.Equal(t, []WinnerCount{{Team: "Duke", Count: 2}, {Team: "UNC", Count: 1}}, counts)

	total := 0
	for _, c := range counts {
		total += c.Count
	}
	assert.Equal(t, ds.Winners.Len(), total)
}

func TestWinnerCountsTiesKeepFirstSeenOrder(t *testing.T) {
	win, err := NewWinnersTable([]Game{
		{Game: "G1", Winner: "Kansas"},
		{Game: "G2", Winner: "Duke"},
		{Game: "G3", Winner: "Duke"},
		{Game: "G4", Winner: "Baylor"},
		{Game: "G5", Winner: "Kansas"},
		{Game: "G6", Winner: "Iona"},
	})
	require.NoError(t, err)
	adv, err := NewAdvancementTable([]string{"R64"}, []TeamRow{{Team: "Duke", Probabilities: []float64{1}}})
	require.NoError(t, err)
	ds := &Dataset{Advancement: adv, Winners: win}

	assert.Equal(t, []WinnerCount{
		{Team: "Kansas", Count: 2},
		{Team: "Duke", Count: 2},
		{Team: "Baylor", Count: 1},
		{Team: "Iona", Count: 1},
	}, ds.WinnerCounts())
}

func TestCompare(t *testing.T) {
	ds := loadDukeUNC(t)

	c, err := ds.Compare("Duke", "UNC")
	require.NoError(t, err)
	assert.Equal(t, Comparison{
		TeamA: "Duke",
		TeamB: "UNC",
		Rounds: []RoundComparison{
			{Round: "R64", A: 0.95, B: 0.90},
			{Round: "R32", A: 0.70, B: 0.60},
		},
	}, c)

	a, err := ds.AdvancementFor("Duke")
	require.NoError(t, err)
	b, err := ds.AdvancementFor("UNC")
	require.NoError(t, err)
	assert.Len(t, c.Rounds, len(ds.RoundColumns()))
	assert.Equal(t, len(a.Map()), len(b.Map()))
	for round := range a.Map() {
		assert.Contains(t, b.Map(), round)
	}
}

func TestCompareSameTeam(t *testing.T) {
	ds := loadDukeUNC(t)

	c, err := ds.Compare("UNC", "UNC")
	require.NoError(t, err)
	for _, r := range c.Rounds {
		assert.Equal(t, r.A, r.B)
	}
}

func TestCompareUnknownTeam(t *testing.T) {
	ds := loadDukeUNC(t)

	_, err := ds.Compare("Duke", "Gonzaga")
	assert.ErrorIs(t, err, ErrTeamNotFound)
	_, err = ds.Compare("Gonzaga", "Duke")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestRoundSlice(t *testing.T) {
	ds := loadDukeUNC(t)

	slice, err := ds.RoundSlice("R32")
	require.NoError(t, err)
	assert.Equal(t, []TeamProbability{{Team: "Duke", Probability: 0.70}, {Team: "UNC", Probability: 0.60}}, slice)

	_, err = ds.RoundSlice("Final Four")
	assert.ErrorIs(t, err, ErrRoundNotFound)
}

func TestHeatmap(t *testing.T) {
	ds := loadDukeUNC(t)

	h := ds.Heatmap()
	assert.Equal(t, []string{"Duke", "UNC"}, h.Teams)
	assert.Equal(t, []string{"R64", "R32"}, h.Rounds)
	assert.Equal(t, [][]float64{{0.95, 0.70}, {0.90, 0.60}}, h.Values)

	// Callers cannot reach the table through the returned slices.
	h.Values[0][0] = 0
	again := ds.Heatmap()
	assert.Equal(t, 0.95, again.Values[0][0])
}

func TestRoundColumnsReturnsCopy(t *testing.T) {
	ds := loadDukeUNC(t)

	rounds := ds.RoundColumns()
	rounds[0] = "changed"
	assert.Equal(t, []string{"R64", "R32"}, ds.RoundColumns())
}

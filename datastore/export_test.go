package datastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "Duke_advancement.csv", ExportFileName("Duke"))
	assert.Equal(t, "Saint Mary's_advancement.csv", ExportFileName("Saint Mary's"))
	assert.Equal(t, "A_B State_advancement.csv", ExportFileName("A/B State"))
	assert.Equal(t, ".._.._etc_advancement.csv", ExportFileName("../../etc"))
	assert.Equal(t, "C_D_advancement.csv", ExportFileName(`C\D`))
}

func TestExportTeam(t *testing.T) {
	ds := loadDukeUNC(t)

	data, err := ds.ExportTeam("Duke")
	require.NoError(t, err)
	assert.Equal(t, "Round,Duke\nR64,0.95\nR32,0.7\n", string(data))
}

func TestExportTeamRoundTrip(t *testing.T) {
	store := newTestStore(t, "testdata", Options{})
	ds, err := store.Load(t.Context())
	require.NoError(t, err)

	for _, team := range ds.TeamNames() {
		t.Run(team, func(t *testing.T) {
			data, err := ds.ExportTeam(team)
			require.NoError(t, err)

			gotTeam, got, err := ParseExport(data)
			require.NoError(t, err)
			want, err := ds.AdvancementFor(team)
			require.NoError(t, err)

			assert.Equal(t, team, gotTeam)
			assert.Equal(t, want, got)
		})
	}
}

func TestExportTeamQuotesNames(t *testing.T) {
	adv, err := NewAdvancementTable([]string{"Round of 64"}, []TeamRow{
		{Team: "Texas A&M, College Station", Probabilities: []float64{0.5}},
	})
	require.NoError(t, err)
	win, err := NewWinnersTable(nil)
	require.NoError(t, err)
	ds := &Dataset{Advancement: adv, Winners: win}

	data, err := ds.ExportTeam("Texas A&M, College Station")
	require.NoError(t, err)
	assert.Equal(t, "Round,\"Texas A&M, College Station\"\nRound of 64,0.5\n", string(data))

	team, probs, err := ParseExport(data)
	require.NoError(t, err)
	assert.Equal(t, "Texas A&M, College Station", team)
	assert.Equal(t, RoundProbabilities{{Round: "Round of 64", Probability: 0.5}}, probs)
}

func TestExportTeamUnknown(t *testing.T) {
	ds := loadDukeUNC(t)

	data, err := ds.ExportTeam("Gonzaga")
	assert.Nil(t, data)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

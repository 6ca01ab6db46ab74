package datastore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFrame(t *testing.T, text string) Frame {
	t.Helper()
	f, err := readCSV("test", strings.NewReader(text))
	require.NoError(t, err)
	return f
}

func TestParseAdvancementHeaders(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		rounds []string
	}{
		{
			name:   "empty index header",
			text:   ",R64,R32\nDuke,0.9,0.5\n",
			rounds: []string{"R64", "R32"},
		},
		{
			name:   "pandas unnamed index",
			text:   "Unnamed: 0,R64,R32\nDuke,0.9,0.5\n",
			rounds: []string{"R64", "R32"},
		},
		{
			name:   "already named",
			text:   "Team,R64,R32\nDuke,0.9,0.5\n",
			rounds: []string{"R64", "R32"},
		},
		{
			name:   "lower case team",
			text:   "team,R64,R32\nDuke,0.9,0.5\n",
			rounds: []string{"R64", "R32"},
		},
		{
			name:   "whitespace and bom",
			text:   "\ufeff  ,  R64 ,\tR32\nDuke,0.9,0.5\n",
			rounds: []string{"R64", "R32"},
		},
		{
			name:   "index column next to team column",
			text:   "Unnamed: 0,Team,R64,R32\n0,Duke,0.9,0.5\n",
			rounds: []string{"R64", "R32"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adv, err := parseAdvancement("test", mustFrame(t, tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.rounds, adv.Rounds())
			row, ok := adv.row("Duke")
			require.True(t, ok)
			assert.Equal(t, []float64{0.9, 0.5}, row.Probabilities)
		})
	}
}

func TestParseAdvancementTrimsCells(t *testing.T) {
	adv, err := parseAdvancement("test", mustFrame(t, "Team,R64\n  Duke  , 0.9 \n"))
	require.NoError(t, err)
	_, ok := adv.row("Duke")
	assert.True(t, ok)
}

func TestParseAdvancementRejectsNonFinite(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "-Inf"} {
		_, err := parseAdvancement("test", mustFrame(t, "Team,R64\nDuke,"+v+"\n"))
		assert.ErrorIs(t, err, ErrDataLoad, v)
	}
}

func TestParseNarrowMatchesWide(t *testing.T) {
	wide, err := parseAdvancement("wide", mustFrame(t, ",R64,R32\nDuke,0.95,0.70\nUNC,0.90,0.60\n"))
	require.NoError(t, err)

	narrow, err := parseAdvancement("narrow", mustFrame(t,
		"Team,Round,Probability\nDuke,R64,0.95\nUNC,R64,0.90\nUNC,R32,0.60\nDuke,R32,0.70\n"))
	require.NoError(t, err)

	assert.Equal(t, wide.Rounds(), narrow.Rounds())
	assert.Equal(t, wide.rows, narrow.rows)
}

func TestParseNarrowWithIndexColumn(t *testing.T) {
	adv, err := parseAdvancement("narrow", mustFrame(t,
		"Unnamed: 0,School,Round,Probability\n0,Duke,R64,0.95\n1,Duke,R32,0.70\n"))
	require.NoError(t, err)
	row, ok := adv.row("Duke")
	require.True(t, ok)
	assert.Equal(t, []float64{0.95, 0.70}, row.Probabilities)
}

func TestParseNarrowErrors(t *testing.T) {
	tests := map[string]string{
		"duplicate pair": "Team,Round,Probability\nDuke,R64,0.9\nDuke,R64,0.8\n",
		"missing pair":   "Team,Round,Probability\nDuke,R64,0.9\nUNC,R64,0.8\nDuke,R32,0.5\n",
		"empty round":    "Team,Round,Probability\nDuke,,0.9\n",
		"bad value":      "Team,Round,Probability\nDuke,R64,x\n",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseAdvancement("narrow", mustFrame(t, text))
			assert.ErrorIs(t, err, ErrDataLoad)
		})
	}
}

func TestParseWinnersHeaders(t *testing.T) {
	tests := map[string]string{
		"most likely winner": "Unnamed: 0,Game,Most Likely Winner\n0,G1,Duke\n",
		"winner":             "Game,Winner\nG1,Duke\n",
		"predicted winner":   "Game , predicted winner \nG1,Duke\n",
		"single other":       "Game,Pick\nG1,Duke\n",
		"index header":       "Index,Game,Most Likely Winner\n0,G1,Duke\n",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			w, err := parseWinners("test", mustFrame(t, text))
			require.NoError(t, err)
			assert.Equal(t, []Game{{Game: "G1", Winner: "Duke"}}, w.games)
		})
	}
}

func TestParseWinnersEmptyWinner(t *testing.T) {
	_, err := parseWinners("test", mustFrame(t, "Game,Winner\nG1,\n"))
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestNewAdvancementTableShape(t *testing.T) {
	_, err := NewAdvancementTable([]string{"R64", "R64"}, nil)
	assert.Error(t, err)

	_, err = NewAdvancementTable([]string{"R64", "R32"}, []TeamRow{{Team: "Duke", Probabilities: []float64{0.9}}})
	assert.Error(t, err)

	_, err = NewAdvancementTable(nil, nil)
	assert.Error(t, err)
}

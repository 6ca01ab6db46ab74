package templates

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellColorEndpoints(t *testing.T) {
	assert.Equal(t, "#ffffd9", CellColor(YellowGreenBlue, 0))
	assert.Equal(t, "#081d58", CellColor(YellowGreenBlue, 1))
	assert.Equal(t, "#ffffcc", CellColor(YellowOrangeRed, 0))
	assert.Equal(t, "#800026", CellColor(YellowOrangeRed, 1))

	// Stop 4 of 8 sits exactly at 0.5.
	assert.Equal(t, "#41b6c4", CellColor(YellowGreenBlue, 0.5))
}

func TestCellColorClamps(t *testing.T) {
	assert.Equal(t, CellColor(YellowGreenBlue, 0), CellColor(YellowGreenBlue, -0.3))
	assert.Equal(t, CellColor(YellowGreenBlue, 1), CellColor(YellowGreenBlue, 7))
}

func TestCellStyleTextContrast(t *testing.T) {
	assert.Contains(t, string(CellStyle(YellowOrangeRed, 0.1)), "color: #1c1917;")
	assert.Contains(t, string(CellStyle(YellowOrangeRed, 0.9)), "color: #ffffff;")
	assert.Contains(t, string(CellStyle(YellowOrangeRed, 0.9)), "background-color: #")
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "0.95", Fixed2(0.95))
	assert.Equal(t, "0.70", Fixed2(0.7))
	assert.Equal(t, "1.00", Fixed2(0.999))
	assert.Equal(t, "95.0%", Percent(0.95))
	assert.Equal(t, "12.5%", Percent(0.125))
	assert.Equal(t, "Not Found", statusText(http.StatusNotFound))
	assert.Equal(t, "Error", statusText(599))
}

func sampleDashboard() DashboardData {
	return DashboardData{
		Title:    "Bracket",
		Source:   "csv:testdata",
		LoadedAt: "2025-03-18 09:00:00",
		Teams:    []string{"Duke", "UNC"},
		Rounds:   []string{"R64", "R32"},
		Games:    []GameRow{{Game: "Game1", Winner: "Duke"}},
		Counts:   []CountRow{{Team: "Duke", Count: 1}},
		Team: TeamView{
			Name:     "Duke",
			ChartURL: "/charts/team/Duke.png",
			Rounds:   []RoundValue{{Round: "R64", Probability: 0.95}, {Round: "R32", Probability: 0.7}},
		},
		Heatmap: HeatmapView{
			Title:   "Team Advancement Probability Heatmap",
			Rounds:  []string{"R64", "R32"},
			Rows:    []HeatmapRow{{Team: "Duke", Values: []float64{0.95, 0.7}}},
			Palette: YellowGreenBlue,
		},
		Compare: CompareView{A: "Duke", B: "UNC", Warning: "\"Gonzaga\" is not in the advancement table."},
		Round: RoundView{
			Name: "R32",
			Heatmap: HeatmapView{
				Title:   "Probability to Advance to R32",
				Rounds:  []string{"R32"},
				Rows:    []HeatmapRow{{Team: "Duke", Values: []float64{0.7}}},
				Palette: YellowOrangeRed,
			},
		},
		Search: SearchView{
			Query:       "du",
			Team:        "Duke",
			Matches:     []string{"Duke"},
			Rounds:      []RoundValue{{Round: "R64", Probability: 0.95}},
			DownloadURL: "/download/Duke",
		},
		Warnings: []string{"UNC: R32 probability 0.95 exceeds R64 probability 0.9"},
	}
}

func TestDashboardRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dashboard(sampleDashboard()).Render(context.Background(), &buf))
	html := buf.String()

	for _, want := range []string{
		"<title>Bracket</title>",
		"First Round: Predicted Winners",
		"Full Tournament Heatmap",
		"Team Advancement Probabilities",
		"Compare Two Teams",
		"Advancement by Round",
		"Probability to Advance to R32",
		`src="/charts/winners.png"`,
		`src="/charts/team/Duke.png"`,
		`href="/download/Duke"`,
		"0.95",
		"0.70",
		"background-color: #",
		"is not in the advancement table.",
		"exceeds R64 probability",
	} {
		assert.Contains(t, html, want)
	}
	assert.Contains(t, html, `class="warning`)
}

func TestDashboardEscapesTeamNames(t *testing.T) {
	d := sampleDashboard()
	d.Teams = append(d.Teams, "<script>")
	var buf bytes.Buffer
	require.NoError(t, Dashboard(d).Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestDashboardWithoutGamesWarns(t *testing.T) {
	d := sampleDashboard()
	d.Games = nil
	d.Counts = nil
	var buf bytes.Buffer
	require.NoError(t, Dashboard(d).Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), `src="/charts/winners.png"`)
}

func TestErrorPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ErrorPage(http.StatusInternalServerError, "advancement: file missing").Render(context.Background(), &buf))
	html := buf.String()
	assert.Contains(t, html, "500 Internal Server Error")
	assert.Contains(t, html, `<p class="error">advancement: file missing</p>`)
}

func TestSelectionHidden(t *testing.T) {
	sel := Selection{Team: "Duke", A: "Duke", B: "UNC", Round: "R32"}
	assert.Equal(t, []HiddenField{
		{Name: "team", Value: "Duke"},
		{Name: "round", Value: "R32"},
	}, sel.Hidden("a", "b"))
	assert.Len(t, sel.Hidden(), 4)
	assert.Empty(t, Selection{}.Hidden())
}

func TestDashboardFormsCarrySelection(t *testing.T) {
	d := sampleDashboard()
	d.Selected = Selection{Team: "Duke", A: "Duke", B: "UNC", Round: "R32", Search: "du"}
	var buf bytes.Buffer
	require.NoError(t, Dashboard(d).Render(context.Background(), &buf))
	html := buf.String()

	assert.Equal(t, 3, strings.Count(html, `<input type="hidden" name="team" value="Duke">`))
	assert.Equal(t, 3, strings.Count(html, `<input type="hidden" name="a" value="Duke">`))
	assert.Equal(t, 3, strings.Count(html, `<input type="hidden" name="search" value="du">`))
}

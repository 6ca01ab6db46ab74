package main

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"bracket-explorer/datastore"
	"bracket-explorer/templates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestDataset(t *testing.T) *datastore.Dataset {
	t.Helper()
	dir := writeTestData(t, testAdvancement, testWinners)
	store := datastore.NewStore(datastore.NewCSVSource(dir), datastore.Options{Logger: logrusEntry()})
	ds, err := store.Load(context.Background())
	require.NoError(t, err)
	return ds
}

func TestBuildDashboardDefaults(t *testing.T) {
	d := buildDashboard(loadTestDataset(t), "csv:test", url.Values{})

	assert.Equal(t, dashboardTitle, d.Title)
	assert.Equal(t, []string{"Duke", "UNC", "Texas A&M"}, d.Teams)
	assert.Len(t, d.Games, 3)
	assert.Equal(t, "Duke", d.Counts[0].Team)
	assert.Equal(t, 2, d.Counts[0].Count)

	assert.Equal(t, "Duke", d.Team.Name)
	assert.Empty(t, d.Team.Warning)
	assert.Equal(t, "/charts/team/Duke.png", d.Team.ChartURL)
	assert.Len(t, d.Team.Rounds, 3)

	assert.Equal(t, "Duke", d.Compare.A)
	assert.Equal(t, "UNC", d.Compare.B)
	assert.Equal(t, "/charts/compare.png?a=Duke&b=UNC", d.Compare.ChartURL)

	assert.Equal(t, "R64", d.Round.Name)
	assert.Len(t, d.Round.Heatmap.Rows, 3)
	assert.Equal(t, "Probability to Advance to R64", d.Round.Heatmap.Title)

	assert.Equal(t, "Duke", d.Search.Team)
	assert.Equal(t, "/download/Duke", d.Search.DownloadURL)

	require.Len(t, d.Heatmap.Rows, 3)
	assert.Equal(t, []float64{0.95, 0.70, 0.40}, d.Heatmap.Rows[0].Values)
	assert.Empty(t, d.Warnings)
}

func TestBuildDashboardSelections(t *testing.T) {
	q := url.Values{
		"team":   {"Texas A&M"},
		"a":      {"UNC"},
		"b":      {"Gonzaga"},
		"round":  {"Elite 8"},
		"search": {"tex"},
	}
	d := buildDashboard(loadTestDataset(t), "csv:test", q)

	assert.Equal(t, "/charts/team/Texas%20A&M.png", d.Team.ChartURL)
	assert.Equal(t, `"Gonzaga" is not in the advancement table.`, d.Compare.Warning)
	assert.Empty(t, d.Compare.Rows)
	assert.Equal(t, `"Elite 8" is not a round column.`, d.Round.Warning)
	assert.Equal(t, "Texas A&M", d.Search.Team)
	assert.Equal(t, "/download/Texas%20A&M", d.Search.DownloadURL)

	// Unknown selections are carried as typed so the next submit keeps them.
	assert.Equal(t, templates.Selection{Team: "Texas A&M", A: "UNC", B: "Gonzaga", Round: "Elite 8", Search: "tex"}, d.Selected)
}

func TestSearchView(t *testing.T) {
	ds := loadTestDataset(t)
	teams := ds.TeamNames()

	v := searchView(ds, teams, "zzz")
	assert.Equal(t, `No team matches "zzz".`, v.Warning)
	assert.Empty(t, v.Team)

	v = searchView(ds, teams, "u")
	assert.Equal(t, []string{"Duke", "UNC"}, v.Matches)
	assert.Equal(t, "Duke", v.Team)

	v = searchView(ds, nil, "")
	assert.Equal(t, "No teams are loaded.", v.Warning)
}

func TestMatchTeams(t *testing.T) {
	teams := []string{"Duke", "UNC", "Texas A&M", "Texas Tech"}
	assert.Equal(t, []string{"UNC"}, matchTeams(teams, "unc"))
	assert.Equal(t, []string{"Duke"}, matchTeams(teams, "  DUKE "))
	assert.Equal(t, []string{"Texas A&M", "Texas Tech"}, matchTeams(teams, "texas"))
	assert.Empty(t, matchTeams(teams, "gonzaga"))
}

func TestPick(t *testing.T) {
	opts := []string{"Duke", "UNC"}
	assert.Equal(t, "Kansas", pick("Kansas", opts, 0))
	assert.Equal(t, "Duke", pick("", opts, 0))
	assert.Equal(t, "UNC", pick("", opts, 1))
	assert.Equal(t, "UNC", pick("", opts, 5))
	assert.Equal(t, "", pick("", nil, 0))
}

func TestValidationWarningsAreCapped(t *testing.T) {
	var rep datastore.ValidationReport
	for range maxPageWarnings + 2 {
		rep.Issues = append(rep.Issues, datastore.Issue{Kind: datastore.IssueRange, Message: "bad"})
	}
	got := validationWarnings(rep)
	require.Len(t, got, maxPageWarnings+1)
	assert.Equal(t, "…and 2 more data warnings.", got[maxPageWarnings])

	assert.Nil(t, validationWarnings(datastore.ValidationReport{}))
}

func TestDashboardPage(t *testing.T) {
	h := newTestServer(t, writeTestData(t, testAdvancement, testWinners))

	rec := do(t, h, http.MethodGet, "/?team=Gonzaga")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "March Madness 2025: Bracket Model Explorer")
	assert.Contains(t, body, "is not in the advancement table.")
	assert.Contains(t, body, `src="/charts/winners.png"`)
	assert.Contains(t, body, `href="/download/Duke"`)
}

func TestDashboardPageLoadError(t *testing.T) {
	h := newTestServer(t, t.TempDir())

	rec := do(t, h, http.MethodGet, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `<p class="error">`)
	assert.Contains(t, rec.Body.String(), datastore.DefaultAdvancementFile)
}

// formHTML returns the markup of the form that submits to action.
func formHTML(t *testing.T, body, action string) string {
	t.Helper()
	start := strings.Index(body, `action="`+action+`"`)
	require.GreaterOrEqual(t, start, 0, action)
	end := strings.Index(body[start:], "</form>")
	require.GreaterOrEqual(t, end, 0, action)
	return body[start : start+end]
}

func TestDashboardFormsKeepOtherSelections(t *testing.T) {
	h := newTestServer(t, writeTestData(t, testAdvancement, testWinners))

	rec := do(t, h, http.MethodGet, "/?team=UNC&a=UNC&b=Texas+A%26M&round=R32")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	team := formHTML(t, body, "/#team")
	assert.Contains(t, team, `<input type="hidden" name="a" value="UNC">`)
	assert.Contains(t, team, `<input type="hidden" name="b" value="Texas A&amp;M">`)
	assert.Contains(t, team, `<input type="hidden" name="round" value="R32">`)
	assert.NotContains(t, team, `type="hidden" name="team"`)
	assert.NotContains(t, team, `name="search"`)

	compare := formHTML(t, body, "/#compare")
	assert.Contains(t, compare, `<input type="hidden" name="team" value="UNC">`)
	assert.Contains(t, compare, `<input type="hidden" name="round" value="R32">`)
	assert.NotContains(t, compare, `type="hidden" name="a"`)
	assert.NotContains(t, compare, `type="hidden" name="b"`)

	round := formHTML(t, body, "/#round")
	assert.Contains(t, round, `<input type="hidden" name="team" value="UNC">`)
	assert.Contains(t, round, `<input type="hidden" name="a" value="UNC">`)
	assert.Contains(t, round, `<input type="hidden" name="b" value="Texas A&amp;M">`)
	assert.NotContains(t, round, `type="hidden" name="round"`)

	search := formHTML(t, body, "/#search")
	assert.Contains(t, search, `<input type="hidden" name="team" value="UNC">`)
	assert.Contains(t, search, `<input type="hidden" name="round" value="R32">`)
	assert.NotContains(t, search, `type="hidden" name="search"`)
}

func TestDashboardFormsKeepSearch(t *testing.T) {
	h := newTestServer(t, writeTestData(t, testAdvancement, testWinners))

	body := do(t, h, http.MethodGet, "/?search=tex").Body.String()
	assert.Contains(t, formHTML(t, body, "/#team"), `<input type="hidden" name="search" value="tex">`)
	assert.Contains(t, formHTML(t, body, "/#search"), `name="search" list="team-names" value="tex"`)
}

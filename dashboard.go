package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"bracket-explorer/datastore"
	"bracket-explorer/templates"

	"github.com/a-h/templ"
)

const (
	dashboardTitle = "March Madness 2025: Bracket Model Explorer"
	// Validation warnings listed on the page before the rest are summarized.
	maxPageWarnings = 5
)

func (s *server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Load(r.Context())
	if err != nil {
		s.log.WithError(err).Error("❌ Could not load bracket data")
		templ.Handler(templates.ErrorPage(http.StatusInternalServerError, err.Error()),
			templ.WithStatus(http.StatusInternalServerError)).ServeHTTP(w, r)
		return
	}

	data := buildDashboard(ds, s.store.Source().String(), r.URL.Query())
	templ.Handler(templates.Dashboard(data)).ServeHTTP(w, r)
}

// buildDashboard resolves the page's selections against the dataset. Unknown
// or empty selections become section warnings.
func buildDashboard(ds *datastore.Dataset, source string, q url.Values) templates.DashboardData {
	teams := ds.TeamNames()
	rounds := ds.RoundColumns()

	data := templates.DashboardData{
		Title:    dashboardTitle,
		Source:   source,
		LoadedAt: ds.LoadedAt.Format("2006-01-02 15:04:05"),
		Teams:    teams,
		Rounds:   rounds,
		Heatmap:  fullHeatmap(ds),
		Warnings: validationWarnings(ds.Validate()),
	}
	for _, g := range ds.Games() {
		data.Games = append(data.Games, templates.GameRow{Game: g.Game, Winner: g.Winner})
	}
	for _, c := range ds.WinnerCounts() {
		data.Counts = append(data.Counts, templates.CountRow{Team: c.Team, Count: c.Count})
	}

	data.Team = teamView(ds, pick(q.Get("team"), teams, 0))
	data.Compare = compareView(ds, pick(q.Get("a"), teams, 0), pick(q.Get("b"), teams, 1))
	data.Round = roundView(ds, pick(q.Get("round"), rounds, 0))
	data.Search = searchView(ds, teams, q.Get("search"))
	data.Selected = templates.Selection{
		Team:   data.Team.Name,
		A:      data.Compare.A,
		B:      data.Compare.B,
		Round:  data.Round.Name,
		Search: data.Search.Query,
	}
	return data
}

// pick returns the requested value, or options[i] (clamped to the last
// option) when nothing was requested.
func pick(requested string, options []string, i int) string {
	if requested != "" {
		return requested
	}
	if len(options) == 0 {
		return ""
	}
	if i >= len(options) {
		i = len(options) - 1
	}
	return options[i]
}

func roundValues(probs datastore.RoundProbabilities) []templates.RoundValue {
	out := make([]templates.RoundValue, len(probs))
	for i, p := range probs {
		out[i] = templates.RoundValue{Round: p.Round, Probability: p.Probability}
	}
	return out
}

func lookupWarning(err error) string {
	var tnf *datastore.TeamNotFoundError
	if errors.As(err, &tnf) {
		return fmt.Sprintf("%q is not in the advancement table.", tnf.Team)
	}
	var rnf *datastore.RoundNotFoundError
	if errors.As(err, &rnf) {
		return fmt.Sprintf("%q is not a round column.", rnf.Round)
	}
	return err.Error()
}

func teamView(ds *datastore.Dataset, team string) templates.TeamView {
	v := templates.TeamView{Name: team}
	if team == "" {
		v.Warning = "No teams are loaded."
		return v
	}
	probs, err := ds.AdvancementFor(team)
	if err != nil {
		v.Warning = lookupWarning(err)
		return v
	}
	if len(probs) == 0 {
		v.Warning = fmt.Sprintf("No probabilities found for %s.", team)
		return v
	}
	v.ChartURL = "/charts/team/" + url.PathEscape(team) + ".png"
	v.Rounds = roundValues(probs)
	return v
}

func fullHeatmap(ds *datastore.Dataset) templates.HeatmapView {
	h := ds.Heatmap()
	view := templates.HeatmapView{
		Title:   "Team Advancement Probability Heatmap",
		Rounds:  h.Rounds,
		Palette: templates.YellowGreenBlue,
	}
	for i, team := range h.Teams {
		view.Rows = append(view.Rows, templates.HeatmapRow{Team: team, Values: h.Values[i]})
	}
	return view
}

func compareView(ds *datastore.Dataset, a, b string) templates.CompareView {
	v := templates.CompareView{A: a, B: b}
	if a == "" || b == "" {
		v.Warning = "Pick two teams to compare."
		return v
	}
	c, err := ds.Compare(a, b)
	if err != nil {
		v.Warning = lookupWarning(err)
		return v
	}
	v.ChartURL = "/charts/compare.png?" + url.Values{"a": {a}, "b": {b}}.Encode()
	for _, r := range c.Rounds {
		v.Rows = append(v.Rows, templates.CompareRow{Round: r.Round, A: r.A, B: r.B})
	}
	return v
}

func roundView(ds *datastore.Dataset, round string) templates.RoundView {
	v := templates.RoundView{Name: round}
	if round == "" {
		v.Warning = "No rounds are loaded."
		return v
	}
	slice, err := ds.RoundSlice(round)
	if err != nil {
		v.Warning = lookupWarning(err)
		return v
	}
	v.Heatmap = templates.HeatmapView{
		Title:   "Probability to Advance to " + round,
		Rounds:  []string{round},
		Palette: templates.YellowOrangeRed,
	}
	for _, tp := range slice {
		v.Heatmap.Rows = append(v.Heatmap.Rows, templates.HeatmapRow{Team: tp.Team, Values: []float64{tp.Probability}})
	}
	return v
}

// matchTeams returns an exact case-insensitive match alone, otherwise every
// team containing the query.
func matchTeams(teams []string, query string) []string {
	query = strings.TrimSpace(query)
	for _, t := range teams {
		if strings.EqualFold(t, query) {
			return []string{t}
		}
	}
	needle := strings.ToLower(query)
	var out []string
	for _, t := range teams {
		if strings.Contains(strings.ToLower(t), needle) {
			out = append(out, t)
		}
	}
	return out
}

func searchView(ds *datastore.Dataset, teams []string, query string) templates.SearchView {
	v := templates.SearchView{Query: query}
	if strings.TrimSpace(query) == "" {
		if len(teams) == 0 {
			v.Warning = "No teams are loaded."
			return v
		}
		v.Matches = teams[:1]
	} else {
		v.Matches = matchTeams(teams, query)
	}
	if len(v.Matches) == 0 {
		v.Warning = fmt.Sprintf("No team matches %q.", query)
		return v
	}
	team := v.Matches[0]
	probs, err := ds.AdvancementFor(team)
	if err != nil {
		v.Warning = lookupWarning(err)
		return v
	}
	v.Team = team
	v.Rounds = roundValues(probs)
	v.DownloadURL = "/download/" + url.PathEscape(team)
	return v
}

func validationWarnings(rep datastore.ValidationReport) []string {
	if rep.OK() {
		return nil
	}
	var out []string
	for i, issue := range rep.Issues {
		if i == maxPageWarnings {
			out = append(out, fmt.Sprintf("…and %d more data warnings.", len(rep.Issues)-maxPageWarnings))
			break
		}
		out = append(out, issue.Message)
	}
	return out
}

package templates

import "slices"

type GameRow struct {
	Game   string
	Winner string
}

type CountRow struct {
	Team  string
	Count int
}

type RoundValue struct {
	Round       string
	Probability float64
}

// TeamView is the single-team bar chart section.
type TeamView struct {
	Name     string
	ChartURL string
	Rounds   []RoundValue
	Warning  string
}

type HeatmapRow struct {
	Team   string
	Values []float64
}

// HeatmapView is a team x round grid. Values in each row line up with Rounds.
type HeatmapView struct {
	Title   string
	Rounds  []string
	Rows    []HeatmapRow
	Palette Palette
}

type CompareRow struct {
	Round string
	A     float64
	B     float64
}

type CompareView struct {
	A        string
	B        string
	ChartURL string
	Rows     []CompareRow
	Warning  string
}

type RoundView struct {
	Name    string
	Heatmap HeatmapView
	Warning string
}

// SearchView backs the search and download section. Team is empty when the
// query matched nothing.
type SearchView struct {
	Query       string
	Team        string
	Matches     []string
	Rounds      []RoundValue
	DownloadURL string
	Warning     string
}

type DashboardData struct {
	Title    string
	Source   string
	LoadedAt string
	Teams    []string
	Rounds   []string
	Games    []GameRow
	Counts   []CountRow
	Team     TeamView
	Heatmap  HeatmapView
	Compare  CompareView
	Round    RoundView
	Search   SearchView
	Selected Selection
	Warnings []string
}

// Selection is the page's query state. Each section form submits its own
// field and carries the rest as hidden inputs.
type Selection struct {
	Team   string
	A      string
	B      string
	Round  string
	Search string
}

type HiddenField struct {
	Name  string
	Value string
}

// Hidden lists the non-empty fields of s in query order, leaving out the
// names a form already submits.
func (s Selection) Hidden(owned ...string) []HiddenField {
	all := []HiddenField{
		{Name: "team", Value: s.Team},
		{Name: "a", Value: s.A},
		{Name: "b", Value: s.B},
		{Name: "round", Value: s.Round},
		{Name: "search", Value: s.Search},
	}
	out := all[:0]
	for _, f := range all {
		if f.Value == "" || slices.Contains(owned, f.Name) {
			continue
		}
		out = append(out, f)
	}
	return out
}

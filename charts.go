package main

import (
	"bytes"
	"fmt"
	"sync"

	"bracket-explorer/datastore"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartHeight     = 400
	chartBarWidth   = 48
	chartBarSpacing = 24
)

var (
	colorTeamA = chart.ColorBlue
	colorTeamB = chart.ColorOrange
	colorWins  = drawing.ColorFromHex("5D4037")
)

// Rendered PNGs for the dataset they were drawn from. A new dataset empties
// the cache.
type chartCache struct {
	mu      sync.Mutex
	dataset *datastore.Dataset
	data    map[string][]byte
}

func (c *chartCache) get(ds *datastore.Dataset, key string, render func() ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	if c.dataset != ds {
		c.dataset = ds
		c.data = make(map[string][]byte)
	}
	if png, ok := c.data[key]; ok {
		c.mu.Unlock()
		return png, nil
	}
	c.mu.Unlock()

	png, err := render()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.dataset == ds {
		c.data[key] = png
	}
	c.mu.Unlock()
	return png, nil
}

func chartWidth(bars int) int {
	w := bars*(chartBarWidth+chartBarSpacing) + 120
	if w < 640 {
		return 640
	}
	return w
}

func barStyle(c drawing.Color) chart.Style {
	return chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1}
}

func probabilityAxis() chart.YAxis {
	return chart.YAxis{
		Range:          &chart.ContinuousRange{Min: 0, Max: 1},
		ValueFormatter: chart.PercentValueFormatter,
	}
}

func renderBars(bc chart.BarChart) ([]byte, error) {
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering %q: %w", bc.Title, err)
	}
	return buf.Bytes(), nil
}

// teamChart is the round-by-round bar chart for one team.
func teamChart(team string, probs datastore.RoundProbabilities) ([]byte, error) {
	bars := make([]chart.Value, len(probs))
	for i, p := range probs {
		bars[i] = chart.Value{Label: p.Round, Value: p.Probability, Style: barStyle(colorTeamA)}
	}
	return renderBars(chart.BarChart{
		Title:      team,
		Width:      chartWidth(len(bars)),
		Height:     chartHeight,
		BarWidth:   chartBarWidth,
		BarSpacing: chartBarSpacing,
		YAxis:      probabilityAxis(),
		Bars:       bars,
	})
}

// compareChart interleaves both teams' bars per round, team A first.
func compareChart(c datastore.Comparison) ([]byte, error) {
	bars := make([]chart.Value, 0, 2*len(c.Rounds))
	for _, r := range c.Rounds {
		bars = append(bars,
			chart.Value{Label: r.Round, Value: r.A, Style: barStyle(colorTeamA)},
			chart.Value{Label: "", Value: r.B, Style: barStyle(colorTeamB)},
		)
	}
	return renderBars(chart.BarChart{
		Title:      fmt.Sprintf("%s (blue) vs %s (orange)", c.TeamA, c.TeamB),
		Width:      chartWidth(len(bars)),
		Height:     chartHeight,
		BarWidth:   chartBarWidth / 2,
		BarSpacing: chartBarSpacing / 2,
		YAxis:      probabilityAxis(),
		Bars:       bars,
	})
}

// winnersChart plots predicted first-round wins per team.
func winnersChart(counts []datastore.WinnerCount) ([]byte, error) {
	bars := make([]chart.Value, len(counts))
	most := 1
	for i, c := range counts {
		bars[i] = chart.Value{Label: c.Team, Value: float64(c.Count), Style: barStyle(colorWins)}
		if c.Count > most {
			most = c.Count
		}
	}
	return renderBars(chart.BarChart{
		Title:      "Predicted first-round wins",
		Width:      chartWidth(len(bars)),
		Height:     chartHeight,
		BarWidth:   chartBarWidth,
		BarSpacing: chartBarSpacing,
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(most)},
			ValueFormatter: func(v interface{}) string { return fmt.Sprintf("%.0f", v) },
		},
		Bars: bars,
	})
}

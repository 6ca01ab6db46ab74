package datastore

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Frame is a table as read from a source: a header and string cells.
type Frame struct {
	Header []string
	Rows   [][]string
}

var (
	// Headers pandas and friends write for an unnamed index column.
	placeholderHeaders = map[string]bool{
		"":           true,
		"unnamed: 0": true,
		"index":      true,
	}
	winnerAliases = map[string]bool{
		"winner":             true,
		"most likely winner": true,
		"predicted winner":   true,
	}
)

func isPlaceholder(h string) bool {
	return placeholderHeaders[strings.ToLower(h)]
}

// cleanHeader trims incidental whitespace and a UTF-8 byte order mark.
func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

// parseAdvancement normalizes a wide or narrow advancement frame.
func parseAdvancement(source string, f Frame) (*AdvancementTable, error) {
	header := cleanHeader(f.Header)
	if len(header) == 0 {
		return nil, loadErr(source, "no columns", nil)
	}
	if err := checkRagged(source, header, f.Rows); err != nil {
		return nil, err
	}
	if isNarrow(header) {
		return parseNarrow(source, header, f.Rows)
	}

	teamIdx := indexOf(header, TeamColumn)
	if teamIdx < 0 && isPlaceholder(header[0]) {
		teamIdx = 0
	}
	if teamIdx < 0 {
		return nil, loadErr(source, fmt.Sprintf("missing %s column", TeamColumn), nil)
	}

	var (
		rounds   []string
		roundCol []int
	)
	for i, h := range header {
		if i == teamIdx || isPlaceholder(h) {
			continue
		}
		rounds = append(rounds, h)
		roundCol = append(roundCol, i)
	}
	if len(rounds) == 0 {
		return nil, loadErr(source, "no round columns", nil)
	}

	rows := make([]TeamRow, 0, len(f.Rows))
	for n, rec := range f.Rows {
		row := TeamRow{
			Team:          strings.TrimSpace(rec[teamIdx]),
			Probabilities: make([]float64, len(roundCol)),
		}
		for j, col := range roundCol {
			p, err := parseProbability(rec[col])
			if err != nil {
				return nil, loadErr(source, fmt.Sprintf("row %d, column %q", n+2, rounds[j]), err)
			}
			row.Probabilities[j] = p
		}
		rows = append(rows, row)
	}

	t, err := NewAdvancementTable(rounds, rows)
	if err != nil {
		return nil, loadErr(source, "invalid advancement table", err)
	}
	return t, nil
}

// isNarrow reports the alternate one-row-per-team-round shape.
func isNarrow(header []string) bool {
	return indexOf(header, "Round") >= 0 && indexOf(header, "Probability") >= 0
}

// parseNarrow pivots Team/Round/Probability rows into the wide form. Rounds
// keep first-seen order, teams keep first-seen order.
func parseNarrow(source string, header []string, records [][]string) (*AdvancementTable, error) {
	roundIdx := indexOf(header, "Round")
	probIdx := indexOf(header, "Probability")
	teamIdx := indexOf(header, TeamColumn)
	if teamIdx < 0 {
		// Prefer a named column; fall back to the placeholder index.
		for i, h := range header {
			if i == roundIdx || i == probIdx {
				continue
			}
			if teamIdx < 0 || isPlaceholder(header[teamIdx]) && !isPlaceholder(h) {
				teamIdx = i
			}
		}
	}
	if teamIdx < 0 {
		return nil, loadErr(source, fmt.Sprintf("missing %s column", TeamColumn), nil)
	}

	var rounds, teams []string
	roundPos := map[string]int{}
	cells := map[string]map[string]float64{}
	for n, rec := range records {
		team := strings.TrimSpace(rec[teamIdx])
		round := strings.TrimSpace(rec[roundIdx])
		if team == "" || round == "" {
			return nil, loadErr(source, fmt.Sprintf("row %d has an empty team or round", n+2), nil)
		}
		p, err := parseProbability(rec[probIdx])
		if err != nil {
			return nil, loadErr(source, fmt.Sprintf("row %d, column %q", n+2, "Probability"), err)
		}
		if _, ok := roundPos[round]; !ok {
			roundPos[round] = len(rounds)
			rounds = append(rounds, round)
		}
		byRound, ok := cells[team]
		if !ok {
			byRound = map[string]float64{}
			cells[team] = byRound
			teams = append(teams, team)
		}
		if _, dup := byRound[round]; dup {
			return nil, loadErr(source, fmt.Sprintf("duplicate value for %s / %s", team, round), nil)
		}
		byRound[round] = p
	}

	rows := make([]TeamRow, 0, len(teams))
	for _, team := range teams {
		row := TeamRow{Team: team, Probabilities: make([]float64, len(rounds))}
		for _, round := range rounds {
			p, ok := cells[team][round]
			if !ok {
				return nil, loadErr(source, fmt.Sprintf("team %q has no value for %q", team, round), nil)
			}
			row.Probabilities[roundPos[round]] = p
		}
		rows = append(rows, row)
	}

	t, err := NewAdvancementTable(rounds, rows)
	if err != nil {
		return nil, loadErr(source, "invalid advancement table", err)
	}
	return t, nil
}

// parseWinners normalizes the winners frame to Game/Winner.
func parseWinners(source string, f Frame) (*WinnersTable, error) {
	header := cleanHeader(f.Header)
	if len(header) == 0 {
		return nil, loadErr(source, "no columns", nil)
	}
	if err := checkRagged(source, header, f.Rows); err != nil {
		return nil, err
	}

	gameIdx := indexOf(header, GameColumn)
	if gameIdx < 0 {
		return nil, loadErr(source, fmt.Sprintf("missing %s column", GameColumn), nil)
	}
	winnerIdx := -1
	var others []int
	for i, h := range header {
		if i == gameIdx || isPlaceholder(h) {
			continue
		}
		if winnerAliases[strings.ToLower(h)] {
			winnerIdx = i
			break
		}
		others = append(others, i)
	}
	// A single unrecognized column next to Game is taken as the winner.
	if winnerIdx < 0 && len(others) == 1 {
		winnerIdx = others[0]
	}
	if winnerIdx < 0 {
		return nil, loadErr(source, fmt.Sprintf("missing %s column", WinnerColumn), nil)
	}

	games := make([]Game, 0, len(f.Rows))
	for _, rec := range f.Rows {
		games = append(games, Game{
			Game:   strings.TrimSpace(rec[gameIdx]),
			Winner: strings.TrimSpace(rec[winnerIdx]),
		})
	}
	w, err := NewWinnersTable(games)
	if err != nil {
		return nil, loadErr(source, "invalid winners table", err)
	}
	return w, nil
}

func checkRagged(source string, header []string, rows [][]string) error {
	for n, rec := range rows {
		if len(rec) != len(header) {
			return loadErr(source, fmt.Sprintf("row %d has %d fields, header has %d", n+2, len(rec), len(header)), nil)
		}
	}
	return nil
}

func parseProbability(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return p, nil
}

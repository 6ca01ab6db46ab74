package datastore

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// Path separators in a team name would point the default export outside the
// working directory.
var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", "\x00", "")

// ExportFileName is the download name for a team's export. It is always a
// bare file name.
func ExportFileName(team string) string {
	return fileNameReplacer.Replace(team) + "_advancement.csv"
}

// ExportTeam writes one team's row transposed: a Round,<team> header and one
// line per round.
func (d *Dataset) ExportTeam(team string) ([]byte, error) {
	probs, err := d.AdvancementFor(team)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Round", team}); err != nil {
		return nil, err
	}
	for _, p := range probs {
		if err := w.Write([]string{p.Round, strconv.FormatFloat(p.Probability, 'f', -1, 64)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("writing export: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseExport reads back the output of ExportTeam.
func ParseExport(data []byte) (string, RoundProbabilities, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 2
	records, err := r.ReadAll()
	if err != nil {
		return "", nil, fmt.Errorf("parsing export: %w", err)
	}
	if len(records) == 0 {
		return "", nil, fmt.Errorf("parsing export: empty")
	}
	team := records[0][1]
	out := make(RoundProbabilities, 0, len(records)-1)
	for _, rec := range records[1:] {
		p, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return "", nil, fmt.Errorf("parsing export round %q: %w", rec[0], err)
		}
		out = append(out, RoundProbability{Round: rec[0], Probability: p})
	}
	return team, out, nil
}

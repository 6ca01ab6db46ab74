package datastore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Default file names inside a CSV data directory.
const (
	DefaultAdvancementFile = "advancement_probabilities.csv"
	DefaultWinnersFile     = "bracket_winners.csv"
)

// Table names one of the two inputs.
type Table int

const (
	AdvancementInput Table = iota
	WinnersInput
)

func (t Table) String() string {
	switch t {
	case AdvancementInput:
		return "advancement"
	case WinnersInput:
		return "winners"
	default:
		return fmt.Sprintf("table(%d)", int(t))
	}
}

// Source yields raw frames for the two inputs. Fingerprint changes whenever
// the underlying storage changes; the store compares it to decide reloads.
type Source interface {
	Read(ctx context.Context, t Table) (Frame, error)
	Fingerprint() (string, error)
	String() string
}

// CSVSource reads both tables from comma-separated files in one directory.
type CSVSource struct {
	Dir             string
	AdvancementFile string
	WinnersFile     string
}

func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{
		Dir:             dir,
		AdvancementFile: DefaultAdvancementFile,
		WinnersFile:     DefaultWinnersFile,
	}
}

func (s *CSVSource) path(t Table) string {
	name := s.AdvancementFile
	if t == WinnersInput {
		name = s.WinnersFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.Dir, name)
}

func (s *CSVSource) String() string { return "csv:" + s.Dir }

func (s *CSVSource) Read(ctx context.Context, t Table) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	p := s.path(t)
	f, err := os.Open(p)
	if err != nil {
		return Frame{}, loadErr(p, "opening file", err)
	}
	defer f.Close()
	return readCSV(p, f)
}

// Fingerprint combines size and modification time of both files.
func (s *CSVSource) Fingerprint() (string, error) {
	parts := make([]string, 0, 2)
	for _, t := range []Table{AdvancementInput, WinnersInput} {
		p := s.path(t)
		info, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", p, err)
		}
		parts = append(parts, fmt.Sprintf("%s:%d:%d", filepath.Base(p), info.Size(), info.ModTime().UnixNano()))
	}
	return strings.Join(parts, "|"), nil
}

func readCSV(name string, r io.Reader) (Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return Frame{}, loadErr(name, fmt.Sprintf("not tabular at line %d", perr.Line), err)
		}
		return Frame{}, loadErr(name, "reading csv", err)
	}
	if len(records) == 0 {
		return Frame{}, loadErr(name, "empty file", nil)
	}
	return Frame{Header: records[0], Rows: records[1:]}, nil
}

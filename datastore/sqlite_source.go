package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "github.com/glebarez/go-sqlite"
)

// Default table names inside a SQLite database.
const (
	DefaultAdvancementTable = "advancement_probabilities"
	DefaultWinnersTable     = "bracket_winners"
)

// SQLiteSource reads both tables from a SQLite file opened read-only. The
// column contracts are the same as for the CSV files.
type SQLiteSource struct {
	Path             string
	AdvancementTable string
	WinnersTable     string
}

func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{
		Path:             path,
		AdvancementTable: DefaultAdvancementTable,
		WinnersTable:     DefaultWinnersTable,
	}
}

func (s *SQLiteSource) String() string { return "sqlite:" + s.Path }

func (s *SQLiteSource) table(t Table) string {
	if t == WinnersInput {
		return s.WinnersTable
	}
	return s.AdvancementTable
}

func (s *SQLiteSource) Read(ctx context.Context, t Table) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	name := s.Path + "#" + s.table(t)

	// sql.Open would happily create a missing file.
	if _, err := os.Stat(s.Path); err != nil {
		return Frame{}, loadErr(name, "opening database", err)
	}
	db, err := sql.Open("sqlite", "file:"+s.Path+"?mode=ro")
	if err != nil {
		return Frame{}, loadErr(name, "opening database", err)
	}
	defer db.Close()

	q := fmt.Sprintf(`SELECT * FROM %s ORDER BY rowid`, quoteIdent(s.table(t)))
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return Frame{}, loadErr(name, "querying table", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Frame{}, loadErr(name, "reading columns", err)
	}
	frame := Frame{Header: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Frame{}, loadErr(name, "scanning row", err)
		}
		rec := make([]string, len(cols))
		for i, v := range vals {
			rec[i] = cellString(v)
		}
		frame.Rows = append(frame.Rows, rec)
	}
	if err := rows.Err(); err != nil {
		return Frame{}, loadErr(name, "iterating rows", err)
	}
	return frame, nil
}

// Fingerprint is the database file's size and modification time.
func (s *SQLiteSource) Fingerprint() (string, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", s.Path, err)
	}
	return fmt.Sprintf("%d:%d", info.Size(), info.ModTime().UnixNano()), nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}

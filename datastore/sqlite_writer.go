package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// WriteSQLite stores ds in the SQLite file at path as the two tables
// SQLiteSource reads. Existing tables of the same names are replaced; the
// file is created if missing.
func WriteSQLite(ctx context.Context, path string, ds *Dataset) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := writeAdvancement(ctx, tx, ds.Advancement); err != nil {
		return err
	}
	if err := writeWinners(ctx, tx, ds.Winners); err != nil {
		return err
	}
	return tx.Commit()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func writeAdvancement(ctx context.Context, tx *sql.Tx, t *AdvancementTable) error {
	table := quoteIdent(DefaultAdvancementTable)
	cols := []string{quoteIdent("Team") + " TEXT NOT NULL"}
	names := []string{quoteIdent("Team")}
	for _, r := range t.rounds {
		cols = append(cols, quoteIdent(r)+" REAL NOT NULL")
		names = append(names, quoteIdent(r))
	}

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return fmt.Errorf("dropping %s: %w", DefaultAdvancementTable, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(cols, ", "))); err != nil {
		return fmt.Errorf("creating %s: %w", DefaultAdvancementTable, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), placeholders(len(names))))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range t.rows {
		args := make([]any, 0, len(names))
		args = append(args, row.Team)
		for _, p := range row.Probabilities {
			args = append(args, p)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting %s: %w", row.Team, err)
		}
	}
	return nil
}

func writeWinners(ctx context.Context, tx *sql.Tx, w *WinnersTable) error {
	table := quoteIdent(DefaultWinnersTable)
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return fmt.Errorf("dropping %s: %w", DefaultWinnersTable, err)
	}
	if _, err := tx.ExecContext(ctx, "CREATE TABLE "+table+` (
		"Game" TEXT NOT NULL PRIMARY KEY,
		"Winner" TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("creating %s: %w", DefaultWinnersTable, err)
	}
	for _, g := range w.games {
		if _, err := tx.ExecContext(ctx, "INSERT INTO "+table+` ("Game", "Winner") VALUES (?, ?)`, g.Game, g.Winner); err != nil {
			return fmt.Errorf("inserting game %s: %w", g.Game, err)
		}
	}
	return nil
}

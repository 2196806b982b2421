package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wonny/runboard/internal/contracts"
)

// DB is the subset of *pgxpool.Pool used by PostgresSource
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresSource reads roster rows stored as text arrays:
//
//	CREATE TABLE roster_rows (year text, row_no int, cells text[]);
//
// Row 0 of a year is the header.
type PostgresSource struct {
	db    DB
	ident pgx.Identifier
	table string // sanitized
}

// NewPostgresSource creates a source over table ("roster_rows" or "schema.table")
func NewPostgresSource(db DB, table string) (*PostgresSource, error) {
	if table == "" {
		table = "roster_rows"
	}
	parts := strings.Split(table, ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("invalid table name %q", table)
		}
	}
	ident := pgx.Identifier(parts)
	return &PostgresSource{db: db, ident: ident, table: ident.Sanitize()}, nil
}

// Name implements Source
func (s *PostgresSource) Name() string {
	return "postgres"
}

// Fetch implements Source
func (s *PostgresSource) Fetch(ctx context.Context, year string) (Table, error) {
	query := fmt.Sprintf(`
		SELECT cells
		FROM %s
		WHERE year = $1
		ORDER BY row_no ASC
	`, s.table)

	rows, err := s.db.Query(ctx, query, year)
	if err != nil {
		return Table{}, fmt.Errorf("query roster rows: %w", err)
	}
	defer rows.Close()

	var t Table
	first := true
	for rows.Next() {
		var cells []string
		if err := rows.Scan(&cells); err != nil {
			return Table{}, fmt.Errorf("scan roster row: %w", err)
		}
		if first {
			t.Header = cells
			first = false
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return Table{}, fmt.Errorf("iterate roster rows: %w", err)
	}
	if first {
		return Table{}, fmt.Errorf("%w: year %q", contracts.ErrUnknownDataset, year)
	}
	return t, nil
}

// EnsureTable creates the roster table when missing
func (s *PostgresSource) EnsureTable(ctx context.Context) error {
	_, err := s.db.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			year   text    NOT NULL,
			row_no integer NOT NULL,
			cells  text[]  NOT NULL,
			PRIMARY KEY (year, row_no)
		)
	`, s.table))
	if err != nil {
		return fmt.Errorf("create roster table: %w", err)
	}
	return nil
}

// Replace stores t as the rows of year, replacing the previous rows in one transaction
func (s *PostgresSource) Replace(ctx context.Context, year string, t Table) (int64, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin roster import: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE year = $1`, s.table), year); err != nil {
		return 0, fmt.Errorf("clear roster rows: %w", err)
	}

	rows := make([][]any, 0, len(t.Rows)+1)
	rows = append(rows, []any{year, 0, t.Header})
	for i, r := range t.Rows {
		rows = append(rows, []any{year, i + 1, r})
	}

	n, err := tx.CopyFrom(ctx, s.ident, []string{"year", "row_no", "cells"}, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy roster rows: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit roster import: %w", err)
	}
	return n, nil
}

// Package ingest turns raw roster tables (CSV files or Postgres rows) into
// installed roster generations.
//
// A Source fetches a Table for one year. The Builder discovers the column
// layout, coerces cells and applies unit scaling. The Loader ties both to the
// roster.Store so that every reload installs one complete generation.
package ingest

import (
	"context"
	"strings"
)

// Table is a raw header plus rows of string cells
type Table struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows
func (t Table) Len() int {
	return len(t.Rows)
}

// Selection picks the dataset year and display unit of a generation
type Selection struct {
	Year string `json:"year"`
	Unit string `json:"unit"`
}

// merge fills empty fields of s from fallback
func (s Selection) merge(fallback Selection) Selection {
	if strings.TrimSpace(s.Year) == "" {
		s.Year = fallback.Year
	}
	if strings.TrimSpace(s.Unit) == "" {
		s.Unit = fallback.Unit
	}
	s.Year = strings.TrimSpace(s.Year)
	s.Unit = strings.TrimSpace(s.Unit)
	return s
}

// Source fetches the raw table of one year
type Source interface {
	Name() string
	Fetch(ctx context.Context, year string) (Table, error)
}

package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/wonny/runboard/internal/contracts"
)

const utf8BOM = "\ufeff"

// CSVSource reads one CSV file per year from Dir.
// Pattern is a fmt pattern receiving the year ("%s.csv"); a pattern without a
// verb names a single fixed file.
type CSVSource struct {
	Dir     string
	Pattern string
}

// NewCSVSource creates a CSV source
func NewCSVSource(dir, pattern string) *CSVSource {
	if pattern == "" {
		pattern = "%s.csv"
	}
	return &CSVSource{Dir: dir, Pattern: pattern}
}

// NewFileSource creates a source bound to one file regardless of year
func NewFileSource(path string) *CSVSource {
	return &CSVSource{Dir: filepath.Dir(path), Pattern: filepath.Base(path)}
}

// Name implements Source
func (s *CSVSource) Name() string {
	return "csv"
}

// Path returns the file backing year
func (s *CSVSource) Path(year string) string {
	name := s.Pattern
	if strings.Contains(name, "%s") {
		name = fmt.Sprintf(name, year)
	}
	return filepath.Join(s.Dir, name)
}

// Fetch implements Source
func (s *CSVSource) Fetch(ctx context.Context, year string) (Table, error) {
	if err := ctx.Err(); err != nil {
		return Table{}, err
	}

	path := s.Path(year)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Table{}, fmt.Errorf("%w: year %q (%w)", contracts.ErrUnknownDataset, year, fs.ErrNotExist)
	}
	if err != nil {
		return Table{}, fmt.Errorf("open roster file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // 짧은 행은 Builder에서 결측 처리
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return Table{}, nil
	}

	header := rows[0]
	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	return Table{Header: header, Rows: rows[1:]}, nil
}

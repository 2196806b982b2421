package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/runboard/internal/boardconfig"
	"github.com/wonny/runboard/internal/contracts"
)

type column struct {
	index int
	name  string
}

// layout is the discovered column mapping of a table
type layout struct {
	identity     int
	observations []column // label = prefix stripped, header order
	attributes   []column
}

// Builder turns raw tables into roster generations
type Builder struct {
	schema boardconfig.Schema
	now    func() time.Time
}

// NewBuilder creates a builder for schema
func NewBuilder(schema boardconfig.Schema) *Builder {
	return &Builder{schema: schema, now: time.Now}
}

// Build discovers the layout of t, coerces its cells and scales observations by unit.Factor
func (b *Builder) Build(t Table, year string, unit boardconfig.Unit) (*contracts.Roster, error) {
	lay, err := b.discover(t.Header)
	if err != nil {
		return nil, err
	}

	r := &contracts.Roster{
		ID:         fingerprint(t, year, unit),
		Year:       year,
		Unit:       unit.Name,
		Scale:      unit.Factor,
		Attributes: make([]string, len(lay.attributes)),
		Records:    make([]contracts.Record, 0, len(t.Rows)),
		LoadedAt:   b.now(),
	}
	for i, c := range lay.attributes {
		r.Attributes[i] = c.name
	}

	seen := make(map[string]int, len(t.Rows))
	for n, row := range t.Rows {
		if blank(row) {
			continue
		}

		identity := strings.TrimSpace(cell(row, lay.identity))
		if identity == "" {
			return nil, fmt.Errorf("%w: row %d has no %s", contracts.ErrSchema, n+1, b.schema.IdentityColumn)
		}
		if prev, dup := seen[identity]; dup {
			return nil, fmt.Errorf("%w: duplicate identity %q (rows %d and %d)", contracts.ErrSchema, identity, prev, n+1)
		}
		seen[identity] = n + 1

		rec := contracts.Record{
			Identity:     identity,
			Attributes:   make(map[string]string, len(lay.attributes)),
			Observations: make([]contracts.Observation, len(lay.observations)),
		}
		for _, c := range lay.attributes {
			if v, ok := attributeValue(cell(row, c.index)); ok {
				rec.Attributes[c.name] = v
			}
		}
		for i, c := range lay.observations {
			rec.Observations[i] = contracts.Observation{
				Label: c.name,
				Value: observationValue(cell(row, c.index)) * unit.Factor,
			}
		}
		r.Records = append(r.Records, rec)
	}

	return r, nil
}

func (b *Builder) discover(header []string) (layout, error) {
	if len(header) == 0 {
		return layout{}, fmt.Errorf("%w: empty header", contracts.ErrSchema)
	}

	lay := layout{identity: -1}
	names := make(map[string]bool, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if names[name] {
			return layout{}, fmt.Errorf("%w: duplicate column %q", contracts.ErrSchema, name)
		}
		names[name] = true

		switch {
		case name == b.schema.IdentityColumn:
			lay.identity = i
		case strings.HasPrefix(name, b.schema.ObservationPrefix):
			lay.observations = append(lay.observations, column{index: i, name: strings.TrimPrefix(name, b.schema.ObservationPrefix)})
		default:
			lay.attributes = append(lay.attributes, column{index: i, name: name})
		}
	}

	if lay.identity < 0 {
		return layout{}, fmt.Errorf("%w: missing identity column %q", contracts.ErrSchema, b.schema.IdentityColumn)
	}
	return lay, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// observationValue coerces a cell; empty or non-numeric is 0
func observationValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// attributeValue stringifies a categorical cell. Numeric cells use the
// shortest float form so "09" and "9" land in the same bucket.
func attributeValue(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return s, true
	}
	return strconv.FormatFloat(v, 'f', -1, 64), true
}

// fingerprint hashes the inputs of a generation
func fingerprint(t Table, year string, unit boardconfig.Unit) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%g\x00", year, unit.Name, unit.Factor)
	writeRow(h, t.Header)
	for _, row := range t.Rows {
		writeRow(h, row)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func writeRow(w io.Writer, row []string) {
	for _, c := range row {
		io.WriteString(w, c)
		w.Write([]byte{0x1f})
	}
	w.Write([]byte{0x1e})
}

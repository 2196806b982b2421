// Package grouping partitions a roster into buckets keyed by a categorical attribute.
package grouping

import (
	"sort"
	"strings"

	"github.com/wonny/runboard/internal/contracts"
)

// Group is one bucket of records sharing an attribute value
type Group struct {
	Key     string
	Value   string
	Members []contracts.Record // 원본 순서 유지
}

// Partition maps attribute values to buckets, remembering first-appearance order
type Partition struct {
	Key     string
	Order   []string
	Buckets map[string][]contracts.Record
}

// ByCategory partitions records by the stringified value of key.
// Absent values go to the "N/A" bucket; roster order is preserved inside each bucket.
func ByCategory(records []contracts.Record, key string) Partition {
	p := Partition{
		Key:     key,
		Buckets: make(map[string][]contracts.Record),
	}

	for _, rec := range records {
		value := rec.Attribute(key)
		if _, exists := p.Buckets[value]; !exists {
			p.Order = append(p.Order, value)
		}
		p.Buckets[value] = append(p.Buckets[value], rec)
	}

	return p
}

// Groups returns buckets in first-appearance order
func (p Partition) Groups() []Group {
	groups := make([]Group, 0, len(p.Order))
	for _, value := range p.Order {
		groups = append(groups, Group{Key: p.Key, Value: value, Members: p.Buckets[value]})
	}
	return groups
}

// Get returns the bucket for value
func (p Partition) Get(value string) (Group, bool) {
	members, ok := p.Buckets[value]
	if !ok {
		return Group{}, false
	}
	return Group{Key: p.Key, Value: value, Members: members}, true
}

// DistinctValues returns the sorted distinct values of key (selector lists)
func DistinctValues(records []contracts.Record, key string) []string {
	values := append([]string(nil), ByCategory(records, key).Order...)
	sortStrings(values)
	return values
}

// sortStrings sorts case-insensitively, falling back to byte order on ties
func sortStrings(values []string) {
	sort.SliceStable(values, func(i, j int) bool {
		a, b := strings.ToLower(values[i]), strings.ToLower(values[j])
		if a != b {
			return a < b
		}
		return values[i] < values[j]
	})
}

// SortedIdentities returns record identities sorted for selector lists
func SortedIdentities(records []contracts.Record) []string {
	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.Identity
	}
	sortStrings(ids)
	return ids
}

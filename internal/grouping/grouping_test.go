package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/runboard/internal/contracts"
)

func student(name, house, grade string) contracts.Record {
	attrs := map[string]string{}
	if house != "" {
		attrs["House"] = house
	}
	if grade != "" {
		attrs["Grade"] = grade
	}
	return contracts.Record{Identity: name, Attributes: attrs}
}

func fixture() []contracts.Record {
	return []contracts.Record{
		student("Ann", "Swarm", "9"),
		student("Bob", "Blaze", "10"),
		student("Cid", "Swarm", "9"),
		student("Dee", "", "11"),
		student("Eve", "Blaze", ""),
	}
}

func TestByCategory(t *testing.T) {
	p := ByCategory(fixture(), "House")

	assert.Equal(t, "House", p.Key)
	assert.Equal(t, []string{"Swarm", "Blaze", "N/A"}, p.Order)
	assert.Len(t, p.Groups(), 3)

	swarm, ok := p.Get("Swarm")
	require.True(t, ok)
	assert.Equal(t, []string{"Ann", "Cid"}, identities(swarm.Members))

	blaze, ok := p.Get("Blaze")
	require.True(t, ok)
	assert.Equal(t, []string{"Bob", "Eve"}, identities(blaze.Members))

	na, ok := p.Get(contracts.NotAvailable)
	require.True(t, ok)
	assert.Equal(t, []string{"Dee"}, identities(na.Members))

	_, ok = p.Get("Nope")
	assert.False(t, ok)
}

func TestByCategory_UnknownKeyBucketsEverythingAsNA(t *testing.T) {
	p := ByCategory(fixture(), "Gender")
	assert.Equal(t, []string{"N/A"}, p.Order)
	assert.Len(t, p.Buckets["N/A"], 5)
}

func TestByCategory_Deterministic(t *testing.T) {
	a := ByCategory(fixture(), "Grade").Groups()
	b := ByCategory(fixture(), "Grade").Groups()
	assert.Equal(t, a, b)
	assert.Equal(t, "9", a[0].Value)
	assert.Equal(t, "Grade", a[0].Key)
}

func TestDistinctValues(t *testing.T) {
	assert.Equal(t, []string{"10", "11", "9", "N/A"}, DistinctValues(fixture(), "Grade"))
	assert.Equal(t, []string{"Blaze", "N/A", "Swarm"}, DistinctValues(fixture(), "House"))
}

func TestSortedIdentities(t *testing.T) {
	records := []contracts.Record{student("bob", "", ""), student("Ann", "", ""), student("Cid", "", "")}
	assert.Equal(t, []string{"Ann", "bob", "Cid"}, SortedIdentities(records))
}

func identities(records []contracts.Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.Identity
	}
	return ids
}

package contracts

import (
	"reflect"
	"testing"
)

func testRoster() *Roster {
	return &Roster{
		ID:         "gen-1",
		Attributes: []string{"House", "Grade"},
		Records: []Record{
			{
				Identity:   "Ann",
				Attributes: map[string]string{"House": "Swarm"},
				Observations: []Observation{
					{Label: "01-07", Value: 10},
					{Label: "01-14", Value: 0},
				},
			},
			{
				Identity:   "Bob",
				Attributes: map[string]string{"House": "Blaze", "Grade": "9"},
				Observations: []Observation{
					{Label: "01-07", Value: 4},
					{Label: "01-14", Value: 6},
				},
			},
		},
	}
}

func TestRoster_Labels(t *testing.T) {
	r := testRoster()
	want := []string{"01-07", "01-14"}
	if got := r.Labels(); !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}

	empty := &Roster{}
	if got := empty.Labels(); got != nil {
		t.Errorf("Labels() on empty roster = %v, want nil", got)
	}
}

func TestRoster_Find(t *testing.T) {
	r := testRoster()

	rec, ok := r.Find("Bob")
	if !ok || rec.Identity != "Bob" {
		t.Fatalf("Find(Bob) = %v, %v", rec.Identity, ok)
	}

	if _, ok := r.Find("Zed"); ok {
		t.Error("Find(Zed) should miss")
	}
}

func TestRoster_HasAttribute(t *testing.T) {
	r := testRoster()
	if !r.HasAttribute("House") {
		t.Error("expected House attribute")
	}
	if r.HasAttribute("Name") {
		t.Error("identity column is not a category")
	}
}

func TestRecord_Accessors(t *testing.T) {
	r := testRoster()
	ann := r.Records[0]

	if got := ann.Attribute("Grade"); got != NotAvailable {
		t.Errorf("Attribute(Grade) = %q, want %q", got, NotAvailable)
	}
	if got := ann.ValueAt("01-07"); got != 10 {
		t.Errorf("ValueAt(01-07) = %v, want 10", got)
	}
	if got := ann.ValueAt("12-31"); got != 0 {
		t.Errorf("ValueAt(missing) = %v, want 0", got)
	}
	if got := ann.Values(); !reflect.DeepEqual(got, []float64{10, 0}) {
		t.Errorf("Values() = %v", got)
	}
}

func TestRankedEntry_IsTopRanked(t *testing.T) {
	e := RankedEntry{Rank: 3}
	if !e.IsTopRanked(3) {
		t.Error("rank 3 should be in top 3")
	}
	if e.IsTopRanked(2) {
		t.Error("rank 3 should not be in top 2")
	}
	unranked := RankedEntry{}
	if unranked.IsTopRanked(10) {
		t.Error("rank 0 is unranked")
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in       string
		fallback Order
		want     Order
	}{
		{"", OrderAsc, OrderAsc},
		{"", OrderDesc, OrderDesc},
		{"asc", OrderDesc, OrderAsc},
		{" ASC ", OrderDesc, OrderAsc},
		{"desc", OrderAsc, OrderDesc},
		{"random", OrderAsc, OrderDesc},
	}

	for _, tt := range tests {
		if got := ParseOrder(tt.in, tt.fallback); got != tt.want {
			t.Errorf("ParseOrder(%q, %q) = %q, want %q", tt.in, tt.fallback, got, tt.want)
		}
	}
}

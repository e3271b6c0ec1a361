package services

import (
	"testing"

	"github.com/VBA-auto/hero-cars/models"
	"github.com/VBA-auto/hero-cars/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

func testCatalog() []*models.Car {
	return []*models.Car{
		{
			ID: "1", Brand: "Renault", Model: "Clio", Name: "Renault Clio IV",
			Year: 2018, Mileage: 50000, Price: 9000,
			Fuel: "Diesel", Gearbox: "Manual", Location: "Paris",
			Images: []string{"https://cdn.example/clio.jpg"},
		},
		{
			ID: "2", Brand: "Peugeot", Model: "208", Name: "Peugeot 208",
			Year: 2020, Mileage: 30000, Price: 11000,
			Fuel: "Petrol", Gearbox: "Auto", Location: "Lyon",
			Images: []string{"https://cdn.example/208.jpg"},
		},
		{
			ID: "3", Brand: "Renault", Model: "Captur", Name: "Renault Captur",
			Year: 2019, Mileage: 42000, Price: 13500,
			Fuel: "Petrol", Gearbox: "Manual", Location: "Paris",
		},
	}
}

func mustSet(t *testing.T, q *QueryState, name, value string) {
	t.Helper()
	if err := q.SetField(name, value); err != nil {
		t.Fatalf("SetField(%q, %q): %v", name, value, err)
	}
}

func resultIDs(cars []*models.Car) []string {
	ids := make([]string, 0, len(cars))
	for _, c := range cars {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestFilterFacetsCombineWithAND(t *testing.T) {
	cars := testCatalog()

	tests := []struct {
		name    string
		search  string
		facets  map[string]string
		wantIDs []string
	}{
		{"no constraints", "", nil, []string{"1", "2", "3"}},
		{"brand only", "", map[string]string{"brand": "Renault"}, []string{"1", "3"}},
		{"brand and fuel", "", map[string]string{"brand": "Renault", "fuel": "Diesel"}, []string{"1"}},
		{"brand and location", "", map[string]string{"brand": "Peugeot", "location": "Paris"}, []string{}},
		{"gearbox", "", map[string]string{"gearbox": "Auto"}, []string{"2"}},
		{"model", "", map[string]string{"model": "Captur"}, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q QueryState
			q.SetSearch(tt.search)
			for name, value := range tt.facets {
				mustSet(t, &q, name, value)
			}

			got := resultIDs(Filter(cars, q))
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got ids %v, want %v", got, tt.wantIDs)
			}
			for i := range got {
				if got[i] != tt.wantIDs[i] {
					t.Fatalf("got ids %v, want %v", got, tt.wantIDs)
				}
			}
		})
	}
}

func TestFilterSearchMatchesBrandOrModel(t *testing.T) {
	cars := testCatalog()

	tests := []struct {
		search  string
		wantIDs []string
	}{
		{"clio", []string{"1"}},
		{"CLIO", []string{"1"}},
		{"renault", []string{"1", "3"}},
		{"208", []string{"2"}},
		{"no-such-car", []string{}},
		{"", []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		var q QueryState
		q.SetSearch(tt.search)

		got := resultIDs(Filter(cars, q))
		if len(got) != len(tt.wantIDs) {
			t.Errorf("search %q: got ids %v, want %v", tt.search, got, tt.wantIDs)
			continue
		}
		for i := range got {
			if got[i] != tt.wantIDs[i] {
				t.Errorf("search %q: got ids %v, want %v", tt.search, got, tt.wantIDs)
			}
		}
	}
}

func TestFilterSearchANDsWithFacets(t *testing.T) {
	cars := testCatalog()

	// "208" matches the Peugeot, but the brand facet excludes it.
	var q QueryState
	q.SetSearch("208")
	mustSet(t, &q, "brand", "Renault")

	if got := Filter(cars, q); len(got) != 0 {
		t.Errorf("expected empty result, got ids %v", resultIDs(got))
	}
}

func TestFilterNumericCeilingsAreInclusive(t *testing.T) {
	cars := testCatalog()

	tests := []struct {
		facet   string
		value   string
		wantIDs []string
	}{
		{"price", "10000", []string{"1"}},
		{"price", "11000", []string{"1", "2"}}, // exactly 11000 is included
		{"price", "8999.99", []string{}},
		{"mileage", "42000", []string{"2", "3"}}, // exactly 42000 is included
		{"mileage", "29999", []string{}},
	}

	for _, tt := range tests {
		var q QueryState
		mustSet(t, &q, tt.facet, tt.value)

		got := resultIDs(Filter(cars, q))
		if len(got) != len(tt.wantIDs) {
			t.Errorf("%s<=%s: got ids %v, want %v", tt.facet, tt.value, got, tt.wantIDs)
			continue
		}
		for i := range got {
			if got[i] != tt.wantIDs[i] {
				t.Errorf("%s<=%s: got ids %v, want %v", tt.facet, tt.value, got, tt.wantIDs)
			}
		}
	}
}

func TestFilterEmptyCatalog(t *testing.T) {
	var q QueryState
	mustSet(t, &q, "brand", "Renault")

	if got := Filter(nil, q); len(got) != 0 {
		t.Errorf("empty catalog should yield empty result, got %d cars", len(got))
	}
	if got := Filter([]*models.Car{}, q); len(got) != 0 {
		t.Errorf("empty catalog should yield empty result, got %d cars", len(got))
	}
}

func TestFilterSkipsNilAndMissingFields(t *testing.T) {
	cars := []*models.Car{
		nil,
		{ID: "a", Brand: "Renault"}, // no fuel, no images
		{ID: "b"},                   // nothing but an id
	}

	var q QueryState
	mustSet(t, &q, "fuel", "Diesel")

	// Missing fuel never matches a non-empty fuel selection.
	if got := Filter(cars, q); len(got) != 0 {
		t.Errorf("cars without fuel should not match, got ids %v", resultIDs(got))
	}

	q.Clear()
	if got := Filter(cars, q); len(got) != 2 {
		t.Errorf("unconstrained query should return both non-nil cars, got %d", len(got))
	}
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VBA-auto/hero-cars/models"
)

func TestExtractFacetsDeduplicatesInFirstSeenOrder(t *testing.T) {
	facets := ExtractFacets(testCatalog())

	assert.Equal(t, []string{"Renault", "Peugeot"}, facets.Brands)
	assert.Equal(t, []string{"Clio", "208", "Captur"}, facets.Models)
	assert.Equal(t, []string{"Diesel", "Petrol"}, facets.Fuels)
	assert.Equal(t, []string{"Manual", "Auto"}, facets.Gearboxes)
	assert.Equal(t, []string{"Paris", "Lyon"}, facets.Locations)
}

func TestExtractFacetsReflectsFullCatalogNotFilteredSubset(t *testing.T) {
	cars := testCatalog()

	var q QueryState
	mustSet(t, &q, "brand", "Renault")
	primary := Filter(cars, q)
	assert.Len(t, primary, 2)

	// Options are always derived from the full catalog: the Peugeot's model
	// must still be offered while the brand filter is active.
	facets := ExtractFacets(cars)
	assert.Contains(t, facets.Models, "208")
}

func TestExtractFacetsSkipsEmptyValues(t *testing.T) {
	cars := []*models.Car{
		{ID: "a", Brand: "Renault"},
		{ID: "b", Brand: "", Fuel: "Diesel"},
		nil,
	}

	facets := ExtractFacets(cars)
	assert.Equal(t, []string{"Renault"}, facets.Brands)
	assert.Equal(t, []string{"Diesel"}, facets.Fuels)
	assert.Empty(t, facets.Models)
}

func TestExtractFacetsEmptyCatalog(t *testing.T) {
	facets := ExtractFacets(nil)
	assert.Empty(t, facets.Brands)
	assert.Empty(t, facets.Models)
	assert.Empty(t, facets.Fuels)
	assert.Empty(t, facets.Gearboxes)
	assert.Empty(t, facets.Locations)
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePrimaryResult(t *testing.T) {
	svc := NewQueryService(newTestLogger())
	cars := testCatalog()

	var q QueryState
	mustSet(t, &q, "brand", "Renault")

	res := svc.Evaluate(cars, q)
	assert.Equal(t, []string{"1", "3"}, resultIDs(res.Cars))
	assert.Nil(t, res.Similar, "fallback must not run when the primary result is non-empty")
	require.NotNil(t, res.Facets)
	assert.Equal(t, []string{"Renault", "Peugeot"}, res.Facets.Brands)
}

func TestEvaluateFallsBackOnEmptyPrimary(t *testing.T) {
	svc := NewQueryService(newTestLogger())
	cars := testCatalog()

	// No Renault runs on Petrol with an automatic gearbox in this catalog.
	var q QueryState
	mustSet(t, &q, "brand", "Renault")
	mustSet(t, &q, "gearbox", "Auto")

	res := svc.Evaluate(cars, q)
	assert.Empty(t, res.Cars)
	assert.Equal(t, []string{"1", "3"}, resultIDs(res.Similar))
	// Facet options are unchanged by the fallback.
	assert.Equal(t, []string{"Paris", "Lyon"}, res.Facets.Locations)
}

func TestEvaluateEmptyFallbackWithoutIdentityFacets(t *testing.T) {
	svc := NewQueryService(newTestLogger())
	cars := testCatalog()

	var q QueryState
	mustSet(t, &q, "price", "1")

	res := svc.Evaluate(cars, q)
	assert.Empty(t, res.Cars)
	assert.Empty(t, res.Similar)
}

func TestEvaluateIsPure(t *testing.T) {
	svc := NewQueryService(newTestLogger())
	cars := testCatalog()

	var q QueryState
	q.SetSearch("renault")
	mustSet(t, &q, "location", "Paris")

	first := svc.Evaluate(cars, q)
	second := svc.Evaluate(cars, q)

	assert.Equal(t, first, second, "identical inputs must yield identical, order-stable results")
	assert.Equal(t, resultIDs(first.Cars), resultIDs(second.Cars))
}

func TestEvaluateEmptyCatalog(t *testing.T) {
	svc := NewQueryService(newTestLogger())

	var q QueryState
	mustSet(t, &q, "brand", "Renault")

	res := svc.Evaluate(nil, q)
	assert.Empty(t, res.Cars)
	assert.Empty(t, res.Similar)
	require.NotNil(t, res.Facets)
	assert.Empty(t, res.Facets.Brands)
}

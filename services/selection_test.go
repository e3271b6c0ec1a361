package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionSetFieldCategorical(t *testing.T) {
	var s Selection

	require.NoError(t, s.SetField("brand", "Renault"))
	require.NoError(t, s.SetField("model", "Clio"))
	require.NoError(t, s.SetField("fuel", "Diesel"))
	require.NoError(t, s.SetField("gearbox", "Manual"))
	require.NoError(t, s.SetField("location", " Paris "))

	assert.Equal(t, "Renault", s.Brand)
	assert.Equal(t, "Clio", s.Model)
	assert.Equal(t, "Diesel", s.Fuel)
	assert.Equal(t, "Manual", s.Gearbox)
	assert.Equal(t, "Paris", s.Location, "values are trimmed at the boundary")

	// Replacing one facet leaves the others untouched.
	require.NoError(t, s.SetField("brand", "Peugeot"))
	assert.Equal(t, "Peugeot", s.Brand)
	assert.Equal(t, "Clio", s.Model)

	// Empty value removes the constraint.
	require.NoError(t, s.SetField("brand", ""))
	assert.Equal(t, "", s.Brand)
}

func TestSelectionSetFieldNumeric(t *testing.T) {
	var s Selection

	require.NoError(t, s.SetField("mileage", "50000"))
	require.NotNil(t, s.MaxMileage)
	assert.Equal(t, 50000, *s.MaxMileage)

	require.NoError(t, s.SetField("price", "10000.50"))
	require.NotNil(t, s.MaxPrice)
	assert.Equal(t, 10000.50, *s.MaxPrice)

	require.NoError(t, s.SetField("mileage", ""))
	assert.Nil(t, s.MaxMileage)
	require.NoError(t, s.SetField("price", ""))
	assert.Nil(t, s.MaxPrice)
}

func TestSelectionRejectsNonNumericValues(t *testing.T) {
	tests := []struct {
		facet string
		value string
	}{
		{"mileage", "cheap"},
		{"mileage", "50 000"},
		{"mileage", "-1"},
		{"price", "10k"},
		{"price", "-0.01"},
	}

	for _, tt := range tests {
		var s Selection
		err := s.SetField(tt.facet, tt.value)
		if !errors.Is(err, ErrBadNumericValue) {
			t.Errorf("SetField(%q, %q): got %v, want ErrBadNumericValue", tt.facet, tt.value, err)
		}
		assert.True(t, s.IsEmpty(), "rejected value must not mutate the selection")
	}
}

func TestSelectionRejectsUnknownFacet(t *testing.T) {
	var s Selection
	err := s.SetField("colour", "red")
	assert.ErrorIs(t, err, ErrUnknownFacet)
	assert.True(t, s.IsEmpty())
}

func TestQueryStateClearResetsEverything(t *testing.T) {
	var q QueryState
	q.SetSearch("clio")
	mustSet(t, &q, "brand", "Renault")
	mustSet(t, &q, "price", "10000")

	q.Clear()

	assert.Equal(t, "", q.Search)
	assert.True(t, q.Selection.IsEmpty())

	// A cleared query returns the unfiltered catalog.
	cars := testCatalog()
	assert.Equal(t, []string{"1", "2", "3"}, resultIDs(Filter(cars, q)))
}

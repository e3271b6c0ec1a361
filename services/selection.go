package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Facet names accepted by Selection.SetField.
const (
	FacetBrand    = "brand"
	FacetModel    = "model"
	FacetFuel     = "fuel"
	FacetGearbox  = "gearbox"
	FacetLocation = "location"
	FacetMileage  = "mileage"
	FacetPrice    = "price"
)

var (
	ErrUnknownFacet    = errors.New("unknown facet")
	ErrBadNumericValue = errors.New("facet value is not numeric")
)

// Selection is the per-query facet constraint mapping. Categorical facets
// hold the exact value a car must match; MaxMileage and MaxPrice are
// inclusive ceilings. An empty string or nil field imposes no constraint.
type Selection struct {
	Brand      string
	Model      string
	Fuel       string
	Gearbox    string
	Location   string
	MaxMileage *int
	MaxPrice   *float64
}

// SetField replaces exactly one facet constraint, leaving the others
// untouched. Mileage and price values are parsed here, at the boundary: a
// non-numeric or negative value returns ErrBadNumericValue and leaves the
// selection unchanged, so the engine only ever sees validated ceilings.
// Setting a facet to "" removes its constraint.
func (s *Selection) SetField(name, value string) error {
	value = strings.TrimSpace(value)

	switch name {
	case FacetBrand:
		s.Brand = value
	case FacetModel:
		s.Model = value
	case FacetFuel:
		s.Fuel = value
	case FacetGearbox:
		s.Gearbox = value
	case FacetLocation:
		s.Location = value
	case FacetMileage:
		if value == "" {
			s.MaxMileage = nil
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: mileage %q", ErrBadNumericValue, value)
		}
		s.MaxMileage = &n
	case FacetPrice:
		if value == "" {
			s.MaxPrice = nil
			return nil
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: price %q", ErrBadNumericValue, value)
		}
		s.MaxPrice = &f
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFacet, name)
	}
	return nil
}

// IsEmpty reports whether no facet constraint is active.
func (s *Selection) IsEmpty() bool {
	return *s == Selection{}
}

// QueryState is the caller-owned query state: the free-text search term plus
// the facet selection. The engine never mutates it; every evaluation
// re-derives results from the current catalog snapshot and this state.
type QueryState struct {
	Search    string
	Selection Selection
}

// SetSearch replaces the free-text search term.
func (q *QueryState) SetSearch(term string) {
	q.Search = term
}

// SetField forwards to the selection's single-facet mutation.
func (q *QueryState) SetField(name, value string) error {
	return q.Selection.SetField(name, value)
}

// Clear resets every facet and the search term to unconstrained.
func (q *QueryState) Clear() {
	*q = QueryState{}
}

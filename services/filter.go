package services

import (
	"strings"

	"github.com/VBA-auto/hero-cars/models"
)

// Filter returns the cars satisfying every active criterion of the query
// state, preserving catalog order. All criteria combine with logical AND;
// unset facets match everything. An empty catalog yields an empty result.
func Filter(cars []*models.Car, q QueryState) []*models.Car {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	out := []*models.Car{}

	for _, c := range cars {
		if c == nil {
			continue
		}
		if matchesSearch(c, term) && matchesSelection(c, q.Selection) {
			out = append(out, c)
		}
	}
	return out
}

// matchesSearch applies the free-text term as a case-insensitive substring
// match on brand or model. An empty term matches everything.
func matchesSearch(c *models.Car, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Brand), term) ||
		strings.Contains(strings.ToLower(c.Model), term)
}

// matchesSelection ANDs every active facet predicate. A car with an empty
// categorical value can never match a non-empty selection on that facet.
func matchesSelection(c *models.Car, s Selection) bool {
	if s.Brand != "" && c.Brand != s.Brand {
		return false
	}
	if s.Model != "" && c.Model != s.Model {
		return false
	}
	if s.Fuel != "" && c.Fuel != s.Fuel {
		return false
	}
	if s.Gearbox != "" && c.Gearbox != s.Gearbox {
		return false
	}
	if s.Location != "" && c.Location != s.Location {
		return false
	}
	if s.MaxMileage != nil && c.Mileage > *s.MaxMileage {
		return false
	}
	if s.MaxPrice != nil && c.Price > *s.MaxPrice {
		return false
	}
	return true
}

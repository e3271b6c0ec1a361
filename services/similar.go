package services

import "github.com/VBA-auto/hero-cars/models"

// Similar is the degradation policy for an empty primary result: instead of
// the strict AND over every active facet, relax to an OR over the three
// identity facets (brand, fuel, location) and drop any car already shown,
// compared by id. Model, gearbox, mileage and price are excluded from the
// relation. With none of the identity facets set there is nothing to be
// similar to, and the result is empty. Catalog order is preserved.
func Similar(cars, shown []*models.Car, s Selection) []*models.Car {
	if s.Brand == "" && s.Fuel == "" && s.Location == "" {
		return nil
	}

	shownIDs := make(map[string]struct{}, len(shown))
	for _, c := range shown {
		if c != nil {
			shownIDs[c.ID] = struct{}{}
		}
	}

	var out []*models.Car
	for _, c := range cars {
		if c == nil {
			continue
		}
		if _, dup := shownIDs[c.ID]; dup {
			continue
		}
		if matchesIdentity(c, s) {
			out = append(out, c)
		}
	}
	return out
}

func matchesIdentity(c *models.Car, s Selection) bool {
	if s.Brand != "" && c.Brand == s.Brand {
		return true
	}
	if s.Fuel != "" && c.Fuel == s.Fuel {
		return true
	}
	return s.Location != "" && c.Location == s.Location
}

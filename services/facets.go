package services

import "github.com/VBA-auto/hero-cars/models"

// distinct collects the deduplicated values produced by get over cars, in
// first-seen order. Empty values are skipped so cars missing a field never
// surface a blank option.
func distinct(cars []*models.Car, get func(*models.Car) string) []string {
	seen := make(map[string]struct{}, len(cars))
	out := []string{}

	for _, c := range cars {
		if c == nil {
			continue
		}
		v := get(c)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ExtractFacets derives the option set of every categorical facet from the
// full catalog. Options always reflect the whole catalog, never the filtered
// subset, so the controls stay stable while the user narrows results.
func ExtractFacets(cars []*models.Car) *models.FacetOptions {
	return &models.FacetOptions{
		Brands:    distinct(cars, func(c *models.Car) string { return c.Brand }),
		Models:    distinct(cars, func(c *models.Car) string { return c.Model }),
		Fuels:     distinct(cars, func(c *models.Car) string { return c.Fuel }),
		Gearboxes: distinct(cars, func(c *models.Car) string { return c.Gearbox }),
		Locations: distinct(cars, func(c *models.Car) string { return c.Location }),
	}
}

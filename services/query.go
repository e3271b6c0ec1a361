package services

import (
	"github.com/VBA-auto/hero-cars/models"
	"github.com/VBA-auto/hero-cars/utils"
)

// QueryService evaluates queries over a catalog snapshot. It is stateless
// between calls: every evaluation re-derives its result from the snapshot
// and query state it is handed, so identical inputs yield identical results.
type QueryService struct {
	logger *utils.Logger
}

// NewQueryService creates a QueryService with the given logger.
func NewQueryService(logger *utils.Logger) *QueryService {
	return &QueryService{logger: logger}
}

// Evaluate runs one query: facet options from the full catalog, the primary
// result from the AND-composed filter, and — only when the primary result is
// empty — the similar-cars fallback.
func (s *QueryService) Evaluate(cars []*models.Car, q QueryState) *models.Result {
	res := &models.Result{
		Cars:   Filter(cars, q),
		Facets: ExtractFacets(cars),
	}

	if len(res.Cars) == 0 {
		res.Similar = Similar(cars, res.Cars, q.Selection)
		s.logger.Debug("[query] primary result empty — %d similar cars", len(res.Similar))
	}
	return res
}

package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/VBA-auto/hero-cars/models"
	"github.com/VBA-auto/hero-cars/services"
	"github.com/VBA-auto/hero-cars/utils"
)

// Server exposes the catalog and the query engine over a read-only JSON API.
// It holds an immutable catalog snapshot; swapping in a refreshed catalog
// means constructing a new Server. Handlers never mutate shared state, so no
// locking is needed.
type Server struct {
	catalog []*models.Car
	facets  *models.FacetOptions
	query   *services.QueryService
	logger  *utils.Logger
	router  *mux.Router
}

// New creates a Server over the given catalog snapshot.
func New(catalog []*models.Car, query *services.QueryService, logger *utils.Logger) *Server {
	s := &Server{
		catalog: catalog,
		facets:  services.ExtractFacets(catalog),
		query:   query,
		logger:  logger,
	}

	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/cars", s.handleCars).Methods("GET")
	api.HandleFunc("/cars/{slug}", s.handleCar).Methods("GET")
	api.HandleFunc("/search", s.handleSearch).Methods("GET")
	api.HandleFunc("/facets", s.handleFacets).Methods("GET")
	s.router = router

	return s
}

// Router returns the HTTP handler for the API.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleCars(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.catalog)
}

func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.facets)
}

var facetParams = []string{
	services.FacetBrand,
	services.FacetModel,
	services.FacetFuel,
	services.FacetGearbox,
	services.FacetLocation,
	services.FacetMileage,
	services.FacetPrice,
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	var q services.QueryState
	q.SetSearch(params.Get("q"))

	for _, name := range facetParams {
		value := params.Get(name)
		if value == "" {
			continue
		}
		if err := q.SetField(name, value); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	s.writeJSON(w, s.query.Evaluate(s.catalog, q))
}

func (s *Server) handleCar(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	for _, c := range s.catalog {
		if c != nil && Slug(c) == slug {
			s.writeJSON(w, c)
			return
		}
	}
	http.Error(w, "car not found", http.StatusNotFound)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("[server] Encode response: %v", err)
	}
}

// Slug derives the public detail-page identifier for a car: the lower-cased,
// whitespace-hyphenated brand joined to its id.
func Slug(c *models.Car) string {
	brand := strings.Join(strings.Fields(strings.ToLower(c.Brand)), "-")
	return brand + "-" + c.ID
}

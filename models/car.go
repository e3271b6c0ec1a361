package models

import "time"

// RawCar holds unprocessed scraped data directly from the browser.
// This is written to CSV before any cleaning or transformation.
type RawCar struct {
	Brand      string
	Model      string
	Name       string
	RawYear    string
	RawMileage string
	RawPrice   string
	Fuel       string
	Gearbox    string
	Location   string
	ImageURLs  []string
	URL        string
	ScrapedAt  time.Time
	Source     string
}

// Car is a cleaned, validated catalog record. JSON tags follow the
// storefront feed, so an /api/get payload decodes without translation.
// Images may be empty; consumers fall back to no image rather than failing.
type Car struct {
	ID          string   `json:"_id"`
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Mileage     int      `json:"mileage"`
	Price       float64  `json:"price"`
	Fuel        string   `json:"fuel"`
	Gearbox     string   `json:"gearbox"`
	Location    string   `json:"location"`
	Images      []string `json:"images"`
	Description string   `json:"description,omitempty"`
}

// FacetOptions holds the distinct values of each categorical facet across
// the full catalog, in first-seen order.
type FacetOptions struct {
	Brands    []string `json:"brands"`
	Models    []string `json:"models"`
	Fuels     []string `json:"fuels"`
	Gearboxes []string `json:"gearboxes"`
	Locations []string `json:"locations"`
}

// Result is the outcome of one query evaluation. Similar is populated only
// when Cars is empty; Facets always reflect the full catalog.
type Result struct {
	Cars    []*Car        `json:"cars"`
	Similar []*Car        `json:"similar,omitempty"`
	Facets  *FacetOptions `json:"facets"`
}

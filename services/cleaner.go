package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/VBA-auto/hero-cars/models"
	"github.com/VBA-auto/hero-cars/utils"
)

var (
	// numberRegexp captures numeric values with French or English grouping
	// ("12 500", "12,500.50", "12500")
	numberRegexp = regexp.MustCompile(`\d[\d\s\x{00a0}.,]*`)
	// yearRegexp captures a plausible model year
	yearRegexp = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	// idFromURLRegexp captures the trailing path segment of a listing URL
	idFromURLRegexp = regexp.MustCompile(`([A-Za-z0-9_-]+)/?$`)
)

// Cleaner transforms RawCars into clean, validated catalog records.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean processes raw scraped cars and returns cleaned records. Records
// without a derivable identifier are dropped, duplicates (by id) keep their
// first occurrence, and numeric fields that fail to parse degrade to zero
// rather than aborting the pass.
func (c *Cleaner) Clean(raw []*models.RawCar) []*models.Car {
	seen := make(map[string]struct{})
	result := make([]*models.Car, 0, len(raw))

	for _, r := range raw {
		id := deriveID(r.URL)
		if id == "" {
			c.logger.Warn("[cleaner] Dropping car with no derivable id (url=%q): %s %s",
				r.URL, r.Brand, r.Model)
			continue
		}

		if _, dup := seen[id]; dup {
			c.logger.Debug("[cleaner] Duplicate id skipped: %s", id)
			continue
		}
		seen[id] = struct{}{}

		car := &models.Car{
			ID:       id,
			Brand:    normaliseText(r.Brand),
			Model:    normaliseText(r.Model),
			Name:     normaliseText(r.Name),
			Year:     parseYear(r.RawYear),
			Mileage:  c.parseMileage(r.RawMileage),
			Price:    c.parsePrice(r.RawPrice),
			Fuel:     normaliseText(r.Fuel),
			Gearbox:  normaliseText(r.Gearbox),
			Location: normaliseText(r.Location),
			Images:   r.ImageURLs,
		}
		if car.Name == "" {
			car.Name = strings.TrimSpace(car.Brand + " " + car.Model)
		}

		result = append(result, car)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d cars (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// parsePrice extracts a price from dealer-site text.
// Examples:
//
//	"12 500 €"    → 12500
//	"€12,500.50"  → 12500.50
//	"9 990,00 €"  → 9990
func (c *Cleaner) parsePrice(raw string) float64 {
	match := numberRegexp.FindString(raw)
	if match == "" {
		return 0
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, match)

	// A single comma with no dot is a decimal comma; otherwise commas group.
	if strings.Count(cleaned, ",") == 1 && !strings.Contains(cleaned, ".") {
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || price < 0 {
		return 0
	}
	return price
}

// parseMileage extracts an odometer reading ("52 000 km" → 52000).
func (c *Cleaner) parseMileage(raw string) int {
	match := numberRegexp.FindString(raw)
	if match == "" {
		return 0
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, match)

	km, err := strconv.Atoi(digits)
	if err != nil || km < 0 {
		return 0
	}
	return km
}

// parseYear extracts a 4-digit model year, 0 when absent.
func parseYear(raw string) int {
	match := yearRegexp.FindString(raw)
	if match == "" {
		return 0
	}
	year, _ := strconv.Atoi(match)
	return year
}

// deriveID takes the trailing path segment of the listing URL as the
// identifier, the same opaque id the detail pages are addressed by.
func deriveID(url string) string {
	url = strings.TrimSpace(url)
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	m := idFromURLRegexp.FindStringSubmatch(url)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

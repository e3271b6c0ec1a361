package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/VBA-auto/hero-cars/models"
)

// CSVWriter writes raw (uncleaned) scraped cars to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"source", "brand", "model", "name", "raw_year", "raw_mileage",
		"raw_price", "fuel", "gearbox", "location", "image_urls", "url", "scraped_at",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteRaw appends the raw cars to the CSV file.
func (c *CSVWriter) WriteRaw(cars []*models.RawCar) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range cars {
		row := []string{
			r.Source,
			r.Brand,
			r.Model,
			r.Name,
			r.RawYear,
			r.RawMileage,
			r.RawPrice,
			r.Fuel,
			r.Gearbox,
			r.Location,
			strings.Join(r.ImageURLs, " "),
			r.URL,
			r.ScrapedAt.Format(time.RFC3339),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

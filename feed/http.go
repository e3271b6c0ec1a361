package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/VBA-auto/hero-cars/models"
	"github.com/VBA-auto/hero-cars/utils"
)

// Client fetches the catalog feed: a single JSON array of cars, delivered in
// full on each refresh. Malformed payloads are rejected here so nothing
// unvalidated reaches the filtering services.
type Client struct {
	url    string
	http   *http.Client
	logger *utils.Logger
}

// NewClient creates a feed Client for the given URL.
func NewClient(url string, logger *utils.Logger) *Client {
	return &Client{
		url:    url,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// Fetch retrieves and decodes the full catalog. A payload that is not a JSON
// array of cars is a boundary error; callers degrade to an empty catalog.
func (c *Client) Fetch(ctx context.Context) ([]*models.Car, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: fetch %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed: unexpected status %s from %s", resp.Status, c.url)
	}

	var cars []*models.Car
	if err := json.NewDecoder(resp.Body).Decode(&cars); err != nil {
		return nil, fmt.Errorf("feed: payload is not a car array: %w", err)
	}

	c.logger.Info("[feed] Fetched %d cars from %s", len(cars), c.url)
	return cars, nil
}

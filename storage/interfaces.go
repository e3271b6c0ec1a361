package storage

import (
	"context"

	"github.com/VBA-auto/hero-cars/models"
)

// CatalogSource supplies a full, materialized catalog snapshot per refresh.
// The filtering services never see partial or incremental loads.
type CatalogSource interface {
	Fetch(ctx context.Context) ([]*models.Car, error)
}

// CarWriter is the interface any storage backend for cleaned cars must satisfy.
type CarWriter interface {
	Write(cars []*models.Car) error
	Close() error
}

// RawCarWriter is the interface for persisting unprocessed scraped data.
type RawCarWriter interface {
	WriteRaw(cars []*models.RawCar) error
	Close() error
}

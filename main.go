package main

import (
	"context"
	"net/http"
	"os"

	"github.com/VBA-auto/hero-cars/config"
	"github.com/VBA-auto/hero-cars/feed"
	"github.com/VBA-auto/hero-cars/models"
	"github.com/VBA-auto/hero-cars/scraper/dealer"
	"github.com/VBA-auto/hero-cars/server"
	"github.com/VBA-auto/hero-cars/services"
	"github.com/VBA-auto/hero-cars/storage"
	"github.com/VBA-auto/hero-cars/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== hero-cars catalog starting ===")
	logger.Info("Config — source: %s | listen: %s", cfg.CatalogSource, cfg.ListenAddr)

	cars, err := loadCatalog(context.Background(), cfg, logger)
	if err != nil {
		// A failed feed is not fatal: serve an empty catalog, every query
		// degrades to empty results.
		logger.Error("Catalog load failed: %v — serving empty catalog", err)
		cars = nil
	}
	logger.Info("Catalog ready: %d cars", len(cars))

	srv := server.New(cars, services.NewQueryService(logger), logger)

	logger.Info("Listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Router()); err != nil {
		logger.Error("HTTP server failed: %v", err)
		os.Exit(1)
	}
}

// loadCatalog materializes one full catalog snapshot from the configured
// source: the storefront JSON feed, the Postgres store, or a fresh scrape
// run (which also persists its results).
func loadCatalog(ctx context.Context, cfg *config.Config, logger *utils.Logger) ([]*models.Car, error) {
	var src storage.CatalogSource

	switch cfg.CatalogSource {
	case "postgres":
		store, err := storage.NewPostgresStore(cfg.DSN())
		if err != nil {
			return nil, err
		}
		defer store.Close()
		src = store

	case "scrape":
		return scrapeCatalog(cfg, logger)

	default:
		src = feed.NewClient(cfg.FeedURL, logger)
	}

	return src.Fetch(ctx)
}

func scrapeCatalog(cfg *config.Config, logger *utils.Logger) ([]*models.Car, error) {
	raw, err := dealer.New(cfg, logger).Scrape()
	if err != nil {
		return nil, err
	}

	if csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath); err != nil {
		logger.Warn("CSV writer unavailable: %v", err)
	} else {
		if err := csvWriter.WriteRaw(raw); err != nil {
			logger.Warn("CSV write failed: %v", err)
		} else {
			logger.Info("Raw cars saved to %s", cfg.CSVOutputPath)
		}
		csvWriter.Close()
	}

	cars := services.NewCleaner(logger).Clean(raw)

	if store, err := storage.NewPostgresStore(cfg.DSN()); err != nil {
		logger.Warn("PostgreSQL unavailable, skipping persistence: %v", err)
	} else {
		if err := store.Write(cars); err != nil {
			logger.Warn("PostgreSQL write failed: %v", err)
		} else {
			logger.Info("Clean cars stored in PostgreSQL (table: cars)")
		}
		store.Close()
	}

	return cars, nil
}

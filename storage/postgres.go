package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/VBA-auto/hero-cars/models"
)

// PostgresStore persists cleaned cars and serves them back as a catalog
// source, in insertion order.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresStore.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS cars (
			seq         SERIAL PRIMARY KEY,
			car_id      TEXT          UNIQUE NOT NULL,
			brand       TEXT          NOT NULL,
			model       TEXT          NOT NULL,
			name        TEXT          NOT NULL DEFAULT '',
			year        INT           NOT NULL DEFAULT 0,
			mileage     INT           NOT NULL DEFAULT 0,
			price       NUMERIC(12,2) NOT NULL DEFAULT 0,
			fuel        TEXT          NOT NULL DEFAULT '',
			gearbox     TEXT          NOT NULL DEFAULT '',
			location    TEXT          NOT NULL DEFAULT '',
			images      TEXT[]        NOT NULL DEFAULT '{}',
			description TEXT          NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_cars_brand    ON cars(brand);
		CREATE INDEX IF NOT EXISTS idx_cars_fuel     ON cars(fuel);
		CREATE INDEX IF NOT EXISTS idx_cars_location ON cars(location);
		CREATE INDEX IF NOT EXISTS idx_cars_price    ON cars(price);
	`)
	return err
}

// Clear deletes all existing cars from the table.
func (ps *PostgresStore) Clear() error {
	_, err := ps.db.Exec("DELETE FROM cars")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts the full cleaned catalog, clearing old data first.
func (ps *PostgresStore) Write(cars []*models.Car) error {
	if len(cars) == 0 {
		return nil
	}

	if err := ps.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(cars); i += batchSize {
		end := i + batchSize
		if end > len(cars) {
			end = len(cars)
		}
		if err := ps.insertBatch(cars[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (ps *PostgresStore) insertBatch(batch []*models.Car) error {
	const cols = 12
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, c := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			c.ID, c.Brand, c.Model, c.Name, c.Year, c.Mileage, c.Price,
			c.Fuel, c.Gearbox, c.Location, pq.Array(c.Images), c.Description)
	}

	query := fmt.Sprintf(`
		INSERT INTO cars (car_id, brand, model, name, year, mileage, price,
		                  fuel, gearbox, location, images, description)
		VALUES %s
		ON CONFLICT (car_id) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := ps.db.Exec(query, valueArgs...)
	return err
}

// Fetch retrieves all stored cars in insertion order, satisfying CatalogSource.
func (ps *PostgresStore) Fetch(ctx context.Context) ([]*models.Car, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT car_id, brand, model, name, year, mileage, price,
		       fuel, gearbox, location, images, description
		FROM cars
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var cars []*models.Car
	for rows.Next() {
		c := &models.Car{}
		if err := rows.Scan(
			&c.ID, &c.Brand, &c.Model, &c.Name, &c.Year, &c.Mileage, &c.Price,
			&c.Fuel, &c.Gearbox, &c.Location, pq.Array(&c.Images), &c.Description,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}

package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"car-price-scraper/models"
)

// PostgresWriter mirrors the corpus into the car_listings table.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS car_listings (
			id          SERIAL PRIMARY KEY,
			brand       TEXT          NOT NULL,
			year        INTEGER,
			year_raw    TEXT          NOT NULL DEFAULT '',
			model       TEXT          NOT NULL,
			price       NUMERIC(12,2),
			price_state VARCHAR(16)   NOT NULL,
			price_raw   TEXT          NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_car_listings_brand ON car_listings(brand);
		CREATE INDEX IF NOT EXISTS idx_car_listings_year  ON car_listings(year);
		CREATE INDEX IF NOT EXISTS idx_car_listings_price ON car_listings(price);
	`)
	return err
}

// Clear deletes all existing listings from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM car_listings")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write replaces the table contents with listings. Each run is a full
// snapshot, so old rows are cleared first.
func (pw *PostgresWriter) Write(listings []models.Listing) error {
	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 100
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pw.insertBatch(listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

const listingColumns = 7

func (pw *PostgresWriter) insertBatch(batch []models.Listing) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*listingColumns)

	for idx, l := range batch {
		base := idx * listingColumns
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		valueArgs = append(valueArgs,
			l.Brand, yearArg(l.Year), l.Year.Raw, l.Model,
			priceArg(l.Price), l.Price.State.String(), l.Price.Raw)
	}

	query := fmt.Sprintf(`
		INSERT INTO car_listings (brand, year, year_raw, model, price, price_state, price_raw)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	if _, err := pw.db.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

// Count returns the number of mirrored rows.
func (pw *PostgresWriter) Count() (int, error) {
	var n int
	if err := pw.db.QueryRow("SELECT COUNT(*) FROM car_listings").Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count: %w", err)
	}
	return n, nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

func yearArg(y models.Year) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(y.Value), Valid: y.Valid()}
}

func priceArg(p models.Price) sql.NullFloat64 {
	return sql.NullFloat64{Float64: p.Value, Valid: p.Valid()}
}

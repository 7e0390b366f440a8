package repository

import (
	"context"
	"errors"
	"fmt"

	"pcbanai/core/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrTableNotFound signals that a retailer has no table for a category yet.
// The aggregator swallows this condition; every other query error is logged.
var ErrTableNotFound = errors.New("relation does not exist")

const pgUndefinedTable = "42P01"

type ComponentRepository interface {
	// Rows returns every row of a retailer table as generic field maps.
	Rows(ctx context.Context, table string) ([]map[string]any, error)
	// EnsureTable creates a retailer listing table if it is missing.
	EnsureTable(ctx context.Context, table string) error
	// UpsertListing inserts or refreshes one scraped listing, keyed by
	// product URL.
	UpsertListing(ctx context.Context, table string, listing domain.Listing) error
	// Ping reports whether the store is reachable at all.
	Ping(ctx context.Context) error
}

type componentRepository struct {
	db *pgxpool.Pool
}

func NewComponentRepository(db *pgxpool.Pool) ComponentRepository {
	return &componentRepository{
		db: db,
	}
}

func (r *componentRepository) Rows(ctx context.Context, table string) ([]map[string]any, error) {
	// Table names come from the fixed category map plus configured retailer
	// suffixes, never from request input.
	rows, err := r.db.Query(ctx, fmt.Sprintf(`SELECT * FROM %s`, table))
	if err != nil {
		return nil, classifyQueryError(table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	result := make([]map[string]any, 0)

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row from %s: %w", table, err)
		}
		row := make(map[string]any, len(fields))
		for i, field := range fields {
			row[field.Name] = values[i]
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, classifyQueryError(table, err)
	}

	return result, nil
}

func (r *componentRepository) EnsureTable(ctx context.Context, table string) error {
	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id SERIAL PRIMARY KEY,
		product_name TEXT NOT NULL,
		price_bdt INTEGER DEFAULT 0,
		product_url TEXT UNIQUE,
		image_url TEXT,
		availability TEXT,
		brand TEXT,
		short_specs TEXT,
		power_consumption INTEGER DEFAULT 0,
		created_at TIMESTAMPTZ DEFAULT NOW()
	)`, table)

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure table %s: %w", table, err)
	}
	return nil
}

func (r *componentRepository) UpsertListing(ctx context.Context, table string, listing domain.Listing) error {
	query := fmt.Sprintf(`
	INSERT INTO %s (product_name, price_bdt, product_url, image_url, availability, brand, short_specs, power_consumption)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (product_url)
	DO UPDATE SET product_name = $1, price_bdt = $2, image_url = $4, availability = $5, brand = $6, short_specs = $7, power_consumption = $8`, table)

	_, err := r.db.Exec(ctx, query,
		listing.ProductName,
		listing.PriceBDT,
		listing.ProductURL,
		listing.ImageURL,
		listing.Availability,
		listing.Brand,
		listing.ShortSpecs,
		listing.PowerConsumption,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert listing into %s: %w", table, err)
	}

	return nil
}

func (r *componentRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// classifyQueryError maps Postgres "undefined table" failures onto
// ErrTableNotFound so callers can tell a missing retailer table from a real
// query error.
func classifyQueryError(table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
		return fmt.Errorf("%s: %w", table, ErrTableNotFound)
	}
	return fmt.Errorf("failed to query %s: %w", table, err)
}

// Package sqlite implements the price-history backend on an embedded
// SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/nicholaihel7/hype-intelligence-backend/models"
	"github.com/nicholaihel7/hype-intelligence-backend/storage"
)

// ensure sqliteBackend implements storage.Backend
var _ storage.Backend = (*sqliteBackend)(nil)

const defaultQueryLimit = 100

type sqliteBackend struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS price_observations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	query TEXT NOT NULL,
	region TEXT NOT NULL,
	platform TEXT NOT NULL,
	product_name TEXT NOT NULL,
	price REAL NOT NULL,
	currency TEXT NOT NULL,
	url TEXT NOT NULL,
	seller TEXT,
	rating REAL,
	review_count INTEGER,
	in_stock BOOLEAN NOT NULL,
	scraped_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_observations_query ON price_observations(query);
CREATE INDEX IF NOT EXISTS idx_observations_platform ON price_observations(platform);
`

// New creates a new SQLite-backed storage.Backend.
func New(dsn string) (storage.Backend, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &sqliteBackend{db: db}, nil
}

func (b *sqliteBackend) SaveResults(ctx context.Context, query, region string, results []models.PriceResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO price_observations (
		query, region, platform, product_name, price, currency, url, seller, rating, review_count, in_stock, scraped_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		var rating sql.NullFloat64
		if r.Rating != nil {
			rating = sql.NullFloat64{Float64: *r.Rating, Valid: true}
		}
		var reviews sql.NullInt64
		if r.ReviewCount != nil {
			reviews = sql.NullInt64{Int64: int64(*r.ReviewCount), Valid: true}
		}
		seller := sql.NullString{String: r.Seller, Valid: r.Seller != ""}

		if _, err := stmt.ExecContext(ctx,
			query, region, r.Platform, r.ProductName, r.Price, r.Currency,
			r.URL, seller, rating, reviews, r.InStock, r.ScrapedAt,
		); err != nil {
			return fmt.Errorf("insert observation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (b *sqliteBackend) Query(ctx context.Context, filter storage.Filter) ([]models.PriceObservation, error) {
	query := `SELECT id, query, region, platform, product_name, price, currency, url, seller, rating, review_count, in_stock, scraped_at
	FROM price_observations WHERE 1=1`
	args := []any{}

	if filter.Query != "" {
		query += ` AND query = ? COLLATE NOCASE`
		args = append(args, filter.Query)
	}
	if filter.Platform != "" {
		query += ` AND platform = ?`
		args = append(args, filter.Platform)
	}

	query += ` ORDER BY id DESC LIMIT ?`
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	args = append(args, limit)

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	var observations []models.PriceObservation
	for rows.Next() {
		var (
			obs     models.PriceObservation
			id      int64
			seller  sql.NullString
			rating  sql.NullFloat64
			reviews sql.NullInt64
		)
		if err := rows.Scan(
			&id, &obs.Query, &obs.Region, &obs.Platform, &obs.ProductName,
			&obs.Price, &obs.Currency, &obs.URL, &seller, &rating, &reviews,
			&obs.InStock, &obs.ScrapedAt,
		); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		obs.ID = strconv.FormatInt(id, 10)
		if seller.Valid {
			obs.Seller = seller.String
		}
		if rating.Valid {
			v := rating.Float64
			obs.Rating = &v
		}
		if reviews.Valid {
			n := int(reviews.Int64)
			obs.ReviewCount = &n
		}
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observations: %w", err)
	}
	return observations, nil
}

func (b *sqliteBackend) Close() error {
	return b.db.Close()
}

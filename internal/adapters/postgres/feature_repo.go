package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/samirrijal/waymark/internal/core/domain"
)

// FeatureRepo implements ports.FeatureSource on the features table.
// Row id order is treated as insertion order, so a store loaded from
// postgres streams range queries the same way a file-loaded one does.
type FeatureRepo struct {
	db *DB
}

// NewFeatureRepo creates a new FeatureRepo.
func NewFeatureRepo(db *DB) *FeatureRepo {
	return &FeatureRepo{db: db}
}

// LoadFeatures reads the entire features table in insertion order.
func (r *FeatureRepo) LoadFeatures(ctx context.Context) ([]domain.Feature, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT name, latitude, longitude
		FROM features
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}
	defer rows.Close()

	var features []domain.Feature
	for rows.Next() {
		var f domain.Feature
		if err := rows.Scan(&f.Name, &f.Location.Latitude, &f.Location.Longitude); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read features: %w", err)
	}
	return features, nil
}

// InsertBatch appends many features using pgx.Batch. Duplicate coordinates
// are allowed; lookup precedence is decided by insertion order, not here.
func (r *FeatureRepo) InsertBatch(ctx context.Context, features []domain.Feature) error {
	batch := &pgx.Batch{}
	for _, f := range features {
		batch.Queue(`
			INSERT INTO features (name, latitude, longitude)
			VALUES ($1, $2, $3)
		`, f.Name, f.Location.Latitude, f.Location.Longitude)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range features {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

// Truncate clears the features table. Used by the seed command before a
// fresh load.
func (r *FeatureRepo) Truncate(ctx context.Context) error {
	_, err := r.db.Pool.Exec(ctx, `TRUNCATE features RESTART IDENTITY`)
	return err
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/godilite/airsat-server/internal/repository/models"
)

// createdAtLayout is fixed width so that created_at sorts as text in time order.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

type PredictionRepository struct {
	db *sql.DB
}

func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// InsertPrediction appends one record to the prediction history.
func (s *PredictionRepository) InsertPrediction(ctx context.Context, rec models.PredictionRecord) error {
	const query = `
		INSERT INTO predictions (id, model, class, label, probabilities, features, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.Model,
		rec.Class,
		rec.Label,
		rec.Probabilities,
		rec.Features,
		rec.CreatedAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return fmt.Errorf("insert prediction %s: %w", rec.ID, err)
	}
	return nil
}

// ListPredictions returns at most limit records, newest first.
func (s *PredictionRepository) ListPredictions(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	const query = `
		SELECT id, model, class, label, probabilities, features, created_at
		FROM predictions
		ORDER BY created_at DESC, id
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query ListPredictions: %w", err)
	}
	defer rows.Close()

	var results []models.PredictionRecord
	for rows.Next() {
		var (
			rec       models.PredictionRecord
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.Model, &rec.Class, &rec.Label, &rec.Probabilities, &rec.Features, &createdAt); err != nil {
			return nil, fmt.Errorf("scan ListPredictions row: %w", err)
		}
		rec.CreatedAt, err = time.Parse(createdAtLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for %s: %w", rec.ID, err)
		}
		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListPredictions: %w", err)
	}
	return results, nil
}

// CountByLabel returns how many stored predictions carry each label.
func (s *PredictionRepository) CountByLabel(ctx context.Context) (map[string]int64, error) {
	const query = `SELECT label, COUNT(*) FROM predictions GROUP BY label`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query CountByLabel: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			label string
			n     int64
		)
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("scan CountByLabel row: %w", err)
		}
		counts[label] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate CountByLabel: %w", err)
	}
	return counts, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied on every start; all statements are idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS airlines (
		rank    INTEGER PRIMARY KEY,
		name    TEXT NOT NULL,
		country TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS satisfaction_trend (
		year INTEGER PRIMARY KEY,
		rate REAL NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS passenger_issues (
		issue     TEXT PRIMARY KEY,
		frequency INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS predictions (
		id            TEXT PRIMARY KEY,
		model         TEXT NOT NULL,
		class         INTEGER NOT NULL,
		label         TEXT NOT NULL,
		probabilities TEXT NOT NULL,
		features      TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions (created_at)`,
}

// seed is the fixed sample data shown next to every prediction.
var seed = []string{
	`INSERT OR IGNORE INTO airlines (rank, name, country) VALUES
		(1, 'Airline A', 'USA'),
		(2, 'Airline B', 'Canada'),
		(3, 'Airline C', 'UK'),
		(4, 'Airline D', 'Germany'),
		(5, 'Airline E', 'France'),
		(6, 'Airline F', 'Spain'),
		(7, 'Airline G', 'Italy'),
		(8, 'Airline H', 'Australia'),
		(9, 'Airline I', 'Japan'),
		(10, 'Airline J', 'South Korea')`,
	`INSERT OR IGNORE INTO satisfaction_trend (year, rate) VALUES
		(2019, 80), (2020, 75), (2021, 85), (2022, 90)`,
	`INSERT OR IGNORE INTO passenger_issues (issue, frequency) VALUES
		('Late Flight', 200), ('Poor Service', 150), ('Comfort', 120), ('Baggage', 90)`,
}

// Migrate creates the tables and loads the reference data.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range append(append([]string{}, schema...), seed...) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return tx.Commit()
}

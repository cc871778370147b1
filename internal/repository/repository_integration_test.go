package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/godilite/airsat-server/internal/repository"
	"github.com/godilite/airsat-server/internal/repository/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, repository.Migrate(context.Background(), db))
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, repository.Migrate(context.Background(), db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM airlines`).Scan(&n))
	require.Equal(t, 10, n)
}

func TestDashboardRepository_Integration(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewDashboardRepository(setupTestDB(t))

	t.Run("GetTopAirlines", func(t *testing.T) {
		airlines, err := repo.GetTopAirlines(ctx)
		require.NoError(t, err)

		require.Len(t, airlines, 10)
		require.Equal(t, models.Airline{Rank: 1, Name: "Airline A", Country: "USA"}, airlines[0])
		require.Equal(t, models.Airline{Rank: 10, Name: "Airline J", Country: "South Korea"}, airlines[9])
	})

	t.Run("GetSatisfactionTrend", func(t *testing.T) {
		trend, err := repo.GetSatisfactionTrend(ctx)
		require.NoError(t, err)

		require.Equal(t, []models.TrendPoint{
			{Year: 2019, Rate: 80},
			{Year: 2020, Rate: 75},
			{Year: 2021, Rate: 85},
			{Year: 2022, Rate: 90},
		}, trend)
	})

	t.Run("GetCommonIssues", func(t *testing.T) {
		issues, err := repo.GetCommonIssues(ctx)
		require.NoError(t, err)

		require.Equal(t, []models.IssueCount{
			{Issue: "Late Flight", Frequency: 200},
			{Issue: "Poor Service", Frequency: 150},
			{Issue: "Comfort", Frequency: 120},
			{Issue: "Baggage", Frequency: 90},
		}, issues)
	})
}

func TestPredictionRepository_Integration(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewPredictionRepository(setupTestDB(t))
	base := time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)

	labels := []string{"Satisfied", "Not Satisfied", "Satisfied"}
	for i, label := range labels {
		err := repo.InsertPrediction(ctx, models.PredictionRecord{
			ID:            fmt.Sprintf("rec-%d", i),
			Model:         "decision_tree",
			Class:         map[string]int{"Satisfied": 1, "Not Satisfied": 0}[label],
			Label:         label,
			Probabilities: `[0.4,0.6]`,
			Features:      `[{"name":"Age","value":25}]`,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	t.Run("ListPredictions newest first", func(t *testing.T) {
		recs, err := repo.ListPredictions(ctx, 2)
		require.NoError(t, err)

		require.Len(t, recs, 2)
		require.Equal(t, "rec-2", recs[0].ID)
		require.Equal(t, "rec-1", recs[1].ID)
		require.True(t, recs[0].CreatedAt.Equal(base.Add(2*time.Minute)))
		require.Equal(t, `[0.4,0.6]`, recs[0].Probabilities)
		require.Equal(t, 1, recs[0].Class)
	})

	t.Run("CountByLabel", func(t *testing.T) {
		counts, err := repo.CountByLabel(ctx)
		require.NoError(t, err)

		require.Equal(t, map[string]int64{"Satisfied": 2, "Not Satisfied": 1}, counts)
	})

	t.Run("sub-second ordering", func(t *testing.T) {
		later := base.Add(time.Hour)
		for id, at := range map[string]time.Time{
			"whole-second": later,
			"half-second":  later.Add(500 * time.Millisecond),
			"tenth":        later.Add(100 * time.Millisecond),
			"twelfth":      later.Add(120 * time.Millisecond),
		} {
			require.NoError(t, repo.InsertPrediction(ctx, models.PredictionRecord{
				ID: id, Model: "decision_tree", Label: "Satisfied",
				Probabilities: "[]", Features: "[]", CreatedAt: at,
			}))
		}

		recs, err := repo.ListPredictions(ctx, 4)
		require.NoError(t, err)

		ids := make([]string, len(recs))
		for i, r := range recs {
			ids[i] = r.ID
		}
		require.Equal(t, []string{"half-second", "twelfth", "tenth", "whole-second"}, ids)
		require.True(t, recs[0].CreatedAt.Equal(later.Add(500*time.Millisecond)))
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		err := repo.InsertPrediction(ctx, models.PredictionRecord{
			ID: "rec-0", Model: "decision_tree", Label: "Satisfied",
			Probabilities: "[]", Features: "[]", CreatedAt: base,
		})
		require.Error(t, err)
	})
}

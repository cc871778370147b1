package service

import (
	"context"
	"time"

	"github.com/godilite/airsat-server/internal/features"
	"github.com/godilite/airsat-server/internal/model"
	"github.com/godilite/airsat-server/internal/repository/models"
)

// Dispatcher applies a named classifier to an encoded row.
type Dispatcher interface {
	Fingerprint() string
	Predict(name model.Name, row features.FeatureVector) (model.Result, error)
}

// PredictionRepository stores the prediction history.
type PredictionRepository interface {
	InsertPrediction(ctx context.Context, rec models.PredictionRecord) error
	ListPredictions(ctx context.Context, limit int) ([]models.PredictionRecord, error)
	CountByLabel(ctx context.Context) (map[string]int64, error)
}

// DashboardRepository serves the fixed reference data shown with results.
type DashboardRepository interface {
	GetTopAirlines(ctx context.Context) ([]models.Airline, error)
	GetSatisfactionTrend(ctx context.Context) ([]models.TrendPoint, error)
	GetCommonIssues(ctx context.Context) ([]models.IssueCount, error)
}

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

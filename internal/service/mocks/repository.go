package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/godilite/airsat-server/internal/features"
	"github.com/godilite/airsat-server/internal/model"
	"github.com/godilite/airsat-server/internal/repository/models"
)

// MockPredictionRepository is a mock implementation of the PredictionRepository
// interface for testing the service layer.
type MockPredictionRepository struct {
	InsertPredictionFunc func(ctx context.Context, rec models.PredictionRecord) error
	ListPredictionsFunc  func(ctx context.Context, limit int) ([]models.PredictionRecord, error)
	CountByLabelFunc     func(ctx context.Context) (map[string]int64, error)

	mu       sync.Mutex
	Inserted []models.PredictionRecord
}

// InsertPrediction implements the PredictionRepository interface. Records are
// kept in Inserted whether or not InsertPredictionFunc is set.
func (m *MockPredictionRepository) InsertPrediction(ctx context.Context, rec models.PredictionRecord) error {
	m.mu.Lock()
	m.Inserted = append(m.Inserted, rec)
	m.mu.Unlock()
	if m.InsertPredictionFunc != nil {
		return m.InsertPredictionFunc(ctx, rec)
	}
	return nil
}

// ListPredictions implements the PredictionRepository interface
func (m *MockPredictionRepository) ListPredictions(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	if m.ListPredictionsFunc != nil {
		return m.ListPredictionsFunc(ctx, limit)
	}
	return nil, errors.New("ListPredictionsFunc not implemented")
}

// CountByLabel implements the PredictionRepository interface
func (m *MockPredictionRepository) CountByLabel(ctx context.Context) (map[string]int64, error) {
	if m.CountByLabelFunc != nil {
		return m.CountByLabelFunc(ctx)
	}
	return nil, errors.New("CountByLabelFunc not implemented")
}

func (m *MockPredictionRepository) Records() []models.PredictionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.PredictionRecord(nil), m.Inserted...)
}

// MockDashboardRepository is a mock implementation of the DashboardRepository interface.
type MockDashboardRepository struct {
	GetTopAirlinesFunc       func(ctx context.Context) ([]models.Airline, error)
	GetSatisfactionTrendFunc func(ctx context.Context) ([]models.TrendPoint, error)
	GetCommonIssuesFunc      func(ctx context.Context) ([]models.IssueCount, error)
}

func (m *MockDashboardRepository) GetTopAirlines(ctx context.Context) ([]models.Airline, error) {
	if m.GetTopAirlinesFunc != nil {
		return m.GetTopAirlinesFunc(ctx)
	}
	return nil, errors.New("GetTopAirlinesFunc not implemented")
}

func (m *MockDashboardRepository) GetSatisfactionTrend(ctx context.Context) ([]models.TrendPoint, error) {
	if m.GetSatisfactionTrendFunc != nil {
		return m.GetSatisfactionTrendFunc(ctx)
	}
	return nil, errors.New("GetSatisfactionTrendFunc not implemented")
}

func (m *MockDashboardRepository) GetCommonIssues(ctx context.Context) ([]models.IssueCount, error) {
	if m.GetCommonIssuesFunc != nil {
		return m.GetCommonIssuesFunc(ctx)
	}
	return nil, errors.New("GetCommonIssuesFunc not implemented")
}

// MockDispatcher is a mock implementation of the Dispatcher interface.
type MockDispatcher struct {
	FingerprintValue string
	PredictFunc      func(name model.Name, row features.FeatureVector) (model.Result, error)

	mu    sync.Mutex
	Calls []features.FeatureVector
}

func (m *MockDispatcher) Fingerprint() string { return m.FingerprintValue }

// Predict implements the Dispatcher interface and records every row it sees.
func (m *MockDispatcher) Predict(name model.Name, row features.FeatureVector) (model.Result, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, row)
	m.mu.Unlock()
	if m.PredictFunc != nil {
		return m.PredictFunc(name, row)
	}
	return model.Result{}, errors.New("PredictFunc not implemented")
}

func (m *MockDispatcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

package mocks

import (
	"context"
	"errors"

	"github.com/godilite/airsat-server/internal/features"
	"github.com/godilite/airsat-server/internal/service"
)

// MockPredictionService is a mock implementation of the PredictionService
// interface for testing the handler layer. It uses function-based mocking for flexibility.
type MockPredictionService struct {
	ModelsFunc    func() []string
	PredictFunc   func(ctx context.Context, modelName string, in features.RawInput) (service.PredictionResult, error)
	DashboardFunc func(ctx context.Context) (service.Dashboard, error)
	HistoryFunc   func(ctx context.Context, limit int) (service.History, error)
}

// Models implements the PredictionService interface
func (m *MockPredictionService) Models() []string {
	if m.ModelsFunc != nil {
		return m.ModelsFunc()
	}
	return []string{"logistic_regression", "random_forest", "decision_tree"}
}

// Predict implements the PredictionService interface
func (m *MockPredictionService) Predict(ctx context.Context, modelName string, in features.RawInput) (service.PredictionResult, error) {
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, modelName, in)
	}
	return service.PredictionResult{}, errors.New("PredictFunc not implemented")
}

// Dashboard implements the PredictionService interface
func (m *MockPredictionService) Dashboard(ctx context.Context) (service.Dashboard, error) {
	if m.DashboardFunc != nil {
		return m.DashboardFunc(ctx)
	}
	return service.Dashboard{}, errors.New("DashboardFunc not implemented")
}

// History implements the PredictionService interface
func (m *MockPredictionService) History(ctx context.Context, limit int) (service.History, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, limit)
	}
	return service.History{}, errors.New("HistoryFunc not implemented")
}

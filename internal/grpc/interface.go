package grpc

import (
	"context"

	"github.com/godilite/airsat-server/internal/features"
	"github.com/godilite/airsat-server/internal/service"
)

type PredictionService interface {
	Models() []string
	Predict(ctx context.Context, modelName string, in features.RawInput) (service.PredictionResult, error)
	Dashboard(ctx context.Context) (service.Dashboard, error)
	History(ctx context.Context, limit int) (service.History, error)
}

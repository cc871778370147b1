package grpc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	pb "github.com/godilite/airsat-server/api/v1"
	"github.com/godilite/airsat-server/internal/features"
	"github.com/godilite/airsat-server/internal/model"
	"github.com/godilite/airsat-server/internal/service"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const defaultGRPCTimeout = 10 * time.Second

type GRPCHandlers struct {
	pb.UnimplementedSatisfactionPredictorServer
	predictor PredictionService
	logger    *zap.Logger
}

// NewGRPCHandlers initializes the gRPC handlers.
func NewGRPCHandlers(predictor PredictionService, logger *zap.Logger) *GRPCHandlers {
	if predictor == nil {
		panic("nil PredictionService provided to NewGRPCHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GRPCHandlers{
		predictor: predictor,
		logger:    logger.Named("grpc-handler"),
	}
}

// parsePredictRequest reads {"model": ..., "input": {...}} into a model name
// and the flat form fields the collector expects.
func parsePredictRequest(req *structpb.Struct) (string, map[string]string, error) {
	fields := req.GetFields()

	modelName := fields["model"].GetStringValue()
	if modelName == "" {
		return "", nil, status.Error(codes.InvalidArgument, "model is required")
	}

	input := map[string]string{}
	for name, v := range fields["input"].GetStructValue().GetFields() {
		switch kind := v.GetKind().(type) {
		case *structpb.Value_StringValue:
			input[name] = kind.StringValue
		case *structpb.Value_NumberValue:
			input[name] = strconv.FormatFloat(kind.NumberValue, 'f', -1, 64)
		case *structpb.Value_NullValue:
		default:
			return "", nil, status.Errorf(codes.InvalidArgument, "input field %s must be a string or number", name)
		}
	}
	return modelName, input, nil
}

func (s *GRPCHandlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		s.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, features.ErrInvalidInput):
		s.logger.Info("invalid input", zap.String("op", op), zap.Error(err))
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrUnknownModel):
		s.logger.Info("unknown model", zap.String("op", op), zap.Error(err))
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrSchemaMismatch):
		s.logger.Error("model rejected feature row", zap.String("op", op), zap.Error(err))
		return status.Error(codes.FailedPrecondition, "model rejected the feature row")
	case errors.Is(err, service.ErrStorageFailure):
		s.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "database error")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

func (s *GRPCHandlers) Predict(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	modelName, fields, err := parsePredictRequest(req)
	if err != nil {
		return nil, err
	}

	in, err := features.Collect(fields)
	if err != nil {
		return nil, s.handleError(ctx, "Predict", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	res, err := s.predictor.Predict(ctx, modelName, in)
	if err != nil {
		return nil, s.handleError(ctx, "Predict", err)
	}

	return toStruct(predictionToMap(res))
}

func (s *GRPCHandlers) ListModels(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	names := s.predictor.Models()
	list := make([]any, len(names))
	for i, n := range names {
		list[i] = n
	}
	return toStruct(map[string]any{"models": list})
}

func (s *GRPCHandlers) GetDashboard(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	d, err := s.predictor.Dashboard(ctx)
	if err != nil {
		return nil, s.handleError(ctx, "GetDashboard", err)
	}
	return toStruct(dashboardToMap(d))
}

func (s *GRPCHandlers) ListPredictions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	limit := 0
	if v, ok := req.GetFields()["limit"]; ok {
		n := v.GetNumberValue()
		if n < 0 || n != float64(int(n)) {
			return nil, status.Error(codes.InvalidArgument, "limit must be a non-negative integer")
		}
		limit = int(n)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	h, err := s.predictor.History(ctx, limit)
	if err != nil {
		return nil, s.handleError(ctx, "ListPredictions", err)
	}
	return toStruct(historyToMap(h))
}

func toStruct(m map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return out, nil
}

func floatList(values []float64) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func featureMap(row features.FeatureVector) []any {
	out := make([]any, len(row))
	for i, f := range row {
		out[i] = map[string]any{"name": f.Name, "value": f.Value}
	}
	return out
}

func predictionToMap(r service.PredictionResult) map[string]any {
	return map[string]any{
		"id":            r.ID,
		"model":         string(r.Model),
		"label":         r.Label,
		"class":         r.Class,
		"satisfied":     r.Satisfied(),
		"probabilities": floatList(r.Probabilities),
		"features":      featureMap(r.Features),
		"created_at":    r.CreatedAt.Format(time.RFC3339Nano),
	}
}

func dashboardToMap(d service.Dashboard) map[string]any {
	airlines := make([]any, len(d.TopAirlines))
	for i, a := range d.TopAirlines {
		airlines[i] = map[string]any{"rank": a.Rank, "name": a.Name, "country": a.Country}
	}
	trend := make([]any, len(d.SatisfactionTrend))
	for i, p := range d.SatisfactionTrend {
		trend[i] = map[string]any{"year": p.Year, "rate": p.Rate}
	}
	issues := make([]any, len(d.CommonIssues))
	for i, c := range d.CommonIssues {
		issues[i] = map[string]any{"issue": c.Issue, "frequency": c.Frequency}
	}
	return map[string]any{
		"top_airlines":       airlines,
		"satisfaction_trend": trend,
		"common_issues":      issues,
	}
}

func historyToMap(h service.History) map[string]any {
	records := make([]any, len(h.Records))
	for i, r := range h.Records {
		records[i] = map[string]any{
			"id":            r.ID,
			"model":         r.Model,
			"label":         r.Label,
			"class":         r.Class,
			"probabilities": floatList(r.Probabilities),
			"features":      featureMap(r.Features),
			"created_at":    r.CreatedAt.Format(time.RFC3339Nano),
		}
	}
	counts := make(map[string]any, len(h.LabelCounts))
	for label, n := range h.LabelCounts {
		counts[label] = n
	}
	return map[string]any{"predictions": records, "label_counts": counts}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/godilite/airsat-server/internal/features"
	"github.com/godilite/airsat-server/internal/model"
	"github.com/godilite/airsat-server/internal/repository/models"
	"github.com/godilite/airsat-server/pkg/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	dbTimeout            = 1 * time.Second
	defaultCacheDuration = 10 * time.Minute

	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200

	dashboardCacheKey = "dashboard"
)

var ErrStorageFailure = errors.New("storage failure")

// PredictionService runs one passenger submission through encoding and
// model dispatch, and serves the reference data shown alongside results.
type PredictionService struct {
	models    Dispatcher
	history   PredictionRepository
	dashboard DashboardRepository
	cache     Cacher
	sfGroup   singleflight.Group
	cacheTTL  time.Duration
	logger    *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewPredictionService creates a new PredictionService instance. A nil cache
// disables result caching.
func NewPredictionService(
	dispatcher Dispatcher,
	history PredictionRepository,
	dashboard DashboardRepository,
	c Cacher,
	logger *zap.Logger,
	ttl time.Duration,
) *PredictionService {
	if dispatcher == nil {
		panic("dispatcher must not be nil")
	}
	if history == nil || dashboard == nil {
		panic("repositories must not be nil")
	}
	if c == nil {
		c = cache.Noop{}
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &PredictionService{
		models:    dispatcher,
		history:   history,
		dashboard: dashboard,
		cache:     c,
		cacheTTL:  ttl,
		logger:    logger,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// Models lists the selectable model names.
func (s *PredictionService) Models() []string {
	names := model.Names()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}

func predictionKey(fingerprint string, name model.Name, row features.FeatureVector) string {
	return fmt.Sprintf("predict:%s:%s:%s", fingerprint, name, row.Key())
}

// Predict encodes in, applies the named model and records the outcome.
// Unknown models and classifier failures, including schema mismatches, are
// returned wrapped; nothing is recorded for a failed submission.
func (s *PredictionService) Predict(ctx context.Context, modelName string, in features.RawInput) (PredictionResult, error) {
	name, err := model.ParseName(modelName)
	if err != nil {
		return PredictionResult{}, err
	}

	row := features.Encode(in)
	key := predictionKey(s.models.Fingerprint(), name, row)

	res, err := FindAndCache(ctx, s.cache, &s.sfGroup, key, s.cacheTTL, s.logger, func(context.Context) (model.Result, error) {
		return s.models.Predict(name, row)
	})
	if err != nil {
		s.logger.Error("prediction failed",
			zap.String("model", string(name)),
			zap.Stringer("features", row),
			zap.Error(err))
		return PredictionResult{}, fmt.Errorf("predict with %s: %w", name, err)
	}

	result := PredictionResult{
		ID:            s.newID(),
		Model:         name,
		Class:         res.Class,
		Label:         res.Label,
		Probabilities: res.Probabilities,
		Features:      row,
		Input:         in,
		CreatedAt:     s.now().UTC(),
	}

	s.logger.Info("prediction completed",
		zap.String("id", result.ID),
		zap.String("model", string(name)),
		zap.String("label", result.Label),
		zap.Float64s("probabilities", result.Probabilities))

	s.record(ctx, result)
	return result, nil
}

// record stores the result in the history. Failures are logged only; the
// prediction itself already succeeded.
func (s *PredictionService) record(ctx context.Context, r PredictionResult) {
	proba, err := json.Marshal(r.Probabilities)
	if err != nil {
		s.logger.Warn("encode probabilities", zap.String("id", r.ID), zap.Error(err))
		return
	}
	row, err := json.Marshal(r.Features)
	if err != nil {
		s.logger.Warn("encode features", zap.String("id", r.ID), zap.Error(err))
		return
	}

	dbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dbTimeout)
	defer cancel()

	err = s.history.InsertPrediction(dbCtx, models.PredictionRecord{
		ID:            r.ID,
		Model:         string(r.Model),
		Class:         r.Class,
		Label:         r.Label,
		Probabilities: string(proba),
		Features:      string(row),
		CreatedAt:     r.CreatedAt,
	})
	if err != nil {
		s.logger.Warn("failed to record prediction", zap.String("id", r.ID), zap.Error(err))
	}
}

// Dashboard returns the airline table and the two chart series.
func (s *PredictionService) Dashboard(ctx context.Context) (Dashboard, error) {
	return FindAndCache(ctx, s.cache, &s.sfGroup, dashboardCacheKey, s.cacheTTL, s.logger, s.loadDashboard)
}

func (s *PredictionService) loadDashboard(ctx context.Context) (Dashboard, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	airlines, err := s.dashboard.GetTopAirlines(dbCtx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	trend, err := s.dashboard.GetSatisfactionTrend(dbCtx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	issues, err := s.dashboard.GetCommonIssues(dbCtx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	d := Dashboard{
		TopAirlines:       make([]Airline, len(airlines)),
		SatisfactionTrend: make([]TrendPoint, len(trend)),
		CommonIssues:      make([]IssueCount, len(issues)),
	}
	for i, a := range airlines {
		d.TopAirlines[i] = Airline{Rank: a.Rank, Name: a.Name, Country: a.Country}
	}
	for i, p := range trend {
		d.SatisfactionTrend[i] = TrendPoint{Year: p.Year, Rate: p.Rate}
	}
	for i, c := range issues {
		d.CommonIssues[i] = IssueCount{Issue: c.Issue, Frequency: c.Frequency}
	}

	s.logger.Debug("loaded dashboard",
		zap.Int("airlines", len(d.TopAirlines)),
		zap.Int("trend_points", len(d.SatisfactionTrend)),
		zap.Int("issues", len(d.CommonIssues)))

	return d, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}

// History returns the most recent predictions and per-label totals.
func (s *PredictionService) History(ctx context.Context, limit int) (History, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	recs, err := s.history.ListPredictions(dbCtx, clampLimit(limit))
	if err != nil {
		return History{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	counts, err := s.history.CountByLabel(dbCtx)
	if err != nil {
		return History{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	h := History{Records: make([]PredictionRecord, 0, len(recs)), LabelCounts: counts}
	for _, rec := range recs {
		out := PredictionRecord{
			ID:        rec.ID,
			Model:     rec.Model,
			Class:     rec.Class,
			Label:     rec.Label,
			CreatedAt: rec.CreatedAt,
		}
		if err := json.Unmarshal([]byte(rec.Probabilities), &out.Probabilities); err != nil {
			s.logger.Warn("skipping corrupt history record", zap.String("id", rec.ID), zap.Error(err))
			continue
		}
		if err := json.Unmarshal([]byte(rec.Features), &out.Features); err != nil {
			s.logger.Warn("skipping corrupt history record", zap.String("id", rec.ID), zap.Error(err))
			continue
		}
		h.Records = append(h.Records, out)
	}
	return h, nil
}

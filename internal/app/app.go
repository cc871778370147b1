package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	pb "github.com/godilite/airsat-server/api/v1"
	"github.com/godilite/airsat-server/internal/config"
	handler "github.com/godilite/airsat-server/internal/grpc"
	"github.com/godilite/airsat-server/internal/model"
	"github.com/godilite/airsat-server/internal/repository"
	"github.com/godilite/airsat-server/internal/service"
	"github.com/godilite/airsat-server/internal/web"
	"github.com/godilite/airsat-server/pkg/cache"
	dbbuilder "github.com/godilite/airsat-server/pkg/database"
	grpcsrv "github.com/godilite/airsat-server/pkg/grpc/server"
	httpsrv "github.com/godilite/airsat-server/pkg/http/server"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	logger     *zap.Logger
	dbPool     *sql.DB
	cache      service.Cacher
	grpcServer *grpcsrv.Server
	httpServer *httpsrv.Server
}

func newCache(ctx context.Context, cfg *config.Config) (service.Cacher, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		return cache.NewRedis(ctx, cache.WithAddress(cfg.RedisAddr))
	case config.CacheBackendNone:
		return cache.Noop{}, nil
	default:
		return cache.NewMemory(cfg.CacheSize, cfg.PredictionCacheTTL), nil
	}
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	registry, err := model.LoadRegistry(cfg.ModelsDir)
	if err != nil {
		return nil, fmt.Errorf("model registry init failed: %w", err)
	}
	logger.Info("Model registry loaded",
		zap.String("dir", cfg.ModelsDir),
		zap.String("fingerprint", registry.Fingerprint()))

	dbPool, err := dbbuilder.New(ctx,
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
		dbbuilder.WithLogger(logger.Named("database")),
		dbbuilder.WithMigrations(repository.Migrate),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	cacheClient, err := newCache(ctx, cfg)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	logger.Info("Cache initialized", zap.String("backend", cfg.CacheBackend))

	predictions := service.NewPredictionService(
		registry,
		repository.NewPredictionRepository(dbPool),
		repository.NewDashboardRepository(dbPool),
		cacheClient,
		logger.Named("prediction-service"),
		cfg.PredictionCacheTTL,
	)

	grpcHandlers := handler.NewGRPCHandlers(predictions, logger)

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithLogging(true),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
	)
	if err != nil {
		cacheClient.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}

	grpcServer.RegisterServiceWithHealth(pb.ServiceName, func(s *grpc.Server) {
		pb.RegisterSatisfactionPredictorServer(s, grpcHandlers)
	})

	httpServer, err := httpsrv.New(
		httpsrv.WithPort(cfg.HTTPPort),
		httpsrv.WithLogger(logger),
		httpsrv.WithHandler(web.NewHandlers(predictions, logger).Routes()),
	)
	if err != nil {
		_ = grpcServer.Shutdown(ctx)
		cacheClient.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create HTTP server: %w", err)
	}

	return &App{
		logger:     logger,
		dbPool:     dbPool,
		cache:      cacheClient,
		grpcServer: grpcServer,
		httpServer: httpServer,
	}, nil
}

// Run starts both servers and blocks until ctx is done or a server fails,
// then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("application starting")

	grpcErr := a.grpcServer.Start()
	httpErr := a.httpServer.Start()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-grpcErr:
		if ok {
			runErr = fmt.Errorf("gRPC server: %w", err)
		}
	case err, ok := <-httpErr:
		if ok {
			runErr = fmt.Errorf("HTTP server: %w", err)
		}
	}

	a.logger.Info("application shutting down")
	a.grpcServer.SetServiceHealth(pb.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := a.grpcServer.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("grpc shutdown: %w", err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	if len(errs) > 0 {
		a.logger.Warn("shutdown completed with errors", zap.Errors("errors", errs))
	} else {
		a.logger.Info("graceful shutdown completed successfully")
	}

	return errors.Join(append([]error{runErr}, errs...)...)
}

// GRPCAddr and HTTPAddr report the bound listener addresses.
func (a *App) GRPCAddr() string { return a.grpcServer.Addr().String() }

func (a *App) HTTPAddr() string { return a.httpServer.Addr().String() }

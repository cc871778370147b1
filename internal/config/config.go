package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv                string
	ModelsDir             string
	DBPath                string
	DBDriver              string
	CacheBackend          string
	RedisAddr             string
	CacheSize             int
	PredictionCacheTTL    time.Duration
	GRPCPort              int
	GRPCReflectionEnabled bool
	HTTPPort              int
	LogFile               string
}

// LoadFromEnv loads configuration from environment variables. Unparseable
// values fall back to their defaults.
func LoadFromEnv() *Config {
	return &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		ModelsDir:             getEnv("MODELS_DIR", "./models"),
		DBPath:                getEnv("DB_PATH", "./data/airsat.db"),
		DBDriver:              getEnv("DB_DRIVER", "sqlite3"),
		CacheBackend:          getEnv("CACHE_BACKEND", CacheBackendMemory),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		CacheSize:             getInt("CACHE_SIZE", 1024),
		PredictionCacheTTL:    getDuration("PREDICTION_CACHE_TTL", 10*time.Minute),
		GRPCPort:              getInt("GRPC_PORT", 50051),
		GRPCReflectionEnabled: getBool("GRPC_REFLECTION_ENABLED", false),
		HTTPPort:              getInt("HTTP_PORT", 8080),
		LogFile:               getEnv("LOG_FILE", ""),
	}
}

// Validate reports settings that cannot be defaulted away.
func (c *Config) Validate() error {
	switch c.CacheBackend {
	case CacheBackendMemory, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q: want memory, redis or none", c.CacheBackend)
	}
	if c.ModelsDir == "" {
		return fmt.Errorf("MODELS_DIR must not be empty")
	}
	if c.CacheBackend == CacheBackendMemory && c.CacheSize <= 0 {
		return fmt.Errorf("CACHE_SIZE must be positive, got %d", c.CacheSize)
	}
	if c.GRPCPort == c.HTTPPort {
		return fmt.Errorf("GRPC_PORT and HTTP_PORT must differ, both are %d", c.GRPCPort)
	}
	return nil
}

// NewLogger creates a new Zap logger based on the config. When LogFile is
// set, entries are also written as JSON to a rotating file.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error
	if cfg.AppEnv == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil || cfg.LogFile == "" {
		return logger, err
	}

	level := zap.DebugLevel
	if cfg.AppEnv == "production" {
		level = zap.InfoLevel
	}
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(newRotatingFile(cfg.LogFile)),
		level,
	)
	return logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, fileCore)
	})), nil
}

func newRotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

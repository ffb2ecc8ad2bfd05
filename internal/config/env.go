// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xtding233/equity-backend/internal/otel"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Server is the configuration of cmd/server.
type Server struct {
	GRPCAddr      string        `env:"EQUITY_GRPC_ADDR" envDefault:":9090"`
	HTTPAddr      string        `env:"EQUITY_HTTP_ADDR" envDefault:":8080"`
	PresetDir     string        `env:"EQUITY_PRESET_DIR" envDefault:"./config"`
	WatchInterval time.Duration `env:"EQUITY_WATCH_INTERVAL" envDefault:"5s"`
	LogLevel      string        `env:"EQUITY_LOG_LEVEL" envDefault:"info"`
	DevLog        bool          `env:"EQUITY_DEV_LOG" envDefault:"false"`

	Otel otel.Config
}

// LoadServer parses Server from the environment and checks it.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if cfg.WatchInterval <= 0 {
		return Server{}, fmt.Errorf("EQUITY_WATCH_INTERVAL must be positive, got %s", cfg.WatchInterval)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return Server{}, fmt.Errorf("EQUITY_LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// NewLogger builds the process logger: JSON production output by default,
// console development output when dev is set.
func NewLogger(level string, dev bool) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Sugar(), nil
}

// Package observability wires up structured logging for the pipeline.
// Grounded on noah-isme-sma-adp-api/pkg/logger: a production JSON
// encoder by default, a development console encoder when requested,
// and an explicit *zap.Logger threaded through every phase rather
// than a package-level global.
package observability

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvDevelopment and EnvProduction select the logger's encoding.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// NewLogger builds a *zap.Logger for the given environment name. An
// unrecognized or empty env falls back to production encoding, since
// a solver run with no explicit environment should log machine-
// readable output by default.
func NewLogger(env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == EnvDevelopment {
		cfg = zap.NewDevelopmentConfig()
		cfg.Encoding = "console"
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "json"
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// EnvFromOS reads TIMETABLE_ENV, defaulting to production.
func EnvFromOS() string {
	if v := os.Getenv("TIMETABLE_ENV"); v != "" {
		return v
	}
	return EnvProduction
}

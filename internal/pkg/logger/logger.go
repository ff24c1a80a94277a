// Package logger builds the zap logger shared by every component.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvProduction selects JSON output with ISO 8601 timestamps. Any other
// environment gets the coloured console encoder at debug level.
const EnvProduction = "production"

// New builds the logger for env.
func New(env string) (*zap.Logger, error) {
	return Config(env).Build(zap.AddStacktrace(zapcore.ErrorLevel))
}

// Config returns the zap configuration New builds from.
func Config(env string) zap.Config {
	var config zap.Config

	if strings.EqualFold(strings.TrimSpace(env), EnvProduction) {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return config
}

// Component derives the logger of a named component.
func Component(l *zap.Logger, name string) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return l.With(zap.String("component", name))
}

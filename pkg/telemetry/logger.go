// Package telemetry builds the zap logger and adapts it to the Record seam
// used by the dashboard, list view, settings and auth services.
package telemetry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig selects the logger flavour.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// NewLogger builds a production JSON logger, or a development console logger
// when Format is "console".
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil && cfg.Level != "" {
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	if cfg.Level == "" {
		level = zapcore.InfoLevel
	}
	config := zap.NewProductionConfig()
	if strings.EqualFold(cfg.Format, "console") {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level)
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("telemetry: build logger: %w", err)
	}
	return logger, nil
}

// ZapRecorder logs telemetry events. Events ending in "_error" are logged at
// warn level, everything else at debug.
type ZapRecorder struct {
	logger *zap.Logger
}

// NewZapRecorder wraps logger. A nil logger discards events.
func NewZapRecorder(logger *zap.Logger) *ZapRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapRecorder{logger: logger}
}

// Record writes one structured log line for event.
func (r *ZapRecorder) Record(_ context.Context, event string, payload map[string]any) {
	fields := make([]zap.Field, 0, len(payload))
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fields = append(fields, zap.Any(key, payload[key]))
	}
	if strings.HasSuffix(event, "_error") || strings.HasSuffix(event, ".error") {
		r.logger.Warn(event, fields...)
		return
	}
	r.logger.Debug(event, fields...)
}

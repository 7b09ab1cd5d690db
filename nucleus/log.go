package nucleus

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a zap logger for use with WithLogger. Production loggers
// write sampled JSON to stderr; development loggers write console output.
func NewLogger(level string, development bool) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("nucleus: invalid log level %q: %w", level, err)
	}

	if development {
		config := zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
		return config.Build()
	}

	config := zap.Config{
		Level:       zap.NewAtomicLevelAt(zapLevel),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	return config.Build()
}

// safeCall runs fn and logs instead of propagating a panic. It reports
// whether fn returned normally.
func safeCall(logger *zap.Logger, msg string, fn func(), fields ...zap.Field) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			fields = append(fields, zap.Any("panic", r))
			logger.Error(msg, fields...)
		}
	}()
	fn()
	return true
}

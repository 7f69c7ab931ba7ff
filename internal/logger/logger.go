package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environments with a logging profile.
const (
	EnvLocal = "local"
	EnvProd  = "prod"
)

// Options configures the service logger.
type Options struct {
	// Env selects the console format: prod writes JSON, local writes colored console lines.
	Env string
	// Level overrides the environment default: debug, info, warn, error.
	Level string
	// File adds rotated JSON output at the same level. Empty File.Path disables it.
	File FileOptions
}

// New builds the service logger from opts.
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	switch opts.Env {
	case EnvProd:
		cfg = zap.NewProductionConfig()
	case EnvLocal:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown environment %q for logger", opts.Env)
	}

	if opts.Level != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return withFile(l, opts.File, cfg.Level), nil
}

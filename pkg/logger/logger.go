package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NOOPLogger discards everything. It is the default wherever a logger is optional.
var NOOPLogger = zap.NewNop().Sugar()

type Options struct {
	// Level is one of debug, info, warn or error. Empty means info.
	Level string
	// Format is json or console. Empty means json.
	Format string
	// File receives the logs. Empty or "-" means stderr.
	File string
}

// New builds a sugared logger. Unparsable options fall back to their defaults
// and the fallback is logged.
func New(opts Options) (*zap.SugaredLogger, error) {
	var warnings []string

	level := zapcore.InfoLevel
	if opts.Level != "" {
		lvl, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			warnings = append(warnings, "could not parse logger level: "+opts.Level)
		} else {
			level = lvl
		}
	}

	cfg := zap.NewProductionConfig()
	switch strings.ToLower(opts.Format) {
	case "", "json":
	case "console":
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	default:
		warnings = append(warnings, "could not parse logger format: "+opts.Format)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	if opts.File != "" && opts.File != "-" {
		cfg.OutputPaths = []string{opts.File}
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	sugar := l.Sugar()
	for _, w := range warnings {
		sugar.Warn(w)
	}
	return sugar, nil
}

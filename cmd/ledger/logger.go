package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jrick/logrotate/rotator"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logRotateThresholdKB = 10 * 1024
	logRotateMaxRolls    = 3
)

// newLogger builds the console logger and, when logFile is set, tees JSON
// entries into a rotating file. The returned func flushes and closes both.
func newLogger(jsonOutput bool, logFile string) (*zap.Logger, func(), error) {
	cfg := zap.NewDevelopmentConfig()
	if jsonOutput {
		cfg = zap.NewProductionConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}
	if logFile == "" {
		return logger, func() { _ = logger.Sync() }, nil
	}

	if dir, _ := filepath.Split(logFile); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	r, err := rotator.New(logFile, logRotateThresholdKB, false, logRotateMaxRolls)
	if err != nil {
		return nil, nil, fmt.Errorf("create file rotator: %w", err)
	}
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(r),
		cfg.Level,
	)
	logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	}))
	return logger, func() {
		_ = logger.Sync()
		_ = r.Close()
	}, nil
}

package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mini_casino/internal/config"
)

const timeFmt = "2006/01/02 15:04:05.000"

// New Создает zap логгер по конфигу: dev - консоль, prod - JSON
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level())
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var zc zap.Config
	if cfg.Mode() == "dev" {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(timeFmt)

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l.Named("casino"), nil
}

package featurestore

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Printf(format string, v ...interface{})
}

type zapLogger struct {
	sugar *zap.SugaredLogger
	level zapcore.Level
}

// NewZapLogger adapts a zap logger to Logger, every Printf is written at level.
func NewZapLogger(l *zap.Logger, level zapcore.Level) Logger {
	return &zapLogger{
		sugar: l.WithOptions(zap.AddCallerSkip(2)).Sugar(),
		level: level,
	}
}

func (l *zapLogger) Printf(format string, v ...interface{}) {
	l.sugar.Logf(l.level, format, v...)
}

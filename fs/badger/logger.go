package badger

import (
	"go.uber.org/zap"
)

// zapLogger adapts a zap logger to badger.Logger.
type zapLogger struct {
	s *zap.SugaredLogger
}

func newZapLogger(l *zap.Logger) *zapLogger {
	return &zapLogger{s: l.Named("badger").WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (l *zapLogger) Errorf(format string, args ...interface{}) {
	l.s.Errorf(format, args...)
}

func (l *zapLogger) Warningf(format string, args ...interface{}) {
	l.s.Warnf(format, args...)
}

func (l *zapLogger) Infof(format string, args ...interface{}) {
	l.s.Infof(format, args...)
}

func (l *zapLogger) Debugf(format string, args ...interface{}) {
	l.s.Debugf(format, args...)
}

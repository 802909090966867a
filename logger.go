package xgxsuppress

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	logger    atomic.Pointer[zap.Logger]
	nopLogger = zap.NewNop()
)

// Logger returns the package logger. It is a no-op logger unless SetLogger
// stored another one.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nopLogger
}

// SetLogger configures the package logger; nil restores the no-op logger.
// It is safe to call at any time. Runtimes and side tables built earlier keep
// the logger they were built with.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}

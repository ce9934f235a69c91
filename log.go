package rediswire

import (
	"log/slog"
	"sync/atomic"
)

// The package logs sparingly: redundant closes, swallowed resource-close
// failures, and dispatch tracing at debug level.
var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	pkgLogger.Store(slog.Default())
}

// SetLogger replaces the package logger. Passing nil restores the default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	pkgLogger.Store(l)
}

func logger() *slog.Logger {
	return pkgLogger.Load()
}

// Package logger exposes the process-wide zap logger used across BudgetBox.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu   sync.Mutex
	base *zap.Logger
)

// Init builds the shared logger. "production" selects the JSON encoder,
// "test" a nop logger to keep test output quiet, and anything else the
// human-readable console encoder. Repeat calls are no-ops.
func Init(env string) {
	mu.Lock()
	defer mu.Unlock()
	if base != nil {
		return
	}

	var (
		l   *zap.Logger
		err error
	)
	switch env {
	case "production":
		l, err = zap.NewProduction()
	case "test":
		l = zap.NewNop()
	default:
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		l = zap.NewNop()
	}
	base = l.Named("budgetbox")
}

// Get returns the shared sugared logger, initializing a development logger
// on first use if Init was never called.
func Get() *zap.SugaredLogger {
	mu.Lock()
	l := base
	mu.Unlock()
	if l == nil {
		Init("development")
		mu.Lock()
		l = base
		mu.Unlock()
	}
	return l.Sugar()
}

// Sync flushes buffered entries. Call before process exit.
func Sync() {
	mu.Lock()
	l := base
	mu.Unlock()
	if l != nil {
		_ = l.Sync()
	}
}

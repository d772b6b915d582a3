// Package tasks holds the best-effort execution helper used for side effects
// that must never fail or block their caller: login-activity writes, outbound
// notification emails, image-host cleanup.
package tasks

import (
	"log/slog"

	"github.com/ddka-tech/ddka-backend/internal/metrics"
)

// BestEffort runs fn, logging and swallowing any error. The caller continues
// regardless of the outcome.
func BestEffort(name string, fn func() error) {
	if err := fn(); err != nil {
		metrics.BestEffortFailures.WithLabelValues(name).Inc()
		slog.Error("best-effort action failed", "action", name, "error", err)
	}
}

// BestEffortAsync is BestEffort on its own goroutine, for side effects the
// response path should not wait on at all.
func BestEffortAsync(name string, fn func() error) {
	go BestEffort(name, fn)
}

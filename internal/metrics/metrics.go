package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Package-level collectors; registered once via promauto on import.
var (
	LoginsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ddka_logins_total",
		Help: "Successful logins by role",
	}, []string{"role"})

	Verifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ddka_verifications_total",
		Help: "Verification lookups by entity type and outcome",
	}, []string{"type", "outcome"}) // outcome: "found", "not_found", "error"

	ActivityPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ddka_login_activity_pruned_total",
		Help: "Login-activity rows removed by the retention cap",
	})

	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ddka_emails_total",
		Help: "Outbound notification emails by template and outcome",
	}, []string{"template", "outcome"}) // outcome: "sent", "failed", "skipped"

	BestEffortFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ddka_best_effort_failures_total",
		Help: "Best-effort background actions that returned an error",
	}, []string{"name"})
)

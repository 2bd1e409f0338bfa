// Package metrics defines the custom Prometheus metrics of the task API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Call Register once at startup, before the HTTP server starts, with the
// registry that backs the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "taskapi"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Label:
//   - result: "created", "conflict", "invalid" or "error"
var SignupsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure", "invalid" or "error"
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsExpiredTotal counts sessions removed by the idle sweeper.
var SessionsExpiredTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_expired_total",
		Help:      "Total number of sessions dropped after the idle timeout.",
	},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TaskOperationsTotal counts task operations.
// Labels:
//   - op: "list", "create", "get", "update" or "delete"
//   - result: "ok" or the error class ("invalid", "forbidden", "not_found", "error")
var TaskOperationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_operations_total",
		Help:      "Total number of task operations, by operation and result.",
	},
	[]string{"op", "result"},
)

// Register adds every collector to reg. activeSessions, when non-nil, backs
// the active sessions gauge.
func Register(reg prometheus.Registerer, activeSessions func() int) error {
	cs := []prometheus.Collector{
		SignupsTotal,
		LoginsTotal,
		SessionsExpiredTotal,
		TaskOperationsTotal,
	}
	if activeSessions != nil {
		cs = append(cs, prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sessions_active",
				Help:      "Current number of server-side sessions.",
			},
			func() float64 { return float64(activeSessions()) },
		))
	}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

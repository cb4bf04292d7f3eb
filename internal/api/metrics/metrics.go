// Package metrics defines and registers all custom Prometheus metrics for
// the employee records API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry at
// package init via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "employee"

// EmployeesCreatedTotal counts successfully created employee records.
// Label:
//   - department: the department the record was created in
var EmployeesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of employee records created, by department.",
	},
	[]string{"department"},
)

// EmployeesDeletedTotal counts deleted employee records. Deleted
// identifiers are retired, never reissued.
var EmployeesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_deleted_total",
		Help:      "Total number of employee records deleted.",
	},
)

// QueryDuration measures how long a list/search query takes end-to-end,
// including the store round trips for the page and the total count.
// Label:
//   - paginated: "true" when the query carried a pagination window
var QueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "query_duration_seconds",
		Help:      "Duration of employee list/search queries.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"paginated"},
)

// AuthFailuresTotal counts rejected requests at the auth guard.
// Label:
//   - reason: "missing_header", "bad_scheme", "malformed", "expired", "invalid"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the auth guard, by reason.",
	},
	[]string{"reason"},
)

// LoginThrottledTotal counts login attempts rejected by the per-username
// rate limit before credential verification.
var LoginThrottledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_throttled_total",
		Help:      "Total number of login attempts rejected by the rate limit.",
	},
)

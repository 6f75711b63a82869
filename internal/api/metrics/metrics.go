// Package metrics defines and registers the custom Prometheus metrics of the
// blog service. It is the single source of truth for metric names, labels,
// and help strings.
//
// The collectors are created unregistered; MustRegister attaches them to the
// registry that also serves HTTP metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "blog"

// Result label values shared by the counters below.
const (
	ResultSuccess  = "success"
	ResultInvalid  = "invalid"
	ResultTaken    = "taken"
	ResultNotFound = "not_found"
	ResultDenied   = "forbidden"
	ResultError    = "error"
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid" (bad credentials or form) or "error"
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "taken", "invalid" or "error"
var RegistrationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts logout requests.
// Label:
//   - result: "success" or "error" (session could not be destroyed)
var LogoutsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logout requests, by result.",
	},
	[]string{"result"},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostsCreatedTotal counts newly created posts.
var PostsCreatedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created.",
	},
)

// PostDeletionsTotal counts delete requests.
// Label:
//   - result: "success", "not_found", "forbidden" or "error"
var PostDeletionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_deletions_total",
		Help:      "Total number of post delete requests, by result.",
	},
	[]string{"result"},
)

// MustRegister adds every collector of this package to reg. Collectors that
// reg already holds are skipped, so several routers may share a registry.
func MustRegister(reg prometheus.Registerer) {
	for _, c := range []prometheus.Collector{
		LoginsTotal,
		RegistrationsTotal,
		LogoutsTotal,
		PostsCreatedTotal,
		PostDeletionsTotal,
	} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			panic(err)
		}
	}
}

// Package obs exposes client-side operational metrics: poll loop health
// and per-class action outcomes.
package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	pollTicksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spinectl_poll_ticks_total",
		Help: "Monitoring status poll ticks executed.",
	})

	pollErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spinectl_poll_errors_total",
		Help: "Poll ticks that failed and were swallowed.",
	})

	actionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinectl_actions_total",
			Help: "User-triggered actions by class and outcome.",
		},
		[]string{"class", "outcome"},
	)

	actionsRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinectl_actions_rejected_total",
			Help: "Action invocations rejected by single-flight.",
		},
		[]string{"class"},
	)
)

// Init registers the metrics in the default registry.
func Init() {
	prometheus.MustRegister(pollTicksTotal, pollErrorsTotal, actionsTotal, actionsRejectedTotal)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// PollTick records one executed poll tick and whether it failed.
func PollTick(err error) {
	pollTicksTotal.Inc()
	if err != nil {
		pollErrorsTotal.Inc()
	}
}

// Action records a completed action invocation.
func Action(class string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	actionsTotal.WithLabelValues(class, outcome).Inc()
}

// ActionRejected records a single-flight rejection.
func ActionRejected(class string) {
	actionsRejectedTotal.WithLabelValues(class).Inc()
}

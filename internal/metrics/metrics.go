// Package metrics exposes Prometheus instrumentation for rule runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Recorder aggregates run counters and timings.
type Recorder struct {
	ruleRuns    *prometheus.CounterVec
	windows     *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
}

// New creates a recorder registered against reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		ruleRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "allocrun_rule_runs_total",
				Help: "Total rule applications by rule name and outcome",
			},
			[]string{"rule", "status"},
		),
		windows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "allocrun_windows_total",
				Help: "Walk-forward windows processed by outcome",
			},
			[]string{"status"},
		),
		runDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "allocrun_run_duration_seconds",
				Help:    "Duration of rule applications in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"rule"},
		),
	}
}

// RecordRuleRun counts one rule application with its outcome.
func (r *Recorder) RecordRuleRun(rule, status string) {
	r.ruleRuns.WithLabelValues(rule, status).Inc()
}

// RecordWindows counts fitted and degenerate windows from one run.
func (r *Recorder) RecordWindows(fitted, degenerate int) {
	r.windows.WithLabelValues("fitted").Add(float64(fitted))
	r.windows.WithLabelValues("degenerate").Add(float64(degenerate))
}

// RecordRunDuration observes how long one rule application took.
func (r *Recorder) RecordRunDuration(rule string, d time.Duration) {
	r.runDuration.WithLabelValues(rule).Observe(d.Seconds())
}

// Serve starts a /metrics listener in the background and returns the
// server so the caller can shut it down.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Str("addr", addr).Msg("metrics listener failed")
		}
	}()
	return srv
}

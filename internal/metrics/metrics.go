// Package metrics instruments the parse/render/session pipeline with
// Prometheus collectors, consumed by cmd/mdcored; the core packages never
// import this one, keeping instrumentation an opt-in collaborator concern.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry bundles the collectors a host process registers once and
// updates from its own code; cmd/mdcored observes ParseDuration and
// RenderDuration, and no caller in this repository updates SessionEdits,
// LiveSessions or DiagnosticsTotal.
type Registry struct {
	ParseDuration    *prometheus.HistogramVec
	RenderDuration   *prometheus.HistogramVec
	SessionEdits     prometheus.Counter
	LiveSessions     prometheus.Gauge
	DiagnosticsTotal *prometheus.CounterVec
}

// NewRegistry constructs and registers a Registry's collectors against reg.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		ParseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mdcore",
			Name:      "parse_duration_seconds",
			Help:      "Duration of Parse calls by mode.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mdcore",
			Name:      "render_duration_seconds",
			Help:      "Duration of RenderHTML calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"sanitized"}),
		SessionEdits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mdcore",
			Name:      "session_edits_total",
			Help:      "Total number of EditSession calls across all sessions.",
		}),
		LiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mdcore",
			Name:      "sessions_live",
			Help:      "Number of sessions currently held open.",
		}),
		DiagnosticsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mdcore",
			Name:      "diagnostics_total",
			Help:      "Diagnostics emitted, by code.",
		}, []string{"code", "severity"}),
	}
	reg.MustRegister(r.ParseDuration, r.RenderDuration, r.SessionEdits, r.LiveSessions, r.DiagnosticsTotal)
	return r
}

// ObserveParse times a parse call; call with defer and time.Now().
func (r *Registry) ObserveParse(mode string, start time.Time) {
	if r == nil {
		return
	}
	r.ParseDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}

// ObserveRender times a render call.
func (r *Registry) ObserveRender(sanitized bool, start time.Time) {
	if r == nil {
		return
	}
	label := "false"
	if sanitized {
		label = "true"
	}
	r.RenderDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
}

package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what a session does. Each Metrics registers on its own
// registerer, so several sessions (and tests) never collide on the default one.
type Metrics struct {
	Renders          prometheus.Counter
	Clears           prometheus.Counter
	RenderErrors     prometheus.Counter
	HistoryRecords   prometheus.Counter
	HistoryEvictions prometheus.Counter
	HistorySize      prometheus.Gauge
	Undos            prometheus.Counter
	Redos            prometheus.Counter
	IgnoredInputs    prometheus.Counter
}

// NewMetrics registers the session metrics on reg; a nil reg gets a private registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		Renders: f.NewCounter(prometheus.CounterOpts{
			Name: "parabola_renders_total",
			Help: "Charts handed to the renderer",
		}),
		Clears: f.NewCounter(prometheus.CounterOpts{
			Name: "parabola_render_clears_total",
			Help: "Renders skipped because the triple is degenerate (a == 0)",
		}),
		RenderErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "parabola_render_errors_total",
			Help: "Renderer failures",
		}),
		HistoryRecords: f.NewCounter(prometheus.CounterOpts{
			Name: "parabola_history_records_total",
			Help: "Triples recorded in the undo log",
		}),
		HistoryEvictions: f.NewCounter(prometheus.CounterOpts{
			Name: "parabola_history_evictions_total",
			Help: "Oldest undo entries dropped because the log was full",
		}),
		HistorySize: f.NewGauge(prometheus.GaugeOpts{
			Name: "parabola_history_size",
			Help: "Current number of entries in the undo log",
		}),
		Undos: f.NewCounter(prometheus.CounterOpts{
			Name: "parabola_undo_total",
			Help: "Undo steps applied",
		}),
		Redos: f.NewCounter(prometheus.CounterOpts{
			Name: "parabola_redo_total",
			Help: "Redo steps applied",
		}),
		IgnoredInputs: f.NewCounter(prometheus.CounterOpts{
			Name: "parabola_ignored_inputs_total",
			Help: "Edits dropped because the text was not a finite number",
		}),
	}
}

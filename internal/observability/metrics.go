// Package observability bundles the Prometheus metrics of the EWH service.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects counters for EWH grid evaluations and exposes a
// /metrics handler.
type Metrics struct {
	gatherer prometheus.Gatherer

	GridEvaluations prometheus.Counter
	GridPoints      prometheus.Counter
	GridDuration    prometheus.Histogram
	FilterFallbacks prometheus.Counter
}

// NewMetrics registers the service metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	evaluations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ewh_grid_evaluations_total",
		Help: "Total number of completed EWH grid evaluations.",
	})
	if err := reg.Register(evaluations); err != nil {
		return nil, err
	}

	points := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ewh_grid_points_total",
		Help: "Total number of evaluated grid points.",
	})
	if err := reg.Register(points); err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ewh_grid_duration_seconds",
		Help:    "Wall time of one grid evaluation in seconds.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	})
	if err := reg.Register(duration); err != nil {
		return nil, err
	}

	fallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ewh_filter_fallbacks_total",
		Help: "Grid evaluations where the Gaussian filter recursion fell back to the closed form.",
	})
	if err := reg.Register(fallbacks); err != nil {
		return nil, err
	}

	return &Metrics{
		gatherer:        gatherer,
		GridEvaluations: evaluations,
		GridPoints:      points,
		GridDuration:    duration,
		FilterFallbacks: fallbacks,
	}, nil
}

// ObserveGrid records one completed grid evaluation.
func (m *Metrics) ObserveGrid(elapsed time.Duration, points int, filterFellBack bool) {
	if m == nil {
		return
	}
	m.GridEvaluations.Inc()
	m.GridPoints.Add(float64(points))
	m.GridDuration.Observe(elapsed.Seconds())
	if filterFellBack {
		m.FilterFallbacks.Inc()
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (m *Metrics) Handler() http.Handler {
	gatherer := m.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

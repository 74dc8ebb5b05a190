// Package metrics exposes Prometheus instrumentation for simulation runs and
// network mutations.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the simulator.
type Registry struct {
	registry *prometheus.Registry

	// Simulation metrics
	SimulationRunsTotal      *prometheus.CounterVec
	SimulationIterationsTotal prometheus.Counter
	SimulationDuration       prometheus.Histogram
	ResultRowsTotal          prometheus.Counter

	// Network metrics
	NetworkNodesTotal prometheus.Gauge
	NetworkEdgesTotal prometheus.Gauge
	DisruptionsTotal  prometheus.Counter
	PathQueriesTotal  *prometheus.CounterVec
}

// NewRegistry creates a registry with all metrics initialized and registered
// against a private Prometheus registry.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.SimulationRunsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockflow_simulation_runs_total",
			Help: "Total number of Monte Carlo simulation runs",
		},
		[]string{"mode", "status"},
	)

	r.SimulationIterationsTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "stockflow_simulation_iterations_total",
			Help: "Total number of Monte Carlo iterations executed",
		},
	)

	r.SimulationDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stockflow_simulation_duration_seconds",
			Help:    "Simulation run latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	r.ResultRowsTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "stockflow_simulation_result_rows_total",
			Help: "Total number of result rows emitted by simulations",
		},
	)

	r.NetworkNodesTotal = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "stockflow_network_nodes",
			Help: "Nodes in the most recently built supply chain network",
		},
	)

	r.NetworkEdgesTotal = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "stockflow_network_edges",
			Help: "Edges in the most recently built supply chain network",
		},
	)

	r.DisruptionsTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "stockflow_network_disruptions_total",
			Help: "Total number of disruptions applied to networks",
		},
	)

	r.PathQueriesTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockflow_network_path_queries_total",
			Help: "Total number of path lead-time queries",
		},
		[]string{"status"},
	)

	return r
}

// PrometheusRegistry returns the underlying registry for exposition.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordSimulation records one simulation run.
func (r *Registry) RecordSimulation(mode, status string, duration time.Duration, iterations, rows int) {
	r.SimulationRunsTotal.WithLabelValues(mode, status).Inc()
	r.SimulationDuration.Observe(duration.Seconds())
	r.SimulationIterationsTotal.Add(float64(iterations))
	r.ResultRowsTotal.Add(float64(rows))
}

// UpdateNetworkSize records the node and edge counts of a built network.
func (r *Registry) UpdateNetworkSize(nodes, edges int) {
	r.NetworkNodesTotal.Set(float64(nodes))
	r.NetworkEdgesTotal.Set(float64(edges))
}

// RecordDisruption counts an applied disruption.
func (r *Registry) RecordDisruption() {
	r.DisruptionsTotal.Inc()
}

// RecordPathQuery counts a lead-time path query by outcome.
func (r *Registry) RecordPathQuery(status string) {
	r.PathQueriesTotal.WithLabelValues(status).Inc()
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide metrics registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

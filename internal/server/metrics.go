package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exports backdrop and HTTP events to Prometheus. It implements
// observability.BackdropHooks and observability.HTTPHooks.
type Metrics struct {
	registry *prometheus.Registry

	Mounts           prometheus.Counter
	Unmounts         prometheus.Counter
	Generations      prometheus.Counter
	GenerateDuration prometheus.Histogram
	Nodes            prometheus.Gauge
	Edges            prometheus.Gauge
	ForcedNodes      prometheus.Gauge
	Ticks            prometheus.Counter
	Offset           prometheus.Gauge

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Mounts: f.NewCounter(prometheus.CounterOpts{
			Name: "backdrop_mounts_total",
			Help: "Total number of visualization mounts",
		}),
		Unmounts: f.NewCounter(prometheus.CounterOpts{
			Name: "backdrop_unmounts_total",
			Help: "Total number of visualization unmounts",
		}),
		Generations: f.NewCounter(prometheus.CounterOpts{
			Name: "backdrop_generations_total",
			Help: "Total number of graph regenerations",
		}),
		GenerateDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "backdrop_generate_duration_seconds",
			Help:    "Graph generation latency in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05},
		}),
		Nodes: f.NewGauge(prometheus.GaugeOpts{
			Name: "backdrop_nodes",
			Help: "Nodes in the current graph",
		}),
		Edges: f.NewGauge(prometheus.GaugeOpts{
			Name: "backdrop_edges",
			Help: "Edges in the current graph",
		}),
		ForcedNodes: f.NewGauge(prometheus.GaugeOpts{
			Name: "backdrop_forced_nodes",
			Help: "Nodes placed after the attempt cap in the current graph",
		}),
		Ticks: f.NewCounter(prometheus.CounterOpts{
			Name: "backdrop_ticks_total",
			Help: "Total number of animation frames painted",
		}),
		Offset: f.NewGauge(prometheus.GaugeOpts{
			Name: "backdrop_scroll_offset",
			Help: "Current horizontal scroll offset",
		}),
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "backdrop_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "backdrop_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) OnMount(string) { m.Mounts.Inc() }

func (m *Metrics) OnUnmount(string, int) { m.Unmounts.Inc() }

func (m *Metrics) OnGenerate(_ string, nodes, edges, forced int, d time.Duration) {
	m.Generations.Inc()
	m.GenerateDuration.Observe(d.Seconds())
	m.Nodes.Set(float64(nodes))
	m.Edges.Set(float64(edges))
	m.ForcedNodes.Set(float64(forced))
}

func (m *Metrics) OnTick(_ string, offset float64) {
	m.Ticks.Inc()
	m.Offset.Set(offset)
}

func (m *Metrics) OnRequest(method, route string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus metrics for the board client and the
// stand-in services. A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	// Outbound calls to the graph and file services
	ClientRequests *prometheus.CounterVec
	ClientDuration *prometheus.HistogramVec

	// Inbound requests on the stand-in services
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Board state
	BoardNodes     prometheus.Gauge
	BoardEdges     prometheus.Gauge
	BoardEffects   *prometheus.CounterVec
	Publishes      prometheus.Counter
	ImagesUploaded prometheus.Counter
}

// NewCollector creates a collector on its own registry
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	clientRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "client_requests_total",
			Help:      "Total number of requests sent to remote services",
		},
		[]string{"service", "operation", "status"},
	)

	clientDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "client_request_duration_seconds",
			Help:      "Remote service request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	boardNodes := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "board_nodes",
		Help:      "Number of nodes on the draft board",
	})

	boardEdges := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "board_edges",
		Help:      "Number of edges on the draft board",
	})

	boardEffects := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "board_effects_total",
			Help:      "Board mutations applied from user gestures",
		},
		[]string{"effect"},
	)

	publishes := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "publishes_total",
		Help:      "Total number of successful publishes",
	})

	imagesUploaded := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_uploaded_total",
		Help:      "Total number of images uploaded",
	})

	registry.MustRegister(
		clientRequests,
		clientDuration,
		httpRequests,
		httpDuration,
		boardNodes,
		boardEdges,
		boardEffects,
		publishes,
		imagesUploaded,
	)

	return &Collector{
		registry:       registry,
		ClientRequests: clientRequests,
		ClientDuration: clientDuration,
		HTTPRequests:   httpRequests,
		HTTPDuration:   httpDuration,
		BoardNodes:     boardNodes,
		BoardEdges:     boardEdges,
		BoardEffects:   boardEffects,
		Publishes:      publishes,
		ImagesUploaded: imagesUploaded,
	}
}

// ObserveClientRequest records one outbound call
func (c *Collector) ObserveClientRequest(service, operation string, err error, duration time.Duration) {
	if c == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.ClientRequests.WithLabelValues(service, operation, status).Inc()
	c.ClientDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// ObserveHTTPRequest records one inbound request
func (c *Collector) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// SetBoardSize updates the board gauges
func (c *Collector) SetBoardSize(nodes, edges int) {
	if c == nil {
		return
	}
	c.BoardNodes.Set(float64(nodes))
	c.BoardEdges.Set(float64(edges))
}

// CountEffect counts an applied board mutation
func (c *Collector) CountEffect(effect string) {
	if c == nil {
		return
	}
	c.BoardEffects.WithLabelValues(effect).Inc()
}

// CountPublish counts a successful publish
func (c *Collector) CountPublish() {
	if c == nil {
		return
	}
	c.Publishes.Inc()
}

// CountUpload counts a successful image upload
func (c *Collector) CountUpload() {
	if c == nil {
		return
	}
	c.ImagesUploaded.Inc()
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's metrics in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

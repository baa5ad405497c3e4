package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var histogramBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// PrometheusRecorder exports metrics through a Prometheus registry.
type PrometheusRecorder struct {
	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	listDuration   *prometheus.HistogramVec
	rowsServed     *prometheus.CounterVec
	storeErrors    *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	r := &PrometheusRecorder{
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalogapi",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catalogapi",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		listDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catalogapi",
			Subsystem: "store",
			Name:      "list_duration_seconds",
			Help:      "Time spent connecting, querying and fetching a resource",
			Buckets:   histogramBuckets,
		}, []string{"resource"}),
		rowsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalogapi",
			Subsystem: "store",
			Name:      "rows_served_total",
			Help:      "Rows returned to clients",
		}, []string{"resource"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalogapi",
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Failed resource reads by error kind",
		}, []string{"resource", "kind"}),
	}

	collectors := []prometheus.Collector{
		r.requestTotal,
		r.requestLatency,
		r.listDuration,
		r.rowsServed,
		r.storeErrors,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// ObserveHTTPRequest records a served request.
func (r *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	labels := prometheus.Labels{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
	r.requestTotal.With(labels).Inc()
	r.requestLatency.With(labels).Observe(duration.Seconds())
}

// ObserveList records a successful resource read.
func (r *PrometheusRecorder) ObserveList(resource string, rows int, duration time.Duration) {
	r.listDuration.WithLabelValues(resource).Observe(duration.Seconds())
	r.rowsServed.WithLabelValues(resource).Add(float64(rows))
}

// IncStoreError counts a failed resource read.
func (r *PrometheusRecorder) IncStoreError(resource, kind string) {
	r.storeErrors.WithLabelValues(resource, kind).Inc()
}

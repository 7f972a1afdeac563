// Package metrics exposes Prometheus collectors for the HTTP surface and the
// wardrobe contents.
package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/erazemk/garderoba/internal/httpx"
	"github.com/erazemk/garderoba/internal/model"
)

// HTTPMetrics records request counts and latencies per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "garderoba_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "garderoba_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{requests: requests, duration: duration}
}

// Middleware observes every request passing through next. The route label is
// the matched ServeMux pattern, so ids in paths do not explode cardinality.
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	if m == nil || m.requests == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := httpx.NewStatusRecorder(w)
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(rec.Status())).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// CategoryCounter reports how many items each category holds.
type CategoryCounter interface {
	CountByCategory(ctx context.Context) (map[model.Category]int, error)
}

// ItemsCollector reports the number of stored items per category at scrape time.
type ItemsCollector struct {
	counter CategoryCounter
	timeout time.Duration
	desc    *prometheus.Desc
}

// NewItemsCollector returns a collector backed by counter.
func NewItemsCollector(counter CategoryCounter) *ItemsCollector {
	return &ItemsCollector{
		counter: counter,
		timeout: 5 * time.Second,
		desc: prometheus.NewDesc(
			"garderoba_items",
			"Stored wardrobe items by category.",
			[]string{"category"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *ItemsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *ItemsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	counts, err := c.counter.CountByCategory(ctx)
	if err != nil {
		slog.Warn("collecting item counts", "error", err)
		ch <- prometheus.NewInvalidMetric(c.desc, err)
		return
	}
	for _, category := range model.Categories {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue,
			float64(counts[category]), string(category))
	}
}

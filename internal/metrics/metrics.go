package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_api_requests_total",
			Help: "Total number of storefront API requests.",
		},
		[]string{"code", "method", "path"},
	)
	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_api_request_duration_seconds",
			Help:    "Duration of storefront API requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	apiRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_api_requests_in_flight",
			Help: "Current number of storefront API requests in flight.",
		},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

// roundTripper wraps an http.RoundTripper to record per-request metrics.
type roundTripper struct {
	next http.RoundTripper
}

func (rt *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {

	start := time.Now()
	apiRequestsInFlight.Inc()

	defer apiRequestsInFlight.Dec()

	resp, err := rt.next.RoundTrip(req)

	duration := time.Since(start)

	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}

	path := resourcePath(req.URL.Path)

	apiRequestsTotal.WithLabelValues(code, req.Method, path).Inc()
	apiRequestDuration.WithLabelValues(req.Method, path).Observe(duration.Seconds())

	return resp, err
}

// resourcePath collapses a request path to its resource group, so item IDs in
// paths like /cart/{id} cannot mint unbounded label values.
func resourcePath(p string) string {

	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}

	return "/" + p
}

// Transport instruments an outbound HTTP transport.
func Transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &roundTripper{next: next}
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {

	return promhttp.Handler()
}

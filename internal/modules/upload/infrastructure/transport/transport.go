package transport

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/saransh1220/limbgen/internal/shared/infrastructure/config"
)

// RequestIDHeader carries a per-request correlation id to the server
const RequestIDHeader = "X-Request-Id"

var (
	clientRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "limbgen_client_requests_total",
		Help: "Total number of outbound requests to the inference server.",
	}, []string{"method", "path", "status"})

	clientDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "limbgen_client_request_duration_seconds",
		Help:    "Duration of outbound requests to the inference server in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// NewHTTPClient builds the client the caller owns and passes to the upload module
func NewHTTPClient(cfg config.ServerConfig) *http.Client {
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: RequestID(Metrics(http.DefaultTransport)),
		// one request per call; a 3xx is the server's answer
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// RoundTripperFunc adapts a function to http.RoundTripper
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// RequestID stamps a fresh request id on requests that do not carry one
func RequestID(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.Header.Get(RequestIDHeader) != "" {
			return next.RoundTrip(req)
		}
		// RoundTrip must not modify the caller's request
		clone := req.Clone(req.Context())
		clone.Header.Set(RequestIDHeader, uuid.New().String())
		return next.RoundTrip(clone)
	})
}

// Metrics records request counts and latencies per method and path.
// Requests that fail before a response are counted with status "error".
func Metrics(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()

		resp, err := next.RoundTrip(req)

		status := "error"
		if err == nil {
			status = strconv.Itoa(resp.StatusCode)
		}
		path := route(req.URL.Path)
		clientRequestsTotal.WithLabelValues(req.Method, path, status).Inc()
		clientDuration.WithLabelValues(req.Method, path).Observe(time.Since(start).Seconds())

		return resp, err
	})
}

// route collapses job ids so per-job paths share one label value
func route(path string) string {
	for _, prefix := range []string{"/status/", "/result/"} {
		if i := strings.Index(path, prefix); i >= 0 {
			return path[:i+len(prefix)] + "{job_id}"
		}
	}
	return path
}

package middleware

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hostRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "limbgen_volume_host_requests_total",
		Help: "Requests handled by the volume host.",
	}, []string{"method", "route", "status"})

	hostRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "limbgen_volume_host_request_duration_seconds",
		Help:    "Time spent serving volume host requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	hostBytesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "limbgen_volume_host_response_bytes_total",
		Help: "Response body bytes written by the volume host.",
	}, []string{"route"})
)

// Metrics records request counts, latency and bytes served
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &recorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := routeLabel(r.URL.Path)
		hostRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		hostRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		hostBytesServed.WithLabelValues(route).Add(float64(rec.written))
	})
}

// routeLabel keeps one label per volume tree instead of one per file
func routeLabel(path string) string {
	if strings.HasPrefix(path, "/volumes/") {
		return "/volumes/*"
	}
	return path
}

type recorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (r *recorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.written += int64(n)
	return n, err
}

// ReadFrom keeps the underlying writer's sendfile path for http.FileServer
func (r *recorder) ReadFrom(src io.Reader) (int64, error) {
	var n int64
	var err error
	if rf, ok := r.ResponseWriter.(io.ReaderFrom); ok {
		n, err = rf.ReadFrom(src)
	} else {
		n, err = io.Copy(struct{ io.Writer }{r.ResponseWriter}, src)
	}
	r.written += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer
func (r *recorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

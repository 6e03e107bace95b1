package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("volume"))
	})
}

func TestCORS_Preflight(t *testing.T) {
	handler := CORS("http://localhost:5173, https://viewer.example.com")(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/volumes/a.nii.gz", nil)
	req.Header.Set("Origin", "https://viewer.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://viewer.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "GET")
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Range")
}

func TestCORS_Origins(t *testing.T) {
	testCases := []struct {
		name    string
		allowed string
		origin  string
		expect  string
	}{
		{"listed_origin", "http://localhost:5173", "http://localhost:5173", "http://localhost:5173"},
		{"wildcard", "*", "https://anywhere.example", "*"},
		{"unlisted_origin", "http://localhost:5173", "https://evil.com", ""},
		{"no_origin", "http://localhost:5173", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := CORS(tc.allowed)(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/volumes/a.nii.gz", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "volume", rec.Body.String())
			assert.Equal(t, tc.expect, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestMetrics_RecordsRequests(t *testing.T) {
	statusHandler := func(code int) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		})
	}

	testCases := []struct {
		name   string
		path   string
		status int
		label  string
	}{
		{"volume_ok", "/volumes/results/a_seg.nii.gz", http.StatusOK, "/volumes/*"},
		{"volume_missing", "/volumes/nope.nii", http.StatusNotFound, "/volumes/*"},
		{"health", "/health", http.StatusOK, "/health"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			counter := hostRequestsTotal.WithLabelValues(http.MethodGet, tc.label, strconv.Itoa(tc.status))
			before := testutil.ToFloat64(counter)

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rec := httptest.NewRecorder()
			Metrics(statusHandler(tc.status)).ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestMetrics_CountsBytesServed(t *testing.T) {
	counter := hostBytesServed.WithLabelValues("/volumes/*")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	Metrics(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/volumes/a.nii.gz", nil))

	assert.Equal(t, before+float64(len("volume")), testutil.ToFloat64(counter))
}

func TestMetrics_KeepsReaderFromAndFlusher(t *testing.T) {
	counter := hostBytesServed.WithLabelValues("/volumes/*")
	before := testutil.ToFloat64(counter)

	handler := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rf, ok := w.(io.ReaderFrom)
		if !ok {
			t.Error("wrapped writer does not implement io.ReaderFrom")
			return
		}
		_, err := rf.ReadFrom(strings.NewReader("0123456789"))
		assert.NoError(t, err)
		assert.NoError(t, http.NewResponseController(w).Flush())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/volumes/big.nii.gz", nil))

	assert.Equal(t, "0123456789", rec.Body.String())
	assert.True(t, rec.Flushed)
	assert.Equal(t, before+10, testutil.ToFloat64(counter))
}

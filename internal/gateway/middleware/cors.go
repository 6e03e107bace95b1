package middleware

import (
	"net/http"
	"strings"
)

// CORS lets the browser viewer on another origin read volumes.
// allowedOrigins is a comma separated list or "*". Only safe methods are
// advertised; Range requests are allowed so large volumes can be streamed.
func CORS(allowedOrigins string) func(http.Handler) http.Handler {
	wildcard := strings.TrimSpace(allowedOrigins) == "*"
	allowed := make(map[string]struct{})
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			origin := r.Header.Get("Origin")

			ok := wildcard
			if wildcard {
				h.Set("Access-Control-Allow-Origin", "*")
			} else if _, listed := allowed[origin]; listed && origin != "" {
				ok = true
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}

			if ok {
				h.Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Range, Content-Type")
				h.Set("Access-Control-Expose-Headers", "Content-Length, Content-Range, Accept-Ranges")
			}

			// preflight never reaches the file server
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

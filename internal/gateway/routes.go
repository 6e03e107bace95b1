package gateway

import (
	"log"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/saransh1220/limbgen/internal/gateway/middleware"
)

// RoutesConfig holds what the volume host needs to serve
type RoutesConfig struct {
	VolumeRoot     string
	AllowedOrigins string
}

// SetupRoutes creates the volume host handler
func SetupRoutes(cfg RoutesConfig) http.Handler {
	router := NewRouter()
	router.Use(middleware.CORS(cfg.AllowedOrigins), middleware.Metrics)

	router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.Handle("GET /metrics", promhttp.Handler())

	// GET patterns also match HEAD
	files := http.StripPrefix("/volumes/", http.FileServer(http.Dir(cfg.VolumeRoot)))
	router.Handle("GET /volumes/", files)

	log.Printf("[gateway.SetupRoutes] Serving %s", strings.Join(router.Patterns(), ", "))
	return router.Handler()
}

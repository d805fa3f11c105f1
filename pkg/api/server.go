// Package api exposes the steganographic codec over HTTP for
// batch-processing pipelines that would rather not shell out to the
// CLI. The core stays pure; this wrapper owns all transport concerns.
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Kuberwastaken/meow/pkg/ecc"
)

// Router builds the HTTP routing tree for the given server.
func Router(server *Server) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	m := server.metrics
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", m.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))
		r.Post("/embed", m.InstrumentHandler("POST", "/api/v1/embed", server.handleEmbed))
		r.Post("/extract", m.InstrumentHandler("POST", "/api/v1/extract", server.handleExtract))
		r.Post("/capacity", m.InstrumentHandler("POST", "/api/v1/capacity", server.handleCapacity))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(codec ecc.Codec, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(codec, config, metrics)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	log.Printf("meow API listening on %s (ecc available: %v)", addr, codec.Available())

	return http.ListenAndServe(addr, Router(server))
}

package rest

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func setupRoutes(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// Health checks
	mux.HandleFunc("GET /healthz", h.handleLiveness)
	mux.HandleFunc("GET /readyz", h.handleReadiness)

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", promhttp.Handler())

	// API v1 routes
	v1 := http.NewServeMux()
	v1.HandleFunc("GET /cases/{caseID}/intelligence", h.handleGetIntelligence)
	v1.HandleFunc("POST /cases/{caseID}/intelligence/refresh", h.handleRefreshIntelligence)
	v1.HandleFunc("GET /cases/{caseID}/stats", h.handleGetStats)

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", v1))

	return mux
}

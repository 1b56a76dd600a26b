package api

import (
	"net/http"
	"nursery-locator/internal/api/handlers"
	"nursery-locator/internal/services"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	Locator     *services.Locator
	Hub         *handlers.ViewHub
	CORSOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	hub := cfg.Hub
	if hub == nil {
		hub = handlers.NewViewHub()
	}

	facilityHandler := &handlers.FacilityHandler{Locator: cfg.Locator}
	sessionHandler := &handlers.SessionHandler{
		Locator:  cfg.Locator,
		Hub:      hub,
		Upgrader: handlers.NewUpgrader(cfg.CORSOrigins),
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/facilities", facilityHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/nearest", facilityHandler.Nearest).Methods(http.MethodGet)
	r.HandleFunc("/boundary", facilityHandler.Boundary).Methods(http.MethodGet)

	r.HandleFunc("/sessions", sessionHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/view", sessionHandler.View).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/clicks", sessionHandler.Click).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/stream", sessionHandler.Stream).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return requestIDMiddleware(loggingMiddleware(corsMiddleware(cfg.CORSOrigins)(r)))
}

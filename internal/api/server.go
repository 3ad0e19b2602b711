// Package api exposes the back office over HTTP: CRUD for the three entity
// kinds, the analytics queries, and health endpoints.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/opensource-realty/casa/internal/domain"
	"github.com/opensource-realty/casa/internal/service"
)

// Server represents the HTTP API server.
type Server struct {
	router  *chi.Mux
	handler *Handler
	server  *http.Server
	config  domain.ServerConfig
}

// NewServer creates a new API server.
func NewServer(cfg domain.ServerConfig, services *service.Services, repo domain.Repository, bus domain.EventBus, version string) *Server {
	handler := NewHandler(services, repo, bus, version)
	router := chi.NewRouter()

	// Global middleware stack
	router.Use(CORSMiddleware)         // CORS for browser clients
	router.Use(RecoverMiddleware)      // Recover from panics
	router.Use(TracingMiddleware)      // OpenTelemetry tracing
	router.Use(LoggingMiddleware)      // Request logging
	router.Use(middleware.RealIP)      // Extract real IP
	router.Use(middleware.Compress(5)) // Gzip compression

	// Health endpoints
	router.Get("/health", handler.Health)
	router.Get("/ready", handler.Ready)

	// Entity CRUD
	router.Route("/counterparties", func(r chi.Router) {
		mountCRUD(r, services.Counterparties.CRUD)
	})
	router.Route("/properties", func(r chi.Router) {
		mountCRUD(r, services.Properties.CRUD)
	})
	router.Route("/requests", func(r chi.Router) {
		r.Get("/", handler.ListRequests)
		r.Get("/{id}", handler.GetRequest)
		r.Post("/", handler.CreateRequest)
		r.Put("/{id}", handler.UpdateRequest)
		r.Delete("/{id}", handler.DeleteRequest)
	})

	// Analytics
	router.Route("/analytics", func(r chi.Router) {
		r.Get("/sellers", handler.SellersInPeriod)
		r.Get("/top-clients", handler.TopClients)
		r.Get("/property-type-statistics", handler.PropertyTypeStatistics)
		r.Get("/min-amount-clients", handler.MinAmountClients)
		r.Get("/clients-by-property-type", handler.ClientsByPropertyType)
	})

	return &Server{
		router:  router,
		handler: handler,
		config:  cfg,
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the Chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

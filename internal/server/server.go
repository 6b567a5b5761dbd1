// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where the
// dependency chain is assembled:
//
//	main.go creates:  config, logger, store
//	server.New():     store → EmployeeService → EmployeeHandler → routes
//
// Each layer only receives what it needs: the service gets the repository
// interface (not the concrete in-memory store), the handler gets the
// service. The handler never touches the store directly.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/employee-directory/internal/handler"
	"github.com/sakif/employee-directory/internal/middleware"
	"github.com/sakif/employee-directory/internal/repository"
	"github.com/sakif/employee-directory/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port int
}

// Server represents the HTTP server and all its dependencies.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
}

// New creates a new Server wired to the given employee store.
//
// The store is created by main (it outlives request handling and the seed
// goroutine writes to it), so the server takes it as a dependency rather
// than owning it.
func New(cfg Config, logger *slog.Logger, store repository.EmployeeRepository) *Server {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
	}

	s.setupRoutes(store)
	return s
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /healthz                → liveness probe
// GET    /metrics                → Prometheus metrics
// GET    /employees              → query engine (search/filter/sort/paginate)
// POST   /employees              → create
// GET    /employees/filters      → facet options
// GET    /employees/{id}         → find one
// PATCH  /employees/{id}         → partial update
// DELETE /employees/{id}         → delete
//
// MIDDLEWARE ORDER MATTERS: RequestID runs first so the logger can include
// the id; Recoverer runs before our middleware so a panicking handler still
// produces a logged 500 and a metrics sample.
func (s *Server) setupRoutes(store repository.EmployeeRepository) {
	s.router.Use(chimiddleware.RequestID) // Adds X-Request-ID header
	s.router.Use(chimiddleware.RealIP)    // Extracts real IP from X-Forwarded-For
	s.router.Use(chimiddleware.Recoverer) // Recovers from panics, returns 500

	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics())

	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.router.Handle("/metrics", promhttp.Handler())

	employeeService := service.NewEmployeeService(store, s.logger)
	employeeHandler := handler.NewEmployeeHandler(employeeService, s.logger)

	s.router.Route("/employees", func(r chi.Router) {
		r.Get("/", employeeHandler.HandleList)
		r.Post("/", employeeHandler.HandleCreate)
		// The literal route must be registered alongside /{id}; chi matches
		// static segments before parameters, so /employees/filters never
		// reaches HandleGetByID.
		r.Get("/filters", employeeHandler.HandleFilters)
		r.Get("/{id}", employeeHandler.HandleGetByID)
		r.Patch("/{id}", employeeHandler.HandleUpdate)
		r.Delete("/{id}", employeeHandler.HandleDelete)
	})
}

// Router exposes the configured router, mainly for tests that want to drive
// the full middleware + handler chain with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server and handles graceful shutdown.
//
// On SIGINT/SIGTERM: stop accepting connections, give in-flight requests
// 30 seconds to finish, then return. The store is in-memory and volatile,
// so there is nothing to flush on the way out.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

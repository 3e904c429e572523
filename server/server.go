package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nickcwilkins/gtfsrt-arrivals/config"
	"github.com/nickcwilkins/gtfsrt-arrivals/source"
)

// Server exposes the arrival query interface over HTTP.
type Server struct {
	cfg      *config.AppConfig
	registry *source.Registry
	logger   *slog.Logger

	httpServer *http.Server
	caches     map[string]*queryCache
	now        func() time.Time
}

// New builds the HTTP server around the source registry.
func New(cfg *config.AppConfig, registry *source.Registry, logger *slog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		registry: registry,
		logger:   logger,
		caches:   map[string]*queryCache{},
		now:      time.Now,
	}
	for _, name := range registry.Names() {
		s.caches[name] = newQueryCache()
	}

	router := httprouter.New()
	router.HandlerFunc(http.MethodGet, "/api/health", s.handleHealth)
	router.GET("/api/sources/:source/arrivals", s.handleArrivals)
	router.GET("/api/sources/:source/alerts", s.handleAlerts)
	router.HandlerFunc(http.MethodGet, "/api/departures", s.handleDepartures)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the request handler, exposed for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start begins serving in a background goroutine.
func (s *Server) Start() {
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server error", "error", err)
		}
	}()
	s.logger.Info("server listening", "addr", s.httpServer.Addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Package server exposes the query engine over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/csvql/internal/engine"
)

// Defaults applied when Config leaves a field zero.
const (
	DefaultAddr              = "127.0.0.1:8080"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultMaxBodyBytes      = 1 << 20
)

// Server serves queries over HTTP.
type Server struct {
	engine            *engine.Engine
	addr              string
	readHeaderTimeout time.Duration
	queryTimeout      time.Duration
	maxBodyBytes      int64
	logger            *slog.Logger
}

// Config holds configuration for the HTTP server.
type Config struct {
	Engine            *engine.Engine
	Addr              string
	ReadHeaderTimeout time.Duration
	// QueryTimeout bounds a single query; zero means no limit.
	QueryTimeout time.Duration
	MaxBodyBytes int64
	Logger       *slog.Logger
}

// New creates a server. cfg.Engine is required.
func New(cfg Config) *Server {
	s := &Server{
		engine:            cfg.Engine,
		addr:              cfg.Addr,
		readHeaderTimeout: cfg.ReadHeaderTimeout,
		queryTimeout:      cfg.QueryTimeout,
		maxBodyBytes:      cfg.MaxBodyBytes,
		logger:            cfg.Logger,
	}
	if s.addr == "" {
		s.addr = DefaultAddr
	}
	if s.readHeaderTimeout <= 0 {
		s.readHeaderTimeout = DefaultReadHeaderTimeout
	}
	if s.maxBodyBytes <= 0 {
		s.maxBodyBytes = DefaultMaxBodyBytes
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/query", s.handleQuery)
		r.Get("/language", s.handleLanguage)
	})

	return r
}

// Serve starts the server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting query server", "addr", s.addr, "data_dir", s.engine.DataDir())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: s.readHeaderTimeout,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down query server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

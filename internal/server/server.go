// Package server exposes the capacity engine over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/piwi3910/RackPlan/internal/model"
)

// Options configures a Server. Zero values fall back to DefaultOptions.
type Options struct {
	Addr            string
	RateLimit       rate.Limit // requests per second per client IP
	Burst           int
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64

	// Base is the configuration request bodies are decoded on top of.
	Base model.Config

	Logger   *zap.Logger
	Registry *prometheus.Registry
}

// DefaultOptions returns the options used by `rackplan serve`.
func DefaultOptions() Options {
	return Options{
		Addr:            ":8080",
		RateLimit:       5,
		Burst:           10,
		ShutdownTimeout: 5 * time.Second,
		MaxBodyBytes:    1 << 20,
		Base:            model.DefaultConfig(),
	}
}

// Server routes API requests to the capacity engine and the exporters.
type Server struct {
	opts    Options
	log     *zap.Logger
	router  *mux.Router
	limiter *IPRateLimiter
	metrics *metrics
	now     func() time.Time
}

// New builds a server with all routes registered.
func New(opts Options) *Server {
	defaults := DefaultOptions()
	if opts.Addr == "" {
		opts.Addr = defaults.Addr
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaults.RateLimit
	}
	if opts.Burst <= 0 {
		opts.Burst = defaults.Burst
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	s := &Server{
		opts:    opts,
		log:     opts.Logger,
		router:  mux.NewRouter(),
		limiter: NewIPRateLimiter(opts.RateLimit, opts.Burst),
		metrics: newMetrics(opts.Registry),
		now:     time.Now,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.logRequests, s.instrument)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.limiter.LimitMiddleware)

	api.HandleFunc("/defaults", s.handleDefaults).Methods(http.MethodGet)
	api.HandleFunc("/capacity", s.handleCapacity).Methods(http.MethodPost)
	api.HandleFunc("/validate", s.handleValidate).Methods(http.MethodPost)
	api.HandleFunc("/boq", s.handleBoQ).Methods(http.MethodPost)
	api.HandleFunc("/compare", s.handleCompare).Methods(http.MethodPost)
	api.HandleFunc("/layout", s.handleLayout).Methods(http.MethodPost)
	api.HandleFunc("/export/{format}", s.handleExport).Methods(http.MethodPost)
}

// Handler returns the root HTTP handler including CORS.
func (s *Server) Handler() http.Handler {
	return CORS(s.router)
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutdown signal received, closing connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

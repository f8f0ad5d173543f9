// Package server is the HTTP front end that collects ratings from the web
// study page.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"colordist/internal/ratings"
)

// Config controls where the server listens and how hard clients may push.
type Config struct {
	Host      string
	Port      int
	IndexPath string
	// Rate is the sustained number of submissions per second one client may
	// make; zero disables throttling.
	Rate  float64
	Burst int
}

// Addr is host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Server accepts ratings and hands them to a Store.
type Server struct {
	cfg     Config
	store   ratings.Store
	limits  *clientLimits
	journal io.Writer
	now     func() time.Time

	journalMu sync.Mutex
}

// Option customizes a Server.
type Option func(*Server)

// WithJournal sets where the JSON line for each accepted rating goes
// (stdout by default).
func WithJournal(w io.Writer) Option {
	return func(s *Server) { s.journal = w }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(cfg Config, store ratings.Store, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		store:   store,
		journal: os.Stdout,
		now:     time.Now,
	}
	if cfg.Rate > 0 {
		s.limits = newClientLimits(cfg.Rate, max(1, cfg.Burst))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the full middleware chain around the router.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/index.html", s.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/submit", s.handleSubmit).Methods(http.MethodPost)
	return loggingMiddleware(corsMiddleware(router))
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		stdlog.Printf("Starting rating server on http://%s", srv.Addr)
		stdlog.Printf("Available endpoints:")
		stdlog.Printf("  GET  /health")
		stdlog.Printf("  GET  /  (%s)", s.cfg.IndexPath)
		stdlog.Printf("  POST /submit")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
		stdlog.Printf("Shutting down rating server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	}
}

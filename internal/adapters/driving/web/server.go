package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/debsources/internal/logger"
)

var log = logger.Named("web")

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address, e.g. ":8080". Port 0 picks a free port.
	Addr string
	// SourcesDir is the mirror root served under SourcesStatic.
	SourcesDir string
	// SourcesStatic is the URL prefix of raw files, e.g. "/data".
	SourcesStatic string
	// RateLimit is requests per second per client; 0 disables limiting.
	RateLimit float64
	Burst     int
}

// Server serves the JSON API.
type Server struct {
	mu       sync.Mutex
	ports    *Ports
	cfg      Config
	mirror   *os.Root
	handler  http.Handler
	server   *http.Server
	listener net.Listener
	errChan  chan error
}

// NewServer creates a server. The mirror root is opened immediately so
// raw file requests can never leave it.
func NewServer(ports *Ports, cfg Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	cfg.SourcesStatic = "/" + strings.Trim(cfg.SourcesStatic, "/")

	mirror, err := os.OpenRoot(cfg.SourcesDir)
	if err != nil {
		return nil, fmt.Errorf("opening sources dir: %w", err)
	}

	s := &Server{
		ports:   ports,
		cfg:     cfg,
		mirror:  mirror,
		errChan: make(chan error, 1),
	}

	mux := http.NewServeMux()
	s.registerSourceRoutes(mux)
	s.registerPatchRoutes(mux)
	s.registerCopyrightRoutes(mux)
	s.registerStatsRoutes(mux)
	mux.HandleFunc("GET "+cfg.SourcesStatic+"/{path...}", s.handleData)
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		writeStatus(w, http.StatusNotFound)
	})

	var h http.Handler = mux
	h = withRateLimit(NewRateLimiter(cfg.RateLimit, cfg.Burst), h)
	h = withLogging(h)
	s.handler = withRequestID(h)
	return s, nil
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return errors.New("web: server already started")
	}

	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case s.errChan <- err:
			default:
			}
		}
	}()

	log.Info("listening on %s", listener.Addr())
	return nil
}

// Run starts the server and blocks until ctx is cancelled or serving fails.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-s.errChan:
		_ = s.Stop()
		return err
	}
}

// Stop shuts the server down and releases the mirror root.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = s.server.Shutdown(ctx)
		s.server = nil
	}
	if s.mirror != nil {
		err = errors.Join(err, s.mirror.Close())
		s.mirror = nil
	}
	return err
}

// Addr returns the address the server listens on, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

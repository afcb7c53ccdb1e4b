package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"
)

// Server serves /metrics, /layout and /healthz.
type Server struct {
	collector *Collector
	board     *Board
	logger    *slog.Logger
	server    *http.Server
	ln        net.Listener
}

// NewServer creates a status server for addr (e.g. ":9464").
func NewServer(addr string, collector *Collector, board *Board, logger *slog.Logger) *Server {
	s := &Server{collector: collector, board: board, logger: logger}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/layout", s.handleLayout)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.collector.Registry(), promhttp.HandlerOpts{}))
	return r
}

// handleLayout reports the published board as JSON, or YAML with ?format=yaml.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	st, ok := s.board.State()
	if !ok {
		http.Error(w, "no board mounted", http.StatusServiceUnavailable)
		return
	}
	switch r.URL.Query().Get("format") {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(st); err != nil {
			s.logger.Warn("encode layout", "err", err)
		}
	case "yaml":
		w.Header().Set("Content-Type", "application/yaml")
		if err := yaml.NewEncoder(w).Encode(st); err != nil {
			s.logger.Warn("encode layout", "err", err)
		}
	case "descriptor":
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(st.Descriptor + "\n"))
	default:
		http.Error(w, "unknown format", http.StatusBadRequest)
	}
}

// Start begins listening (non-blocking). The server runs in a background goroutine.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("status server stopped", "err", err)
		}
	}()
	s.logger.Info("status server listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the listening address once started.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.server.Addr
	}
	return s.ln.Addr().String()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

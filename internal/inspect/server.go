package inspect

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

	"github.com/sufield/svcbind/internal/output"
)

const shutdownTimeout = 5 * time.Second

// Server serves one Snapshot. It holds no reference to live secrets.
type Server struct {
	snapshot Snapshot
	router   chi.Router
	logger   *slog.Logger
}

// NewServer builds the router for snap. logger may be nil.
func NewServer(snap Snapshot, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{snapshot: snap, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/bindings", s.handleBindings)
	r.Get("/bindings/{name}", s.handleBinding)
	r.Get("/properties", s.handleProperties)
	r.Get("/stores", s.handleStores)
	s.router = r

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 2 * time.Second, // Prevent Slowloris attacks
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("inspection server listening", "addr", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		s.logger.Debug("write error", "error", err)
	}
}

func (s *Server) handleBindings(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.snapshot.Bindings)
}

func (s *Server) handleBinding(w http.ResponseWriter, r *http.Request) {
	b, ok := s.snapshot.Binding(chi.URLParam(r, "name"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, b)
}

// handleProperties renders the redacted properties, as JSON unless a
// ?format= names another renderer.
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" || format == output.FormatJSON {
		s.writeJSON(w, s.snapshot.Properties)
		return
	}

	renderer, err := output.Lookup(format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := renderer.Render(w, s.snapshot.Properties); err != nil {
		s.logger.Warn("render properties", "format", format, "error", err)
	}
}

func (s *Server) handleStores(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.snapshot.Stores)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.logger.Debug("write error", "error", err)
	}
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	gcperrors "github.com/nais/projectsync/pkg/gcp/errors"
	"github.com/nais/projectsync/pkg/pipeline"
)

// Syncer runs one sync.
type Syncer interface {
	Run(ctx context.Context) (*pipeline.Result, error)
}

type response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Server exposes the sync as an HTTP trigger. Runs are serialized.
type Server struct {
	syncer    Syncer
	mu        sync.Mutex
	startTime time.Time
}

func New(syncer Syncer) *Server {
	return &Server{syncer: syncer, startTime: time.Now().UTC()}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/", s.handleSync)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Seconds(),
	})
}

// handleSync runs the pipeline and answers {"success": true} unless the run
// aborted. A failed insert that the pipeline swallowed still answers success.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.syncer.Run(r.Context())
	if err != nil {
		attrs := []any{"error", err}
		if hint := gcperrors.Hint(err); hint != "" {
			attrs = append(attrs, "hint", hint)
		}
		slog.Error("Sync failed", attrs...)
		writeJSON(w, http.StatusInternalServerError, response{Success: false, Error: err.Error()})
		return
	}
	if result != nil && result.WriteErr != nil {
		slog.Warn("Sync finished without writing rows", "run", result.RunID, "error", result.WriteErr)
	}
	writeJSON(w, http.StatusOK, response{Success: true})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// ListenAndServe serves on addr until ctx is cancelled or SIGINT/SIGTERM
// arrives, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

package ops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// QueueStatsProvider exposes delay queue depths for the status endpoint.
// In production this is satisfied by *relay.Service's queue.
type QueueStatsProvider interface {
	Len() int
	Depths() map[string]int
}

// Server provides the operational HTTP surface: liveness, a status snapshot
// and the Prometheus scrape endpoint.
type Server struct {
	port      int
	queue     QueueStatsProvider
	startedAt time.Time
	logger    *slog.Logger
}

func NewServer(port int, queue QueueStatsProvider, logger *slog.Logger) *Server {
	return &Server{
		port:      port,
		queue:     queue,
		startedAt: time.Now(),
		logger:    logger.With("component", "ops"),
	}
}

// Handler builds the route mux. Exposed separately so tests can drive it
// without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/statusz", s.handleStatus)
	return mux
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("ops server listening", "port", s.port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("ops server: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("ops server shutdown: %w", err)
		}
		return <-errCh
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

type statusResponse struct {
	UptimeSeconds int64          `json:"uptime_seconds"`
	QueueLen      int            `json:"queue_len"`
	QueueDepths   map[string]int `json:"queue_depths"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := statusResponse{
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
	}
	if s.queue != nil {
		resp.QueueLen = s.queue.Len()
		resp.QueueDepths = s.queue.Depths()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("encode status response", "error", err)
	}
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/newsspeech/newscrawl"
)

// Server limits.
const (
	MaxPageSize     = 1000
	ShutdownTimeout = 10 * time.Second
	queryTimeout    = 5 * time.Second
	healthTimeout   = 2 * time.Second
)

// Server exposes collected records over HTTP.
//
//	GET /news?category=&source=&limit=  JSON array of records
//	GET /health                         {"status":"ok"} or 503
type Server struct {
	finder newscrawl.RecordFinder
	logger *slog.Logger
	router chi.Router
}

// NewServer creates a Server reading records from finder.
func NewServer(finder newscrawl.RecordFinder, logger *slog.Logger) *Server {
	s := &Server{finder: finder, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/news", s.handleNews)
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is like ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("api server starting", slog.String("addr", ln.Addr().String()))
		errc <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if _, err := s.finder.FindRecords(ctx, newscrawl.RecordFilter{Limit: 1}); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: newscrawl.ErrorMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	q := r.URL.Query()
	filter := newscrawl.RecordFilter{
		Limit: clampInt(q.Get("limit"), 0, MaxPageSize),
	}
	if category := strings.TrimSpace(q.Get("category")); category != "" {
		filter.Category = &category
	}
	if source := strings.TrimSpace(q.Get("source")); source != "" {
		src := newscrawl.Source(source)
		filter.Source = &src
	}

	records, err := s.finder.FindRecords(ctx, filter)
	if err != nil {
		s.logger.Error("find records", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: newscrawl.ErrorMessage(err)})
		return
	}
	if records == nil {
		records = []*newscrawl.NewsRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

func clampInt(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if value <= 0 {
		return fallback
	}
	if value > max {
		return max
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

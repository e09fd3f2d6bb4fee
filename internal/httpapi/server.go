// Package httpapi serves a read-only JSON view of scores, stats and
// profiles from the same database the terminal front end writes.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/memory-chain/internal/difficulty"
	"github.com/vovakirdan/memory-chain/internal/progress"
	"github.com/vovakirdan/memory-chain/internal/registry"
	"github.com/vovakirdan/memory-chain/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Server bundles the router and the score store.
type Server struct {
	r      *chi.Mux
	store  *storage.Store
	logger *log.Logger
}

// New constructs a Server, installs middleware, and registers routes.
// store may be nil; data endpoints then answer 503.
func New(store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{r: chi.NewRouter(), store: store, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(s.requestLog)
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/modes", s.handleModes)

	s.r.Group(func(r chi.Router) {
		r.Use(s.requireStore)
		r.Get("/scores/{mode}", s.handleScores)
		r.Get("/stats", s.handleStats)
		r.Get("/profile", s.handleProfile)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP API", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ----------------------------- middleware ----------------------------------

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"id", chimw.GetReqID(r.Context()),
		)
	})
}

func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			writeError(w, http.StatusServiceUnavailable, "storage_unavailable")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ handlers -----------------------------------

type modeView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	modes := registry.List()
	out := make([]modeView, len(modes))
	for i, m := range modes {
		out[i] = modeView{ID: m.ID, Title: m.Title, Description: m.Description}
	}
	writeJSON(w, http.StatusOK, out)
}

type scoresRes struct {
	Mode   string               `json:"mode"`
	Scores []storage.ScoreEntry `json:"scores"`
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")
	if !difficulty.Mode(mode).Valid() {
		writeError(w, http.StatusNotFound, "unknown_mode")
		return
	}

	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, maxLimit)
	}

	scores, err := s.store.TopScores(mode, limit)
	if err != nil {
		s.logger.Error("top scores", "mode", mode, "err", err)
		writeError(w, http.StatusInternalServerError, "query_failed")
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, scoresRes{Mode: mode, Scores: scores})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetAllGamesStats()
	if err != nil {
		s.logger.Error("stats", "err", err)
		writeError(w, http.StatusInternalServerError, "query_failed")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleProfile returns the local profile, or the SSH user's profile when
// ?user= is given.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p := progress.Load(progress.ForUser(s.store, r.URL.Query().Get("user")), s.logger)
	if err := p.Err(); err != nil {
		s.logger.Error("profile", "err", err)
		writeError(w, http.StatusInternalServerError, "profile_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, p.Data())
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

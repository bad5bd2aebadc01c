package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"hellocal/internal/app"
	"hellocal/internal/config"
	"hellocal/internal/itinerary"
	appLog "hellocal/internal/log"
)

// cacheTTL bounds how long a rendered result is reused across requests.
const cacheTTL = 30 * time.Second

// Renderer produces a rendered document. *app.Generator satisfies it.
type Renderer interface {
	Render(ctx context.Context) (app.Result, error)
}

// Server is the local preview server for one calendar.
type Server struct {
	cfg      *config.Config
	renderer Renderer
	mux      *http.ServeMux

	// Rendered result shared by / and /api/view.
	mu    sync.RWMutex
	cache *resultCache
	now   func() time.Time
}

type resultCache struct {
	res       app.Result
	updatedAt time.Time
}

// NewServer constructs a new Server.
func NewServer(cfg *config.Config, renderer Renderer) *Server {
	s := &Server{
		cfg:      cfg,
		renderer: renderer,
		mux:      http.NewServeMux(),
		now:      time.Now,
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="hellocal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// StartServer serves the preview on cfg.Listen until ctx is cancelled.
func StartServer(ctx context.Context, cfg *config.Config, renderer Renderer) error {
	s := NewServer(cfg, renderer)
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	appLog.Info("starting HTTP server", "listen", "http://"+cfg.Listen)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/view", s.handleView)
	s.mux.HandleFunc("/", s.handleDocument)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleView returns the flat template context as JSON.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	res, err := s.result(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.View.Context())
}

// handleDocument serves the rendered document at the root path only.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	res, err := s.result(r.Context())
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(res.HTML))
}

// result returns the cached render while fresh, rendering again otherwise.
// Failures are not cached.
func (s *Server) result(ctx context.Context) (app.Result, error) {
	s.mu.RLock()
	c := s.cache
	s.mu.RUnlock()
	if c != nil && s.now().Sub(c.updatedAt) < cacheTTL {
		return c.res, nil
	}

	res, err := s.renderer.Render(ctx)
	if err != nil {
		return app.Result{}, err
	}

	s.mu.Lock()
	s.cache = &resultCache{res: res, updatedAt: s.now()}
	s.mu.Unlock()
	return res, nil
}

// writeFailure maps calendar problems to 422 and everything else to 500.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	appLog.Error("render failed", err)

	status := http.StatusInternalServerError
	if isCalendarError(err) {
		status = http.StatusUnprocessableEntity
	} else if errors.Is(err, fs.ErrNotExist) {
		status = http.StatusNotFound
	}
	writeError(w, status, err.Error())
}

func isCalendarError(err error) bool {
	var (
		missingTime     *itinerary.MissingTimeFieldError
		invalidTime     *itinerary.InvalidTimeError
		missingDesc     *itinerary.MissingDescriptionError
		missingTemplate *itinerary.MissingTemplateError
		missingLang     *itinerary.MissingLanguageError
		empty           *itinerary.EmptyCalendarError
		missingBracket  *itinerary.MissingBracketEventError
	)
	return errors.As(err, &missingTime) ||
		errors.As(err, &invalidTime) ||
		errors.As(err, &missingDesc) ||
		errors.As(err, &missingTemplate) ||
		errors.As(err, &missingLang) ||
		errors.As(err, &empty) ||
		errors.As(err, &missingBracket)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}

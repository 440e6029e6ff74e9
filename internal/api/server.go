// Package api exposes the HTTP interface for the backend service.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aniview/aniview/internal/config"
	"github.com/aniview/aniview/internal/proxy"
	"github.com/aniview/aniview/internal/routing"
	"github.com/aniview/aniview/internal/scrape"
	"github.com/aniview/aniview/internal/store"
	"github.com/aniview/aniview/internal/telemetry"
)

// Server wires HTTP handlers to the classifier, upstream services, and the
// document store.
type Server struct {
	router     chi.Router
	classifier *routing.Classifier
	proxy      *proxy.Service
	scraper    *scrape.Scraper
	docs       *store.Store
	static     config.StaticConfig
	logger     *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(
	proxySvc *proxy.Service,
	scraper *scrape.Scraper,
	docs *store.Store,
	cfg config.Config,
	logger *zap.Logger,
) *Server {
	s := &Server{
		proxy:   proxySvc,
		scraper: scraper,
		docs:    docs,
		static:  cfg.Static,
		logger:  logger,
	}
	s.classifier = &routing.Classifier{
		AppRoutes:  cfg.Static.Routes,
		DataPrefix: cfg.Static.DataPrefix,
		FileExists: s.staticFileExists,
	}

	telemetry.Init()

	r := chi.NewRouter()
	r.Use(corsMiddleware)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(metricsMiddleware)

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", telemetry.Handler())

	r.Post("/save-{document}", s.saveDocument)

	// Everything else funnels through the classifier: proxy and scrape
	// prefixes, known app routes, static assets, and the SPA fallback.
	r.Get("/*", s.dispatch)

	// Unrecognized paths answer 404 with a JSON body regardless of method;
	// the router's default 405 would leak an empty response for a stray POST.
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// staticFileExists reports whether requestPath resolves to a regular file
// inside the asset directory.
func (s *Server) staticFileExists(requestPath string) bool {
	full, ok := s.resolveStatic(requestPath)
	if !ok {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && info.Mode().IsRegular()
}

// resolveStatic maps a request path onto the asset directory, rejecting
// anything that would escape it.
func (s *Server) resolveStatic(requestPath string) (string, bool) {
	full := filepath.Join(s.static.Dir, filepath.FromSlash(requestPath))
	base := filepath.Clean(s.static.Dir)
	if full != base && !strings.HasPrefix(full, base+string(filepath.Separator)) {
		return "", false
	}
	return full, true
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Every response carries the wildcard origin header, success or not.
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request completed",
				zap.String("request_id", requestIDFrom(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.status),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

func recoverMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", zap.Any("error", rec))
					writeError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}
		telemetry.ObserveHTTPRequest(r.Method, routePattern, ww.status, time.Since(start))
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

type requestIDKey struct{}

// requestIDFrom returns the request ID stashed by requestIDMiddleware, or
// empty for requests that bypassed it.
func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("write JSON failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

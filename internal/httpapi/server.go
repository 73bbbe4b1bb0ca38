// Package httpapi exposes the outline pipeline over HTTP. Uploads are
// spooled to disk and handed to an injected extraction function, so the
// server itself stays independent of the PDF reader.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tsawler/rubric/model"
)

// ExtractFunc runs the outline pipeline over a stored PDF. The name is the
// client-facing document identifier, used for override lookups and logging.
type ExtractFunc func(ctx context.Context, path, name string) (model.Outline, error)

// Config controls server behavior.
type Config struct {
	// MaxUploadBytes caps the accepted request body size.
	// Defaults to 50 MiB.
	MaxUploadBytes int64

	// Logger receives request and processing logs. Defaults to a no-op
	// logger.
	Logger *zap.Logger
}

// DefaultConfig returns the configuration NewServer falls back to.
func DefaultConfig() Config {
	return Config{
		MaxUploadBytes: 50 << 20,
	}
}

// Server handles outline extraction requests.
type Server struct {
	router    chi.Router
	extract   ExtractFunc
	log       *zap.Logger
	maxUpload int64
}

// NewServer creates a server that delegates document processing to extract.
func NewServer(extract ExtractFunc, config Config) *Server {
	maxUpload := config.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultConfig().MaxUploadBytes
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		extract:   extract,
		log:       log,
		maxUpload: maxUpload,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Post("/api/outline", s.handleOutline)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

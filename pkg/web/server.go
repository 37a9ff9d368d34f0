// Package web serves the local form page: a loopback-bound view layer over
// the payload formatter and the renderer chain. Form state lives entirely in
// the browser form; every request re-derives the payload from the submitted
// values, so the process keeps nothing between requests.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/goliatone/go-qrform/internal/logging"
	"github.com/goliatone/go-qrform/pkg/render"
)

const (
	defaultAddr     = "127.0.0.1:8475"
	shutdownTimeout = 5 * time.Second
)

// Option customises the server.
type Option func(*Server)

// WithAddr overrides the bind address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithSizePx sets the pixel size of generated images.
func WithSizePx(size int) Option {
	return func(s *Server) {
		if size > 0 {
			s.sizePx = size
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(log logging.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSVGRenderer enables the /qr.svg endpoint backed by an SVG-producing
// renderer (the qrserver backend in SVG mode). Fetched documents are
// sanitized before being served.
func WithSVGRenderer(renderer render.Renderer) Option {
	return func(s *Server) {
		s.svgRenderer = renderer
	}
}

// Server hosts the form page and the QR image endpoints.
type Server struct {
	addr        string
	renderer    render.Renderer
	svgRenderer render.Renderer
	sizePx      int
	engine      *templateEngine
	log         logging.Logger
}

// New constructs the server around a renderer (normally the fallback chain).
func New(renderer render.Renderer, options ...Option) (*Server, error) {
	if renderer == nil {
		return nil, fmt.Errorf("web: renderer is required")
	}

	s := &Server{
		addr:     defaultAddr,
		renderer: renderer,
		sizePx:   render.DefaultSizePx,
		engine:   newTemplateEngine(templatesFS),
		log:      logging.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Routes builds the HTTP router. Exposed so tests can drive the handlers
// without a listener.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleForm).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/qr.png", s.handleImage).Methods(http.MethodGet)
	if s.svgRenderer != nil {
		r.HandleFunc("/qr.svg", s.handleSVG).Methods(http.MethodGet)
	}
	r.Use(s.logRequests)
	return r
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	s.log.Info(ctx, "web preview listening", "addr", s.addr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info(r.Context(), "request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

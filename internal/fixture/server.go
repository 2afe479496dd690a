// Package fixture serves a local hub and its collections over HTTP.
//
// The built-in fixtures contain inline rows, lazily fetched rows, a row whose
// collection fails with a 500 and a row whose collection is empty, so every
// assembly outcome can be reproduced without the network. A directory with
// the same layout (hub.json, collections/<id>.json) can replace them.
package fixture

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Iron-Ham/hubview/internal/logging"
)

//go:embed fixtures
var builtin embed.FS

// HubPath is the route of the hub document.
const HubPath = "/hub.json"

// Server serves fixture documents.
type Server struct {
	files    fs.FS
	maxDelay time.Duration
	logger   *logging.Logger
	router   *chi.Mux
}

// Option configures a Server.
type Option func(*Server)

// WithDir serves fixtures from dir instead of the built-in set.
func WithDir(dir string) Option {
	return func(s *Server) {
		if dir != "" {
			s.files = os.DirFS(dir)
		}
	}
}

// WithMaxDelay delays each collection response by a random duration up to d.
func WithMaxDelay(d time.Duration) Option {
	return func(s *Server) {
		s.maxDelay = d
	}
}

// WithLogger sets the request logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a fixture server. It fails if the fixture set has no hub.json.
func New(opts ...Option) (*Server, error) {
	sub, err := fs.Sub(builtin, "fixtures")
	if err != nil {
		return nil, err
	}

	s := &Server{
		files:  sub,
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("fixture")

	if _, err := fs.Stat(s.files, path.Base(HubPath)); err != nil {
		return nil, fmt.Errorf("fixture set has no hub document: %w", err)
	}

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get(HubPath, s.handleHub)
	r.Group(func(r chi.Router) {
		r.Use(s.delay)
		r.Get("/collections/{id}", s.handleCollection)
		r.Get("/status/{code}", s.handleStatus)
	})
	return r
}

// Handler returns the HTTP handler for the fixture routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done. ready, if non-nil,
// receives the bound address once the listener is open.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("fixture server listening", "addr", ln.Addr().String())
	if ready != nil {
		ready(ln.Addr())
	}

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("fixture server stopping")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHub(w http.ResponseWriter, r *http.Request) {
	s.serveFile(w, "hub.json")
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" || id != path.Base(id) {
		http.NotFound(w, r)
		return
	}
	s.serveFile(w, path.Join("collections", id+".json"))
}

// handleStatus answers with the status code in the path, for simulating
// failing collections.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil || code < 100 || code > 599 {
		http.Error(w, "invalid status code", http.StatusBadRequest)
		return
	}
	http.Error(w, http.StatusText(code), code)
}

func (s *Server) serveFile(w http.ResponseWriter, name string) {
	data, err := fs.ReadFile(s.files, name)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

func (s *Server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.maxDelay > 0 {
			d := rand.N(s.maxDelay + 1)
			select {
			case <-time.After(d):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info("request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

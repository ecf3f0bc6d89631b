// Package server renders pages on request for local development.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/Bitlatte/folio/internal/content"
	"github.com/Bitlatte/folio/internal/model"
	"github.com/Bitlatte/folio/internal/render"
	"go.uber.org/zap"
)

// Mount serves a filesystem under a URL prefix such as "/templates/".
type Mount struct {
	Prefix string
	FS     fs.FS
}

type Options struct {
	CategoryDir string
	Mounts      []Mount
}

// Server is the live driver. The site and renderer are built once in New
// and only read afterwards, so handlers need no locking.
type Server struct {
	loader   *content.Loader
	site     *model.Site
	renderer *render.Renderer
	opts     Options
	logger   *zap.Logger
	mux      *http.ServeMux
}

// New discovers the site with the lenient background policy and prepares
// the routes.
func New(loader *content.Loader, opts Options, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	site, err := loader.Discover(content.Lenient)
	if err != nil {
		return nil, fmt.Errorf("failed to discover content: %w", err)
	}
	layout, err := loader.Layout()
	if err != nil {
		return nil, err
	}
	renderer, err := render.NewRenderer(layout, site, opts.CategoryDir, render.ForMode(model.Live, render.ExportOptions{}))
	if err != nil {
		return nil, err
	}

	s := &Server{
		loader:   loader,
		site:     site,
		renderer: renderer,
		opts:     opts,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

// Site returns the discovered site.
func (s *Server) Site() *model.Site {
	return s.site
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("GET /"+s.opts.CategoryDir+"/{category}/{$}", s.handleCategory)
	for _, m := range s.opts.Mounts {
		prefix := "/" + strings.Trim(m.Prefix, "/") + "/"
		s.mux.Handle("GET "+prefix, http.StripPrefix(strings.TrimSuffix(prefix, "/"), http.FileServerFS(m.FS)))
	}
	s.mux.HandleFunc("GET /", s.handlePage)
}

// Handler returns the HTTP handler with logging and no-cache headers.
func (s *Server) Handler() http.Handler {
	return s.logRequests(noCache(s.mux))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.serveRoute(w, "/")
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	s.serveRoute(w, content.CategoryRoute(s.opts.CategoryDir, r.PathValue("category")))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.serveRoute(w, NormalizeRoute(r.URL.Path))
}

// serveRoute is the whole per-request state machine: a known route renders
// with 200, anything else with the 404 page.
func (s *Server) serveRoute(w http.ResponseWriter, route string) {
	node, ok := s.site.Pages[route]
	if !ok {
		s.notFound(w)
		return
	}

	var category *model.CategoryManifest
	if node.Kind == model.KindCategory {
		category = s.freshCategory(node.CategoryKey)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(s.renderer.Page(node, category)))
}

// freshCategory re-reads the category's images and metadata so edits show
// up without a restart. It falls back to the discovered manifest.
func (s *Server) freshCategory(key string) *model.CategoryManifest {
	c, err := s.loader.Category(key, content.Lenient)
	if err != nil || c == nil {
		if err != nil {
			s.logger.Warn("Failed to reload category", zap.String("category", key), zap.Error(err))
		}
		return s.site.Category(key)
	}
	return c
}

func (s *Server) notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(s.renderer.NotFound()))
}

// NormalizeRoute turns a request path into a canonical route with leading
// and trailing slashes.
func NormalizeRoute(p string) string {
	p = path.Clean("/" + p)
	if p == "/" {
		return p
	}
	return p + "/"
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("Server running", zap.String("url", "http://"+addr))
	for _, route := range s.site.Routes() {
		s.logger.Info("Available page", zap.String("url", "http://"+addr+route))
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start HTTP server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("Shutting down server")
	return srv.Shutdown(shutdownCtx)
}

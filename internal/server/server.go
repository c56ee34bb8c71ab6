// Package server wires the handlers into an HTTP server and owns its
// lifecycle.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/richard-senior/barchart/internal/config"
	"github.com/richard-senior/barchart/internal/handlers"
	"github.com/richard-senior/barchart/internal/logger"
	"github.com/richard-senior/barchart/internal/reload"
	"github.com/richard-senior/barchart/internal/templates"
)

// ShutdownTimeout bounds how long in-flight requests get after a stop.
const ShutdownTimeout = 5 * time.Second

type Server struct {
	cfg       *config.Config
	templates *templates.Set
	http      *http.Server
}

// New parses the templates and builds the route table. Template parse
// errors are returned here rather than on the first request.
func New(cfg *config.Config) (*Server, error) {
	var (
		set *templates.Set
		err error
	)
	if cfg.TemplateDir != "" {
		set, err = templates.NewDir(cfg.TemplateDir)
	} else {
		set, err = templates.NewEmbedded()
	}
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, templates: set}
	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) Routes() []Route {
	return []Route{
		{
			Name:    "Chart",
			Method:  http.MethodGet,
			Pattern: "/",
			Handler: &handlers.ChartHandler{
				DataFile:  s.cfg.DataFile,
				Template:  s.cfg.Template,
				Spec:      handlers.EmployeeBars,
				Templates: s.templates,
			},
		},
		{"Figure", http.MethodGet, "/api/chart", handlers.FigureHandler(s.cfg.DataFile, handlers.EmployeeBars)},
		{"Health", http.MethodGet, "/healthz", http.HandlerFunc(handlers.HealthHandler)},
		{"QRCode", http.MethodGet, "/qr", handlers.QRCodeHandler(s.cfg.ServerHost, s.cfg.GetPortString())},
	}
}

func (s *Server) Handler() http.Handler {
	return NewRouter(s.Routes())
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts on ln until ctx is done, then shuts down gracefully. In
// debug mode a template directory is watched and re-parsed on change.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("barchart is ready to handle requests at http://%s/", ln.Addr())
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	})

	if s.cfg.Debug && s.cfg.TemplateDir != "" {
		w := reload.New(s.cfg.TemplateDir, "*.html", reload.DefaultDebounce, func() {
			_ = s.templates.Reload()
		})
		g.Go(func() error { return w.Run(ctx) })
	}

	err := g.Wait()
	logger.Info("Server exiting")
	return err
}

// Package server exposes the draw pipeline over HTTP.
//
// The server plays the host role for deployments without an embedding
// surface: a POST to /api/draw is the data-ready event, the mounted
// container content is served from /view, and received sheets can be
// saved and replayed via /api/sheets. All draw semantics live in the
// pipeline; the server only wires transport.
//
// # Routes
//
//	POST   /api/draw             dispatch a data-ready event and return the draw outcome
//	GET    /api/tree             currently mounted display tree as JSON
//	GET    /view                 currently mounted HTML artifact
//	POST   /api/sheets           save a sheet for later replay
//	GET    /api/sheets           list saved sheets
//	GET    /api/sheets/{id}      fetch one saved sheet
//	DELETE /api/sheets/{id}      delete a saved sheet
//	POST   /api/sheets/{id}/draw replay a saved sheet
//	GET    /healthz              liveness probe
//	GET    /metrics              Prometheus metrics
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oadl/heatsheet/pkg/host"
	"github.com/oadl/heatsheet/pkg/observability"
	"github.com/oadl/heatsheet/pkg/observability/prom"
	"github.com/oadl/heatsheet/pkg/pipeline"
	"github.com/oadl/heatsheet/pkg/store"
)

// Config configures the server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// DrawOptions shape every draw the server runs. Formats are forced
	// to html+json: the container mounts HTML, the tree endpoint needs
	// JSON.
	DrawOptions pipeline.Options

	// Metrics enables the Prometheus registry and /metrics endpoint.
	Metrics bool
}

// Server hosts the draw pipeline behind HTTP.
type Server struct {
	addr      string
	logger    *log.Logger
	router    chi.Router
	runner    *pipeline.Runner
	bus       *host.Bus
	container *host.Container
	sheets    store.Store
	opts      pipeline.Options
	registry  *prometheus.Registry
}

// New assembles a server around the given runner and sheet store. The
// store may be nil, which disables the /api/sheets routes.
func New(cfg Config, runner *pipeline.Runner, sheets store.Store, logger *log.Logger) (*Server, error) {
	if runner == nil {
		return nil, errors.New("nil runner")
	}
	if logger == nil {
		logger = log.Default()
	}

	opts := cfg.DrawOptions
	opts.Formats = []string{pipeline.FormatHTML, pipeline.FormatJSON}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid draw options: %w", err)
	}

	s := &Server{
		addr:      cfg.Addr,
		logger:    logger,
		runner:    runner,
		bus:       host.NewBus(),
		container: host.NewContainer("viz"),
		sheets:    sheets,
		opts:      opts,
	}

	presenter, err := pipeline.NewPresenter(runner, s.container, opts)
	if err != nil {
		return nil, err
	}
	if err := presenter.Attach(s.bus); err != nil {
		return nil, err
	}

	if cfg.Metrics {
		s.registry = prometheus.NewRegistry()
		observability.SetDrawHooks(prom.NewDrawHooks(s.registry))
		observability.SetCacheHooks(prom.NewCacheHooks(s.registry))
	}

	s.router = s.routes()
	return s, nil
}

// Handler returns the server's HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/view", s.handleView)

	r.Route("/api", func(r chi.Router) {
		r.Post("/draw", s.handleDraw)
		r.Get("/tree", s.handleTree)

		if s.sheets != nil {
			r.Route("/sheets", func(r chi.Router) {
				r.Post("/", s.handleSaveSheet)
				r.Get("/", s.handleListSheets)
				r.Get("/{id}", s.handleGetSheet)
				r.Delete("/{id}", s.handleDeleteSheet)
				r.Post("/{id}/draw", s.handleReplaySheet)
			})
		}
	})

	if s.registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	return r
}

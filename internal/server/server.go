// Package server hosts one backdrop instance over HTTP.
//
// The instance lives on a single [anim.Loop] goroutine. Handlers never touch
// it directly: they post work through [anim.Loop.Do] and copy out what they
// need, so the visualization stays single-threaded while requests are served
// concurrently.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/fightmetrics/pkg/backdrop/anim"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/graph"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/lifecycle"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/render/nodelink"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/render/sink"
	"github.com/matzehuels/fightmetrics/pkg/buildinfo"
	"github.com/matzehuels/fightmetrics/pkg/config"
	bderrors "github.com/matzehuels/fightmetrics/pkg/errors"
	"github.com/matzehuels/fightmetrics/pkg/observability"
)

// MaxDimension bounds the viewport accepted by POST /resize.
const MaxDimension = 8192

// Options configures a Server.
type Options struct {
	Config  config.Config
	FPS     int // frames per second, default 60
	Logger  *log.Logger
	Metrics *Metrics      // nil creates one
	Rand    geometry.Rand // nil seeds from Config
	Hooks   observability.HTTPHooks
}

// Server serves the current frame and graph of one visualization.
type Server struct {
	logger  *log.Logger
	metrics *Metrics
	hooks   observability.HTTPHooks
	loop    *anim.Loop
	svg     *sink.SVG
	view    *lifecycle.Viewport
	mgr     *lifecycle.Manager
	started atomic.Bool
}

// New builds an unmounted server. Call Run or Serve to start it.
func New(opts Options) *Server {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if opts.Hooks == nil {
		opts.Hooks = opts.Metrics
	}

	cfg := opts.Config
	loop := anim.NewLoop(time.Second / time.Duration(opts.FPS))
	svg := sink.NewSVG(cfg.Width, cfg.Height)
	return &Server{
		logger:  opts.Logger,
		metrics: opts.Metrics,
		hooks:   opts.Hooks,
		loop:    loop,
		svg:     svg,
		view:    lifecycle.NewViewport(svg, cfg.Bounds()),
		mgr: lifecycle.New(lifecycle.Options{
			Config:    cfg,
			Rand:      opts.Rand,
			Scheduler: loop,
			Logger:    opts.Logger,
			Hooks:     opts.Metrics,
		}),
	}
}

// Run mounts the instance and drives its loop until ctx is done. A server
// runs once; later calls return an INTERNAL_ERROR without mounting.
func (s *Server) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return bderrors.New(bderrors.ErrCodeInternal, "server %s already ran", s.mgr.ID())
	}
	s.mgr.Mount(s.view)
	s.mgr.Paint()
	err := s.loop.Run(ctx)
	s.mgr.Unmount()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Serve runs the instance and listens on addr until ctx is done.
func (s *Server) Serve(ctx context.Context, addr string) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		return s.Run(egctx)
	})

	eg.Go(func() error {
		s.logger.Info("serving", "addr", addr, "id", s.mgr.ID())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return bderrors.Wrap(bderrors.ErrCodeInternal, err, "listen on %s", addr)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer, s.instrument)

	r.Get("/frame.svg", s.handleFrame)
	r.Get("/graph.json", s.handleGraphJSON)
	r.Get("/graph.dot", s.handleGraphDOT)
	r.Get("/nodelink.svg", s.handleNodeLink)
	r.Post("/resize", s.handleResize)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	return r
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.hooks.OnRequest(r.Method, route, status, time.Since(start))
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status)
	})
}

// do runs fn on the loop and reports a loop shutdown as 503.
func (s *Server) do(w http.ResponseWriter, r *http.Request, fn func()) bool {
	if err := s.loop.Do(r.Context(), fn); err != nil {
		http.Error(w, "visualization not running", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (graph.Graph, bool) {
	var g graph.Graph
	ok := s.do(w, r, func() { g = s.mgr.Graph() })
	return g, ok
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	var body []byte
	if !s.do(w, r, func() { body = s.svg.Bytes() }) {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(body)
}

func (s *Server) handleGraphJSON(w http.ResponseWriter, r *http.Request) {
	g, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := graph.WriteJSON(w, g); err != nil {
		s.logger.Warn("write graph", "error", err)
	}
}

func (s *Server) handleGraphDOT(w http.ResponseWriter, r *http.Request) {
	g, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(nodelink.ToDOT(g)))
}

func (s *Server) handleNodeLink(w http.ResponseWriter, r *http.Request) {
	g, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	body, err := nodelink.RenderSVG(r.Context(), nodelink.ToDOT(g))
	if err != nil {
		writeError(w, bderrors.Wrap(bderrors.ErrCodeRender, err, "render node-link diagram"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(body)
}

type resizeResponse struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Nodes  int     `json:"nodes"`
	Edges  int     `json:"edges"`
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	b, err := parseBounds(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var resp resizeResponse
	ok := s.do(w, r, func() {
		s.view.SetContentBox(b)
		s.mgr.Paint()
		g := s.mgr.Graph()
		resp = resizeResponse{Width: b.Width, Height: b.Height, Nodes: len(g.Nodes), Edges: len(g.Edges)}
	})
	if ok {
		writeJSON(w, http.StatusOK, resp)
	}
}

func parseBounds(r *http.Request) (geometry.Bounds, error) {
	q := r.URL.Query()
	width, err := parseDimension("width", q.Get("width"))
	if err != nil {
		return geometry.Bounds{}, err
	}
	height, err := parseDimension("height", q.Get("height"))
	if err != nil {
		return geometry.Bounds{}, err
	}
	return geometry.Bounds{Width: width, Height: height}, nil
}

func parseDimension(name, raw string) (float64, error) {
	if raw == "" {
		return 0, bderrors.New(bderrors.ErrCodeInvalidInput, "%s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, bderrors.New(bderrors.ErrCodeInvalidInput, "%s must be a number, got %q", name, raw)
	}
	if v <= 0 || v > MaxDimension {
		return 0, bderrors.New(bderrors.ErrCodeInvalidInput, "%s must be in (0, %d], got %v", name, MaxDimension, v)
	}
	return v, nil
}

type healthResponse struct {
	Status  string            `json:"status"`
	ID      string            `json:"id"`
	Mounted bool              `json:"mounted"`
	Running bool              `json:"running"`
	Offset  float64           `json:"offset"`
	Ticks   int               `json:"ticks"`
	Build   map[string]string `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", ID: s.mgr.ID(), Build: buildinfo.Fields()}
	if !s.do(w, r, func() {
		resp.Mounted = s.mgr.Mounted()
		resp.Running = s.mgr.Running()
		resp.Offset = s.mgr.Offset()
		resp.Ticks = s.mgr.Ticks()
	}) {
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type errorResponse struct {
	Code  bderrors.Code `json:"code"`
	Error string        `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	code := bderrors.GetCode(err)
	if code == "" {
		code = bderrors.ErrCodeInternal
	}
	writeJSON(w, bderrors.HTTPStatus(err), errorResponse{Code: code, Error: bderrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

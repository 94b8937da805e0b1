package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/galdraw/pkg/buildinfo"
	"github.com/matzehuels/galdraw/pkg/cache"
	"github.com/matzehuels/galdraw/pkg/errors"
	"github.com/matzehuels/galdraw/pkg/httputil"
	"github.com/matzehuels/galdraw/pkg/pipeline"
	"github.com/matzehuels/galdraw/pkg/render/register/styles"
)

const (
	keyPrefix       = appName + ":"
	maxBodyBytes    = 1 << 20
	requestTimeout  = 2 * time.Minute
	shutdownTimeout = 10 * time.Second
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatEPS:  "application/postscript",
	pipeline.FormatTikZ: "application/x-tex",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve LFSR diagrams over HTTP",
		Long: `Serve LFSR diagrams over HTTP.

Routes:
  GET  /healthz
  GET  /v1/lfsr.{format}?taps=&values=&poly=&hide_values=&hide_names=&type=&engine=&style=
  GET  /v1/layout?taps=&values=&poly=
  POST /v1/render   (JSON body: taps, values, poly, type, engine, formats, style, ...)

Artifacts are cached in Redis when --redis is set, otherwise on disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("redis") {
				redisURL = c.Config.Server.RedisURL
			}
			return c.runServe(cmd.Context(), addr, redisURL, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for the shared artifact cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL string, noCache bool) error {
	runner, err := c.newServerRunner(ctx, redisURL, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(runner, c.Logger, c.Config.Overrides()).routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (c *CLI) newServerRunner(ctx context.Context, redisURL string, noCache bool) (*pipeline.Runner, error) {
	if redisURL == "" || noCache {
		return c.newRunner(noCache)
	}
	rc, err := c.newRemoteCache(ctx, redisURL)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using redis cache", "prefix", keyPrefix)
	r := pipeline.NewRunner(rc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), keyPrefix), c.Logger)
	if ttl, err := c.Config.CacheTTL(); err == nil {
		r.LayoutTTL, r.ArtifactTTL = ttl, ttl
	}
	return r, nil
}

// =============================================================================
// Handlers
// =============================================================================

type server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	palette *styles.Palette
}

func newServer(runner *pipeline.Runner, logger *log.Logger, palette *styles.Palette) *server {
	return &server{runner: runner, logger: logger, palette: palette}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(httputil.RequestID)
	r.Use(httputil.Observe(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/lfsr.{format}", s.artifact)
		r.Get("/layout", s.layout)
		r.Post("/render", s.render)
	})
	return r
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// artifact renders a single format and returns it as the response body.
func (s *server) artifact(w http.ResponseWriter, r *http.Request) {
	opts, err := s.queryOptions(r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	format, err := singleFormat(chi.URLParam(r, "format"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if ct, ok := contentTypes[format]; ok {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("X-Run-ID", result.RunID)
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	_, _ = w.Write(result.Artifacts[format])
}

// singleFormat normalizes the extension of /v1/lfsr.{format}. The response
// holds one file, so "all" and empty extensions are rejected.
func singleFormat(ext string) (string, error) {
	formats := pipeline.ExpandFormats([]string{ext})
	if len(formats) != 1 || strings.EqualFold(strings.TrimSpace(ext), pipeline.FormatAll) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "lfsr.%s: request exactly one format, or use POST /v1/render for several", ext)
	}
	return formats[0], nil
}

// layout returns the primitive stream without rendering.
func (s *server) layout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.queryOptions(r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	stream, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	httputil.WriteJSON(w, r, http.StatusOK, stream)
}

// renderResponse is the body of a successful POST /v1/render. Artifacts are
// base64 encoded by encoding/json.
type renderResponse struct {
	RunID     string            `json:"run_id"`
	Taps      string            `json:"taps"`
	Values    string            `json:"values"`
	Feedback  uint8             `json:"feedback"`
	Artifacts map[string][]byte `json:"artifacts"`
	Cached    bool              `json:"cached"`
}

func (s *server) render(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		httputil.WriteError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body: %v", err))
		return
	}
	if opts.Palette == nil {
		opts.Palette = s.palette
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, r, http.StatusOK, renderResponse{
		RunID:     result.RunID,
		Taps:      result.Register.Taps.String(),
		Values:    result.Register.Values.String(),
		Feedback:  result.Stats.Feedback,
		Artifacts: result.Artifacts,
		Cached:    result.CacheInfo.RenderHit,
	})
}

// queryOptions reads pipeline options from the URL query.
func (s *server) queryOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Taps:    q.Get("taps"),
		Values:  q.Get("values"),
		Poly:    q.Get("poly"),
		VizType: q.Get("type"),
		Engine:  q.Get("engine"),
		Style:   q.Get("style"),
		Palette: s.palette,
		Logger:  s.logger,
	}
	var err error
	if opts.HideValues, err = queryBool(q.Get("hide_values")); err != nil {
		return opts, err
	}
	if opts.HideNames, err = queryBool(q.Get("hide_names")); err != nil {
		return opts, err
	}
	return opts, nil
}

func queryBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "invalid boolean %q", v)
	}
	return b, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

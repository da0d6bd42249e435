package http

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/compiler"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultMaxBodyBytes caps request bodies at 10 MiB.
const DefaultMaxBodyBytes int64 = 10 << 20

// Output formats accepted by the "format" query parameter.
const (
	FormatText    = "text"
	FormatMermaid = "mermaid"
)

// Server exposes a TreeEngine over HTTP.
type Server struct {
	Engine       ports.TreeEngine
	Version      string
	MaxBodyBytes int64

	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *Metrics
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version reported by GET /version.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// WithRegistry uses reg for metrics instead of a private registry.
// Several servers may share one registry; they then share the collectors.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithMaxBodyBytes limits the size of CSV and markup request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.MaxBodyBytes = n
	}
}

// NewServer creates a Server with its own metrics registry.
func NewServer(engine ports.TreeEngine, opts ...Option) *Server {
	s := &Server{
		Engine:       engine,
		Version:      "dev",
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = NewMetrics(s.registry)
	return s
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.TreeEngine, opts ...Option) http.Handler {
	return NewServer(engine, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.GetHealth)
	r.Get("/version", s.GetVersion)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/v1/trees", func(r chi.Router) {
		r.Post("/csv", s.PostCSV)
		r.Post("/markup", s.PostMarkup)
		r.Get("/markup", s.GetMarkup)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PostCSV handles POST /v1/trees/csv?layout=&style=&format=.
func (s *Server) PostCSV(w http.ResponseWriter, r *http.Request) {
	out, err := s.params(r)
	if err != nil {
		s.writeError(w, "csv", err)
		return
	}
	layout, err := compiler.ParseLayout(r.URL.Query().Get("layout"))
	if err != nil {
		s.writeError(w, "csv", err)
		return
	}

	text, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.MaxBodyBytes))
	if err != nil {
		s.writeError(w, "csv", err)
		return
	}

	root, err := s.Engine.CSV(string(text), layout)
	if err != nil {
		s.writeError(w, "csv", err)
		return
	}
	s.writeTree(w, "csv", root, out)
}

// PostMarkup handles POST /v1/trees/markup with an HTML body.
func (s *Server) PostMarkup(w http.ResponseWriter, r *http.Request) {
	out, err := s.params(r)
	if err != nil {
		s.writeError(w, "markup", err)
		return
	}

	root, err := s.Engine.Markup(http.MaxBytesReader(w, r.Body, s.MaxBodyBytes))
	if err != nil {
		s.writeError(w, "markup", err)
		return
	}
	s.writeTree(w, "markup", root, out)
}

// GetMarkup handles GET /v1/trees/markup?url=.
func (s *Server) GetMarkup(w http.ResponseWriter, r *http.Request) {
	out, err := s.params(r)
	if err != nil {
		s.writeError(w, "url", err)
		return
	}

	root, err := s.Engine.MarkupURL(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		s.writeError(w, "url", err)
		return
	}
	s.writeTree(w, "url", root, out)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// GetVersion handles the GET /version request.
func (s *Server) GetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"app":     "arbor-http",
		"version": s.Version,
	})
}

type renderParams struct {
	style  domain.Style
	format string
}

func (s *Server) params(r *http.Request) (renderParams, error) {
	q := r.URL.Query()
	var o renderParams

	if v := q.Get("style"); v != "" {
		style, err := domain.ParseStyle(v)
		if err != nil {
			return o, err
		}
		o.style = style
	}

	switch f := q.Get("format"); f {
	case "", FormatText:
		o.format = FormatText
	case FormatMermaid:
		o.format = FormatMermaid
	default:
		return o, fmt.Errorf("%w: %q", errUnknownFormat, f)
	}
	return o, nil
}

func (s *Server) writeTree(w http.ResponseWriter, source string, root *domain.Node, o renderParams) {
	s.metrics.observe(source, root.Size())

	var body string
	switch o.format {
	case FormatMermaid:
		body = graph.GenerateMermaid(root)
	default:
		var opts []domain.RenderOption
		if o.style != "" {
			opts = append(opts, domain.WithStyle(o.style))
		}
		body = s.Engine.Render(root, opts...) + "\n"
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, body); err != nil {
		s.logger.Error("response write failed", "source", source, "err", err)
	}
}

var errUnknownFormat = errors.New("unknown output format")

func (s *Server) writeError(w http.ResponseWriter, source string, err error) {
	s.metrics.fail(source)

	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("tree request failed", "source", source, "status", status, "err", err)
	} else {
		s.logger.Warn("tree request rejected", "source", source, "status", status, "err", err)
	}
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	var (
		parseErr *csv.ParseError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrFetch):
		return http.StatusBadGateway
	case errors.As(err, &parseErr),
		errors.Is(err, domain.ErrMissingHeader),
		errors.Is(err, domain.ErrRaggedRow),
		errors.Is(err, domain.ErrUnknownLayout),
		errors.Is(err, domain.ErrUnknownStyle),
		errors.Is(err, domain.ErrMissingURL),
		errors.Is(err, errUnknownFormat):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

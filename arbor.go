package arbor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/arbor/internal/adapters/web"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/validator"
	"github.com/aretw0/arbor/pkg/compiler"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// Engine is the high-level entry point for the arbor library.
// It builds trees from CSV or markup and renders them as text diagrams.
// An Engine holds no per-call state and is safe for concurrent use.
type Engine struct {
	fetcher    ports.Fetcher
	logger     *slog.Logger
	style      domain.Style
	csvOpts    []compiler.CSVOption
	markupOpts []compiler.MarkupOption
	verify     bool
}

var _ ports.TreeEngine = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithFetcher injects the collaborator used by MarkupURL and Run.
// Defaults to an HTTP fetcher.
func WithFetcher(f ports.Fetcher) Option {
	return func(e *Engine) {
		e.fetcher = f
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRenderStyle sets the default diagram style.
func WithRenderStyle(style domain.Style) Option {
	return func(e *Engine) {
		e.style = style
	}
}

// WithCSVOptions appends options passed to every CSV build.
func WithCSVOptions(opts ...compiler.CSVOption) Option {
	return func(e *Engine) {
		e.csvOpts = append(e.csvOpts, opts...)
	}
}

// WithMarkupOptions appends options passed to every markup conversion.
func WithMarkupOptions(opts ...compiler.MarkupOption) Option {
	return func(e *Engine) {
		e.markupOpts = append(e.markupOpts, opts...)
	}
}

// WithVerify makes every build check the tree invariants before returning.
func WithVerify(verify bool) Option {
	return func(e *Engine) {
		e.verify = verify
	}
}

// New creates an Engine. Nothing is fetched or parsed until a method is called.
func New(opts ...Option) *Engine {
	e := &Engine{
		style: domain.StyleClassic,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.fetcher == nil {
		e.fetcher = web.New(web.WithLogger(e.logger))
	}
	return e
}

// CSV builds a tree from CSV text using the given layout.
func (e *Engine) CSV(text string, layout compiler.Layout) (*domain.Node, error) {
	opts := append([]compiler.CSVOption{compiler.WithLogger(e.logger)}, e.csvOpts...)
	root, err := compiler.Build(text, layout, opts...)
	if err != nil {
		e.logger.Debug("csv build failed", "layout", layout, "err", err)
		return nil, err
	}
	return e.finish(root, "csv")
}

// Markup parses an HTML document from r and converts its <html> element.
func (e *Engine) Markup(r io.Reader) (*domain.Node, error) {
	doc, err := compiler.ParseDocument(r)
	if err != nil {
		return nil, err
	}
	root := compiler.FromMarkup(doc, e.markupOpts...)
	if root == nil {
		// ParseDocument always yields an element, so this means a broken parser.
		return nil, fmt.Errorf("markup produced no tree")
	}
	return e.finish(root, "markup")
}

// MarkupURL fetches url with the configured Fetcher and converts the document.
func (e *Engine) MarkupURL(ctx context.Context, url string) (*domain.Node, error) {
	if strings.TrimSpace(url) == "" {
		return nil, domain.ErrMissingURL
	}

	e.logger.Debug("fetching document", "url", url)
	body, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", domain.ErrFetch, url, err)
	}
	defer body.Close()

	return e.Markup(body)
}

// Render produces the text diagram for root in the engine's style.
// Explicit options override the default.
func (e *Engine) Render(root *domain.Node, opts ...domain.RenderOption) string {
	if root == nil {
		return ""
	}
	all := append([]domain.RenderOption{domain.WithStyle(e.style)}, opts...)
	return root.Render(all...)
}

// Run fetches url, converts the document, and writes the diagram followed by
// a newline to w. Any failure is returned to the caller.
func (e *Engine) Run(ctx context.Context, url string, w io.Writer) error {
	root, err := e.MarkupURL(ctx, url)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, e.Render(root)); err != nil {
		return fmt.Errorf("failed to write diagram: %w", err)
	}
	return nil
}

func (e *Engine) finish(root *domain.Node, source string) (*domain.Node, error) {
	if e.verify {
		if err := validator.ValidateTree(root); err != nil {
			return nil, fmt.Errorf("%s tree failed verification: %w", source, err)
		}
	}
	e.logger.Debug("tree built", "source", source, "nodes", root.Size(), "depth", root.Depth())
	return root, nil
}

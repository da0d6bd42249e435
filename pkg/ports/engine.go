package ports

import (
	"context"
	"io"

	"github.com/aretw0/arbor/pkg/compiler"
	"github.com/aretw0/arbor/pkg/domain"
)

// TreeEngine defines what binding layers (HTTP, MCP, CLI) need from arbor.
// Every call builds an independent tree; implementations hold no per-call state.
type TreeEngine interface {
	// CSV builds a tree from CSV text using the given layout.
	CSV(text string, layout compiler.Layout) (*domain.Node, error)

	// Markup builds a tree from an HTML document read from r.
	Markup(r io.Reader) (*domain.Node, error)

	// MarkupURL fetches an HTML document and builds a tree from it.
	MarkupURL(ctx context.Context, url string) (*domain.Node, error)

	// Render produces the text diagram for a tree.
	Render(root *domain.Node, opts ...domain.RenderOption) string
}

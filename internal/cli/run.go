package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/adapters/file"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// RunCSV reads CSV from path ("-" for stdin) and writes its diagram to Out.
func RunCSV(ctx context.Context, s Settings, path string, std Streams) error {
	if err := s.Validate(); err != nil {
		return err
	}
	logger, err := createLogger(s.Config.Log.Level, std.Err)
	if err != nil {
		return err
	}

	src := &file.Source{Stdin: std.In}
	text, err := src.ReadText(ctx, path)
	if err != nil {
		return err
	}

	engine, layout, err := createEngine(s, logger, src)
	if err != nil {
		return err
	}
	root, err := engine.CSV(text, layout)
	if err != nil {
		return err
	}
	return writeTree(std.Out, s, engine, root)
}

// RunMarkup converts the document at target and writes its diagram to Out.
// With fromFile set, target is a local path ("-" for stdin); otherwise it
// is fetched over HTTP.
func RunMarkup(ctx context.Context, s Settings, target string, fromFile bool, std Streams) error {
	if err := s.Validate(); err != nil {
		return err
	}
	logger, err := createLogger(s.Config.Log.Level, std.Err)
	if err != nil {
		return err
	}

	var fetcher ports.Fetcher
	if fromFile {
		fetcher = &file.Source{Stdin: std.In}
	}
	engine, _, err := createEngine(s, logger, fetcher)
	if err != nil {
		return err
	}

	root, err := engine.MarkupURL(ctx, target)
	if err != nil {
		return err
	}
	return writeTree(std.Out, s, engine, root)
}

func writeTree(w io.Writer, s Settings, engine *arbor.Engine, root *domain.Node) error {
	var out string
	switch s.Format {
	case FormatMermaid:
		out = graph.GenerateMermaid(root)
	default:
		out = tui.Colorize(engine.Render(root), tui.Profile(colorMode(s), w)) + "\n"
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write diagram: %w", err)
	}
	return nil
}

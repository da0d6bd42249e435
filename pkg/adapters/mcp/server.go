package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/compiler"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TreeResponse is the structured result of every tree tool.
type TreeResponse struct {
	Diagram string `json:"diagram" jsonschema_description:"The rendered tree diagram"`
	Nodes   int    `json:"nodes" jsonschema_description:"Total number of nodes in the tree"`
	Depth   int    `json:"depth" jsonschema_description:"Depth of the deepest node; the root is 0"`
}

// CSVArgs are the arguments of render_csv_tree.
type CSVArgs struct {
	CSV    string `json:"csv"`
	Layout string `json:"layout,omitempty"`
	Style  string `json:"style,omitempty"`
	Format string `json:"format,omitempty"`
}

// MarkupArgs are the arguments of render_markup_tree. Exactly one of URL
// and HTML must be set.
type MarkupArgs struct {
	URL    string `json:"url,omitempty"`
	HTML   string `json:"html,omitempty"`
	Style  string `json:"style,omitempty"`
	Format string `json:"format,omitempty"`
}

// Server wraps an arbor engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.TreeEngine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.TreeEngine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("arbor-mcp", arbor.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: render_csv_tree
	csvTool := mcp.NewTool("render_csv_tree",
		mcp.WithDescription("Build a tree from CSV text and render it as a tree-command style diagram."),
		mcp.WithString("csv", mcp.Required(), mcp.Description("CSV text; the first record is the header")),
		mcp.WithString("layout", mcp.Enum("columns", "rows"), mcp.Description("columns groups cells under their header; rows lists each row under one Header node (default columns)")),
		mcp.WithString("style", mcp.Enum("classic", "guides"), mcp.Description("Glyph style (default classic)")),
		mcp.WithString("format", mcp.Enum("text", "mermaid"), mcp.Description("Output format (default text)")),
		mcp.WithOutputSchema[TreeResponse](),
	)
	s.mcpServer.AddTool(csvTool, mcp.NewStructuredToolHandler(s.handleRenderCSV))

	// TOOL: render_markup_tree
	markupTool := mcp.NewTool("render_markup_tree",
		mcp.WithDescription("Build a tree from an HTML document, given inline or by URL, and render it as a diagram."),
		mcp.WithString("url", mcp.Description("Address of the document to fetch")),
		mcp.WithString("html", mcp.Description("Inline HTML document")),
		mcp.WithString("style", mcp.Enum("classic", "guides"), mcp.Description("Glyph style (default classic)")),
		mcp.WithString("format", mcp.Enum("text", "mermaid"), mcp.Description("Output format (default text)")),
		mcp.WithOutputSchema[TreeResponse](),
	)
	s.mcpServer.AddTool(markupTool, mcp.NewStructuredToolHandler(s.handleRenderMarkup))
}

func (s *Server) handleRenderCSV(ctx context.Context, request mcp.CallToolRequest, args CSVArgs) (TreeResponse, error) {
	layout, err := compiler.ParseLayout(args.Layout)
	if err != nil {
		return TreeResponse{}, err
	}

	root, err := s.engine.CSV(args.CSV, layout)
	if err != nil {
		s.logger.Warn("MCP render_csv_tree failed", "err", err)
		return TreeResponse{}, fmt.Errorf("csv build failed: %w", err)
	}
	return s.respond(root, args.Style, args.Format)
}

func (s *Server) handleRenderMarkup(ctx context.Context, request mcp.CallToolRequest, args MarkupArgs) (TreeResponse, error) {
	var (
		root *domain.Node
		err  error
	)
	switch {
	case args.URL != "" && args.HTML != "":
		return TreeResponse{}, fmt.Errorf("provide either url or html, not both")
	case args.HTML != "":
		root, err = s.engine.Markup(strings.NewReader(args.HTML))
	default:
		root, err = s.engine.MarkupURL(ctx, args.URL)
	}
	if err != nil {
		s.logger.Warn("MCP render_markup_tree failed", "url", args.URL, "err", err)
		return TreeResponse{}, fmt.Errorf("markup build failed: %w", err)
	}
	return s.respond(root, args.Style, args.Format)
}

func (s *Server) respond(root *domain.Node, style, format string) (TreeResponse, error) {
	resp := TreeResponse{Nodes: root.Size(), Depth: root.Depth()}

	switch format {
	case "", "text":
		var opts []domain.RenderOption
		if style != "" {
			st, err := domain.ParseStyle(style)
			if err != nil {
				return TreeResponse{}, err
			}
			opts = append(opts, domain.WithStyle(st))
		}
		resp.Diagram = s.engine.Render(root, opts...)
	case "mermaid":
		resp.Diagram = graph.GenerateMermaid(root)
	default:
		return TreeResponse{}, fmt.Errorf("unknown output format %q", format)
	}
	return resp, nil
}

// capabilities is served as the arbor://capabilities resource.
type capabilities struct {
	Version string   `json:"version"`
	Layouts []string `json:"layouts"`
	Styles  []string `json:"styles"`
	Formats []string `json:"formats"`
}

func (s *Server) registerResources() {
	// EXPOSE: arbor://capabilities
	s.mcpServer.AddResource(mcp.NewResource("arbor://capabilities", "Supported layouts, styles and formats",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(describe())
		if err != nil {
			return nil, fmt.Errorf("failed to encode capabilities: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "arbor://capabilities",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func describe() capabilities {
	return capabilities{
		Version: arbor.Version,
		Layouts: []string{string(compiler.LayoutColumns), string(compiler.LayoutRows)},
		Styles:  []string{string(domain.StyleClassic), string(domain.StyleGuides)},
		Formats: []string{"text", "mermaid"},
	}
}

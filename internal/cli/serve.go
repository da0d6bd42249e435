package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/presentation/tui"
	arborhttp "github.com/aretw0/arbor/pkg/adapters/http"
	"github.com/aretw0/arbor/pkg/adapters/mcp"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// Serve runs the HTTP API on the configured address until ctx is done.
// If ready is not nil it receives the bound address once listening.
func Serve(ctx context.Context, s Settings, std Streams, ready chan<- string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	logger, err := createLogger(s.Config.Log.Level, std.Err)
	if err != nil {
		return err
	}
	engine, _, err := createEngine(s, logger, nil)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.Config.Serve.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Config.Serve.Addr, err)
	}

	srv := &http.Server{
		Handler: arborhttp.NewHandler(engine,
			arborhttp.WithLogger(logger),
			arborhttp.WithVersion(arbor.Version),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	tui.PrintBanner(std.Err, colorMode(s), arbor.Version)
	logger.Info("Starting arbor server", "address", ln.Addr().String())
	if ready != nil {
		ready <- ln.Addr().String()
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Start shutdown", "signal", shutdownReason(ctx))

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		if err := <-serverErrors; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("arbor server stopped gracefully")
		return nil
	}
}

// RunMCP starts the MCP server on the given transport ("stdio" or "sse").
func RunMCP(ctx context.Context, s Settings, transport string, port int, std Streams) error {
	if err := s.Validate(); err != nil {
		return err
	}
	logger, err := createLogger(s.Config.Log.Level, std.Err)
	if err != nil {
		return err
	}
	engine, _, err := createEngine(s, logger, nil)
	if err != nil {
		return err
	}

	srv := mcp.NewServer(engine, logger)
	switch transport {
	case "stdio":
		logger.Info("Starting arbor MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting arbor MCP server (SSE)", "port", port)
		return srv.ServeSSE(ctx, port)
	default:
		return fmt.Errorf("unknown transport %q (supported: stdio, sse)", transport)
	}
}

package ports

import (
	"context"
	"io"
)

// Fetcher retrieves a markup document by URL.
// This decouples tree construction from the transport (HTTP, files, memory).
type Fetcher interface {
	// Fetch returns the raw document body. The caller closes it.
	// Implementations block until the body is available; there is no retry.
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

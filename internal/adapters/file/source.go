package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinPath is the path that selects standard input.
const StdinPath = "-"

// Source implements ports.Fetcher on the local filesystem.
// Paths may carry a "file://" prefix; "-" reads from Stdin.
type Source struct {
	Stdin io.Reader
}

// New creates a Source that reads "-" from os.Stdin.
func New() *Source {
	return &Source{Stdin: os.Stdin}
}

// Fetch opens the document at path.
func (s *Source) Fetch(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path = strings.TrimPrefix(path, "file://")
	if path == StdinPath {
		if s.Stdin == nil {
			return nil, fmt.Errorf("no standard input available")
		}
		return io.NopCloser(s.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

// ReadText reads the whole document at path as a string.
func (s *Source) ReadText(ctx context.Context, path string) (string, error) {
	rc, err := s.Fetch(ctx, path)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
)

// Fetcher implements ports.Fetcher using an in-memory map of URL to body.
// It is read-only after construction and safe for concurrent use.
type Fetcher struct {
	pages map[string][]byte
}

// NewFetcher creates a new Fetcher with the provided documents.
func NewFetcher(pages map[string]string) *Fetcher {
	data := make(map[string][]byte, len(pages))
	for k, v := range pages {
		data[k] = []byte(v)
	}
	return &Fetcher{pages: data}
}

// Fetch returns the stored body for url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("document not found: %s", url)
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

// URLs returns all stored URLs in sorted order.
func (f *Fetcher) URLs() []string {
	keys := make([]string, 0, len(f.pages))
	for k := range f.pages {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys
}

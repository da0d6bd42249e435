package tests

import (
	"context"
	"io"
	"testing"

	"github.com/aretw0/arbor/pkg/ports"
)

// FetcherContractTest is a reusable test suite that verifies if an adapter complies with ports.Fetcher.
// setupData maps URLs the adapter can serve to their expected bodies; missing is a URL it cannot.
func FetcherContractTest(t *testing.T, fetcher ports.Fetcher, setupData map[string][]byte, missing string) {
	t.Helper()
	ctx := context.Background()

	// 1. Test Fetch (Success)
	t.Run("Fetch_Success", func(t *testing.T) {
		for url, expected := range setupData {
			body, err := fetcher.Fetch(ctx, url)
			if err != nil {
				t.Fatalf("unexpected error fetching %s: %v", url, err)
			}
			got, err := io.ReadAll(body)
			body.Close()
			if err != nil {
				t.Fatalf("unexpected error reading %s: %v", url, err)
			}
			if string(got) != string(expected) {
				t.Errorf("body mismatch for %s. got %q, want %q", url, got, expected)
			}
		}
	})

	// 2. Test Fetch (NotFound)
	t.Run("Fetch_NotFound", func(t *testing.T) {
		body, err := fetcher.Fetch(ctx, missing)
		if err == nil {
			body.Close()
			t.Error("expected error for missing document, got nil")
		}
	})

	// 3. Test Fetch (Cancelled)
	t.Run("Fetch_Cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		for url := range setupData {
			body, err := fetcher.Fetch(cancelled, url)
			if err == nil {
				body.Close()
				t.Errorf("expected error fetching %s with a cancelled context", url)
			}
			return
		}
	})
}

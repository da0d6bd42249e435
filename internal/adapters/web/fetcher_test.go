package web_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/arbor/internal/adapters/web"
	contract "github.com/aretw0/arbor/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Contract(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>ok</body></html>")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	setup := map[string][]byte{
		srv.URL + "/page": []byte("<html><body>ok</body></html>"),
	}

	// An unreachable host is the failure case; 404s are returned as bodies.
	contract.FetcherContractTest(t, web.New(), setup, "http://127.0.0.1:1/unreachable")
}

func TestFetcher_SendsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	body, err := web.New(web.WithUserAgent("arbor-test/1.0")).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	body.Close()

	assert.Equal(t, "arbor-test/1.0", got)
}

func TestFetcher_ReturnsErrorPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "<h1>Not Found</h1>")
	}))
	defer srv.Close()

	body, err := web.New().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Not Found</h1>", string(data))
}

func TestFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	fetcher := web.New(web.WithTimeout(50 * time.Millisecond))
	_, err := fetcher.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetcher_InvalidURL(t *testing.T) {
	_, err := web.New().Fetch(context.Background(), "://nope")
	assert.Error(t, err)
}

func TestFetcher_WithClient(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<p>tls</p>")
	}))
	defer srv.Close()

	_, err := web.New().Fetch(context.Background(), srv.URL)
	require.Error(t, err, "self-signed certificate is rejected by the default client")

	body, err := web.New(web.WithClient(srv.Client())).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "<p>tls</p>", string(data))
}

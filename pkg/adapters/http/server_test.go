package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/arbor"
	arborhttp "github.com/aretw0/arbor/pkg/adapters/http"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...arborhttp.Option) *httptest.Server {
	t.Helper()
	pages := memory.NewFetcher(map[string]string{
		"mem://page": "<div><p>Hello</p><p>   </p></div>",
	})
	engine := arbor.New(arbor.WithFetcher(pages))
	srv := httptest.NewServer(arborhttp.NewHandler(engine, append([]arborhttp.Option{arborhttp.WithVersion("9.9.9")}, opts...)...))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestPostCSV(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		body   string
		status int
		want   string
	}{
		{
			name:   "columns default",
			body:   "a,b\n1,2\n3,4\n",
			status: http.StatusOK,
			want:   "CSV Root\n├── a\n    ├── 1\n    └── 3\n└── b\n    ├── 2\n    └── 4\n",
		},
		{
			name:   "rows layout",
			query:  "?layout=rows",
			body:   "a,b\n1,2\n",
			status: http.StatusOK,
			want:   "CSV Root\n└── Header\n    └── 1 | 2\n",
		},
		{
			name:   "guides style",
			query:  "?style=guides",
			body:   "a,b\n1,2\n3,4\n",
			status: http.StatusOK,
			want:   "CSV Root\n├── a\n│   ├── 1\n│   └── 3\n└── b\n    ├── 2\n    └── 4\n",
		},
		{name: "empty body", body: "", status: http.StatusBadRequest},
		{name: "ragged row", body: "a,b\n1\n", status: http.StatusBadRequest},
		{name: "bad quotes", body: "a\n\"x\"y\n", status: http.StatusBadRequest},
		{name: "unknown layout", query: "?layout=diagonal", body: "a\n", status: http.StatusBadRequest},
		{name: "unknown style", query: "?style=fancy", body: "a\n", status: http.StatusBadRequest},
		{name: "unknown format", query: "?format=svg", body: "a\n", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, http.MethodPost, srv.URL+"/v1/trees/csv"+tt.query, tt.body)
			assert.Equal(t, tt.status, status, body)
			if tt.want != "" {
				assert.Equal(t, tt.want, body)
			}
		})
	}
}

func TestPostCSV_Mermaid(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, http.MethodPost, srv.URL+"/v1/trees/csv?format=mermaid", "a\n1\n")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, strings.HasPrefix(body, "graph TD\n"))
	assert.Contains(t, body, `n0(("CSV Root"))`)
}

func TestPostMarkup(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, http.MethodPost, srv.URL+"/v1/trees/markup", "<p>Hi</p>")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "html\n├── head\n└── body\n    └── p\n        └── Hi\n", body)
}

func TestPostMarkup_TooLarge(t *testing.T) {
	srv := newTestServer(t, arborhttp.WithMaxBodyBytes(8))

	status, _ := do(t, http.MethodPost, srv.URL+"/v1/trees/markup", "<p>"+strings.Repeat("x", 64)+"</p>")
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
}

func TestGetMarkup(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, http.MethodGet, srv.URL+"/v1/trees/markup?url=mem://page", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "    └── div\n        ├── p\n            └── Hello\n        └── p\n")

	status, _ = do(t, http.MethodGet, srv.URL+"/v1/trees/markup", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, http.MethodGet, srv.URL+"/v1/trees/markup?url=mem://gone", "")
	assert.Equal(t, http.StatusBadGateway, status)
}

func TestHealthAndVersion(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, http.MethodGet, srv.URL+"/healthz", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	status, body = do(t, http.MethodGet, srv.URL+"/version", "")
	require.Equal(t, http.StatusOK, status)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &info))
	assert.Equal(t, "9.9.9", info["version"])
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/v1/trees/csv", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t)

	do(t, http.MethodPost, srv.URL+"/v1/trees/csv", "a,b\n1,2\n")
	do(t, http.MethodPost, srv.URL+"/v1/trees/csv", "")
	do(t, http.MethodGet, srv.URL+"/v1/trees/markup?url=mem://page", "")

	status, body := do(t, http.MethodGet, srv.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, status)

	assert.Contains(t, body, `arbor_trees_built_total{source="csv"} 1`)
	assert.Contains(t, body, `arbor_trees_built_total{source="url"} 1`)
	assert.Contains(t, body, `arbor_tree_failures_total{source="csv"} 1`)
	assert.Contains(t, body, "arbor_tree_nodes_count 2")
}

func TestMetrics_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()

	var first, second *httptest.Server
	require.NotPanics(t, func() {
		first = newTestServer(t, arborhttp.WithRegistry(reg))
		second = newTestServer(t, arborhttp.WithRegistry(reg))
	})

	do(t, http.MethodPost, first.URL+"/v1/trees/csv", "a\n1\n")
	do(t, http.MethodPost, second.URL+"/v1/trees/csv", "a\n1\n")

	_, body := do(t, http.MethodGet, second.URL+"/metrics", "")
	assert.Contains(t, body, `arbor_trees_built_total{source="csv"} 2`)
	assert.Equal(t, 1, strings.Count(body, "# TYPE arbor_trees_built_total counter"))
}

func TestNewMetrics_ConflictingCollectorPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "arbor_tree_nodes",
		Help: "A gauge squatting on the histogram's name.",
	}))

	assert.Panics(t, func() { arborhttp.NewMetrics(reg) })
}

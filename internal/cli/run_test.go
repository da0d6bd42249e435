package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/testutils"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Settings {
	return Settings{Config: config.Default()}
}

func streams(in string) (Streams, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return Streams{In: strings.NewReader(in), Out: &out, Err: &errOut}, &out, &errOut
}

func TestRunCSV_Stdin(t *testing.T) {
	std, out, _ := streams("a,b\n1,2\n3,4\n")

	require.NoError(t, RunCSV(context.Background(), defaults(), "-", std))
	assert.Equal(t, "CSV Root\n├── a\n    ├── 1\n    └── 3\n└── b\n    ├── 2\n    └── 4\n", out.String())
}

func TestRunCSV_FileWithConfig(t *testing.T) {
	path := testutils.WriteFile(t, "people.tsv", "name\tage\nada\t36\n")

	s := defaults()
	s.Config.CSV.Layout = "rows"
	s.Config.CSV.Delimiter = "tab"
	s.Config.Render.Style = "guides"

	std, out, _ := streams("")
	require.NoError(t, RunCSV(context.Background(), s, path, std))
	assert.Equal(t, "CSV Root\n└── Header\n    └── ada | 36\n", out.String())
}

func TestRunCSV_Errors(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		std, out, _ := streams("")
		err := RunCSV(context.Background(), defaults(), "-", std)
		assert.ErrorIs(t, err, domain.ErrMissingHeader)
		assert.Zero(t, out.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		std, _, _ := streams("")
		err := RunCSV(context.Background(), defaults(), testutils.MissingPath(t, "none.csv"), std)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad format", func(t *testing.T) {
		s := defaults()
		s.Format = "svg"
		std, _, _ := streams("a\n")
		assert.Error(t, RunCSV(context.Background(), s, "-", std))
	})

	t.Run("bad log level", func(t *testing.T) {
		s := defaults()
		s.Config.Log.Level = "loud"
		std, _, _ := streams("a\n")
		assert.Error(t, RunCSV(context.Background(), s, "-", std))
	})
}

func TestRunCSV_Mermaid(t *testing.T) {
	s := defaults()
	s.Format = FormatMermaid

	std, out, _ := streams("a\n1\n")
	require.NoError(t, RunCSV(context.Background(), s, "-", std))
	assert.True(t, strings.HasPrefix(out.String(), "graph TD\n"))
}

func TestRunCSV_ForcedColor(t *testing.T) {
	s := defaults()
	s.Config.Render.Color = "always"

	std, out, _ := streams("a\n1\n")
	require.NoError(t, RunCSV(context.Background(), s, "-", std))
	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "1\n")
}

func TestRunMarkup_File(t *testing.T) {
	path := testutils.WriteFile(t, "page.html", "<div><p>Hello</p><p>   </p></div>")

	s := defaults()
	s.Verify = true
	s.Config.Log.Level = "debug"

	std, out, logs := streams("")
	require.NoError(t, RunMarkup(context.Background(), s, path, true, std))

	want := strings.Join([]string{
		"html",
		"├── head",
		"└── body",
		"    └── div",
		"        ├── p",
		"            └── Hello",
		"        └── p",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
	assert.Contains(t, logs.String(), "tree built")
}

func TestRunMarkup_Stdin(t *testing.T) {
	std, out, _ := streams("<ol><li>x</li></ol>")
	require.NoError(t, RunMarkup(context.Background(), defaults(), "-", true, std))
	assert.Contains(t, out.String(), "    └── ol\n        └── li\n            └── x\n")
}

func TestRunMarkup_MissingURL(t *testing.T) {
	std, _, _ := streams("")
	err := RunMarkup(context.Background(), defaults(), "", false, std)
	assert.ErrorIs(t, err, domain.ErrMissingURL)
}

func TestServe(t *testing.T) {
	s := defaults()
	s.Config.Serve.Addr = "127.0.0.1:0"
	s.Config.Render.Color = "never"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	std, _, logs := streams("")
	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, s, std, ready)
	}()

	var addr string
	select {
	case addr = <-ready:
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Post("http://"+addr+"/v1/trees/csv", "text/csv", strings.NewReader("a\n1\n"))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "CSV Root\n└── a\n    └── 1\n", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.NotContains(t, logs.String(), "\x1b[")
}

func TestServe_BadAddress(t *testing.T) {
	s := defaults()
	s.Config.Serve.Addr = "not-an-address"

	std, _, _ := streams("")
	assert.Error(t, Serve(context.Background(), s, std, nil))
}

func TestRunMCP_UnknownTransport(t *testing.T) {
	std, _, _ := streams("")
	err := RunMCP(context.Background(), defaults(), "carrier-pigeon", 0, std)
	assert.ErrorContains(t, err, "unknown transport")
}

func TestSignalContext_CancelledElsewhere(t *testing.T) {
	sc := NewSignalContext(context.Background())
	sc.Cancel()
	<-sc.Done()
	assert.Nil(t, sc.Signal())
	assert.Equal(t, "context done", shutdownReason(sc))
	assert.Equal(t, "context done", shutdownReason(context.Background()))
}

func TestSignalContext_RecordsSignal(t *testing.T) {
	sc := NewSignalContext(context.Background())
	defer sc.Cancel()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case <-sc.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not cancelled by SIGTERM")
	}
	assert.Equal(t, syscall.SIGTERM, sc.Signal())
	assert.Equal(t, syscall.SIGTERM.String(), shutdownReason(sc))
}

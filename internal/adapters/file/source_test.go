package file_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/arbor/internal/adapters/file"
	contract "github.com/aretw0/arbor/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Contract(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	table := filepath.Join(dir, "table.csv")
	require.NoError(t, os.WriteFile(page, []byte("<p>hi</p>"), 0644))
	require.NoError(t, os.WriteFile(table, []byte("a,b\n1,2\n"), 0644))

	setup := map[string][]byte{
		page:              []byte("<p>hi</p>"),
		"file://" + table: []byte("a,b\n1,2\n"),
	}

	contract.FetcherContractTest(t, file.New(), setup, filepath.Join(dir, "missing.html"))
}

func TestSource_Stdin(t *testing.T) {
	src := &file.Source{Stdin: strings.NewReader("x,y\n")}

	text, err := src.ReadText(context.Background(), file.StdinPath)
	require.NoError(t, err)
	assert.Equal(t, "x,y\n", text)
}

func TestSource_NoStdin(t *testing.T) {
	src := &file.Source{}

	_, err := src.ReadText(context.Background(), file.StdinPath)
	assert.Error(t, err)
}

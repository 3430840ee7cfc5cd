package cmd

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRouter(t *testing.T) {
	chartsDir := t.TempDir()
	exportsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(chartsDir, "pie_chart_airlines.pdf"), []byte("%PDF-1.3"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(chartsDir, "interactive_timeline.html"), []byte("<html>timeline</html>"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(chartsDir, "nested"), 0o755))

	srv := httptest.NewServer(newReportRouter(chartsDir, exportsDir))
	defer srv.Close()

	get := func(path string) (int, string) {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	t.Run("index lists files", func(t *testing.T) {
		code, body := get("/")
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, `href="/charts/interactive_timeline.html"`)
		assert.Contains(t, body, `href="/charts/pie_chart_airlines.pdf"`)
		assert.NotContains(t, body, "nested")
		assert.Contains(t, body, "No files yet")
	})

	t.Run("serves chart file", func(t *testing.T) {
		code, body := get("/charts/interactive_timeline.html")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "<html>timeline</html>", body)
	})

	t.Run("missing export", func(t *testing.T) {
		code, _ := get("/exports/nope.xlsx")
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestListFiles(t *testing.T) {
	files, err := listFiles(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, files)

	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	files, err = listFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, files)
}

func TestDisplayAddr(t *testing.T) {
	assert.Equal(t, "localhost:8080", displayAddr(":8080"))
	assert.Equal(t, "127.0.0.1:9000", displayAddr("127.0.0.1:9000"))
}

package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/internal/testgen"
	"github.com/locallibrary/catalog/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, modify func(cfg *config.Config)) *echo.Echo {
	t.Helper()

	cfg := config.NewForTest()
	if modify != nil {
		modify(cfg)
	}
	e, err := newEcho(cfg, testgen.NewTestDB(t))
	require.NoError(t, err)
	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestRoutes(t *testing.T) {
	e := newTestServer(t, nil)

	tests := []struct {
		path   string
		status int
	}{
		{"/health", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/catalog/", http.StatusOK},
		{"/catalog/authors", http.StatusOK},
		{"/catalog/books", http.StatusOK},
		{"/catalog/bookinstances", http.StatusOK},
		{"/catalog/genres", http.StatusOK},
		{"/catalog/users", http.StatusOK},
		{"/catalog/api-docs/doc.json", http.StatusOK},
		{"/catalog/author/1", http.StatusNotFound},
		{"/nowhere", http.StatusNotFound},
	}
	for _, tt := range tests {
		rr := get(e, tt.path)
		assert.Equal(t, tt.status, rr.Code, tt.path)
	}

	rr := get(e, "/nowhere")
	assert.Equal(t, "not_found", testgen.ErrorCode(t, rr))
	assert.Equal(t, "nosniff", rr.Header().Get(echo.HeaderXContentTypeOptions))
}

func TestTestRoutesOnlyInTestEnvironment(t *testing.T) {
	e := newTestServer(t, nil)
	rr := testgen.Request(t, e, http.MethodDelete, "/test/users", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	e = newTestServer(t, func(cfg *config.Config) { cfg.Environment = "production" })
	rr = testgen.Request(t, e, http.MethodDelete, "/test/users", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStaticDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0600))

	e := newTestServer(t, func(cfg *config.Config) { cfg.StaticDir = dir })
	rr := get(e, "/static/style.css")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "body{}", rr.Body.String())
}

func TestNew(t *testing.T) {
	cfg := config.NewForTest()
	cfg.ServerPort = 4000
	srv, err := New(cfg, testgen.NewTestDB(t))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4000", srv.Addr)
}

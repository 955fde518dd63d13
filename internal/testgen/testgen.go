// Package testgen builds the fixtures handler and service tests share: a
// migrated database and an echo instance wired like the server.
package testgen

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/binder"
	"github.com/locallibrary/catalog/pkg/config"
	"github.com/locallibrary/catalog/pkg/database"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/migrations"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// NewTestDB opens a fresh, fully migrated database in a temp directory.
func NewTestDB(t *testing.T) *bun.DB {
	t.Helper()

	cfg := config.NewForTest()
	cfg.DatabaseFilePath = filepath.Join(t.TempDir(), "test.db")
	db, err := database.New(cfg)
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// NewEcho returns an echo instance wired the same way the server wires it:
// binder, JSON serializer, and error handler.
func NewEcho(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.JSONSerializer = binder.Serializer{}
	e.HTTPErrorHandler = errcodes.NewHandler().Handle
	return e
}

// Request sends a request through e. A non-empty payload is sent as JSON
// unless it looks like a form body (no leading brace).
func Request(t *testing.T, e *echo.Echo, method, path, payload string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != "" {
		body = strings.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != "" {
		if strings.HasPrefix(strings.TrimSpace(payload), "{") {
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		} else {
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		}
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

// Decode unmarshals a response body into T.
func Decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

// ErrorCode pulls error.code out of an error response.
func ErrorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	body := Decode[map[string]map[string]any](t, rr)
	code, _ := body["error"]["code"].(string)
	return code
}

// RequireStatus fails the test when the response status isn't want, printing
// the body to make the failure readable.
func RequireStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rr.Code, rr.Body.String())
}

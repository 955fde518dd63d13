package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		ctype  string
		body   string
		header string
		want   string
	}{
		{"bearer", "/", "", "", "Bearer abc", "abc"},
		{"bearer lower case", "/", "", "", "bearer abc", "abc"},
		{"other scheme", "/", "", "", "Basic abc", ""},
		{"query", "/?token=abc", "", "", "", "abc"},
		{"form", "/", echo.MIMEApplicationForm, "token=abc&x=1", "", "abc"},
		{"json", "/", echo.MIMEApplicationJSON, `{"token":"abc","x":1}`, "", "abc"},
		{"bad json", "/", echo.MIMEApplicationJSON, `{"token":`, "", ""},
		{"header wins", "/?token=query", "", "", "Bearer header", "header"},
		{"nothing", "/", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(http.MethodPost, tt.target, body)
			if tt.ctype != "" {
				req.Header.Set(echo.HeaderContentType, tt.ctype)
			}
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			c := echo.New().NewContext(req, httptest.NewRecorder())

			assert.Equal(t, tt.want, tokenFromRequest(c))
		})
	}
}

func TestTokenFromRequest_RestoresJSONBody(t *testing.T) {
	t.Parallel()

	payload := `{"token":"abc","first_name":"Ada"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	require.Equal(t, "abc", tokenFromRequest(c))

	rest, err := io.ReadAll(c.Request().Body)
	require.NoError(t, err)
	assert.Equal(t, payload, string(rest))
}

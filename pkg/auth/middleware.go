package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
)

// Context keys for storing user data.
const (
	ContextKeyUser   = "user"
	ContextKeyClaims = "claims"
)

// Middleware provides authentication middleware.
type Middleware struct {
	authService *Service
}

// NewMiddleware creates a new auth middleware.
func NewMiddleware(authService *Service) *Middleware {
	return &Middleware{
		authService: authService,
	}
}

// Authenticate requires a valid token for a user that still exists. The fresh
// user record and the token's claims are stored on the context.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		token := tokenFromRequest(c)
		if token == "" {
			return errcodes.Unauthorized("Authentication required")
		}

		claims, err := m.authService.ValidateToken(token)
		if err != nil {
			return errcodes.Unauthorized("Invalid or expired token")
		}

		user, err := m.authService.GetUserByID(ctx, claims.UserID)
		if err != nil {
			return errcodes.Unauthorized("User not found")
		}

		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyClaims, claims)

		return next(c)
	}
}

// UserFromContext returns the user stored by Authenticate.
func UserFromContext(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	return user, ok
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*Claims)
	return claims, ok
}

// tokenFromRequest looks for a token in the Authorization header, then the
// query string, then a form or JSON body field named token. A JSON body is put
// back after reading so handlers can still bind it.
func tokenFromRequest(c echo.Context) string {
	req := c.Request()

	if header := req.Header.Get(echo.HeaderAuthorization); header != "" {
		if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}

	if token := c.QueryParam("token"); token != "" {
		return token
	}

	ctype := req.Header.Get(echo.HeaderContentType)
	switch {
	case strings.HasPrefix(ctype, echo.MIMEApplicationForm), strings.HasPrefix(ctype, echo.MIMEMultipartForm):
		return c.FormValue("token")
	case strings.HasPrefix(ctype, echo.MIMEApplicationJSON):
		if req.Body == nil {
			return ""
		}
		body, err := io.ReadAll(req.Body)
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(body))
		if err != nil {
			return ""
		}
		var payload struct {
			Token string `json:"token"`
		}
		if json.Unmarshal(body, &payload) != nil {
			return ""
		}
		return payload.Token
	}

	return ""
}

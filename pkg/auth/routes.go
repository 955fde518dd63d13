package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/config"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers login and token confirmation on the catalog group
// and returns the middleware that gates other routes.
func RegisterRoutes(g *echo.Group, db *bun.DB, cfg *config.Config) *Middleware {
	authService := NewService(db, cfg.JWTSecret, cfg.TokenExpiry)
	authMiddleware := NewMiddleware(authService)

	h := &handler{
		authService: authService,
	}

	g.POST("/user/login", h.login)
	g.POST("/user/post", h.confirm, authMiddleware.Authenticate)

	return authMiddleware
}

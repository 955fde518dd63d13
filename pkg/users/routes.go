package users

import (
	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/auth"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers user routes on the catalog group. Changing or
// removing a user requires a token.
func RegisterRoutes(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	h := &handler{
		userService: NewService(db),
	}

	g.GET("/users", h.list)
	g.POST("/users/create", h.create)
	g.GET("/user/:id", h.retrieve)
	g.POST("/user/update/:id", h.update, authMiddleware.Authenticate)
	g.PUT("/user/update/:id", h.update, authMiddleware.Authenticate)
	g.DELETE("/user/delete/:id", h.deleteUser, authMiddleware.Authenticate)
}

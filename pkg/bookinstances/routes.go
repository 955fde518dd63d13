package bookinstances

import (
	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/books"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers book instance routes on the catalog group.
func RegisterRoutes(g *echo.Group, db *bun.DB) {
	h := &handler{
		instanceService: NewService(db),
		bookService:     books.NewService(db),
	}

	g.GET("/bookinstances", h.list)
	g.GET("/bookinstance/create", h.createForm)
	g.POST("/bookinstance/create", h.create)
	g.GET("/bookinstance/:id/delete", h.deleteForm)
	g.DELETE("/bookinstance/delete/:id", h.deleteBookInstance)
	g.GET("/bookinstance/:id/update", h.updateForm)
	g.GET("/bookinstance/update/:id", h.updateForm)
	g.POST("/bookinstance/update/:id", h.update)
	g.PUT("/bookinstance/update/:id", h.update)
	g.GET("/bookinstance/:id", h.retrieve)
}

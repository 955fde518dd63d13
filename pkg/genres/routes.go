package genres

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers genre routes on the catalog group.
func RegisterRoutes(g *echo.Group, db *bun.DB) {
	h := &handler{
		genreService: NewService(db),
	}

	g.GET("/genres", h.list)
	g.GET("/genre/create", h.createForm)
	g.POST("/genre/create", h.create)
	g.GET("/genre/:id/delete", h.deleteForm)
	g.DELETE("/genre/delete/:id", h.deleteGenre)
	g.GET("/genre/:id/update", h.updateForm)
	g.POST("/genre/update/:id", h.update)
	g.PUT("/genre/update/:id", h.update)
	g.GET("/genre/:id", h.retrieve)
}

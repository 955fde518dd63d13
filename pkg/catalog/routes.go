package catalog

import (
	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/authors"
	"github.com/locallibrary/catalog/pkg/bookinstances"
	"github.com/locallibrary/catalog/pkg/books"
	"github.com/locallibrary/catalog/pkg/genres"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the catalog home page.
func RegisterRoutes(g *echo.Group, db *bun.DB) {
	h := &handler{
		bookService:     books.NewService(db),
		instanceService: bookinstances.NewService(db),
		authorService:   authors.NewService(db),
		genreService:    genres.NewService(db),
	}

	g.GET("", h.index)
	g.GET("/", h.index)
}

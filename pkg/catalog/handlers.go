package catalog

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/authors"
	"github.com/locallibrary/catalog/pkg/bookinstances"
	"github.com/locallibrary/catalog/pkg/books"
	"github.com/locallibrary/catalog/pkg/genres"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/parallel"
	"github.com/pkg/errors"
)

type handler struct {
	bookService     *books.Service
	instanceService *bookinstances.Service
	authorService   *authors.Service
	genreService    *genres.Service
}

// Counts is the catalog summary shown on the home page.
type Counts struct {
	BookCount                  int `json:"book_count"`
	BookInstanceCount          int `json:"book_instance_count"`
	BookInstanceAvailableCount int `json:"book_instance_available_count"`
	AuthorCount                int `json:"author_count"`
	GenreCount                 int `json:"genre_count"`
}

func countLookup(count func(context.Context) (int, error)) parallel.Lookup {
	return func(ctx context.Context) (any, error) {
		return count(ctx)
	}
}

// index godoc
// @Summary Catalog summary counts
// @Tags catalog
// @Produce json
// @Success 200 {object} Counts
// @Router / [get]
func (h *handler) index(c echo.Context) error {
	ctx := c.Request().Context()

	results, err := parallel.Run(ctx, map[string]parallel.Lookup{
		"book_count":          countLookup(h.bookService.CountBooks),
		"book_instance_count": countLookup(h.instanceService.CountBookInstances),
		"book_instance_available_count": func(ctx context.Context) (any, error) {
			return h.instanceService.CountByStatus(ctx, models.StatusAvailable)
		},
		"author_count": countLookup(h.authorService.CountAuthors),
		"genre_count":  countLookup(h.genreService.CountGenres),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, Counts{
		BookCount:                  parallel.Get[int](results, "book_count"),
		BookInstanceCount:          parallel.Get[int](results, "book_instance_count"),
		BookInstanceAvailableCount: parallel.Get[int](results, "book_instance_available_count"),
		AuthorCount:                parallel.Get[int](results, "author_count"),
		GenreCount:                 parallel.Get[int](results, "genre_count"),
	}))
}

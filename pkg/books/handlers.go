package books

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/authors"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/genres"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/parallel"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type handler struct {
	bookService   *Service
	authorService *authors.Service
	genreService  *genres.Service
}

// GenreOption is a genre as offered on the book update form.
type GenreOption struct {
	*models.Genre
	Checked bool `json:"checked"`
}

// markChecked pairs every genre with whether the book is linked to it.
func markChecked(all []*models.Genre, book *models.Book) []GenreOption {
	linked := make(map[int]struct{}, len(book.Genres))
	for _, id := range book.GenreIDs() {
		linked[id] = struct{}{}
	}

	options := make([]GenreOption, 0, len(all))
	for _, g := range all {
		_, ok := linked[g.ID]
		options = append(options, GenreOption{Genre: g, Checked: ok})
	}
	return options
}

func parseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errcodes.NotFound("Book")
	}
	return id, nil
}

// list godoc
// @Summary List books with author and genres populated
// @Tags books
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /books [get]
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.ListBooks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"books": books,
		"total": len(books),
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

// retrieve godoc
// @Summary Book detail with its copies
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /book/{id} [get]
func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	response, err := h.detail(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) detail(ctx context.Context, id int) (map[string]any, error) {
	results, err := parallel.Run(ctx, map[string]parallel.Lookup{
		"book": func(ctx context.Context) (any, error) {
			return h.bookService.RetrieveBook(ctx, id)
		},
		"book_instances": func(ctx context.Context) (any, error) {
			return h.bookService.ListBookInstances(ctx, id)
		},
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"book":           parallel.Get[*models.Book](results, "book"),
		"book_instances": parallel.Get[[]*models.BookInstance](results, "book_instances"),
	}, nil
}

// createForm returns everything a client needs to offer when creating a book.
func (h *handler) createForm(c echo.Context) error {
	ctx := c.Request().Context()

	results, err := parallel.Run(ctx, map[string]parallel.Lookup{
		"authors": func(ctx context.Context) (any, error) {
			return h.authorService.ListAuthors(ctx)
		},
		"genres": func(ctx context.Context) (any, error) {
			return h.genreService.ListGenres(ctx)
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"title":   "Create Book",
		"authors": parallel.Get[[]*models.Author](results, "authors"),
		"genres":  parallel.Get[[]*models.Genre](results, "genres"),
	}))
}

// create godoc
// @Summary Create a book
// @Tags books
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param payload body BookPayload true "Book"
// @Success 201 {object} models.Book
// @Failure 422 {object} map[string]interface{}
// @Router /book/create [post]
func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := BookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book := params.toModel()
	if err := h.bookService.CreateBook(ctx, book, params.Genre.Ints()); err != nil {
		return errors.WithStack(err)
	}

	created, err := h.bookService.RetrieveBook(ctx, book.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("created book", logger.Data{"book_id": book.ID, "genres": len(created.Genres)})
	return errors.WithStack(c.JSON(http.StatusCreated, created))
}

func (h *handler) deleteForm(c echo.Context) error {
	return h.retrieve(c)
}

// deleteBook godoc
// @Summary Delete a book; its copies are left in place
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} models.Book
// @Failure 404 {object} map[string]interface{}
// @Router /book/delete/{id} [delete]
func (h *handler) deleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	book, err := h.bookService.DeleteBook(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("deleted book", logger.Data{"book_id": id})
	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) updateForm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	results, err := parallel.Run(ctx, map[string]parallel.Lookup{
		"book": func(ctx context.Context) (any, error) {
			return h.bookService.RetrieveBook(ctx, id)
		},
		"authors": func(ctx context.Context) (any, error) {
			return h.authorService.ListAuthors(ctx)
		},
		"genres": func(ctx context.Context) (any, error) {
			return h.genreService.ListGenres(ctx)
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	book := parallel.Get[*models.Book](results, "book")
	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"title":   "Update Book",
		"book":    book,
		"authors": parallel.Get[[]*models.Author](results, "authors"),
		"genres":  markChecked(parallel.Get[[]*models.Genre](results, "genres"), book),
	}))
}

// update godoc
// @Summary Replace a book's fields and genres
// @Tags books
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path int true "Book ID"
// @Param payload body BookPayload true "Book"
// @Success 200 {object} models.Book
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /book/update/{id} [post]
func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	params := BookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.UpdateBook(ctx, id, params.toModel(), params.Genre.Ints())
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

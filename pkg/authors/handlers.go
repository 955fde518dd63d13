package authors

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/parallel"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type handler struct {
	authorService *Service
}

// list godoc
// @Summary List authors
// @Tags authors
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /authors [get]
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	authors, err := h.authorService.ListAuthors(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"authors": authors,
		"total":   len(authors),
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

// retrieve godoc
// @Summary Author detail with the author's books
// @Tags authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /author/{id} [get]
func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	response, err := h.detail(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) detail(ctx context.Context, id int) (map[string]any, error) {
	results, err := parallel.Run(ctx, map[string]parallel.Lookup{
		"author": func(ctx context.Context) (any, error) {
			return h.authorService.RetrieveAuthor(ctx, id)
		},
		"author_books": func(ctx context.Context) (any, error) {
			return h.authorService.ListAuthorBooks(ctx, id)
		},
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"author":       parallel.Get[*models.Author](results, "author"),
		"author_books": parallel.Get[[]*models.Book](results, "author_books"),
	}, nil
}

func (h *handler) createForm(c echo.Context) error {
	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"title": "Create Author"}))
}

// create godoc
// @Summary Create an author
// @Tags authors
// @Accept json
// @Produce json
// @Param payload body AuthorPayload true "Author"
// @Success 201 {object} models.Author
// @Failure 422 {object} map[string]interface{}
// @Router /author/create [post]
func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := AuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	author, err := params.toModel()
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.authorService.CreateAuthor(ctx, author); err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("created author", logger.Data{"author_id": author.ID})
	return errors.WithStack(c.JSON(http.StatusCreated, author))
}

func (h *handler) deleteForm(c echo.Context) error {
	return h.retrieve(c)
}

// deleteAuthor godoc
// @Summary Delete an author; the author's books are left in place
// @Tags authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} models.Author
// @Failure 404 {object} map[string]interface{}
// @Router /author/delete/{id} [delete]
func (h *handler) deleteAuthor(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	author, err := h.authorService.DeleteAuthor(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("deleted author", logger.Data{"author_id": id})
	return errors.WithStack(c.JSON(http.StatusOK, author))
}

func (h *handler) updateForm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	author, err := h.authorService.RetrieveAuthor(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"title":  "Update Author",
		"author": author,
	}))
}

// update godoc
// @Summary Replace an author's fields
// @Tags authors
// @Accept json
// @Produce json
// @Param id path int true "Author ID"
// @Param payload body AuthorPayload true "Author"
// @Success 200 {object} models.Author
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /author/update/{id} [post]
func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	params := AuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	author, err := params.toModel()
	if err != nil {
		return errors.WithStack(err)
	}

	author, err = h.authorService.UpdateAuthor(ctx, id, author)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, author))
}

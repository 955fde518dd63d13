package genres

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
	genreService *Service
}

// list godoc
// @Summary List genres
// @Tags genres
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /genres [get]
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	genres, err := h.genreService.ListGenres(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"genres": genres,
		"total":  len(genres),
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

// retrieve godoc
// @Summary Genre detail with its books
// @Tags genres
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /genre/{id} [get]
func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Genre")
	}

	response, err := h.detail(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) detail(ctx context.Context, id int) (map[string]any, error) {
	results, err := parallel.Run(ctx, map[string]parallel.Lookup{
		"genre": func(ctx context.Context) (any, error) {
			return h.genreService.RetrieveGenre(ctx, id)
		},
		"genre_books": func(ctx context.Context) (any, error) {
			return h.genreService.ListGenreBooks(ctx, id)
		},
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"genre":       parallel.Get[*models.Genre](results, "genre"),
		"genre_books": parallel.Get[[]*models.Book](results, "genre_books"),
	}, nil
}

func (h *handler) createForm(c echo.Context) error {
	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"title": "Create Genre"}))
}

// create godoc
// @Summary Create a genre, or return the existing one with the same name
// @Tags genres
// @Accept json
// @Produce json
// @Param payload body GenrePayload true "Genre"
// @Success 201 {object} models.Genre
// @Success 200 {object} models.Genre
// @Failure 422 {object} map[string]interface{}
// @Router /genre/create [post]
func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	params := GenrePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	genre, created, err := h.genreService.CreateGenre(ctx, &models.Genre{Name: params.Name})
	if err != nil {
		return errors.WithStack(err)
	}

	if !created {
		log.Info("genre already exists", logger.Data{"genre_id": genre.ID, "name": genre.Name})
		return errors.WithStack(c.JSON(http.StatusOK, genre))
	}

	log.Info("created genre", logger.Data{"genre_id": genre.ID})
	return errors.WithStack(c.JSON(http.StatusCreated, genre))
}

func (h *handler) deleteForm(c echo.Context) error {
	return h.retrieve(c)
}

// deleteGenre godoc
// @Summary Delete a genre
// @Tags genres
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {object} models.Genre
// @Failure 404 {object} map[string]interface{}
// @Router /genre/delete/{id} [delete]
func (h *handler) deleteGenre(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Genre")
	}

	genre, err := h.genreService.DeleteGenre(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("deleted genre", logger.Data{"genre_id": id})
	return errors.WithStack(c.JSON(http.StatusOK, genre))
}

func (h *handler) updateForm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Genre")
	}

	genre, err := h.genreService.RetrieveGenre(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"title": "Update Genre",
		"genre": genre,
	}))
}

// update godoc
// @Summary Rename a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param id path int true "Genre ID"
// @Param payload body GenrePayload true "Genre"
// @Success 200 {object} models.Genre
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /genre/update/{id} [post]
func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Genre")
	}

	params := GenrePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	genre, err := h.genreService.UpdateGenre(ctx, id, &models.Genre{Name: params.Name})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, genre))
}

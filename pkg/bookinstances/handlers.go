package bookinstances

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/books"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type handler struct {
	instanceService *Service
	bookService     *books.Service
}

func parseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errcodes.NotFound("BookInstance")
	}
	return id, nil
}

// list godoc
// @Summary List book copies with their books populated
// @Tags bookinstances
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /bookinstances [get]
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	instances, err := h.instanceService.ListBookInstances(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"bookinstances": instances,
		"total":         len(instances),
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

// retrieve godoc
// @Summary Book copy detail
// @Tags bookinstances
// @Produce json
// @Param id path int true "BookInstance ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /bookinstance/{id} [get]
func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	instance, err := h.instanceService.RetrieveBookInstance(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"bookinstance": instance}))
}

func (h *handler) createForm(c echo.Context) error {
	ctx := c.Request().Context()

	bookList, err := h.bookService.ListBooks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"title":     "Create BookInstance",
		"book_list": bookList,
		"statuses":  models.Statuses,
	}))
}

// create godoc
// @Summary Create a book copy
// @Tags bookinstances
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param payload body BookInstancePayload true "BookInstance"
// @Success 201 {object} models.BookInstance
// @Failure 422 {object} map[string]interface{}
// @Router /bookinstance/create [post]
func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := BookInstancePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	instance, err := params.toModel()
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.instanceService.CreateBookInstance(ctx, instance); err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("created book instance", logger.Data{"book_instance_id": instance.ID, "book_id": instance.BookID})
	return errors.WithStack(c.JSON(http.StatusCreated, instance))
}

func (h *handler) deleteForm(c echo.Context) error {
	return h.retrieve(c)
}

// deleteBookInstance godoc
// @Summary Delete a book copy
// @Tags bookinstances
// @Produce json
// @Param id path int true "BookInstance ID"
// @Success 200 {object} models.BookInstance
// @Failure 404 {object} map[string]interface{}
// @Router /bookinstance/delete/{id} [delete]
func (h *handler) deleteBookInstance(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	instance, err := h.instanceService.DeleteBookInstance(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("deleted book instance", logger.Data{"book_instance_id": id})
	return errors.WithStack(c.JSON(http.StatusOK, instance))
}

func (h *handler) updateForm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	instance, err := h.instanceService.RetrieveBookInstance(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	bookList, err := h.bookService.ListBooks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"title":        "Update BookInstance",
		"bookinstance": instance,
		"book_list":    bookList,
		"statuses":     models.Statuses,
	}))
}

// update godoc
// @Summary Replace a book copy's fields
// @Tags bookinstances
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path int true "BookInstance ID"
// @Param payload body BookInstancePayload true "BookInstance"
// @Success 200 {object} models.BookInstance
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /bookinstance/update/{id} [post]
func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	params := BookInstancePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	instance, err := params.toModel()
	if err != nil {
		return errors.WithStack(err)
	}

	instance, err = h.instanceService.UpdateBookInstance(ctx, id, instance)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, instance))
}

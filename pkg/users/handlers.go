package users

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type handler struct {
	userService *Service
}

func parseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errcodes.NotFound("User")
	}
	return id, nil
}

// list godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users [get]
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.userService.ListUsers(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"users": users,
		"total": len(users),
	}))
}

// create godoc
// @Summary Register a user
// @Tags users
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param payload body UserPayload true "User"
// @Success 201 {object} models.User
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /users/create [post]
func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := UserPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user := params.toModel()
	if err := h.userService.CreateUser(ctx, user); err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("created user", logger.Data{"user_id": user.ID})
	return errors.WithStack(c.JSON(http.StatusCreated, user))
}

// retrieve godoc
// @Summary User detail
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /user/{id} [get]
func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.RetrieveUser(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"user": user}))
}

// update godoc
// @Summary Replace a user's fields
// @Tags users
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param payload body UpdateUserPayload true "User"
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /user/update/{id} [post]
func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	params := UpdateUserPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userService.UpdateUser(ctx, id, params.toModel())
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, user))
}

// deleteUser godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /user/delete/{id} [delete]
func (h *handler) deleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.DeleteUser(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("deleted user", logger.Data{"user_id": id})
	return errors.WithStack(c.JSON(http.StatusOK, user))
}

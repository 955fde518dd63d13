package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type handler struct {
	authService *Service
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// ConfirmResponse echoes what a valid token resolves to.
type ConfirmResponse struct {
	Claims *Claims      `json:"claims"`
	User   *models.User `json:"user"`
}

// login godoc
// @Summary Exchange email and password for a token
// @Tags users
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param payload body LoginPayload true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} map[string]interface{}
// @Router /user/login [post]
func (h *handler) login(c echo.Context) error {
	ctx := c.Request().Context()

	params := LoginPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.authService.Authenticate(ctx, params.Email, params.Password)
	if err != nil {
		return err
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("issued token", logger.Data{"user_id": user.ID})
	return errors.WithStack(c.JSON(http.StatusOK, TokenResponse{Token: token}))
}

// confirm godoc
// @Summary Confirm a token and return what it resolves to
// @Tags users
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param token formData string false "Token"
// @Success 200 {object} ConfirmResponse
// @Failure 401 {object} map[string]interface{}
// @Router /user/post [post]
func (h *handler) confirm(c echo.Context) error {
	claims, _ := ClaimsFromContext(c)
	user, _ := UserFromContext(c)

	return errors.WithStack(c.JSON(http.StatusOK, ConfirmResponse{Claims: claims, User: user}))
}

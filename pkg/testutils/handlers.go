package testutils

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/store"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type handler struct {
	db *bun.DB
}

// createUserRequest is the request body for creating a test user.
type createUserRequest struct {
	FirstName string `json:"first_name" default:"Test"`
	LastName  string `json:"last_name" default:"User"`
	Email     string `json:"email" mod:"trim,lcase" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

// createUser creates a user without going through the public create flow.
// POST /test/users.
func (h *handler) createUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
	if err := store.New[models.User](h.db, "User").Insert(ctx, user); err != nil {
		return errors.Wrap(err, "failed to create user")
	}

	return errors.WithStack(c.JSON(http.StatusCreated, user))
}

// deletedResponse is the response body for the bulk delete endpoints.
type deletedResponse struct {
	Deleted int `json:"deleted"`
}

// deleteAllUsers deletes all users from the database.
// DELETE /test/users.
func (h *handler) deleteAllUsers(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.db.NewDelete().
		Model((*models.User)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete users")
	}

	deleted, _ := result.RowsAffected()

	return errors.WithStack(c.JSON(http.StatusOK, deletedResponse{
		Deleted: int(deleted),
	}))
}

// deleteCatalog empties every catalog table, leaving users alone.
// DELETE /test/catalog.
func (h *handler) deleteCatalog(c echo.Context) error {
	ctx := c.Request().Context()

	total := 0
	err := h.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range []interface{}{
			(*models.BookInstance)(nil),
			(*models.BookGenre)(nil),
			(*models.Book)(nil),
			(*models.Genre)(nil),
			(*models.Author)(nil),
		} {
			result, err := tx.NewDelete().Model(model).Where("1=1").Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
			n, _ := result.RowsAffected()
			total += int(n)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete catalog")
	}

	return errors.WithStack(c.JSON(http.StatusOK, deletedResponse{
		Deleted: total,
	}))
}

package users

import (
	"context"
	"database/sql"

	"github.com/locallibrary/catalog/pkg/database"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/store"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Service struct {
	db    *bun.DB
	users *store.Store[models.User, *models.User]
}

func NewService(db *bun.DB) *Service {
	return &Service{
		db:    db,
		users: store.New[models.User](db, "User"),
	}
}

func (svc *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	return svc.users.Find(ctx, store.FindOptions{
		Order: []string{"u.last_name ASC", "u.first_name ASC"},
	})
}

func (svc *Service) RetrieveUser(ctx context.Context, id int) (*models.User, error) {
	return svc.users.FindByID(ctx, id)
}

// RetrieveUserByEmail does a case-insensitive lookup.
func (svc *Service) RetrieveUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := svc.db.
		NewSelect().
		Model(user).
		Where("u.email = ? COLLATE NOCASE", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("User")
		}
		return nil, errors.WithStack(err)
	}
	return user, nil
}

// CreateUser stores user unless the email is taken. A concurrent create that
// slips past the lookup is caught by the unique index on email.
func (svc *Service) CreateUser(ctx context.Context, user *models.User) error {
	_, err := svc.RetrieveUserByEmail(ctx, user.Email)
	if err == nil {
		return errcodes.Conflict("User already exists.")
	}
	if !errors.Is(err, errcodes.NotFound("User")) {
		return err
	}

	err = svc.users.Insert(ctx, user)
	if database.IsUniqueViolation(err) {
		return errcodes.Conflict("User already exists.")
	}
	return err
}

func (svc *Service) UpdateUser(ctx context.Context, id int, user *models.User) (*models.User, error) {
	updated, err := svc.users.UpdateByID(ctx, id, user, "first_name", "last_name", "email", "password")
	if database.IsUniqueViolation(err) {
		return nil, errcodes.Conflict("User already exists.")
	}
	return updated, err
}

func (svc *Service) DeleteUser(ctx context.Context, id int) (*models.User, error) {
	return svc.users.DeleteByID(ctx, id)
}

package bookinstances

import (
	"context"

	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/store"
	"github.com/uptrace/bun"
)

type Service struct {
	instances *store.Store[models.BookInstance, *models.BookInstance]
}

func NewService(db *bun.DB) *Service {
	return &Service{
		instances: store.New[models.BookInstance](db, "BookInstance"),
	}
}

// ListBookInstances returns every copy with its book populated.
func (svc *Service) ListBookInstances(ctx context.Context) ([]*models.BookInstance, error) {
	return svc.instances.Find(ctx, store.FindOptions{Relations: []string{"Book"}})
}

func (svc *Service) CountBookInstances(ctx context.Context) (int, error) {
	return svc.instances.Count(ctx, nil)
}

// CountByStatus counts the copies currently in status.
func (svc *Service) CountByStatus(ctx context.Context, status string) (int, error) {
	return svc.instances.Count(ctx, store.Filter{"status": status})
}

func (svc *Service) RetrieveBookInstance(ctx context.Context, id int) (*models.BookInstance, error) {
	return svc.instances.FindByID(ctx, id, "Book")
}

func (svc *Service) CreateBookInstance(ctx context.Context, instance *models.BookInstance) error {
	return svc.instances.Insert(ctx, instance)
}

func (svc *Service) UpdateBookInstance(ctx context.Context, id int, instance *models.BookInstance) (*models.BookInstance, error) {
	if _, err := svc.instances.UpdateByID(ctx, id, instance, "book_id", "imprint", "status", "due_back"); err != nil {
		return nil, err
	}
	return svc.RetrieveBookInstance(ctx, id)
}

func (svc *Service) DeleteBookInstance(ctx context.Context, id int) (*models.BookInstance, error) {
	return svc.instances.DeleteByID(ctx, id)
}

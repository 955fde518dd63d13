package authors

import (
	"context"

	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/store"
	"github.com/uptrace/bun"
)

type Service struct {
	authors *store.Store[models.Author, *models.Author]
	books   *store.Store[models.Book, *models.Book]
}

func NewService(db *bun.DB) *Service {
	return &Service{
		authors: store.New[models.Author](db, "Author"),
		books:   store.New[models.Book](db, "Book"),
	}
}

// ListAuthors returns every author sorted the way a catalog lists them: by
// family name, then first name.
func (svc *Service) ListAuthors(ctx context.Context) ([]*models.Author, error) {
	return svc.authors.Find(ctx, store.FindOptions{
		Order: []string{"a.family_name ASC", "a.first_name ASC"},
	})
}

func (svc *Service) CountAuthors(ctx context.Context) (int, error) {
	return svc.authors.Count(ctx, nil)
}

func (svc *Service) RetrieveAuthor(ctx context.Context, id int) (*models.Author, error) {
	return svc.authors.FindByID(ctx, id)
}

func (svc *Service) CreateAuthor(ctx context.Context, author *models.Author) error {
	return svc.authors.Insert(ctx, author)
}

func (svc *Service) UpdateAuthor(ctx context.Context, id int, author *models.Author) (*models.Author, error) {
	return svc.authors.UpdateByID(ctx, id, author, "first_name", "family_name", "date_of_birth", "date_of_death")
}

// DeleteAuthor removes the author unconditionally. Books written by the author
// keep their author_id.
func (svc *Service) DeleteAuthor(ctx context.Context, id int) (*models.Author, error) {
	return svc.authors.DeleteByID(ctx, id)
}

func (svc *Service) ListAuthorBooks(ctx context.Context, authorID int) ([]*models.Book, error) {
	return svc.books.Find(ctx, store.FindOptions{
		Filter: store.Filter{"author_id": authorID},
		Order:  []string{"b.title ASC"},
	})
}

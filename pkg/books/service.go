package books

import (
	"context"
	"database/sql"

	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/store"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

var bookRelations = []string{"Author", "Genres"}

type Service struct {
	db        *bun.DB
	books     *store.Store[models.Book, *models.Book]
	instances *store.Store[models.BookInstance, *models.BookInstance]
}

func NewService(db *bun.DB) *Service {
	return &Service{
		db:        db,
		books:     store.New[models.Book](db, "Book"),
		instances: store.New[models.BookInstance](db, "BookInstance"),
	}
}

// ListBooks returns every book by title with its author and genres populated.
func (svc *Service) ListBooks(ctx context.Context) ([]*models.Book, error) {
	return svc.books.Find(ctx, store.FindOptions{
		Relations: bookRelations,
		Order:     []string{"b.title ASC"},
	})
}

func (svc *Service) CountBooks(ctx context.Context) (int, error) {
	return svc.books.Count(ctx, nil)
}

// RetrieveBook returns the book with its author and genres populated. Genres
// that were deleted after being linked are skipped.
func (svc *Service) RetrieveBook(ctx context.Context, id int) (*models.Book, error) {
	return svc.books.FindByID(ctx, id, bookRelations...)
}

// CreateBook inserts the book and its genre links together.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book, genreIDs []int) error {
	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := svc.books.WithTx(tx).Insert(ctx, book); err != nil {
			return err
		}
		return insertGenreLinks(ctx, tx, book.ID, genreIDs)
	})
	return errors.WithStack(err)
}

// UpdateBook replaces the book's fields and its whole genre set.
func (svc *Service) UpdateBook(ctx context.Context, id int, book *models.Book, genreIDs []int) (*models.Book, error) {
	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := svc.books.WithTx(tx).UpdateByID(ctx, id, book, "title", "author_id", "summary", "isbn"); err != nil {
			return err
		}
		if err := deleteGenreLinks(ctx, tx, id); err != nil {
			return err
		}
		return insertGenreLinks(ctx, tx, id, genreIDs)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return svc.RetrieveBook(ctx, id)
}

// DeleteBook removes the book and its genre links. Copies of the book are left
// alone and keep pointing at the removed id.
func (svc *Service) DeleteBook(ctx context.Context, id int) (*models.Book, error) {
	var book *models.Book
	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var err error
		book, err = svc.books.WithTx(tx).DeleteByID(ctx, id)
		if err != nil {
			return err
		}
		return deleteGenreLinks(ctx, tx, id)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return book, nil
}

// ListBookInstances returns the copies of a book, oldest first.
func (svc *Service) ListBookInstances(ctx context.Context, bookID int) ([]*models.BookInstance, error) {
	return svc.instances.Find(ctx, store.FindOptions{
		Filter: store.Filter{"book_id": bookID},
	})
}

func insertGenreLinks(ctx context.Context, tx bun.Tx, bookID int, genreIDs []int) error {
	if len(genreIDs) == 0 {
		return nil
	}
	links := make([]*models.BookGenre, 0, len(genreIDs))
	for _, genreID := range genreIDs {
		links = append(links, &models.BookGenre{BookID: bookID, GenreID: genreID})
	}
	_, err := tx.NewInsert().Model(&links).Exec(ctx)
	return errors.WithStack(err)
}

func deleteGenreLinks(ctx context.Context, tx bun.Tx, bookID int) error {
	_, err := tx.NewDelete().
		Model((*models.BookGenre)(nil)).
		Where("book_id = ?", bookID).
		Exec(ctx)
	return errors.WithStack(err)
}

package genres

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
	db     *bun.DB
	genres *store.Store[models.Genre, *models.Genre]
}

func NewService(db *bun.DB) *Service {
	return &Service{
		db:     db,
		genres: store.New[models.Genre](db, "Genre"),
	}
}

func (svc *Service) ListGenres(ctx context.Context) ([]*models.Genre, error) {
	return svc.genres.Find(ctx, store.FindOptions{Order: []string{"g.name ASC"}})
}

func (svc *Service) CountGenres(ctx context.Context) (int, error) {
	return svc.genres.Count(ctx, nil)
}

func (svc *Service) RetrieveGenre(ctx context.Context, id int) (*models.Genre, error) {
	return svc.genres.FindByID(ctx, id)
}

// RetrieveGenreByName does a case-insensitive lookup.
func (svc *Service) RetrieveGenreByName(ctx context.Context, name string) (*models.Genre, error) {
	genre := &models.Genre{}
	err := svc.db.
		NewSelect().
		Model(genre).
		Where("g.name = ? COLLATE NOCASE", name).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Genre")
		}
		return nil, errors.WithStack(err)
	}
	return genre, nil
}

// CreateGenre stores genre unless one with the same name already exists, in
// which case the existing genre is returned and created is false. The unique
// index on name settles concurrent creates: the loser of the race reads back
// the winner's row.
func (svc *Service) CreateGenre(ctx context.Context, genre *models.Genre) (result *models.Genre, created bool, err error) {
	existing, err := svc.RetrieveGenreByName(ctx, genre.Name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, errcodes.NotFound("Genre")) {
		return nil, false, err
	}

	err = svc.genres.Insert(ctx, genre)
	if err != nil {
		if database.IsUniqueViolation(err) {
			existing, err := svc.RetrieveGenreByName(ctx, genre.Name)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return genre, true, nil
}

func (svc *Service) UpdateGenre(ctx context.Context, id int, genre *models.Genre) (*models.Genre, error) {
	updated, err := svc.genres.UpdateByID(ctx, id, genre, "name")
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, errcodes.Conflict("Genre already exists.")
		}
		return nil, err
	}
	return updated, nil
}

// DeleteGenre removes the genre only. Links from books stay behind and are
// ignored when books are read.
func (svc *Service) DeleteGenre(ctx context.Context, id int) (*models.Genre, error) {
	return svc.genres.DeleteByID(ctx, id)
}

// ListGenreBooks returns the books linked to the genre, by title.
func (svc *Service) ListGenreBooks(ctx context.Context, genreID int) ([]*models.Book, error) {
	books := []*models.Book{}
	err := svc.db.
		NewSelect().
		Model(&books).
		Join("JOIN book_genres AS bg ON bg.book_id = b.id").
		Where("bg.genre_id = ?", genreID).
		OrderExpr("b.title ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return books, nil
}

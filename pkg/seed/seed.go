// Package seed fills an empty catalog with demo data. It goes through the same
// services the HTTP handlers use, so everything it writes passes through the
// normal persistence path.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/locallibrary/catalog/pkg/authors"
	"github.com/locallibrary/catalog/pkg/bookinstances"
	"github.com/locallibrary/catalog/pkg/books"
	"github.com/locallibrary/catalog/pkg/genres"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/users"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

// Options controls how much data a Seeder produces.
type Options struct {
	Authors          int
	Genres           int
	BooksPerAuthor   int
	InstancesPerBook int
	Users            int
	// Seed makes the generated data reproducible when non-zero.
	Seed int64
}

func DefaultOptions() Options {
	return Options{
		Authors:          5,
		Genres:           4,
		BooksPerAuthor:   2,
		InstancesPerBook: 2,
		Users:            1,
	}
}

// Result lists what a run created.
type Result struct {
	Authors       []*models.Author
	Genres        []*models.Genre
	Books         []*models.Book
	BookInstances []*models.BookInstance
	Users         []*models.User
}

type Seeder struct {
	opts     Options
	faker    *gofakeit.Faker
	rand     *rand.Rand
	now      func() time.Time
	authors  *authors.Service
	genres   *genres.Service
	books    *books.Service
	copies   *bookinstances.Service
	accounts *users.Service
}

func New(db *bun.DB, opts Options) *Seeder {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeder{
		opts:     opts,
		faker:    gofakeit.New(seed),
		rand:     rand.New(rand.NewSource(seed)), //nolint:gosec // demo data only
		now:      time.Now,
		authors:  authors.NewService(db),
		genres:   genres.NewService(db),
		books:    books.NewService(db),
		copies:   bookinstances.NewService(db),
		accounts: users.NewService(db),
	}
}

// Run creates genres, then authors with their books, then copies of every
// book, then user accounts.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	log := logger.FromContext(ctx)
	result := &Result{}

	genreList, err := s.seedGenres(ctx)
	if err != nil {
		return nil, err
	}
	result.Genres = genreList

	for i := 0; i < s.opts.Authors; i++ {
		author := s.buildAuthor()
		if err := s.authors.CreateAuthor(ctx, author); err != nil {
			return nil, errors.WithStack(err)
		}
		result.Authors = append(result.Authors, author)
		log.Info("seeded author", logger.Data{"author_id": author.ID, "name": author.Name()})

		for j := 0; j < s.opts.BooksPerAuthor; j++ {
			book := s.buildBook(author)
			if err := s.books.CreateBook(ctx, book, s.pickGenres(genreList)); err != nil {
				return nil, errors.WithStack(err)
			}
			result.Books = append(result.Books, book)
		}
	}

	for _, book := range result.Books {
		for k := 0; k < s.opts.InstancesPerBook; k++ {
			instance := s.buildInstance(book)
			if err := s.copies.CreateBookInstance(ctx, instance); err != nil {
				return nil, errors.WithStack(err)
			}
			result.BookInstances = append(result.BookInstances, instance)
		}
	}

	for i := 0; i < s.opts.Users; i++ {
		user := &models.User{
			FirstName: s.faker.FirstName(),
			LastName:  s.faker.LastName(),
			Email:     fmt.Sprintf("reader%d.%s", i+1, s.faker.Email()),
			Password:  s.faker.Password(true, true, true, false, false, 12),
		}
		if err := s.accounts.CreateUser(ctx, user); err != nil {
			return nil, errors.WithStack(err)
		}
		result.Users = append(result.Users, user)
	}

	log.Info("seed complete", logger.Data{
		"authors":        len(result.Authors),
		"genres":         len(result.Genres),
		"books":          len(result.Books),
		"book_instances": len(result.BookInstances),
		"users":          len(result.Users),
	})
	return result, nil
}

func (s *Seeder) seedGenres(ctx context.Context) ([]*models.Genre, error) {
	list := make([]*models.Genre, 0, s.opts.Genres)
	seen := map[string]struct{}{}
	for attempts := 0; len(list) < s.opts.Genres && attempts < s.opts.Genres*10; attempts++ {
		name := s.faker.BookGenre()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		// An existing genre with the same name is reused.
		genre, _, err := s.genres.CreateGenre(ctx, &models.Genre{Name: name})
		if err != nil {
			return nil, errors.WithStack(err)
		}
		list = append(list, genre)
	}
	return list, nil
}

func (s *Seeder) buildAuthor() *models.Author {
	author := &models.Author{
		FirstName:  s.faker.FirstName(),
		FamilyName: s.faker.LastName(),
	}
	born := s.faker.DateRange(time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC))
	born = time.Date(born.Year(), born.Month(), born.Day(), 0, 0, 0, 0, time.UTC)
	author.DateOfBirth = &born
	if s.rand.Intn(2) == 0 {
		died := born.AddDate(40+s.rand.Intn(45), s.rand.Intn(12), 0)
		if died.Before(s.now()) {
			author.DateOfDeath = &died
		}
	}
	return author
}

func (s *Seeder) buildBook(author *models.Author) *models.Book {
	return &models.Book{
		Title:    s.faker.BookTitle(),
		AuthorID: author.ID,
		Summary:  s.faker.Paragraph(1, 3, 12, " "),
		ISBN:     s.faker.Numerify("978##########"),
	}
}

func (s *Seeder) pickGenres(list []*models.Genre) []int {
	if len(list) == 0 {
		return nil
	}
	n := 1 + s.rand.Intn(min(2, len(list)))
	ids := make([]int, 0, n)
	for _, idx := range s.rand.Perm(len(list))[:n] {
		ids = append(ids, list[idx].ID)
	}
	return ids
}

func (s *Seeder) buildInstance(book *models.Book) *models.BookInstance {
	instance := &models.BookInstance{
		BookID:  book.ID,
		Imprint: fmt.Sprintf("%s, %d", s.faker.Company(), 1950+s.rand.Intn(75)),
		Status:  models.Statuses[s.rand.Intn(len(models.Statuses))],
	}
	if instance.Status == models.StatusLoaned || instance.Status == models.StatusReserved {
		due := s.now().AddDate(0, 0, 7+s.rand.Intn(21)).UTC().Truncate(24 * time.Hour)
		instance.DueBack = &due
	}
	return instance
}

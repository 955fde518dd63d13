package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/locallibrary/catalog/pkg/config"
	"github.com/locallibrary/catalog/pkg/database"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/migrations"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	cfg := config.NewForTest()
	cfg.DatabaseFilePath = filepath.Join(t.TempDir(), "test.db")
	db, err := database.New(cfg)
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestStore_InsertAndFindByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	authors := New[models.Author](newTestDB(t), "Author")

	dob := time.Date(1892, time.January, 3, 0, 0, 0, 0, time.UTC)
	author := &models.Author{FirstName: "John", FamilyName: "Tolkien", DateOfBirth: &dob}
	require.NoError(t, authors.Insert(ctx, author))
	assert.NotZero(t, author.ID)
	assert.False(t, author.CreatedAt.IsZero())
	assert.Equal(t, author.CreatedAt, author.UpdatedAt)

	found, err := authors.FindByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", found.FirstName)
	assert.Equal(t, "Tolkien", found.FamilyName)
	require.NotNil(t, found.DateOfBirth)
	assert.True(t, dob.Equal(*found.DateOfBirth))
	assert.Nil(t, found.DateOfDeath)
}

func TestStore_FindByID_NotFound(t *testing.T) {
	t.Parallel()
	genres := New[models.Genre](newTestDB(t), "Genre")

	_, err := genres.FindByID(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, errcodes.NotFound("Genre"))
}

func TestStore_FindWithFilterAndOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	instances := New[models.BookInstance](db, "BookInstance")

	for _, bi := range []*models.BookInstance{
		{BookID: 1, Imprint: "B imprint", Status: models.StatusAvailable},
		{BookID: 1, Imprint: "A imprint", Status: models.StatusAvailable},
		{BookID: 2, Imprint: "C imprint", Status: models.StatusLoaned},
	} {
		require.NoError(t, instances.Insert(ctx, bi))
	}

	all, err := instances.Find(ctx, FindOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	available, err := instances.Find(ctx, FindOptions{
		Filter: Filter{"status": models.StatusAvailable, "book_id": 1},
		Order:  []string{"bi.imprint ASC"},
	})
	require.NoError(t, err)
	require.Len(t, available, 2)
	assert.Equal(t, "A imprint", available[0].Imprint)
	assert.Equal(t, "B imprint", available[1].Imprint)

	none, err := instances.Find(ctx, FindOptions{Filter: Filter{"book_id": 42}})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestStore_Count(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	instances := New[models.BookInstance](newTestDB(t), "BookInstance")

	count, err := instances.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, instances.Insert(ctx, &models.BookInstance{BookID: 1, Imprint: "x", Status: models.StatusAvailable}))
	require.NoError(t, instances.Insert(ctx, &models.BookInstance{BookID: 1, Imprint: "y", Status: models.StatusReserved}))

	count, err = instances.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = instances.Count(ctx, Filter{"status": models.StatusAvailable})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_FindByID_PopulatesRelations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	authors := New[models.Author](db, "Author")
	books := New[models.Book](db, "Book")

	author := &models.Author{FirstName: "Frank", FamilyName: "Herbert"}
	require.NoError(t, authors.Insert(ctx, author))
	book := &models.Book{Title: "Dune", AuthorID: author.ID, Summary: "Spice", ISBN: "9780441013593"}
	require.NoError(t, books.Insert(ctx, book))

	found, err := books.FindByID(ctx, book.ID, "Author")
	require.NoError(t, err)
	require.NotNil(t, found.Author)
	assert.Equal(t, "Herbert", found.Author.FamilyName)

	unpopulated, err := books.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Nil(t, unpopulated.Author)
}

func TestStore_UpdateByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	genres := New[models.Genre](newTestDB(t), "Genre")

	genre := &models.Genre{Name: "Fantasy"}
	require.NoError(t, genres.Insert(ctx, genre))

	updated, err := genres.UpdateByID(ctx, genre.ID, &models.Genre{Name: "High Fantasy"}, "name")
	require.NoError(t, err)
	assert.Equal(t, genre.ID, updated.ID)
	assert.Equal(t, "High Fantasy", updated.Name)
	assert.True(t, updated.CreatedAt.Equal(genre.CreatedAt))

	_, err = genres.UpdateByID(ctx, 999, &models.Genre{Name: "Nope"}, "name")
	assert.ErrorIs(t, err, errcodes.NotFound("Genre"))
}

func TestStore_DeleteByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	genres := New[models.Genre](newTestDB(t), "Genre")

	genre := &models.Genre{Name: "Horror"}
	require.NoError(t, genres.Insert(ctx, genre))

	deleted, err := genres.DeleteByID(ctx, genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "Horror", deleted.Name)

	_, err = genres.FindByID(ctx, genre.ID)
	assert.ErrorIs(t, err, errcodes.NotFound("Genre"))

	_, err = genres.DeleteByID(ctx, genre.ID)
	assert.ErrorIs(t, err, errcodes.NotFound("Genre"))
}

func TestStore_WithTx(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	genres := New[models.Genre](db, "Genre")

	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return genres.WithTx(tx).Insert(ctx, &models.Genre{Name: "Poetry"})
	})
	require.NoError(t, err)

	count, err := genres.Count(ctx, Filter{"name": "Poetry"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

package genres

import (
	"context"
	"sync"
	"testing"

	"github.com/locallibrary/catalog/internal/testgen"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGenre_ReturnsExistingByName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewService(testgen.NewTestDB(t))

	first, created, err := svc.CreateGenre(ctx, &models.Genre{Name: "Fantasy"})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := svc.CreateGenre(ctx, &models.Genre{Name: "fantasy"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Fantasy", second.Name)

	count, err := svc.CountGenres(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// Concurrent creates of a new name both pass the existence check. The unique
// index rejects the second insert and that request returns the first row, so
// exactly one genre exists afterwards.
func TestCreateGenre_ConcurrentCreatesProduceOneRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewService(testgen.NewTestDB(t))

	const workers = 8
	ids := make([]int, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			genre, _, err := svc.CreateGenre(ctx, &models.Genre{Name: "Science Fiction"})
			errs[i] = err
			if genre != nil {
				ids[i] = genre.ID
			}
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	count, err := svc.CountGenres(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdateGenre_ConflictOnDuplicateName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewService(testgen.NewTestDB(t))

	_, _, err := svc.CreateGenre(ctx, &models.Genre{Name: "Horror"})
	require.NoError(t, err)
	poetry, _, err := svc.CreateGenre(ctx, &models.Genre{Name: "Poetry"})
	require.NoError(t, err)

	_, err = svc.UpdateGenre(ctx, poetry.ID, &models.Genre{Name: "HORROR"})
	assert.ErrorIs(t, err, errcodes.Conflict("Genre already exists."))

	_, err = svc.UpdateGenre(ctx, 404, &models.Genre{Name: "Drama"})
	assert.ErrorIs(t, err, errcodes.NotFound("Genre"))
}

func TestListGenreBooks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testgen.NewTestDB(t)
	svc := NewService(db)

	fantasy, _, err := svc.CreateGenre(ctx, &models.Genre{Name: "Fantasy"})
	require.NoError(t, err)

	for _, title := range []string{"The Hobbit", "Earthsea"} {
		book := &models.Book{Title: title, AuthorID: 1, Summary: "s", ISBN: "i"}
		_, err := db.NewInsert().Model(book).Returning("*").Exec(ctx)
		require.NoError(t, err)
		_, err = db.NewInsert().Model(&models.BookGenre{BookID: book.ID, GenreID: fantasy.ID}).Exec(ctx)
		require.NoError(t, err)
	}
	_, err = db.NewInsert().Model(&models.Book{Title: "Unrelated", AuthorID: 1, Summary: "s", ISBN: "i"}).Exec(ctx)
	require.NoError(t, err)

	books, err := svc.ListGenreBooks(ctx, fantasy.ID)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Earthsea", books[0].Title)
	assert.Equal(t, "The Hobbit", books[1].Title)

	empty, err := svc.ListGenreBooks(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

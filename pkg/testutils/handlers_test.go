package testutils

import (
	"context"
	"net/http"
	"testing"

	"github.com/locallibrary/catalog/internal/testgen"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndDeleteUsers(t *testing.T) {
	t.Parallel()
	db := testgen.NewTestDB(t)
	e := testgen.NewEcho(t)
	RegisterRoutes(e, db)

	rr := testgen.Request(t, e, http.MethodPost, "/test/users", `{"email":" Reader@Example.com ","password":"pw"}`)
	testgen.RequireStatus(t, rr, http.StatusCreated)
	user := testgen.Decode[map[string]any](t, rr)
	assert.Equal(t, "reader@example.com", user["email"])
	assert.Equal(t, "Test", user["first_name"])
	assert.NotContains(t, user, "password")

	rr = testgen.Request(t, e, http.MethodDelete, "/test/users", "")
	testgen.RequireStatus(t, rr, http.StatusOK)
	assert.EqualValues(t, 1, testgen.Decode[map[string]any](t, rr)["deleted"])
}

func TestDeleteCatalog(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testgen.NewTestDB(t)
	e := testgen.NewEcho(t)
	RegisterRoutes(e, db)

	genre := &models.Genre{Name: "Fantasy"}
	_, err := db.NewInsert().Model(genre).Returning("*").Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewInsert().Model(&models.BookGenre{BookID: 1, GenreID: genre.ID}).Exec(ctx)
	require.NoError(t, err)

	rr := testgen.Request(t, e, http.MethodDelete, "/test/catalog", "")
	testgen.RequireStatus(t, rr, http.StatusOK)
	assert.EqualValues(t, 2, testgen.Decode[map[string]any](t, rr)["deleted"])

	count, err := db.NewSelect().Model((*models.Genre)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

package users

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/internal/testgen"
	"github.com/locallibrary/catalog/pkg/auth"
	"github.com/locallibrary/catalog/pkg/config"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newTestServer(t *testing.T) (*echo.Echo, *bun.DB) {
	t.Helper()

	db := testgen.NewTestDB(t)
	e := testgen.NewEcho(t)
	g := e.Group("/catalog")
	authMiddleware := auth.RegisterRoutes(g, db, config.NewForTest())
	RegisterRoutes(g, db, authMiddleware)
	return e, db
}

type userResponse struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func login(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()

	rr := testgen.Request(t, e, http.MethodPost, "/catalog/user/login", `{"email":"`+email+`","password":"`+password+`"}`)
	testgen.RequireStatus(t, rr, http.StatusOK)
	token := testgen.Decode[map[string]string](t, rr)["token"]
	require.NotEmpty(t, token)
	return token
}

func TestCreate_DuplicateEmailConflicts(t *testing.T) {
	t.Parallel()
	e, db := newTestServer(t)

	rr := testgen.Request(t, e, http.MethodPost, "/catalog/users/create", `{"first_name":"Ada","last_name":"Lovelace","email":" Ada@Example.com ","password":"engine"}`)
	testgen.RequireStatus(t, rr, http.StatusCreated)
	created := testgen.Decode[userResponse](t, rr)
	assert.Equal(t, "ada@example.com", created.Email)
	assert.NotContains(t, rr.Body.String(), "engine")

	rr = testgen.Request(t, e, http.MethodPost, "/catalog/users/create", `{"first_name":"Ada","last_name":"King","email":"ada@example.com","password":"other"}`)
	testgen.RequireStatus(t, rr, http.StatusConflict)
	assert.Equal(t, "conflict", testgen.ErrorCode(t, rr))

	count, err := db.NewSelect().Model((*models.User)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreate_RejectsInvalidPayload(t *testing.T) {
	t.Parallel()
	e, db := newTestServer(t)

	form := url.Values{"first_name": {"Ada"}, "last_name": {"Lovelace"}, "email": {"not-an-email"}, "password": {"x"}}
	rr := testgen.Request(t, e, http.MethodPost, "/catalog/users/create", form.Encode())
	testgen.RequireStatus(t, rr, http.StatusUnprocessableEntity)
	body := testgen.Decode[map[string]map[string]any](t, rr)
	assert.Equal(t, `"email" is not a valid email`, body["error"]["message"])

	rr = testgen.Request(t, e, http.MethodPost, "/catalog/users/create", `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","password":"   "}`)
	testgen.RequireStatus(t, rr, http.StatusUnprocessableEntity)

	count, err := db.NewSelect().Model((*models.User)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestListAndRetrieve(t *testing.T) {
	t.Parallel()
	e, _ := newTestServer(t)

	rr := testgen.Request(t, e, http.MethodPost, "/catalog/users/create", `{"first_name":"Grace","last_name":"Hopper","email":"grace@example.com","password":"cobol"}`)
	testgen.RequireStatus(t, rr, http.StatusCreated)
	id := strconv.Itoa(testgen.Decode[userResponse](t, rr).ID)

	rr = testgen.Request(t, e, http.MethodGet, "/catalog/users", "")
	testgen.RequireStatus(t, rr, http.StatusOK)
	assert.NotContains(t, rr.Body.String(), "cobol")
	list := testgen.Decode[struct {
		Users []userResponse `json:"users"`
		Total int            `json:"total"`
	}](t, rr)
	assert.Equal(t, 1, list.Total)

	rr = testgen.Request(t, e, http.MethodGet, "/catalog/user/"+id, "")
	testgen.RequireStatus(t, rr, http.StatusOK)
	assert.Equal(t, "Hopper", testgen.Decode[map[string]userResponse](t, rr)["user"].LastName)

	rr = testgen.Request(t, e, http.MethodGet, "/catalog/user/404", "")
	testgen.RequireStatus(t, rr, http.StatusNotFound)
}

func TestGatedRoutes(t *testing.T) {
	t.Parallel()
	e, db := newTestServer(t)

	rr := testgen.Request(t, e, http.MethodPost, "/catalog/users/create", `{"first_name":"Alan","last_name":"Turing","email":"alan@example.com","password":"enigma"}`)
	testgen.RequireStatus(t, rr, http.StatusCreated)
	alan := testgen.Decode[userResponse](t, rr)
	rr = testgen.Request(t, e, http.MethodPost, "/catalog/users/create", `{"first_name":"Joan","last_name":"Clarke","email":"joan@example.com","password":"bombe"}`)
	testgen.RequireStatus(t, rr, http.StatusCreated)
	joan := testgen.Decode[userResponse](t, rr)

	rr = testgen.Request(t, e, http.MethodDelete, "/catalog/user/delete/"+strconv.Itoa(joan.ID), "")
	testgen.RequireStatus(t, rr, http.StatusUnauthorized)
	assert.Equal(t, "unauthorized", testgen.ErrorCode(t, rr))

	token := login(t, e, "alan@example.com", "enigma")

	payload := `{"first_name":"Joan","last_name":"Murray","email":"joan@example.com","password":"bombe","token":"` + token + `"}`
	rr = testgen.Request(t, e, http.MethodPut, "/catalog/user/update/"+strconv.Itoa(joan.ID), payload)
	testgen.RequireStatus(t, rr, http.StatusOK)
	assert.Equal(t, "Murray", testgen.Decode[userResponse](t, rr).LastName)

	payload = `{"first_name":"Joan","last_name":"Murray","email":"alan@example.com","password":"bombe"}`
	rr = testgen.Request(t, e, http.MethodPost, "/catalog/user/update/"+strconv.Itoa(joan.ID), payload, echo.HeaderAuthorization, "Bearer "+token)
	testgen.RequireStatus(t, rr, http.StatusConflict)

	rr = testgen.Request(t, e, http.MethodDelete, "/catalog/user/delete/"+strconv.Itoa(joan.ID), "", echo.HeaderAuthorization, "Bearer "+token)
	testgen.RequireStatus(t, rr, http.StatusOK)
	assert.Equal(t, joan.ID, testgen.Decode[userResponse](t, rr).ID)

	rr = testgen.Request(t, e, http.MethodDelete, "/catalog/user/delete/"+strconv.Itoa(joan.ID), "", echo.HeaderAuthorization, "Bearer "+token)
	testgen.RequireStatus(t, rr, http.StatusNotFound)

	// a token stops working once its user is gone
	rr = testgen.Request(t, e, http.MethodDelete, "/catalog/user/delete/"+strconv.Itoa(alan.ID), "", echo.HeaderAuthorization, "Bearer "+token)
	testgen.RequireStatus(t, rr, http.StatusOK)
	rr = testgen.Request(t, e, http.MethodDelete, "/catalog/user/delete/"+strconv.Itoa(alan.ID), "", echo.HeaderAuthorization, "Bearer "+token)
	testgen.RequireStatus(t, rr, http.StatusUnauthorized)

	count, err := db.NewSelect().Model((*models.User)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

package binder

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type params struct {
	Hello string `json:"hello" mod:"trim" validate:"max=9"`
	Omit  string `json:"-"`
}

type catalogParams struct {
	Name    string `json:"name" form:"name" mod:"trim,escape" validate:"required,max=100"`
	Born    string `json:"born" form:"born" mod:"trim" validate:"omitempty,iso8601"`
	Status  string `json:"status" form:"status" default:"Maintenance" validate:"oneof=Available Maintenance"`
	Genre   IDList `json:"genre" form:"genre" validate:"dive,gt=0"`
	Letters string `json:"letters" form:"letters" mod:"trim" validate:"omitempty,alphanum"`
}

var (
	goodJSON             = `{"hello":" world "}`
	unknownFieldsErrJSON = `{"hello":"world","foo":"bar"}`
	typeErrJSON          = `{"hello":123}`
	validationErrJSON    = `{"hello":"0123456789"}`
)

func TestNew(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)
	assert.NotNil(t, b)

	t.Run("only allows application/json and form bodies", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationXML)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "Unsupported Media Type")
	})

	t.Run("disallows unknown fields", func(tt *testing.T) {
		c := newContext(unknownFieldsErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `Unknown Parameter "foo"`)
	})

	t.Run("returns a good message for type errors", func(tt *testing.T) {
		c := newContext(typeErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `"hello" should be of type string`)
	})

	t.Run("use mod tag to modify params", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "world", p.Hello)
	})

	t.Run("use validate tag to validate params", func(tt *testing.T) {
		c := newContext(validationErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "length must be less than or equal to 9 characters")
	})

	t.Run("rejects an empty body on POST", func(tt *testing.T) {
		c := newContext("", echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.ErrorIs(tt, err, errcodes.EmptyRequestBody())
	})
}

func TestBind_SanitizesBeforeValidating(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	c := newContext(`{"name":"  <b>Tom & Jerry</b>  ","genre":["2", 3]}`, echo.MIMEApplicationJSON)
	p := catalogParams{}
	require.NoError(t, b.Bind(&p, c))

	assert.Equal(t, "&lt;b&gt;Tom &amp; Jerry&lt;&#x2F;b&gt;", p.Name)
	assert.Equal(t, "Maintenance", p.Status)
	assert.Equal(t, []int{2, 3}, p.Genre.Ints())
}

func TestBind_ValidationFailures(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	cases := []struct {
		name    string
		payload string
		msg     string
	}{
		{"missing required field", `{"name":"   "}`, `"name" is required`},
		{"name too long", `{"name":"` + strings.Repeat("a", 101) + `"}`, `"name" length must be less than or equal to 100 characters`},
		{"bad date", `{"name":"x","born":"1990-02-30"}`, `"born" should be an ISO 8601 date`},
		{"unknown status", `{"name":"x","status":"Lost"}`, `"status" must be one of the following`},
		{"non-positive id", `{"name":"x","genre":[0]}`, `must be greater than 0`},
		{"non-alphanumeric", `{"name":"x","letters":"a-b"}`, `"letters" has non-alphanumeric characters`},
		{"non-numeric id", `{"name":"x","genre":["abc"]}`, `ids should be integers`},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := catalogParams{}
			err := b.Bind(&p, newContext(tt.payload, echo.MIMEApplicationJSON))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)

			var codeErr *errcodes.Error
			require.ErrorAs(t, err, &codeErr)
			assert.Equal(t, http.StatusUnprocessableEntity, codeErr.HTTPCode)
		})
	}
}

func TestBind_OptionalDates(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	for _, born := range []string{"", "1990-02-28", "1990-02-28T10:30:00", "1990-02-28T10:30:00Z"} {
		p := catalogParams{}
		err := b.Bind(&p, newContext(`{"name":"x","born":"`+born+`"}`, echo.MIMEApplicationJSON))
		assert.NoError(t, err, born)
	}
}

func TestBind_FormBody(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	form := url.Values{}
	form.Set("name", " Fantasy ")
	form.Add("genre", "4")
	form.Add("genre", "5")
	c := newContext(form.Encode(), echo.MIMEApplicationForm)

	p := catalogParams{}
	require.NoError(t, b.Bind(&p, c))
	assert.Equal(t, "Fantasy", p.Name)
	assert.Equal(t, []int{4, 5}, p.Genre.Ints())
}

func TestBind_FormTypeError(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)

	form := url.Values{}
	form.Set("name", "Fantasy")
	form.Set("genre", "abc")

	p := catalogParams{}
	err = b.Bind(&p, newContext(form.Encode(), echo.MIMEApplicationForm))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `should be of type`)
}

func newContext(payload, mime string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(echo.POST, "/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, mime)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr)
}

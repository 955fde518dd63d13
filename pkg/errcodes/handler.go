package errcodes

import (
	"fmt"
	"net/http"

	"github.com/iancoleman/strcase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/errutils"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Handle is an Echo error handler. Every response carries the same envelope:
//
//	{"error": {"code": "not_found", "message": "Book not found.", "status_code": 404}}
//
// Anything that isn't an *Error or an *echo.HTTPError is reported as a bare
// internal server error so driver or filesystem details never reach clients.
func (h *Handler) Handle(err error, c echo.Context) {
	log := logger.FromEchoContext(c)
	if errutils.IsIgnorableErr(err) {
		log.Err(err).Warn("broken pipe")
		return
	}

	e := classify(err)
	if e.HTTPCode == http.StatusInternalServerError {
		log.Err(err).Error("server error")
	}

	if err := c.JSON(e.HTTPCode, map[string]interface{}{
		"error": map[string]interface{}{
			"code":        e.Code,
			"message":     e.Message,
			"status_code": e.HTTPCode,
		},
	}); err != nil {
		log.Err(errors.WithStack(err)).Error("error handler json error")
	}
}

func classify(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code != http.StatusInternalServerError {
		msg := fmt.Sprint(he.Message)
		return newError(he.Code, strcase.ToSnake(msg), msg)
	}

	return newError(http.StatusInternalServerError, "internal_server_error", "Internal Server Error")
}

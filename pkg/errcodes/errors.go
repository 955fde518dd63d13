package errcodes

import (
	"fmt"
	"net/http"
)

// Error is an error the API reports to clients verbatim. HTTPCode becomes the
// response status and Code is the stable, machine-readable identifier.
type Error struct {
	HTTPCode int
	Message  string
	Code     string
}

func newError(httpCode int, code, msg string) *Error {
	return &Error{HTTPCode: httpCode, Message: msg, Code: code}
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	*te = *err
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return *te == *err
}

// NotFound reports a missing record of the given resource, e.g. "Book".
func NotFound(resource string) error {
	return newError(http.StatusNotFound, "not_found", resource+" not found.")
}

// Unauthorized is used both for bad credentials and for missing or invalid
// tokens on gated routes.
func Unauthorized(msg string) error {
	return newError(http.StatusUnauthorized, "unauthorized", msg)
}

// Conflict reports a write that collides with an existing record.
func Conflict(msg string) error {
	return newError(http.StatusConflict, "conflict", msg)
}

func ValidationError(msg string) error {
	return newError(http.StatusUnprocessableEntity, "validation_error", msg)
}

func ValidationTypeError(msg string) error {
	return newError(http.StatusUnprocessableEntity, "validation_type_error", msg)
}

func UnknownParameter(param string) error {
	return newError(http.StatusUnprocessableEntity, "unknown_parameter", fmt.Sprintf("Unknown Parameter %q", param))
}

func UnsupportedMediaType() error {
	return newError(http.StatusUnsupportedMediaType, "unsupported_media_type", "Unsupported Media Type")
}

func MalformedPayload() error {
	return newError(http.StatusBadRequest, "malformed_payload", "Malformed Payload")
}

func EmptyRequestBody() error {
	return newError(http.StatusBadRequest, "empty_request_body", "Request body can't be empty.")
}

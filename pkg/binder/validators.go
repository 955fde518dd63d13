package binder

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/mold/v4"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Escape replaces HTML-significant characters with their entities.
func Escape(s string) string {
	return escaper.Replace(s)
}

func escapeModifier(_ context.Context, fl mold.FieldLevel) error {
	if fl.Field().Kind() == reflect.String && fl.Field().CanSet() {
		fl.Field().SetString(Escape(fl.Field().String()))
	}
	return nil
}

// ParseDate parses an ISO 8601 date or date-time. An empty string yields nil,
// which is how optional dates are cleared. Date-only values are UTC midnight.
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return &t, nil
		}
	}
	return nil, errors.Errorf("invalid ISO 8601 date %q", value)
}

// iso8601Validator lets the empty string through so it can be paired with
// omitempty on optional dates.
func iso8601Validator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := ParseDate(value)
	return err == nil
}

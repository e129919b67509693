package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chirper/chirper-api/internal/core/domain"
)

// bodyFields names the request fields whose values decode through a custom
// format, so a decode failure can be attributed to them.
type bodyFields struct {
	date      string
	timestamp string
}

// bindError turns a failed c.Bind into the response error. A value of the
// wrong type or format becomes a validation failure naming its field; any
// other decode failure is a plain 400.
func bindError(err error, fields bodyFields) error {
	if fields.date != "" && errors.Is(err, domain.ErrInvalidDate) {
		return fieldError(fields.date, "date", fields.date+" must be a date formatted YYYY-MM-DD")
	}

	var pe *time.ParseError
	if fields.timestamp != "" && errors.As(err, &pe) {
		return fieldError(fields.timestamp, "datetime", fields.timestamp+" must be an RFC 3339 timestamp")
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return fieldError(ute.Field, "type", fmt.Sprintf("%s must be %s", ute.Field, jsonKind(ute.Type)))
	}

	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
}

func fieldError(field, constraint, msg string) *domain.ValidationError {
	return &domain.ValidationError{Violations: []domain.FieldViolation{{
		Field:      field,
		Constraint: constraint,
		Message:    msg,
	}}}
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a different type"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}

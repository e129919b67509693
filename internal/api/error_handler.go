package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chirper/chirper-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string                  `json:"error"`
	Details []domain.FieldViolation `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to their HTTP status codes.
//   - Logs storage failures internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   domain.ErrValidationFailed.Error(),
			Details: ve.Violations,
		}
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	case errors.Is(err, domain.ErrTweetNotFound):
		return http.StatusNotFound, errorResponse{Error: "tweet not found"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "not found"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrValidationFailed):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	}

	logger := log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path())

	if errors.Is(err, domain.ErrStorageUnavailable) {
		logger.Msg("storage unavailable")
		return http.StatusServiceUnavailable, errorResponse{Error: "storage unavailable"}
	}
	if errors.Is(err, domain.ErrCorruptCollection) {
		logger.Msg("corrupt collection")
		return http.StatusInternalServerError, errorResponse{Error: "stored data is corrupt"}
	}

	logger.Msg("unhandled error")
	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

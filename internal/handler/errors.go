package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seating-areas/internal/logging"
	"github.com/iliyamo/seating-areas/internal/service"
)

// errorBody is the JSON shape of every failed seating area call.
type errorBody struct {
	Error     service.Kind `json:"error"`
	Operation string       `json:"operation"`
	Message   string       `json:"message"`
	Details   string       `json:"details,omitempty"`
}

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindAuthorization:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err.  Errors that are not *service.Error are logged
// and reported as an internal failure of op.
func writeError(c echo.Context, op string, err error) error {
	var se *service.Error
	if !errors.As(err, &se) {
		logging.FromContext(c.Request().Context()).WithError(err).WithField("operation", op).Error("unexpected error")
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "internal", Operation: op, Message: "internal error"})
	}
	if se.Kind == service.KindPersistence {
		logging.FromContext(c.Request().Context()).WithError(err).WithField("operation", se.Op).Error("seating area write failed")
	}
	return c.JSON(statusFor(se.Kind), errorBody{
		Error:     se.Kind,
		Operation: se.Op,
		Message:   se.Message,
		Details:   se.Details,
	})
}

// Package handler exposes the JSON HTTP API over the query, aggregation and
// booking services. Handlers parse and shape requests; every business rule
// lives in the services.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/olympics-logistics/internal/model"
)

// statusOf maps an error kind to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, model.ErrConnectivity):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"error": ...}. Client errors carry the message;
// server errors are logged and answered with the kind only so no SQL leaks.
func writeError(c echo.Context, err error) error {
	status := statusOf(err)
	if status < http.StatusInternalServerError {
		return c.JSON(status, echo.Map{"error": err.Error()})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	msg := "internal error"
	if kind := model.KindOf(err); kind != nil {
		msg = kind.Error()
	}
	return c.JSON(status, echo.Map{"error": msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (int64, bool) {
	n, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// parseDate accepts YYYY-MM-DD and returns midnight UTC of that day.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, time.UTC)
}

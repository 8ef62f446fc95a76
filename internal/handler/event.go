package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/olympics-logistics/internal/model"
)

// EventQueries is the read side used by EventHandler.
type EventQueries interface {
	GetSports(ctx context.Context) ([]model.Sport, error)
	GetEventsOfSport(ctx context.Context, sportID int64) ([]model.Event, error)
	GetEventResults(ctx context.Context, eventID int64) ([]model.ResultRecord, error)
}

// EventHandler serves the public sport, event and result listings.
type EventHandler struct {
	q EventQueries
}

func NewEventHandler(q EventQueries) *EventHandler { return &EventHandler{q: q} }

// ListSports handles GET /v1/sports.
func (h *EventHandler) ListSports(c echo.Context) error {
	items, err := h.q.GetSports(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	if items == nil {
		items = []model.Sport{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListEvents handles GET /v1/sports/:id/events.
func (h *EventHandler) ListEvents(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid sport id")
	}
	items, err := h.q.GetEventsOfSport(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if items == nil {
		items = []model.Event{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Results handles GET /v1/events/:id/results.
func (h *EventHandler) Results(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	items, err := h.q.GetEventResults(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if items == nil {
		items = []model.ResultRecord{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

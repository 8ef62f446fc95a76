package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/olympics-logistics/internal/model"
)

// JourneyQueries is the read side used by JourneyHandler.
type JourneyQueries interface {
	FindJourneys(ctx context.Context, origin, dest string, date time.Time) ([]model.Journey, error)
	GetJourneyDetails(ctx context.Context, journeyID int64) (*model.JourneyDetails, error)
}

type JourneyHandler struct {
	q JourneyQueries
}

func NewJourneyHandler(q JourneyQueries) *JourneyHandler { return &JourneyHandler{q: q} }

// Find handles GET /v1/journeys?from=&to=&date=YYYY-MM-DD.
func (h *JourneyHandler) Find(c echo.Context) error {
	date, err := parseDate(c.QueryParam("date"))
	if err != nil {
		return badRequest(c, "date must be YYYY-MM-DD")
	}
	items, err := h.q.FindJourneys(c.Request().Context(), c.QueryParam("from"), c.QueryParam("to"), date)
	if err != nil {
		return writeError(c, err)
	}
	if items == nil {
		items = []model.Journey{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Details handles GET /v1/journeys/:id.
func (h *JourneyHandler) Details(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid journey id")
	}
	d, err := h.q.GetJourneyDetails(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": d})
}

package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/olympics-logistics/internal/model"
)

// MemberQueries is the read side used by MemberHandler.
type MemberQueries interface {
	GetMemberProfile(ctx context.Context, memberID string) (*model.Profile, error)
	GetMemberBookings(ctx context.Context, memberID string) ([]model.BookingSummary, error)
	GetBookingDetails(ctx context.Context, memberID string, journeyID int64) (*model.BookingRecord, error)
}

type MemberHandler struct {
	q MemberQueries
}

func NewMemberHandler(q MemberQueries) *MemberHandler { return &MemberHandler{q: q} }

// GetProfile handles GET /v1/members/:id. An unknown member yields
// {"item": null}.
func (h *MemberHandler) GetProfile(c echo.Context) error {
	p, err := h.q.GetMemberProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": p})
}

// ListBookings handles GET /v1/members/:id/bookings.
func (h *MemberHandler) ListBookings(c echo.Context) error {
	items, err := h.q.GetMemberBookings(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	if items == nil {
		items = []model.BookingSummary{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetBooking handles GET /v1/members/:id/bookings/:journey_id.
func (h *MemberHandler) GetBooking(c echo.Context) error {
	journeyID, ok := parseID(c, "journey_id")
	if !ok {
		return badRequest(c, "invalid journey id")
	}
	rec, err := h.q.GetBookingDetails(c.Request().Context(), c.Param("id"), journeyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": rec})
}

package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/olympics-logistics/internal/middleware"
	"github.com/iliyamo/olympics-logistics/internal/model"
	"github.com/iliyamo/olympics-logistics/internal/service"
)

// Reserver books seats.
type Reserver interface {
	ReserveSeat(ctx context.Context, req service.ReserveRequest) (*model.BookingRecord, error)
}

// BookingHandler lets an authenticated staff member book a seat for a
// beneficiary. The staff id is the token subject, never the request body.
type BookingHandler struct {
	r Reserver
}

func NewBookingHandler(r Reserver) *BookingHandler { return &BookingHandler{r: r} }

type reserveReq struct {
	Beneficiary string `json:"beneficiary"`
	VehicleCode string `json:"vehicle_code"`
	Departs     string `json:"departs"` // RFC3339
}

// Reserve handles POST /v1/bookings and answers 201 with the booking record.
func (h *BookingHandler) Reserve(c echo.Context) error {
	staffID, ok := middleware.MemberID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	departs, err := time.Parse(time.RFC3339, strings.TrimSpace(req.Departs))
	if err != nil {
		return badRequest(c, "departs must be RFC3339")
	}

	rec, err := h.r.ReserveSeat(c.Request().Context(), service.ReserveRequest{
		StaffID:     staffID,
		Beneficiary: strings.TrimSpace(req.Beneficiary),
		VehicleCode: strings.TrimSpace(req.VehicleCode),
		Departs:     departs,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": rec})
}

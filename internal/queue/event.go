// Package queue carries booking events over RabbitMQ: the publisher used by
// the reservation path and the consumer that keeps the booking log.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/olympics-logistics/internal/service"
)

const bookingQueueName = "booking.confirmed"

// BookingConfirmedEvent is published after a reservation commits. It holds
// enough for downstream consumers to log or notify without querying the
// store.
type BookingConfirmedEvent struct {
	EventID       string `json:"event_id"`
	JourneyID     int64  `json:"journey_id"`
	VehicleCode   string `json:"vehicle_code"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartsAt     string `json:"departs_at"`
	ArrivesAt     string `json:"arrives_at"`
	BookedForID   string `json:"booked_for_id"`
	BookedForName string `json:"booked_for_name"`
	BookedByID    string `json:"booked_by_id"`
	BookedByName  string `json:"booked_by_name"`
	BookedAt      string `json:"booked_at"`
}

// NewBookingConfirmedEvent builds the event for a committed booking. Times
// are RFC 3339 in UTC.
func NewBookingConfirmedEvent(c service.Confirmation) BookingConfirmedEvent {
	r := c.Record
	return BookingConfirmedEvent{
		EventID:       uuid.NewString(),
		JourneyID:     r.JourneyID,
		VehicleCode:   r.VehicleCode,
		Origin:        r.OriginName,
		Destination:   r.DestName,
		DepartsAt:     r.WhenDeparts.UTC().Format(time.RFC3339),
		ArrivesAt:     r.WhenArrives.UTC().Format(time.RFC3339),
		BookedForID:   c.BeneficiaryID,
		BookedForName: r.BookedForName,
		BookedByID:    c.StaffID,
		BookedByName:  r.BookedByName,
		BookedAt:      r.WhenBooked.UTC().Format(time.RFC3339),
	}
}

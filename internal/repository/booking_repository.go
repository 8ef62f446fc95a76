package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/olympics-logistics/internal/model"
)

// BookingRepo appends bookings and reads booking history. Bookings are
// never updated or deleted.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to db.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingRow mirrors the booking table.
type BookingRow struct {
	BookedFor  string
	BookedBy   string
	WhenBooked time.Time
	JourneyID  int64
}

// CreateTx inserts a booking within tx. The caller commits or rolls back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b BookingRow) error {
	const q = `INSERT INTO booking (booked_for, booked_by, when_booked, journey_id) VALUES (?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q, b.BookedFor, b.BookedBy, b.WhenBooked.UTC(), b.JourneyID); err != nil {
		return Classify("booking.create", err)
	}
	return nil
}

const bookingJoins = `FROM booking b
JOIN journey j ON j.journey_id = b.journey_id
JOIN place o ON o.place_id = j.from_place
JOIN place d ON d.place_id = j.to_place`

// GetDetails returns the booking a member holds on a journey, or nil.
func (r *BookingRepo) GetDetails(ctx context.Context, memberID string, journeyID int64) (*model.BookingRecord, error) {
	q := `SELECT bb.family_name, bb.given_names, bf.family_name, bf.given_names, b.when_booked,
       j.journey_id, j.vehicle_code, o.place_name, d.place_name, j.depart_time, j.arrive_time
` + bookingJoins + `
JOIN member bb ON bb.member_id = b.booked_by
JOIN member bf ON bf.member_id = b.booked_for
WHERE b.booked_for = ? AND b.journey_id = ?`
	var (
		rec                                    model.BookingRecord
		byFamily, byGiven, forFamily, forGiven string
	)
	err := r.db.QueryRowContext(ctx, q, memberID, journeyID).Scan(
		&byFamily, &byGiven, &forFamily, &forGiven, &rec.WhenBooked,
		&rec.JourneyID, &rec.VehicleCode, &rec.OriginName, &rec.DestName, &rec.WhenDeparts, &rec.WhenArrives,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, Classify("booking.getDetails", err)
	}
	rec.BookedByName = model.DisplayName(byFamily, byGiven)
	rec.BookedForName = model.DisplayName(forFamily, forGiven)
	utc(&rec.WhenBooked, &rec.WhenDeparts, &rec.WhenArrives)
	return &rec, nil
}

// ListByMember returns every booking made for a member, by departure time.
func (r *BookingRepo) ListByMember(ctx context.Context, memberID string) ([]model.BookingSummary, error) {
	const op = "booking.listByMember"
	q := `SELECT j.journey_id, j.vehicle_code, o.place_name, d.place_name, j.depart_time, j.arrive_time, b.when_booked
` + bookingJoins + `
WHERE b.booked_for = ?
ORDER BY j.depart_time, j.journey_id`
	rows, err := r.db.QueryContext(ctx, q, memberID)
	if err != nil {
		return nil, Classify(op, err)
	}
	defer rows.Close()
	out := []model.BookingSummary{}
	for rows.Next() {
		var s model.BookingSummary
		if err := rows.Scan(&s.JourneyID, &s.VehicleCode, &s.OriginName, &s.DestName, &s.WhenDeparts, &s.WhenArrives, &s.WhenBooked); err != nil {
			return nil, Classify(op, err)
		}
		utc(&s.WhenDeparts, &s.WhenArrives, &s.WhenBooked)
		out = append(out, s)
	}
	return out, Classify(op, rows.Err())
}

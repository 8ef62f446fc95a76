package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/olympics-logistics/internal/model"
)

// JourneyRepo reads journeys and owns the guarded seat counter update.
type JourneyRepo struct {
	db *sql.DB
}

// NewJourneyRepo returns a JourneyRepo bound to db.
func NewJourneyRepo(db *sql.DB) *JourneyRepo { return &JourneyRepo{db: db} }

const journeySelect = `SELECT j.journey_id, j.vehicle_code, o.place_name, d.place_name,
       j.depart_time, j.arrive_time, v.capacity, j.nbooked
FROM journey j
JOIN vehicle v ON v.vehicle_code = j.vehicle_code
JOIN place o ON o.place_id = j.from_place
JOIN place d ON d.place_id = j.to_place`

func scanJourney(sc rowScanner) (model.JourneyDetails, error) {
	var d model.JourneyDetails
	err := sc.Scan(&d.JourneyID, &d.VehicleCode, &d.OriginName, &d.DestName,
		&d.WhenDeparts, &d.WhenArrives, &d.Capacity, &d.NBooked)
	utc(&d.WhenDeparts, &d.WhenArrives)
	return d, err
}

// Find returns journeys between two named places departing in
// [from, until), earliest first.
func (r *JourneyRepo) Find(ctx context.Context, origin, dest string, from, until time.Time) ([]model.Journey, error) {
	const op = "journey.find"
	q := journeySelect + `
WHERE o.place_name = ? AND d.place_name = ? AND j.depart_time >= ? AND j.depart_time < ?
ORDER BY j.depart_time, j.journey_id`
	rows, err := r.db.QueryContext(ctx, q, origin, dest, from.UTC(), until.UTC())
	if err != nil {
		return nil, Classify(op, err)
	}
	defer rows.Close()
	out := []model.Journey{}
	for rows.Next() {
		d, err := scanJourney(rows)
		if err != nil {
			return nil, Classify(op, err)
		}
		out = append(out, model.Journey{
			JourneyID:      d.JourneyID,
			VehicleCode:    d.VehicleCode,
			OriginName:     d.OriginName,
			DestName:       d.DestName,
			WhenDeparts:    d.WhenDeparts,
			WhenArrives:    d.WhenArrives,
			AvailableSeats: d.Capacity - d.NBooked,
		})
	}
	return out, Classify(op, rows.Err())
}

// GetDetails returns one journey, or nil when it does not exist.
func (r *JourneyRepo) GetDetails(ctx context.Context, journeyID int64) (*model.JourneyDetails, error) {
	return getJourney(ctx, r.db, "journey.getDetails", `j.journey_id = ?`, journeyID)
}

// LocateTx finds the journey a vehicle makes at a departure time, or nil.
func (r *JourneyRepo) LocateTx(ctx context.Context, tx *sql.Tx, vehicleCode string, departs time.Time) (*model.JourneyDetails, error) {
	return getJourney(ctx, tx, "journey.locate", `j.vehicle_code = ? AND j.depart_time = ?`, vehicleCode, departs.UTC())
}

func getJourney(ctx context.Context, q Querier, op, where string, args ...any) (*model.JourneyDetails, error) {
	d, err := scanJourney(q.QueryRowContext(ctx, journeySelect+"\nWHERE "+where, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, Classify(op, err)
	}
	return &d, nil
}

// ClaimSeatTx takes one seat on a journey. The predicate re-checks capacity
// at write time and the row stays locked until tx ends, so two transactions
// can never both take the last seat. It reports false when the journey is
// full.
func (r *JourneyRepo) ClaimSeatTx(ctx context.Context, tx *sql.Tx, journeyID int64) (bool, error) {
	const op = "journey.claimSeat"
	const q = `UPDATE journey SET nbooked = nbooked + 1
WHERE journey_id = ?
  AND nbooked < (SELECT v.capacity FROM vehicle v WHERE v.vehicle_code = journey.vehicle_code)`
	res, err := tx.ExecContext(ctx, q, journeyID)
	if err != nil {
		return false, Classify(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, Classify(op, err)
	}
	return n == 1, nil
}

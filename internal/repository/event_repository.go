package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/olympics-logistics/internal/model"
)

// EventRepo reads the sport catalogue, events and raw result facts.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns an EventRepo bound to db.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// ResultRow is an unmapped result line. MedalCode is the stored code, nil
// when the column is NULL.
type ResultRow struct {
	Participant string
	CountryName string
	MedalCode   *string
}

// ListSports returns every sport ordered by id.
func (r *EventRepo) ListSports(ctx context.Context) ([]model.Sport, error) {
	const op = "event.listSports"
	const q = `SELECT sport_id, sport_name, discipline FROM sport ORDER BY sport_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, Classify(op, err)
	}
	defer rows.Close()
	sports := []model.Sport{}
	for rows.Next() {
		var s model.Sport
		if err := rows.Scan(&s.SportID, &s.SportName, &s.Discipline); err != nil {
			return nil, Classify(op, err)
		}
		sports = append(sports, s)
	}
	return sports, Classify(op, rows.Err())
}

// ListEventsBySport returns the events of a sport with their venue name,
// earliest first.
func (r *EventRepo) ListEventsBySport(ctx context.Context, sportID int64) ([]model.Event, error) {
	const op = "event.listBySport"
	const q = `SELECT e.event_id, e.sport_id, e.event_name, e.event_gender, p.place_name, e.event_start
FROM event e
JOIN place p ON p.place_id = e.sport_venue
WHERE e.sport_id = ?
ORDER BY e.event_start, e.event_id`
	rows, err := r.db.QueryContext(ctx, q, sportID)
	if err != nil {
		return nil, Classify(op, err)
	}
	defer rows.Close()
	events := []model.Event{}
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.EventID, &e.SportID, &e.EventName, &e.Gender, &e.VenueName, &e.EventStart); err != nil {
			return nil, Classify(op, err)
		}
		utc(&e.EventStart)
		events = append(events, e)
	}
	return events, Classify(op, rows.Err())
}

// CountTeams returns the number of teams entered in an event.
func (r *EventRepo) CountTeams(ctx context.Context, eventID int64) (int, error) {
	const q = `SELECT COUNT(*) FROM team WHERE event_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, eventID).Scan(&n); err != nil {
		return 0, Classify("event.countTeams", err)
	}
	return n, nil
}

// TeamResults returns one row per team in the event.
func (r *EventRepo) TeamResults(ctx context.Context, eventID int64) ([]ResultRow, error) {
	const q = `SELECT t.team_name, c.country_name, t.medal
FROM team t
JOIN country c ON c.country_code = t.country_code
WHERE t.event_id = ?`
	return r.results(ctx, "event.teamResults", q, eventID, false)
}

// IndividualResults returns one row per athlete participating in the event.
func (r *EventRepo) IndividualResults(ctx context.Context, eventID int64) ([]ResultRow, error) {
	const q = `SELECT m.family_name, m.given_names, c.country_name, pa.medal
FROM participates pa
JOIN member m ON m.member_id = pa.athlete_id
JOIN country c ON c.country_code = m.country_code
WHERE pa.event_id = ?`
	return r.results(ctx, "event.individualResults", q, eventID, true)
}

func (r *EventRepo) results(ctx context.Context, op, q string, eventID int64, person bool) ([]ResultRow, error) {
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, Classify(op, err)
	}
	defer rows.Close()
	out := []ResultRow{}
	for rows.Next() {
		var (
			rr            ResultRow
			family, given string
			medal         sql.NullString
		)
		if person {
			err = rows.Scan(&family, &given, &rr.CountryName, &medal)
			rr.Participant = model.DisplayName(family, given)
		} else {
			err = rows.Scan(&rr.Participant, &rr.CountryName, &medal)
		}
		if err != nil {
			return nil, Classify(op, err)
		}
		rr.MedalCode = stringPtr(medal)
		out = append(out, rr)
	}
	return out, Classify(op, rows.Err())
}

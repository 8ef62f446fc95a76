// Package storetest provides an embedded SQLite store with the olympics
// schema and a small fixed data set for repository and service tests.
package storetest

import (
	"context"
	"database/sql"
	_ "embed"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/olympics-logistics/internal/utils"
)

//go:embed schema.sql
var schema string

// Day is the calendar day most seeded journeys depart on.
var Day = time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)

// At returns Day at hh:mm UTC.
func At(hh, mm int) time.Time {
	return Day.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
}

// Seeded member ids.
const (
	Thorpe    = "A000001" // athlete, AUS, plaintext password "swim"
	Freeman   = "A000002" // athlete, AUS, bcrypt password "run"
	Phelps    = "A000003" // athlete, USA
	SmithUSA  = "A000004" // athlete "Smith, John", USA
	SmithGBR  = "A000005" // athlete "Smith, John", GBR
	Official  = "O000001" // official
	Staff     = "S000001" // staff, "Citizen, John"
	Staff2    = "S000002" // staff
	Password  = "swim"
	Password2 = "run"
)

// Seeded journeys.
const (
	JourneyFull      int64 = 1 // BUS01 village->stadium 09:00, capacity 2, nbooked 2
	JourneyOneLeft   int64 = 2 // BUS02 village->stadium 10:00, capacity 5, nbooked 4
	JourneyVan       int64 = 3 // VAN01 village->airport 11:00, capacity 1, nbooked 0
	JourneyNextDay   int64 = 4 // BUS03 village->stadium next day 09:00, capacity 40
	JourneyFromPort  int64 = 5 // BUS03 airport->village 15:00, capacity 40
	EventFreestyle   int64 = 10
	EventRelay       int64 = 11
	EventWomens400   int64 = 20
	EventNoResults   int64 = 21
	SportSwimming    int64 = 1
	SportAthletics   int64 = 2
	SportUnscheduled int64 = 3
)

// Open returns a freshly seeded store in a temporary file. The pool is
// limited to one connection so concurrent transactions queue instead of
// failing with SQLITE_BUSY.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "olympics.db"))
	if err != nil {
		t.Fatalf("storetest: open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("storetest: pragma: %v", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		t.Fatalf("storetest: schema: %v", err)
	}
	if err := seed(ctx, db); err != nil {
		t.Fatalf("storetest: seed: %v", err)
	}
	return db
}

// Exec runs a statement against db and fails the test on error.
func Exec(t testing.TB, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.ExecContext(context.Background(), query, args...); err != nil {
		t.Fatalf("storetest: exec %q: %v", query, err)
	}
}

// Counts returns nbooked for a journey and the number of booking rows on it.
func Counts(t testing.TB, db *sql.DB, journeyID int64) (nbooked, bookings int) {
	t.Helper()
	ctx := context.Background()
	if err := db.QueryRowContext(ctx, `SELECT nbooked FROM journey WHERE journey_id = ?`, journeyID).Scan(&nbooked); err != nil {
		t.Fatalf("storetest: nbooked: %v", err)
	}
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM booking WHERE journey_id = ?`, journeyID).Scan(&bookings); err != nil {
		t.Fatalf("storetest: bookings: %v", err)
	}
	return nbooked, bookings
}

type row []any

func seed(ctx context.Context, db *sql.DB) error {
	hashed, err := utils.HashPassword(Password2, bcrypt.MinCost)
	if err != nil {
		return err
	}
	next := Day.AddDate(0, 0, 1)

	batches := []struct {
		stmt string
		rows []row
	}{
		{`INSERT INTO country (country_code, country_name) VALUES (?, ?)`, []row{
			{"AUS", "Australia"}, {"USA", "United States"}, {"GBR", "Great Britain"},
		}},
		{`INSERT INTO place (place_id, place_name) VALUES (?, ?)`, []row{
			{1, "Olympic Village"}, {2, "Airport"}, {3, "Stadium"}, {4, "Aquatic Centre"}, {5, "Harbour Hotel"},
		}},
		{`INSERT INTO member (member_id, title, given_names, family_name, country_code, accommodation, pass_word) VALUES (?, ?, ?, ?, ?, ?, ?)`, []row{
			{Thorpe, "Mr", "Ian", "Thorpe", "AUS", 1, Password},
			{Freeman, "Ms", "Cathy", "Freeman", "AUS", 1, hashed},
			{Phelps, "Mr", "Michael", "Phelps", "USA", 5, "fly"},
			{SmithUSA, "Mr", "John", "Smith", "USA", 1, "x"},
			{SmithGBR, "Mr", "John", "Smith", "GBR", 1, "x"},
			{Official, "Dr", "Jane", "Doe", "GBR", 5, "whistle"},
			{Staff, "Mr", "John", "Citizen", "AUS", 5, "staff"},
			{Staff2, "Ms", "Ann", "Lee", "AUS", 5, "staff"},
		}},
		{`INSERT INTO athlete (member_id) VALUES (?)`, []row{{Thorpe}, {Freeman}, {Phelps}, {SmithUSA}, {SmithGBR}}},
		{`INSERT INTO official (member_id) VALUES (?)`, []row{{Official}}},
		{`INSERT INTO sport (sport_id, sport_name, discipline) VALUES (?, ?, ?)`, []row{
			{SportSwimming, "Swimming", "Aquatics"}, {SportAthletics, "Athletics", "Track"}, {SportUnscheduled, "Curling", "Ice"},
		}},
		{`INSERT INTO event (event_id, sport_id, event_name, event_gender, sport_venue, event_start) VALUES (?, ?, ?, ?, ?, ?)`, []row{
			{EventRelay, SportSwimming, "4x200m Freestyle Relay", "M", 4, At(19, 0)},
			{EventFreestyle, SportSwimming, "400m Freestyle", "M", 4, At(18, 0)},
			{EventWomens400, SportAthletics, "400m", "W", 3, At(20, 0)},
			{EventNoResults, SportAthletics, "Marathon", "W", 3, next},
		}},
		{`INSERT INTO participates (event_id, athlete_id, medal) VALUES (?, ?, ?)`, []row{
			{EventFreestyle, Thorpe, "G"},
			{EventFreestyle, Phelps, "S"},
			{EventFreestyle, SmithUSA, nil},
			{EventWomens400, Freeman, "G"},
		}},
		{`INSERT INTO team (team_name, event_id, country_code, medal) VALUES (?, ?, ?, ?)`, []row{
			{"Australia", EventRelay, "AUS", "G"},
			{"United States", EventRelay, "USA", "S"},
			{"Great Britain", EventRelay, "GBR", nil},
		}},
		{`INSERT INTO teammember (team_name, event_id, athlete_id) VALUES (?, ?, ?)`, []row{
			{"Australia", EventRelay, Thorpe},
			{"United States", EventRelay, Phelps},
			{"Great Britain", EventRelay, SmithGBR},
		}},
		{`INSERT INTO vehicle (vehicle_code, capacity) VALUES (?, ?)`, []row{
			{"BUS01", 2}, {"BUS02", 5}, {"VAN01", 1}, {"BUS03", 40},
		}},
		{`INSERT INTO journey (journey_id, vehicle_code, from_place, to_place, depart_time, arrive_time, nbooked) VALUES (?, ?, ?, ?, ?, ?, ?)`, []row{
			{JourneyFull, "BUS01", 1, 3, At(9, 0), At(9, 30), 2},
			{JourneyOneLeft, "BUS02", 1, 3, At(10, 0), At(10, 30), 4},
			{JourneyVan, "VAN01", 1, 2, At(11, 0), At(12, 0), 0},
			{JourneyNextDay, "BUS03", 1, 3, next.Add(9 * time.Hour), next.Add(9*time.Hour + 30*time.Minute), 0},
			{JourneyFromPort, "BUS03", 2, 1, At(15, 0), At(16, 0), 1},
		}},
		{`INSERT INTO booking (booked_for, booked_by, when_booked, journey_id) VALUES (?, ?, ?, ?)`, []row{
			{Thorpe, Staff, Day.Add(-48 * time.Hour), JourneyFull},
			{Freeman, Staff, Day.Add(-47 * time.Hour), JourneyFull},
			{Thorpe, Staff2, Day.Add(-24 * time.Hour), JourneyOneLeft},
			{Freeman, Staff2, Day.Add(-24 * time.Hour), JourneyOneLeft},
			{Phelps, Staff2, Day.Add(-23 * time.Hour), JourneyOneLeft},
			{Official, Staff2, Day.Add(-22 * time.Hour), JourneyOneLeft},
			{Phelps, Staff, Day.Add(-2 * time.Hour), JourneyFromPort},
		}},
	}

	for _, b := range batches {
		for _, r := range b.rows {
			if _, err := db.ExecContext(ctx, b.stmt, r...); err != nil {
				return err
			}
		}
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/olympics-logistics/internal/model"
	"github.com/iliyamo/olympics-logistics/internal/storetest"
)

func TestCheckLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		id       string
		password string
		wantType model.Role
	}{
		{"plaintext credential", storetest.Thorpe, storetest.Password, model.RoleAthlete},
		{"bcrypt credential", storetest.Freeman, storetest.Password2, model.RoleAthlete},
		{"wrong password", storetest.Thorpe, "Swim", ""},
		{"unknown member", "Z999999", "anything", ""},
		{"official", storetest.Official, "whistle", model.RoleOfficial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := f.query.CheckLogin(ctx, tt.id, tt.password)
			if err != nil {
				t.Fatalf("CheckLogin() error = %v", err)
			}
			if tt.wantType == "" {
				if m != nil {
					t.Errorf("CheckLogin() = %+v, want nil", m)
				}
				return
			}
			if m == nil {
				t.Fatal("CheckLogin() = nil, want member")
			}
			if m.MemberID != tt.id || m.MemberType != tt.wantType {
				t.Errorf("member = %s/%s, want %s/%s", m.MemberID, m.MemberType, tt.id, tt.wantType)
			}
		})
	}

	if _, err := f.query.CheckLogin(ctx, "a b", "x"); !errors.Is(err, model.ErrValidation) {
		t.Errorf("CheckLogin(malformed) error = %v, want ErrValidation", err)
	}
}

func TestGetSportsAndEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sports, err := f.query.GetSports(ctx)
	if err != nil {
		t.Fatalf("GetSports() error = %v", err)
	}
	if len(sports) != 3 || sports[0].SportName != "Swimming" || sports[0].Discipline != "Aquatics" {
		t.Errorf("GetSports() = %+v", sports)
	}

	events, err := f.query.GetEventsOfSport(ctx, storetest.SportSwimming)
	if err != nil {
		t.Fatalf("GetEventsOfSport() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("GetEventsOfSport() = %+v, want 2 events", events)
	}
	if events[0].EventID != storetest.EventFreestyle || events[1].EventID != storetest.EventRelay {
		t.Errorf("order = %d, %d; want earliest start first", events[0].EventID, events[1].EventID)
	}
	if events[0].VenueName != "Aquatic Centre" || events[0].Gender != "M" || !events[0].EventStart.Equal(storetest.At(18, 0)) {
		t.Errorf("event = %+v", events[0])
	}

	none, err := f.query.GetEventsOfSport(ctx, storetest.SportUnscheduled)
	if err != nil || len(none) != 0 {
		t.Errorf("GetEventsOfSport(unscheduled) = %v, %v; want empty", none, err)
	}
	if _, err := f.query.GetEventsOfSport(ctx, -1); !errors.Is(err, model.ErrValidation) {
		t.Errorf("GetEventsOfSport(-1) error = %v, want ErrValidation", err)
	}
}

func TestFindJourneys_AvailableSeats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.query.FindJourneys(ctx, "Olympic Village", "Stadium", storetest.Day)
	if err != nil {
		t.Fatalf("FindJourneys() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("FindJourneys() = %+v, want 2 journeys", got)
	}
	if got[0].JourneyID != storetest.JourneyFull || got[1].JourneyID != storetest.JourneyOneLeft {
		t.Errorf("ids = %d, %d", got[0].JourneyID, got[1].JourneyID)
	}
	for _, j := range got {
		d, err := f.query.GetJourneyDetails(ctx, j.JourneyID)
		if err != nil {
			t.Fatalf("GetJourneyDetails() error = %v", err)
		}
		if j.AvailableSeats != d.Capacity-d.NBooked {
			t.Errorf("journey %d available_seats = %d, want %d", j.JourneyID, j.AvailableSeats, d.Capacity-d.NBooked)
		}
	}
}

func TestFindJourneys_DayBoundaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// late evening in a zone ahead of UTC still names the same calendar day
	sydney := time.FixedZone("AEST", 10*60*60)
	got, err := f.query.FindJourneys(ctx, "Olympic Village", "Stadium", time.Date(2026, time.July, 2, 23, 0, 0, 0, sydney))
	if err != nil {
		t.Fatalf("FindJourneys() error = %v", err)
	}
	if len(got) != 1 || got[0].JourneyID != storetest.JourneyNextDay || got[0].AvailableSeats != 40 {
		t.Errorf("FindJourneys(next day) = %+v", got)
	}

	none, err := f.query.FindJourneys(ctx, "Stadium", "Olympic Village", storetest.Day)
	if err != nil || len(none) != 0 {
		t.Errorf("FindJourneys(reverse) = %v, %v; want empty", none, err)
	}
	if _, err := f.query.FindJourneys(ctx, " ", "Stadium", storetest.Day); !errors.Is(err, model.ErrValidation) {
		t.Errorf("FindJourneys(blank origin) error = %v, want ErrValidation", err)
	}
}

func TestGetJourneyDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d, err := f.query.GetJourneyDetails(ctx, storetest.JourneyOneLeft)
	if err != nil {
		t.Fatalf("GetJourneyDetails() error = %v", err)
	}
	if d.Capacity != 5 || d.NBooked != 4 || d.Available() != 1 || d.VehicleCode != "BUS02" {
		t.Errorf("details = %+v", d)
	}

	missing, err := f.query.GetJourneyDetails(ctx, 999)
	if err != nil || missing != nil {
		t.Errorf("GetJourneyDetails(999) = %v, %v; want nil, nil", missing, err)
	}
}

func TestMemberBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.query.GetMemberBookings(ctx, storetest.Thorpe)
	if err != nil {
		t.Fatalf("GetMemberBookings() error = %v", err)
	}
	if len(got) != 2 || got[0].JourneyID != storetest.JourneyFull || got[1].JourneyID != storetest.JourneyOneLeft {
		t.Errorf("GetMemberBookings() = %+v", got)
	}

	empty, err := f.query.GetMemberBookings(ctx, storetest.Staff2)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("GetMemberBookings(no bookings) = %v, %v; want empty slice", empty, err)
	}

	rec, err := f.query.GetBookingDetails(ctx, storetest.Thorpe, storetest.JourneyFull)
	if err != nil {
		t.Fatalf("GetBookingDetails() error = %v", err)
	}
	if rec.BookedByName != "Citizen, John" || rec.BookedForName != "Thorpe, Ian" || rec.DestName != "Stadium" {
		t.Errorf("GetBookingDetails() = %+v", rec)
	}

	none, err := f.query.GetBookingDetails(ctx, storetest.Staff2, storetest.JourneyFull)
	if err != nil || none != nil {
		t.Errorf("GetBookingDetails(no booking) = %v, %v; want nil, nil", none, err)
	}
}

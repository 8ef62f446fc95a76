package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/olympics-logistics/internal/model"
	"github.com/iliyamo/olympics-logistics/internal/storetest"
)

func vanRequest(beneficiary string) ReserveRequest {
	return ReserveRequest{
		StaffID:     storetest.Staff,
		Beneficiary: beneficiary,
		VehicleCode: "VAN01",
		Departs:     storetest.At(11, 0),
	}
}

func TestReserveSeat_Success(t *testing.T) {
	f := newFixture(t)

	rec, err := f.booking.ReserveSeat(context.Background(), vanRequest(storetest.Thorpe))
	if err != nil {
		t.Fatalf("ReserveSeat() error = %v", err)
	}

	if rec.BookedForName != "Thorpe, Ian" {
		t.Errorf("BookedForName = %q, want %q", rec.BookedForName, "Thorpe, Ian")
	}
	if rec.BookedByName != "Citizen, John" {
		t.Errorf("BookedByName = %q, want %q", rec.BookedByName, "Citizen, John")
	}
	if rec.JourneyID != storetest.JourneyVan || rec.VehicleCode != "VAN01" {
		t.Errorf("journey = %d/%s, want %d/VAN01", rec.JourneyID, rec.VehicleCode, storetest.JourneyVan)
	}
	if rec.OriginName != "Olympic Village" || rec.DestName != "Airport" {
		t.Errorf("route = %s -> %s", rec.OriginName, rec.DestName)
	}
	if !rec.WhenDeparts.Equal(storetest.At(11, 0)) || !rec.WhenArrives.Equal(storetest.At(12, 0)) {
		t.Errorf("times = %v -> %v", rec.WhenDeparts, rec.WhenArrives)
	}
	if want := fixedNow.Truncate(time.Second); !rec.WhenBooked.Equal(want) {
		t.Errorf("WhenBooked = %v, want %v", rec.WhenBooked, want)
	}

	nbooked, bookings := storetest.Counts(t, f.db, storetest.JourneyVan)
	if nbooked != 1 || bookings != 1 {
		t.Errorf("after booking nbooked=%d bookings=%d, want 1/1", nbooked, bookings)
	}
	if f.notes.count() != 1 || f.notes.got[0].BeneficiaryID != storetest.Thorpe {
		t.Errorf("notifier got %+v, want one confirmation for %s", f.notes.got, storetest.Thorpe)
	}
	if f.metrics.outcome(OutcomeSuccess) != 1 || f.metrics.published != 1 {
		t.Errorf("metrics = %+v", f.metrics.outcomes)
	}
}

func TestReserveSeat_RoundTripWithBookingDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.booking.ReserveSeat(ctx, vanRequest(storetest.Freeman))
	if err != nil {
		t.Fatalf("ReserveSeat() error = %v", err)
	}
	got, err := f.query.GetBookingDetails(ctx, storetest.Freeman, rec.JourneyID)
	if err != nil {
		t.Fatalf("GetBookingDetails() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetBookingDetails() = nil after successful reservation")
	}

	if got.BookedForName != rec.BookedForName || got.BookedByName != rec.BookedByName {
		t.Errorf("names = %q/%q, want %q/%q", got.BookedForName, got.BookedByName, rec.BookedForName, rec.BookedByName)
	}
	if got.OriginName != rec.OriginName || got.DestName != rec.DestName || got.VehicleCode != rec.VehicleCode {
		t.Errorf("route = %+v, want %+v", got, rec)
	}
	if !got.WhenDeparts.Equal(rec.WhenDeparts) || !got.WhenArrives.Equal(rec.WhenArrives) || !got.WhenBooked.Equal(rec.WhenBooked) {
		t.Errorf("times = %v %v %v, want %v %v %v",
			got.WhenDeparts, got.WhenArrives, got.WhenBooked, rec.WhenDeparts, rec.WhenArrives, rec.WhenBooked)
	}
}

func TestReserveSeat_FullJourneyLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)

	_, err := f.booking.ReserveSeat(context.Background(), ReserveRequest{
		StaffID:     storetest.Staff,
		Beneficiary: storetest.Phelps,
		VehicleCode: "BUS01",
		Departs:     storetest.At(9, 0),
	})
	if !errors.Is(err, model.ErrCapacityExceeded) {
		t.Fatalf("ReserveSeat() error = %v, want ErrCapacityExceeded", err)
	}
	nbooked, bookings := storetest.Counts(t, f.db, storetest.JourneyFull)
	if nbooked != 2 || bookings != 2 {
		t.Errorf("nbooked=%d bookings=%d, want 2/2", nbooked, bookings)
	}
	if f.notes.count() != 0 {
		t.Error("notifier called for a rejected reservation")
	}
	if f.metrics.outcome(OutcomeFull) != 1 {
		t.Errorf("metrics = %+v", f.metrics.outcomes)
	}
}

func TestReserveSeat_FailuresRollBack(t *testing.T) {
	tests := []struct {
		name    string
		req     ReserveRequest
		want    error
		journey int64
		before  int
	}{
		{
			name:    "unknown journey",
			req:     ReserveRequest{StaffID: storetest.Staff, Beneficiary: storetest.Thorpe, VehicleCode: "VAN01", Departs: storetest.At(13, 0)},
			want:    model.ErrNotFound,
			journey: storetest.JourneyVan,
		},
		{
			name:    "unknown beneficiary after seat claimed",
			req:     vanRequest("Z999999"),
			want:    model.ErrNotFound,
			journey: storetest.JourneyVan,
		},
		{
			name:    "unknown staff",
			req:     ReserveRequest{StaffID: "S999999", Beneficiary: storetest.Thorpe, VehicleCode: "VAN01", Departs: storetest.At(11, 0)},
			want:    model.ErrNotFound,
			journey: storetest.JourneyVan,
		},
		{
			name:    "ambiguous display name",
			req:     vanRequest("Smith, John"),
			want:    model.ErrValidation,
			journey: storetest.JourneyVan,
		},
		{
			name:    "member already booked on journey",
			req:     ReserveRequest{StaffID: storetest.Staff, Beneficiary: storetest.Phelps, VehicleCode: "BUS03", Departs: storetest.At(15, 0)},
			want:    model.ErrQuery,
			journey: storetest.JourneyFromPort,
			before:  1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.booking.ReserveSeat(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ReserveSeat() error = %v, want %v", err, tt.want)
			}
			nbooked, bookings := storetest.Counts(t, f.db, tt.journey)
			if nbooked != tt.before || bookings != tt.before {
				t.Errorf("nbooked=%d bookings=%d, want %d/%d", nbooked, bookings, tt.before, tt.before)
			}
		})
	}
}

func TestReserveSeat_RejectsMalformedInput(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		req  ReserveRequest
	}{
		{"staff id", ReserveRequest{StaffID: "S-1", Beneficiary: storetest.Thorpe, VehicleCode: "VAN01", Departs: storetest.At(11, 0)}},
		{"beneficiary", vanRequest("no comma here")},
		{"empty beneficiary", vanRequest("")},
		{"vehicle code", ReserveRequest{StaffID: storetest.Staff, Beneficiary: storetest.Thorpe, VehicleCode: "", Departs: storetest.At(11, 0)}},
		{"departure", ReserveRequest{StaffID: storetest.Staff, Beneficiary: storetest.Thorpe, VehicleCode: "VAN01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.booking.ReserveSeat(context.Background(), tt.req); !errors.Is(err, model.ErrValidation) {
				t.Errorf("ReserveSeat() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestReserveSeat_BeneficiaryByDisplayName(t *testing.T) {
	f := newFixture(t)

	rec, err := f.booking.ReserveSeat(context.Background(), vanRequest("Freeman, Cathy"))
	if err != nil {
		t.Fatalf("ReserveSeat() error = %v", err)
	}
	if rec.BookedForName != "Freeman, Cathy" {
		t.Errorf("BookedForName = %q", rec.BookedForName)
	}
	if got := f.notes.got[0].BeneficiaryID; got != storetest.Freeman {
		t.Errorf("BeneficiaryID = %q, want %q", got, storetest.Freeman)
	}
}

func TestReserveSeat_NotifierFailureKeepsBooking(t *testing.T) {
	f := newFixture(t)
	f.notes.fail = true

	if _, err := f.booking.ReserveSeat(context.Background(), vanRequest(storetest.Thorpe)); err != nil {
		t.Fatalf("ReserveSeat() error = %v, want success despite notifier failure", err)
	}
	if nbooked, bookings := storetest.Counts(t, f.db, storetest.JourneyVan); nbooked != 1 || bookings != 1 {
		t.Errorf("nbooked=%d bookings=%d, want 1/1", nbooked, bookings)
	}
	if f.metrics.failed != 1 {
		t.Errorf("publish failures = %d, want 1", f.metrics.failed)
	}
}

// race reserves one seat per beneficiary concurrently and returns the
// number of successes and capacity failures.
func race(t *testing.T, f *fixture, vehicle string, departs time.Time, beneficiaries []string) (ok, full int) {
	t.Helper()
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	start := make(chan struct{})
	for _, b := range beneficiaries {
		wg.Add(1)
		go func(b string) {
			defer wg.Done()
			<-start
			_, err := f.booking.ReserveSeat(context.Background(), ReserveRequest{
				StaffID:     storetest.Staff,
				Beneficiary: b,
				VehicleCode: vehicle,
				Departs:     departs,
			})
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}(b)
	}
	close(start)
	wg.Wait()

	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, model.ErrCapacityExceeded):
			full++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	return ok, full
}

func TestReserveSeat_ConcurrentLastSeat(t *testing.T) {
	f := newFixture(t)
	beneficiaries := []string{
		storetest.Thorpe, storetest.Freeman, storetest.Phelps, storetest.SmithUSA,
		storetest.SmithGBR, storetest.Official, storetest.Staff, storetest.Staff2,
	}

	ok, full := race(t, f, "VAN01", storetest.At(11, 0), beneficiaries)

	if ok != 1 || full != len(beneficiaries)-1 {
		t.Errorf("successes=%d capacity failures=%d, want 1/%d", ok, full, len(beneficiaries)-1)
	}
	if nbooked, bookings := storetest.Counts(t, f.db, storetest.JourneyVan); nbooked != 1 || bookings != 1 {
		t.Errorf("nbooked=%d bookings=%d, want 1/1", nbooked, bookings)
	}
}

func TestReserveSeat_TwoCallersOneSeatLeft(t *testing.T) {
	f := newFixture(t)

	ok, full := race(t, f, "BUS02", storetest.At(10, 0), []string{storetest.SmithUSA, storetest.SmithGBR})

	if ok != 1 || full != 1 {
		t.Errorf("successes=%d capacity failures=%d, want 1/1", ok, full)
	}
	if nbooked, bookings := storetest.Counts(t, f.db, storetest.JourneyOneLeft); nbooked != 5 || bookings != 5 {
		t.Errorf("nbooked=%d bookings=%d, want 5/5", nbooked, bookings)
	}
}

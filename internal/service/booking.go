package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/olympics-logistics/internal/database"
	"github.com/iliyamo/olympics-logistics/internal/model"
	"github.com/iliyamo/olympics-logistics/internal/repository"
)

// Notifier is told about every committed booking. A failing notifier never
// undoes the booking.
type Notifier interface {
	BookingConfirmed(ctx context.Context, c Confirmation) error
}

// Confirmation is what a Notifier receives after commit.
type Confirmation struct {
	BeneficiaryID string
	StaffID       string
	Record        model.BookingRecord
}

// BookingMetrics receives one observation per reservation attempt.
type BookingMetrics interface {
	ObserveBooking(outcome string, elapsed time.Duration)
	ObservePublish(err error)
}

// ReserveRequest identifies the seat to reserve. Beneficiary is a member id
// or, as a fallback, a "Family, Given" display name that must match exactly
// one member.
type ReserveRequest struct {
	StaffID     string
	Beneficiary string
	VehicleCode string
	Departs     time.Time
}

// BookingService runs the seat reservation transaction.
type BookingService struct {
	db       *sql.DB
	members  *repository.MemberRepo
	journeys *repository.JourneyRepo
	bookings *repository.BookingRepo
	notifier Notifier
	metrics  BookingMetrics
	now      func() time.Time
}

type BookingOption func(*BookingService)

func WithNotifier(n Notifier) BookingOption      { return func(s *BookingService) { s.notifier = n } }
func WithMetrics(m BookingMetrics) BookingOption { return func(s *BookingService) { s.metrics = m } }
func WithClock(now func() time.Time) BookingOption {
	return func(s *BookingService) { s.now = now }
}

func NewBookingService(db *sql.DB, members *repository.MemberRepo, journeys *repository.JourneyRepo, bookings *repository.BookingRepo, opts ...BookingOption) *BookingService {
	s := &BookingService{
		db:       db,
		members:  members,
		journeys: journeys,
		bookings: bookings,
		metrics:  nopMetrics{},
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Outcome labels used for metrics and logs.
const (
	OutcomeSuccess  = "success"
	OutcomeFull     = "capacity_exceeded"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// ReserveSeat books one seat on the journey the vehicle makes at
// req.Departs. Either the booking row is inserted and the journey's booked
// count goes up by one, or nothing changes.
func (s *BookingService) ReserveSeat(ctx context.Context, req ReserveRequest) (*model.BookingRecord, error) {
	start := time.Now()
	conf, err := s.reserve(ctx, req)
	outcome := outcomeOf(err)
	s.metrics.ObserveBooking(outcome, time.Since(start))

	if err != nil {
		lvl := zerolog.WarnLevel
		if outcome == OutcomeError {
			lvl = zerolog.ErrorLevel
		}
		log.WithLevel(lvl).Err(err).
			Str("staff_id", req.StaffID).
			Str("vehicle", req.VehicleCode).
			Time("departs", req.Departs).
			Str("outcome", outcome).
			Msg("reservation rejected")
		return nil, err
	}

	log.Info().
		Str("staff_id", conf.StaffID).
		Str("member_id", conf.BeneficiaryID).
		Int64("journey_id", conf.Record.JourneyID).
		Str("vehicle", conf.Record.VehicleCode).
		Msg("seat reserved")

	if s.notifier != nil {
		perr := s.notifier.BookingConfirmed(ctx, *conf)
		s.metrics.ObservePublish(perr)
		if perr != nil {
			log.Warn().Err(perr).Int64("journey_id", conf.Record.JourneyID).Msg("booking event not published")
		}
	}
	rec := conf.Record
	return &rec, nil
}

func (s *BookingService) reserve(ctx context.Context, req ReserveRequest) (*Confirmation, error) {
	const op = "reserveSeat"
	if err := checkMemberID(op, "staff id", req.StaffID); err != nil {
		return nil, err
	}
	if !codePattern.MatchString(req.VehicleCode) {
		return nil, model.Invalid(op, "vehicle code %q must be alphanumeric", req.VehicleCode)
	}
	if req.Departs.IsZero() {
		return nil, model.Invalid(op, "departure time is required")
	}
	ref, err := parseBeneficiary(op, req.Beneficiary)
	if err != nil {
		return nil, err
	}

	var conf *Confirmation
	err = database.WithTx(ctx, s.db, nil, func(tx *sql.Tx) error {
		j, err := s.journeys.LocateTx(ctx, tx, req.VehicleCode, req.Departs)
		if err != nil {
			return err
		}
		if j == nil {
			return model.NotFound(op, "no journey for vehicle %s departing %s", req.VehicleCode, req.Departs.UTC().Format(time.RFC3339))
		}
		if j.NBooked >= j.Capacity {
			return full(op, j)
		}
		claimed, err := s.journeys.ClaimSeatTx(ctx, tx, j.JourneyID)
		if err != nil {
			return err
		}
		if !claimed {
			return full(op, j)
		}

		staffName, ok, err := s.members.DisplayNameTx(ctx, tx, req.StaffID)
		if err != nil {
			return err
		}
		if !ok {
			return model.NotFound(op, "staff member %s", req.StaffID)
		}
		beneficiaryID, beneficiaryName, err := s.resolve(ctx, tx, op, ref)
		if err != nil {
			return err
		}

		when := s.now().UTC().Truncate(time.Second)
		if err := s.bookings.CreateTx(ctx, tx, repository.BookingRow{
			BookedFor:  beneficiaryID,
			BookedBy:   req.StaffID,
			WhenBooked: when,
			JourneyID:  j.JourneyID,
		}); err != nil {
			return err
		}

		conf = &Confirmation{
			BeneficiaryID: beneficiaryID,
			StaffID:       req.StaffID,
			Record: model.BookingRecord{
				BookedByName:  staffName,
				BookedForName: beneficiaryName,
				WhenBooked:    when,
				JourneyID:     j.JourneyID,
				VehicleCode:   j.VehicleCode,
				OriginName:    j.OriginName,
				DestName:      j.DestName,
				WhenDeparts:   j.WhenDeparts,
				WhenArrives:   j.WhenArrives,
			},
		}
		return nil
	})
	if err != nil {
		return nil, repository.Classify(op, err)
	}
	return conf, nil
}

func full(op string, j *model.JourneyDetails) error {
	return model.Wrap(op, model.ErrCapacityExceeded,
		fmt.Errorf("journey %d (%s at %s) has no free seat of %d", j.JourneyID, j.VehicleCode, j.WhenDeparts.Format(time.RFC3339), j.Capacity))
}

// beneficiaryRef is either a member id or a split display name.
type beneficiaryRef struct {
	id     string
	family string
	given  string
}

func parseBeneficiary(op, s string) (beneficiaryRef, error) {
	s = strings.TrimSpace(s)
	if codePattern.MatchString(s) {
		return beneficiaryRef{id: s}, nil
	}
	family, given, ok := strings.Cut(s, ", ")
	family, given = strings.TrimSpace(family), strings.TrimSpace(given)
	if !ok || family == "" || given == "" {
		return beneficiaryRef{}, model.Invalid(op, "beneficiary %q is neither a member id nor a \"Family, Given\" name", s)
	}
	return beneficiaryRef{family: family, given: given}, nil
}

func (s *BookingService) resolve(ctx context.Context, tx *sql.Tx, op string, ref beneficiaryRef) (id, name string, err error) {
	if ref.id != "" {
		name, ok, err := s.members.DisplayNameTx(ctx, tx, ref.id)
		if err != nil {
			return "", "", err
		}
		if !ok {
			return "", "", model.NotFound(op, "beneficiary %s", ref.id)
		}
		return ref.id, name, nil
	}

	ids, err := s.members.FindIDsByNameTx(ctx, tx, ref.family, ref.given)
	if err != nil {
		return "", "", err
	}
	display := model.DisplayName(ref.family, ref.given)
	switch len(ids) {
	case 0:
		return "", "", model.NotFound(op, "beneficiary %q", display)
	case 1:
		return ids[0], display, nil
	default:
		return "", "", model.Invalid(op, "beneficiary name %q matches %d members, use the member id", display, len(ids))
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	switch model.KindOf(err) {
	case model.ErrCapacityExceeded:
		return OutcomeFull
	case model.ErrNotFound:
		return OutcomeNotFound
	case model.ErrValidation:
		return OutcomeInvalid
	}
	return OutcomeError
}

type nopMetrics struct{}

func (nopMetrics) ObserveBooking(string, time.Duration) {}
func (nopMetrics) ObservePublish(error)                 {}

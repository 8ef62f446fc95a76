// Package service implements the operations exposed by the API: simple
// lookups, aggregations over result facts and the seat reservation
// transaction.
package service

import (
	"context"
	"time"

	"github.com/iliyamo/olympics-logistics/internal/model"
	"github.com/iliyamo/olympics-logistics/internal/repository"
	"github.com/iliyamo/olympics-logistics/internal/utils"
)

// QueryService answers the read-only lookups. A well-formed lookup that
// matches nothing yields a nil record or an empty slice, never an error.
type QueryService struct {
	members  *repository.MemberRepo
	events   *repository.EventRepo
	journeys *repository.JourneyRepo
	bookings *repository.BookingRepo
	verify   func(stored, plain string) bool
}

func NewQueryService(members *repository.MemberRepo, events *repository.EventRepo, journeys *repository.JourneyRepo, bookings *repository.BookingRepo) *QueryService {
	return &QueryService{
		members:  members,
		events:   events,
		journeys: journeys,
		bookings: bookings,
		verify:   utils.VerifyPassword,
	}
}

// CheckLogin returns the member when the password matches, nil otherwise.
func (s *QueryService) CheckLogin(ctx context.Context, memberID, password string) (*model.Member, error) {
	const op = "checkLogin"
	if err := checkMemberID(op, "member id", memberID); err != nil {
		return nil, err
	}
	cred, err := s.members.GetCredentials(ctx, memberID)
	if err != nil || cred == nil {
		return nil, err
	}
	if !s.verify(cred.Password, password) {
		return nil, nil
	}
	return &cred.Member, nil
}

func (s *QueryService) GetSports(ctx context.Context) ([]model.Sport, error) {
	return s.events.ListSports(ctx)
}

func (s *QueryService) GetEventsOfSport(ctx context.Context, sportID int64) ([]model.Event, error) {
	if err := checkID("getEventsOfSport", "sport id", sportID); err != nil {
		return nil, err
	}
	return s.events.ListEventsBySport(ctx, sportID)
}

// FindJourneys lists journeys from origin to dest departing on the calendar
// day of date, interpreted in UTC.
func (s *QueryService) FindJourneys(ctx context.Context, origin, dest string, date time.Time) ([]model.Journey, error) {
	const op = "findJourneys"
	if err := checkPlace(op, "origin", origin); err != nil {
		return nil, err
	}
	if err := checkPlace(op, "destination", dest); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, model.Invalid(op, "date is required")
	}
	y, m, d := date.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return s.journeys.Find(ctx, origin, dest, from, from.AddDate(0, 0, 1))
}

func (s *QueryService) GetJourneyDetails(ctx context.Context, journeyID int64) (*model.JourneyDetails, error) {
	if err := checkID("getJourneyDetails", "journey id", journeyID); err != nil {
		return nil, err
	}
	return s.journeys.GetDetails(ctx, journeyID)
}

func (s *QueryService) GetBookingDetails(ctx context.Context, memberID string, journeyID int64) (*model.BookingRecord, error) {
	const op = "getBookingDetails"
	if err := checkMemberID(op, "member id", memberID); err != nil {
		return nil, err
	}
	if err := checkID(op, "journey id", journeyID); err != nil {
		return nil, err
	}
	return s.bookings.GetDetails(ctx, memberID, journeyID)
}

func (s *QueryService) GetMemberBookings(ctx context.Context, memberID string) ([]model.BookingSummary, error) {
	if err := checkMemberID("getMemberBookings", "member id", memberID); err != nil {
		return nil, err
	}
	return s.bookings.ListByMember(ctx, memberID)
}

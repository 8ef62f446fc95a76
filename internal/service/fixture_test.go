package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/olympics-logistics/internal/repository"
	"github.com/iliyamo/olympics-logistics/internal/storetest"
)

type fixture struct {
	db      *sql.DB
	query   *QueryService
	agg     *AggregationService
	booking *BookingService
	notes   *recordingNotifier
	metrics *recordingMetrics
}

var fixedNow = time.Date(2026, time.June, 30, 8, 15, 30, 500_000_000, time.UTC)

func newFixture(t *testing.T, opts ...BookingOption) *fixture {
	t.Helper()
	db := storetest.Open(t)
	members := repository.NewMemberRepo(db)
	events := repository.NewEventRepo(db)
	journeys := repository.NewJourneyRepo(db)
	bookings := repository.NewBookingRepo(db)

	f := &fixture{db: db, notes: &recordingNotifier{}, metrics: &recordingMetrics{}}
	opts = append([]BookingOption{
		WithNotifier(f.notes),
		WithMetrics(f.metrics),
		WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	f.query = NewQueryService(members, events, journeys, bookings)
	f.agg = NewAggregationService(members, events)
	f.booking = NewBookingService(db, members, journeys, bookings, opts...)
	return f
}

type recordingNotifier struct {
	mu   sync.Mutex
	got  []Confirmation
	fail bool
}

func (n *recordingNotifier) BookingConfirmed(_ context.Context, c Confirmation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, c)
	if n.fail {
		return errors.New("broker unreachable")
	}
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.got)
}

type recordingMetrics struct {
	mu        sync.Mutex
	outcomes  map[string]int
	published int
	failed    int
}

func (m *recordingMetrics) ObserveBooking(outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = map[string]int{}
	}
	m.outcomes[outcome]++
}

func (m *recordingMetrics) ObservePublish(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.failed++
		return
	}
	m.published++
}

func (m *recordingMetrics) outcome(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcomes[name]
}

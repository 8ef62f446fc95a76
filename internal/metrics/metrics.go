// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records booking outcomes and HTTP traffic.
type Collector struct {
	bookings       *prometheus.CounterVec
	bookingLatency prometheus.Histogram
	bookingEvents  *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "olympics_bookings_total",
			Help: "Seat reservation attempts by outcome.",
		}, []string{"outcome"}),
		bookingLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "olympics_booking_duration_seconds",
			Help:    "Time spent in the reservation transaction.",
			Buckets: prometheus.DefBuckets,
		}),
		bookingEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "olympics_booking_events_total",
			Help: "booking.confirmed publications by result.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "olympics_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "olympics_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		c.bookings,
		c.bookingLatency,
		c.bookingEvents,
		c.httpRequests,
		c.httpLatency,
	)
	return c
}

// ObserveBooking records one reservation attempt.
func (c *Collector) ObserveBooking(outcome string, elapsed time.Duration) {
	c.bookings.WithLabelValues(outcome).Inc()
	c.bookingLatency.Observe(elapsed.Seconds())
}

// ObservePublish records whether a booking event reached the broker.
func (c *Collector) ObservePublish(err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	c.bookingEvents.WithLabelValues(result).Inc()
}

// ObserveHTTP records one served request. route is the registered path
// pattern, not the raw URL, to keep label cardinality bounded.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

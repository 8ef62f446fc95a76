// Package router registers the HTTP routes and their middleware.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/olympics-logistics/internal/handler"
	"github.com/iliyamo/olympics-logistics/internal/middleware"
)

// RegisterRoutes exposes the unauthenticated operational endpoints: the
// health check and the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo, db handler.Pinger, metrics http.Handler) {
	e.GET("/healthz", handler.Health(db))
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}
}

// RegisterAuth maps the login endpoint. Tokens it issues are verified by the
// JWTAuth middleware on the member and booking groups.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
}

// RegisterPublic maps the guest browse endpoints. Sport, event and result
// listings pass through the response cache; journey availability changes
// with every booking and is never cached.
func RegisterPublic(e *echo.Echo, ev *handler.EventHandler, j *handler.JourneyHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.GET("/sports", ev.ListSports, cache)
	g.GET("/sports/:id/events", ev.ListEvents, cache)
	g.GET("/events/:id/results", ev.Results, cache)

	g.GET("/journeys", j.Find)
	g.GET("/journeys/:id", j.Details)
}

// RegisterMember maps the member profile and booking lookups behind JWT.
func RegisterMember(e *echo.Echo, m *handler.MemberHandler, jwtSecret string) {
	g := e.Group("/v1/members", middleware.JWTAuth(jwtSecret))
	g.GET("/:id", m.GetProfile)
	g.GET("/:id/bookings", m.ListBookings)
	g.GET("/:id/bookings/:journey_id", m.GetBooking)
}

// RegisterBooking maps seat reservation. JWTAuth runs before the rate
// limiter so buckets can be keyed by member.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	e.POST("/v1/bookings", b.Reserve, middleware.JWTAuth(jwtSecret), limit)
}

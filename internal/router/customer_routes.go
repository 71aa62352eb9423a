package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/salon-booking/internal/handler"
	"github.com/iliyamo/salon-booking/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1. All routes
// require a valid JWT; admins are accepted too so that staff can act on a
// customer's behalf. The rate limiter guards the write endpoints against
// rapid-fire booking attempts.
func RegisterCustomer(e *echo.Echo, b *handler.BookingHandler, ct *handler.CatalogHandler, l *handler.LoyaltyHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER", "ADMIN"),
	)

	// ---- Appointments ----
	g.POST("/appointments", b.Book, limiter)
	g.POST("/appointments/next-available", b.BookNextAvailable, limiter)
	g.GET("/appointments/suggest", b.SuggestSlot)
	g.GET("/appointments", b.List)
	g.DELETE("/appointments/:id", b.Cancel)

	// ---- Recommendations ----
	g.GET("/recommendations", ct.Recommend)

	// ---- Loyalty ----
	g.POST("/loyalty/redeem", l.Redeem, limiter)
	g.GET("/loyalty/history", l.History)
}

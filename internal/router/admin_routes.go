package router

// This file registers admin-specific routes for managing the service
// catalog, user accounts and the gallery. They are kept separate from the
// customer routes to keep concerns isolated.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/salon-booking/internal/handler"
	"github.com/iliyamo/salon-booking/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
// All routes require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, s *handler.AdminServiceHandler, u *handler.AdminUserHandler, gl *handler.GalleryHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Services ----
	g.POST("/services", s.Create)
	g.PUT("/services/:id", s.Update)
	g.PATCH("/services/:id", s.Update) // allow partial/semantic updates via PATCH as well
	g.DELETE("/services/:id", s.Delete)

	// ---- Users ----
	g.GET("/users", u.List)
	g.POST("/users/:id/points", u.AdjustPoints)

	// ---- Gallery ----
	g.POST("/gallery", gl.Upload)
	g.DELETE("/gallery/:name", gl.Delete)
}

package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/salon-booking/internal/handler"
	"github.com/iliyamo/salon-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems use this endpoint to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes. Unauthenticated
// operations live under /v1/auth, while the token-protected session
// endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	// Login creates the account on first use; there is no separate register
	// endpoint for customers.
	g.POST("/login", a.Login)
	g.POST("/admin-login", a.AdminLogin)
	// Refresh rotates the refresh token and issues a new access token.
	g.POST("/refresh", a.Refresh)
	// Logout accepts a JSON body with a `refresh_token` and invalidates that
	// single session. It deliberately does not require a JWT so that clients
	// with an expired access token can still end their session.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("CUSTOMER", "ADMIN"))
	auth.GET("/me", a.Me)
	// Logout here terminates every session of the authenticated user.
	auth.POST("/logout", a.LogoutAll)
}

// RegisterPublic registers unauthenticated browse endpoints: the service
// catalog, the gallery listing and the static gallery files. The cache
// middleware is applied only here since these responses are identical for
// every guest.
func RegisterPublic(e *echo.Echo, ct *handler.CatalogHandler, gl *handler.GalleryHandler, galleryDir string, cache echo.MiddlewareFunc) {
	e.GET("/v1/services", ct.ListServices, cache)
	e.GET("/v1/gallery", gl.List, cache)
	e.Static("/gallery", galleryDir)
}

package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/showgrid/showgrid/internal/handler"
	"github.com/showgrid/showgrid/internal/middleware"
	"github.com/showgrid/showgrid/internal/model"
)

// RegisterRoutes registers routes that need no authentication or
// dependencies.  Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register,
// login, refresh and logout live under /v1/auth without middleware;
// /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotating refresh: validates, revokes and issues a new pair.
	g.POST("/refresh", a.Refresh)
	// Non-rotating variant: fresh access token, same refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout works with either a bearer token (all sessions) or a
	// refresh token in the body (one session), so no JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleOrganizer, model.RoleCustomer),
	)
	auth.GET("/me", a.Me)
}

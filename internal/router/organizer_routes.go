package router

import (
	"github.com/labstack/echo/v4"

	"github.com/showgrid/showgrid/internal/handler"
	"github.com/showgrid/showgrid/internal/middleware"
	"github.com/showgrid/showgrid/internal/model"
)

// RegisterOrganizer registers ORGANIZER-scoped endpoints under /v1.
// All routes require a valid JWT and the ORGANIZER role.
func RegisterOrganizer(e *echo.Echo, v *handler.VenueHandler, w *handler.WizardHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleOrganizer),
	)

	// ---- Venues ----
	g.POST("/venues", v.CreateVenue)
	g.GET("/venues", v.ListVenues)
	g.GET("/venues/:id", v.GetVenue)

	// ---- Wizard sessions ----
	g.POST("/wizard/sessions", w.CreateSession)
	g.GET("/wizard/sessions/:sid", w.GetSession)
	g.DELETE("/wizard/sessions/:sid", w.DeleteSession)

	// Navigation: continue gates on step completion, back and goto do
	// not, but goto only reaches completed steps.
	g.POST("/wizard/sessions/:sid/continue", w.ContinueStep)
	g.POST("/wizard/sessions/:sid/back", w.BackStep)
	g.POST("/wizard/sessions/:sid/goto/:step", w.GotoStep)

	// ---- Step forms ----
	g.PUT("/wizard/sessions/:sid/details", w.SaveDetails)
	g.POST("/wizard/sessions/:sid/tiers", w.AddPriceTier)
	g.DELETE("/wizard/sessions/:sid/tiers/:id", w.DeletePriceTier)
	g.POST("/wizard/sessions/:sid/events", w.AddEvent)
	g.DELETE("/wizard/sessions/:sid/events/:id", w.DeleteEvent)
	g.POST("/wizard/sessions/:sid/showtimes", w.AddShowtime)
	g.DELETE("/wizard/sessions/:sid/showtimes/:id", w.DeleteShowtime)
	g.POST("/wizard/sessions/:sid/sections", w.AddSeatSection)
	g.DELETE("/wizard/sessions/:sid/sections/:id", w.DeleteSeatSection)

	// ---- Review & publish ----
	g.GET("/wizard/sessions/:sid/review", w.ReviewSummary)
	g.POST("/wizard/sessions/:sid/publish", w.PublishShow)
}

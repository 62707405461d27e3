package router

import (
	"github.com/labstack/echo/v4"

	"github.com/showgrid/showgrid/internal/handler"
)

// RegisterPublic registers the unauthenticated storefront endpoints.
// The optional cache middleware (nil to disable) short-circuits
// repeated GETs through Redis.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	mw := []echo.MiddlewareFunc{}
	if cache != nil {
		mw = append(mw, cache)
	}
	g := e.Group("/v1", mw...)

	g.GET("/shows", p.ListShows)
	g.GET("/shows/:id", p.GetShow)
	g.GET("/shows/:id/events", p.ListShowEvents)
	g.GET("/events/:id/showtimes", p.ListEventShowtimes)
	// Sections carry their price tier so the storefront renders prices
	// in one request.
	g.GET("/showtimes/:id/sections", p.ListShowtimeSections)
	g.GET("/search/shows", p.SearchShows)
}

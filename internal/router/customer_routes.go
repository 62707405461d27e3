package router

import (
	"github.com/labstack/echo/v4"

	"github.com/showgrid/showgrid/internal/handler"
	"github.com/showgrid/showgrid/internal/middleware"
	"github.com/showgrid/showgrid/internal/model"
)

// RegisterCustomer registers the booking endpoints under /v1.
// Organizers can book their own shows too, so both roles are allowed.
func RegisterCustomer(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer, model.RoleOrganizer),
	)

	g.POST("/bookings", b.CreateBooking)
	g.GET("/bookings", b.ListBookings)
	g.GET("/bookings/:id", b.GetBooking)
	g.POST("/bookings/:id/confirm", b.ConfirmBooking)
	g.POST("/bookings/:id/cancel", b.CancelBooking)
	g.GET("/bookings/:id/tickets", b.ListTickets)
}

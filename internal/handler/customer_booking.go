package handler

import (
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/showgrid/showgrid/internal/model"
	"github.com/showgrid/showgrid/internal/payment"
	"github.com/showgrid/showgrid/internal/queue"
	"github.com/showgrid/showgrid/internal/repository"
	queue_publisher "github.com/showgrid/showgrid/internal/service"
)

// BookingHandler serves the customer checkout: reserving seats,
// collecting payment through the gateway and issuing tickets.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Sections *repository.SeatSectionRepo
	Tiers    *repository.PriceTierRepo
	Shows    *repository.ShowRepo
	Events   *repository.EventRepo
	Times    *repository.ShowtimeRepo
	Gateway  *payment.Client
}

func NewBookingHandler(b *repository.BookingRepo, sec *repository.SeatSectionRepo,
	tiers *repository.PriceTierRepo, shows *repository.ShowRepo,
	events *repository.EventRepo, times *repository.ShowtimeRepo, gw *payment.Client) *BookingHandler {
	return &BookingHandler{
		Bookings: b,
		Sections: sec,
		Tiers:    tiers,
		Shows:    shows,
		Events:   events,
		Times:    times,
		Gateway:  gw,
	}
}

func newBookingReference() string {
	return "BKG-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func newTicketCode() string {
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// orderTotal multiplies in uint64 so a large section priced high
// cannot wrap the 32-bit amount; totals past the representable range
// are rejected rather than charged wrong.
func orderTotal(priceCents, qty uint32) (uint32, bool) {
	total := uint64(priceCents) * uint64(qty)
	if total > math.MaxUint32 {
		return 0, false
	}
	return uint32(total), true
}

// CreateBooking handles POST /v1/bookings.  Seats are taken from the
// section before anything else; every later failure releases them and
// cancels the booking, so inventory never leaks.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		SectionID uint64 `json:"section_id"`
		Quantity  uint32 `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.SectionID == 0 || body.Quantity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "section_id and quantity are required"})
	}

	ctx := c.Request().Context()
	sec, err := h.Sections.GetByID(ctx, body.SectionID)
	if err != nil {
		if err == repository.ErrSectionNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "section not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load section failed"})
	}
	tier, err := h.Tiers.GetByID(ctx, sec.PriceTierID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load price tier failed"})
	}

	amount, ok := orderTotal(tier.PriceCents, body.Quantity)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "order total exceeds the maximum chargeable amount"})
	}

	if err := h.Sections.ReserveSeats(ctx, sec.ID, body.Quantity); err != nil {
		if err == repository.ErrNotEnoughSeats {
			return c.JSON(http.StatusConflict, echo.Map{"error": "not enough seats available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reserve seats failed"})
	}

	booking := &model.Booking{
		UserID:        userID,
		SeatSectionID: sec.ID,
		Quantity:      body.Quantity,
		AmountCents:   amount,
		Currency:      tier.Currency,
		Reference:     newBookingReference(),
	}

	var order *payment.Order
	if h.Gateway.Enabled() {
		order, err = h.Gateway.CreateOrder(ctx, booking.AmountCents, booking.Currency, booking.Reference)
		if err != nil {
			_ = h.Sections.ReleaseSeats(ctx, sec.ID, body.Quantity)
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment gateway unavailable"})
		}
		booking.GatewayOrderID = order.ID
	}

	if err := h.Bookings.Create(ctx, booking); err != nil {
		_ = h.Sections.ReleaseSeats(ctx, sec.ID, body.Quantity)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	resp := echo.Map{"booking": booking}
	if order != nil {
		resp["order"] = order
	}
	return c.JSON(http.StatusCreated, resp)
}

// ConfirmBooking handles POST /v1/bookings/:id/confirm.  With a
// gateway configured the payment signature must verify; a bad
// signature cancels the booking and releases the seats.  Tickets are
// issued once and a booking.confirmed event is emitted.
func (h *BookingHandler) ConfirmBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var body struct {
		PaymentID string `json:"payment_id"`
		Signature string `json:"signature"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	booking, err := h.Bookings.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if booking.Status != model.BookingStatusPending {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not pending"})
	}

	if h.Gateway.Enabled() {
		if body.PaymentID == "" || body.Signature == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_id and signature are required"})
		}
		if !h.Gateway.VerifySignature(booking.GatewayOrderID, body.PaymentID, body.Signature) {
			// Payment is not genuine: cancel and give the seats back.
			if err := h.Bookings.UpdateStatus(ctx, booking.ID, model.BookingStatusPending, model.BookingStatusCancelled); err == nil {
				_ = h.Sections.ReleaseSeats(ctx, booking.SeatSectionID, booking.Quantity)
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment verification failed"})
		}
	}

	if err := h.Bookings.UpdateStatus(ctx, booking.ID, model.BookingStatusPending, model.BookingStatusConfirmed); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not pending"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm booking failed"})
	}
	booking.Status = model.BookingStatusConfirmed

	codes := make([]string, 0, booking.Quantity)
	for i := uint32(0); i < booking.Quantity; i++ {
		codes = append(codes, newTicketCode())
	}
	tickets, err := h.Bookings.IssueTickets(ctx, booking.ID, codes)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tickets failed"})
	}

	h.emitBookingConfirmed(c, booking, tickets)

	return c.JSON(http.StatusOK, echo.Map{"booking": booking, "tickets": tickets})
}

// emitBookingConfirmed publishes the booking.confirmed event with the
// show and section names resolved for the notification consumer.
// Lookups and broker failures are non-fatal.
func (h *BookingHandler) emitBookingConfirmed(c echo.Context, b *model.Booking, tickets []model.Ticket) {
	ctx := c.Request().Context()
	ev := queue.BookingConfirmedEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		SectionID:   b.SeatSectionID,
		Quantity:    b.Quantity,
		AmountCents: b.AmountCents,
		Currency:    b.Currency,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, t := range tickets {
		ev.TicketCodes = append(ev.TicketCodes, t.Code)
	}
	if sec, err := h.Sections.GetByID(ctx, b.SeatSectionID); err == nil {
		ev.SectionName = sec.Name
		if st, err := h.Times.GetByID(ctx, sec.ShowtimeID); err == nil {
			if event, err := h.Events.GetByID(ctx, st.EventID); err == nil {
				if show, err := h.Shows.GetByID(ctx, event.ShowID); err == nil {
					ev.ShowName = show.Name
				}
			}
		}
	}
	_ = queue_publisher.PublishBookingConfirmed(ctx, ev)
}

// ListBookings handles GET /v1/bookings for the current customer.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookings, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// GetBooking handles GET /v1/bookings/:id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	booking, err := h.Bookings.GetByIDAndUser(c.Request().Context(), id, userID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": booking})
}

// CancelBooking handles POST /v1/bookings/:id/cancel.  Only pending
// bookings can be cancelled; the seats return to the section.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx := c.Request().Context()
	booking, err := h.Bookings.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if err := h.Bookings.UpdateStatus(ctx, booking.ID, model.BookingStatusPending, model.BookingStatusCancelled); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not pending"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel booking failed"})
	}
	_ = h.Sections.ReleaseSeats(ctx, booking.SeatSectionID, booking.Quantity)
	booking.Status = model.BookingStatusCancelled
	return c.JSON(http.StatusOK, echo.Map{"booking": booking})
}

// ListTickets handles GET /v1/bookings/:id/tickets.
func (h *BookingHandler) ListTickets(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	booking, err := h.Bookings.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	tickets, err := h.Bookings.ListTickets(ctx, booking.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list tickets failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": booking, "tickets": tickets})
}

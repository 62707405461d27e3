package model

import "time"

// Booking status values.  A booking is PENDING between seat
// reservation and gateway confirmation; failed or abandoned payments
// cancel it and release the seats.
const (
    BookingStatusPending   = "PENDING"
    BookingStatusConfirmed = "CONFIRMED"
    BookingStatusCancelled = "CANCELLED"
)

// Booking is a customer's purchase of seats in one seat section.  The
// seats are decremented from the section when the booking is created
// and released again if payment never completes.
//
// Fields:
//  ID             – primary key identifier.
//  UserID         – customer who made the booking.
//  SeatSectionID  – section the seats were taken from.
//  Quantity       – number of seats booked, always > 0.
//  AmountCents    – total charge in minor currency units.
//  Currency       – ISO 4217 currency code copied from the price tier.
//  Status         – lifecycle state (PENDING, CONFIRMED, CANCELLED).
//  Reference      – human-facing booking reference code.
//  GatewayOrderID – order identifier issued by the payment gateway.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Booking struct {
    ID             uint64    // bookings.id
    UserID         uint64    // bookings.user_id
    SeatSectionID  uint64    // bookings.seat_section_id
    Quantity       uint32    // bookings.quantity
    AmountCents    uint32    // bookings.amount_cents
    Currency       string    // bookings.currency
    Status         string    // bookings.status
    Reference      string    // bookings.reference
    GatewayOrderID string    // bookings.gateway_order_id
    CreatedAt      time.Time // bookings.created_at
    UpdatedAt      time.Time // bookings.updated_at
}

// Ticket is one admit-one entry issued when a booking is confirmed.
// The code is what gets rendered as a QR on the e-ticket.
//
// Fields:
//  ID        – primary key identifier.
//  BookingID – booking this ticket belongs to.
//  Code      – unique ticket code ("TKT-" prefixed).
//  IssuedAt  – timestamp the ticket was issued.
type Ticket struct {
    ID        uint64    // tickets.id
    BookingID uint64    // tickets.booking_id
    Code      string    // tickets.code
    IssuedAt  time.Time // tickets.issued_at
}

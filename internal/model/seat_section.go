package model

import "time"

// SeatSection is a block of sellable seats for one showtime, priced by
// one tier.  Section names are unique per showtime (case-insensitive).
// Inventory is a capacity counter, not a per-seat map: bookings
// decrement AvailableSeats with a conditional update.
//
// Fields:
//  ID             – primary key identifier.
//  ShowtimeID     – performance this section belongs to.
//  PriceTierID    – tier that prices seats in this section.
//  Name           – section label, unique per showtime ignoring case.
//  TotalSeats     – fixed section capacity, always > 0.
//  AvailableSeats – remaining sellable seats, 0..TotalSeats.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type SeatSection struct {
    ID             uint64    // seat_sections.id
    ShowtimeID     uint64    // seat_sections.showtime_id
    PriceTierID    uint64    // seat_sections.price_tier_id
    Name           string    // seat_sections.name
    TotalSeats     uint32    // seat_sections.total_seats
    AvailableSeats uint32    // seat_sections.available_seats
    CreatedAt      time.Time // seat_sections.created_at
    UpdatedAt      time.Time // seat_sections.updated_at
}

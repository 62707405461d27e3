package model

import "time"

// Showtime is one performance within an event's day.  Start and end
// are stored as full timestamps composed from the event's date and an
// "HH:mm" time of day; within one event showtime intervals must not
// overlap (half-open comparison, so back-to-back performances with a
// shared boundary are allowed).
//
// Fields:
//  ID        – primary key identifier.
//  EventID   – event this performance belongs to.
//  StartsAt  – DB timestamp when the performance begins ("YYYY-MM-DD HH:MM:SS" UTC).
//  EndsAt    – DB timestamp when the performance ends, strictly after StartsAt.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Showtime struct {
    ID        uint64    // showtimes.id
    EventID   uint64    // showtimes.event_id
    StartsAt  string    // showtimes.starts_at ("YYYY-MM-DD HH:MM:SS" UTC)
    EndsAt    string    // showtimes.ends_at   ("YYYY-MM-DD HH:MM:SS" UTC)
    CreatedAt time.Time // showtimes.created_at
    UpdatedAt time.Time // showtimes.updated_at
}

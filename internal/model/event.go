package model

import "time"

// Event is a single calendar day on which a show runs.  A show may
// have many events but never two on the same date; showtimes divide
// an event's day into performances.
//
// Fields:
//  ID        – primary key identifier.
//  ShowID    – show this event belongs to.
//  Date      – calendar date in "2006-01-02" form, no time component.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Event struct {
    ID        uint64    // events.id
    ShowID    uint64    // events.show_id
    Date      string    // events.event_date ("YYYY-MM-DD")
    CreatedAt time.Time // events.created_at
    UpdatedAt time.Time // events.updated_at
}

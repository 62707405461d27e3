package model

import "time"

// Venue is a physical location where shows are staged.  Venues are
// created by organizers and referenced by shows.  A venue's capacity
// is informational; actual sellable inventory lives on seat sections.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – organizer who registered the venue.
//  Name      – display name of the venue.
//  Address   – street address shown on tickets.
//  City      – city the venue is located in.
//  Capacity  – nominal total capacity of the venue.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Venue struct {
    ID        uint64    // venues.id
    OwnerID   uint64    // venues.owner_id
    Name      string    // venues.name
    Address   string    // venues.address
    City      string    // venues.city
    Capacity  uint32    // venues.capacity
    CreatedAt time.Time // venues.created_at
    UpdatedAt time.Time // venues.updated_at
}

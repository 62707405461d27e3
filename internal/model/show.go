package model

import "time"

// Show status values.  A show is created as a draft by the wizard's
// details step and becomes PUBLISHED only through the review step's
// publish action.
const (
    ShowStatusDraft     = "DRAFT"
    ShowStatusPublished = "PUBLISHED"
)

// Show represents a production being sold on the platform.  It is the
// root entity of the creation wizard: events, price tiers and seat
// sections all hang off a show.  Shows are linked to venues and are
// invisible to the storefront until published.
//
// Fields:
//  ID          – primary key identifier.
//  VenueID     – venue where the show is staged.
//  OwnerID     – organizer who created the show.
//  Name        – show title.
//  Description – long-form description for the storefront.
//  DurationMin – running time in minutes.
//  ImageURL    – poster image location.
//  AgeLimit    – minimum age, zero when unrestricted.
//  Language    – spoken language of the performance.
//  IsPublic    – whether the show is visible to the storefront.
//  Status      – lifecycle state (DRAFT, PUBLISHED).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Show struct {
    ID          uint64    // shows.id
    VenueID     uint64    // shows.venue_id
    OwnerID     uint64    // shows.owner_id
    Name        string    // shows.name
    Description string    // shows.description
    DurationMin uint32    // shows.duration_min
    ImageURL    string    // shows.image_url
    AgeLimit    uint8     // shows.age_limit
    Language    string    // shows.language
    IsPublic    bool      // shows.is_public
    Status      string    // shows.status
    CreatedAt   time.Time // shows.created_at
    UpdatedAt   time.Time // shows.updated_at
}

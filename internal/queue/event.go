// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// Queue names.  Both queues are durable; messages are persistent.
const (
    ShowPublishedQueue    = "show.published"
    BookingConfirmedQueue = "booking.confirmed"
)

// ShowPublishedEvent is emitted when an organizer publishes a show
// from the wizard's review step.  Downstream consumers use it for
// notifications and search indexing without touching the primary
// database.
type ShowPublishedEvent struct {
    ShowID      uint64 `json:"show_id"`
    OwnerID     uint64 `json:"owner_id"`
    VenueID     uint64 `json:"venue_id"`
    Name        string `json:"name"`
    EventCount  int    `json:"event_count"`
    TierCount   int    `json:"tier_count"`
    PublishedAt string `json:"published_at"`
}

// BookingConfirmedEvent is emitted when a customer's payment clears
// and tickets are issued.
type BookingConfirmedEvent struct {
    BookingID   uint64   `json:"booking_id"`
    UserID      uint64   `json:"user_id"`
    SectionID   uint64   `json:"section_id"`
    SectionName string   `json:"section_name"`
    ShowName    string   `json:"show_name"`
    Quantity    uint32   `json:"quantity"`
    AmountCents uint32   `json:"amount_cents"`
    Currency    string   `json:"currency"`
    TicketCodes []string `json:"tickets"`
    ConfirmedAt string   `json:"confirmed_at"`
}

package model

import "time"

// PriceTier is a pricing category for a show (VIP, PREMIUM, REGULAR
// by convention, though the category is an open string).  Seat
// sections reference a tier to price their seats.
//
// Fields:
//  ID          – primary key identifier.
//  ShowID      – show this tier prices.
//  Category    – tier label such as VIP or REGULAR.
//  PriceCents  – price per seat in minor currency units, always > 0.
//  Currency    – ISO 4217 currency code (e.g. INR, USD).
//  Description – optional marketing copy for the tier.
//  Capacity    – optional advertised capacity for the tier, zero when unset.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type PriceTier struct {
    ID          uint64    // price_tiers.id
    ShowID      uint64    // price_tiers.show_id
    Category    string    // price_tiers.category
    PriceCents  uint32    // price_tiers.price_cents
    Currency    string    // price_tiers.currency
    Description string    // price_tiers.description
    Capacity    uint32    // price_tiers.capacity
    CreatedAt   time.Time // price_tiers.created_at
    UpdatedAt   time.Time // price_tiers.updated_at
}

package wizard

// validate.go holds the pure per-entity validators shared by every
// wizard step handler.  They operate on the session's staged entries
// only; repositories re-check the same rules against the database on
// create.

import (
    "errors"
    "fmt"
    "strings"
    "time"
)

// Sentinel validation errors.  Handlers translate these into 400/409
// responses; tests assert on them directly.
var (
    ErrDuplicateEventDate   = errors.New("an event already exists on that date")
    ErrShowtimeOverlap      = errors.New("showtime overlaps an existing showtime for this event")
    ErrDuplicateSectionName = errors.New("a section with that name already exists for this showtime")
)

// ValidateShowDetails checks the details-step form before the show
// create call is made.
func ValidateShowDetails(name string, venueID uint64, durationMin uint32) error {
    if strings.TrimSpace(name) == "" {
        return errors.New("name is required")
    }
    if venueID == 0 {
        return errors.New("venue is required")
    }
    if durationMin == 0 {
        return errors.New("duration must be greater than zero")
    }
    return nil
}

// ValidateEventDate checks the date format and enforces that no two
// events of one show share a calendar date.
func ValidateEventDate(date string, existing []EventEntry) error {
    d, err := time.Parse("2006-01-02", date)
    if err != nil {
        return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
    }
    canon := d.Format("2006-01-02")
    for _, e := range existing {
        if e.Date == canon {
            return ErrDuplicateEventDate
        }
    }
    return nil
}

// ParseClock converts an "HH:mm" string into minutes since midnight.
func ParseClock(s string) (int, error) {
    t, err := time.Parse("15:04", strings.TrimSpace(s))
    if err != nil {
        return 0, fmt.Errorf("invalid time %q, expected HH:mm", s)
    }
    return t.Hour()*60 + t.Minute(), nil
}

// ValidateShowtime checks an "HH:mm" interval for well-formedness and
// for overlap against the existing showtimes of the same event.
// Intervals are half-open: [a1,a2) and [b1,b2) overlap iff
// a1 < b2 && b1 < a2, so a showtime may start exactly when another
// ends.
func ValidateShowtime(eventID uint64, start, end string, existing []ShowtimeEntry) error {
    s1, err := ParseClock(start)
    if err != nil {
        return err
    }
    e1, err := ParseClock(end)
    if err != nil {
        return err
    }
    if e1 <= s1 {
        return errors.New("end time must be after start time")
    }
    for _, st := range existing {
        if st.EventID != eventID {
            continue
        }
        s2, err := ParseClock(st.Start)
        if err != nil {
            continue // malformed stored entry cannot block new ones
        }
        e2, err := ParseClock(st.End)
        if err != nil {
            continue
        }
        if s1 < e2 && s2 < e1 {
            return fmt.Errorf("%w: %s-%s conflicts with %s-%s", ErrShowtimeOverlap, start, end, st.Start, st.End)
        }
    }
    return nil
}

// ValidatePriceTier checks the pricing-step form.  The category is an
// open string (VIP/PREMIUM/REGULAR by convention) and only needs to be
// non-empty.
func ValidatePriceTier(category string, priceCents uint32, currency string) error {
    if strings.TrimSpace(category) == "" {
        return errors.New("category is required")
    }
    if priceCents == 0 {
        return errors.New("price must be greater than zero")
    }
    if len(strings.TrimSpace(currency)) != 3 {
        return errors.New("currency must be a 3-letter code")
    }
    return nil
}

// ValidateSeatSection checks the seating-step form and enforces the
// case-insensitive name uniqueness rule per showtime.
func ValidateSeatSection(showtimeID uint64, name string, total, available uint32, existing []SectionEntry) error {
    trimmed := strings.TrimSpace(name)
    if trimmed == "" {
        return errors.New("name is required")
    }
    if total == 0 {
        return errors.New("total seats must be greater than zero")
    }
    if available > total {
        return errors.New("available seats cannot exceed total seats")
    }
    for _, sec := range existing {
        if sec.ShowtimeID == showtimeID && strings.EqualFold(sec.Name, trimmed) {
            return ErrDuplicateSectionName
        }
    }
    return nil
}

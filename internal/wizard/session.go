// Package wizard implements the show-creation workflow engine: a
// session state machine tracking the operator's current step,
// completed steps and the entities staged or persisted during the
// walkthrough.  The engine performs no I/O of its own; handlers drive
// it and a SessionStore persists it between requests.
package wizard

import (
    "fmt"
    "time"

    "github.com/google/uuid"
)

// EntityState distinguishes entities staged locally from entities the
// server has confirmed with a real identifier.
type EntityState string

const (
    // StatePending marks an entity staged in the session but not yet
    // confirmed by a create call.
    StatePending EntityState = "PENDING"
    // StateConfirmed marks an entity that holds a server-assigned id.
    StateConfirmed EntityState = "CONFIRMED"
)

// EntityRef is the id lifecycle of one staged entity.  LocalID is a
// generated "tmp-" placeholder that never changes; ServerID is zero
// until the entity is confirmed.
type EntityRef struct {
    LocalID  string      `json:"local_id"`
    ServerID uint64      `json:"server_id,omitempty"`
    State    EntityState `json:"state"`
}

// newRef stages a fresh pending reference.
func newRef() EntityRef {
    return EntityRef{LocalID: "tmp-" + uuid.NewString(), State: StatePending}
}

// EventEntry is a staged event: one calendar day of the show.
type EventEntry struct {
    Ref  EntityRef `json:"ref"`
    Date string    `json:"date"` // "YYYY-MM-DD"
}

// ShowtimeEntry is a staged performance within an event.
type ShowtimeEntry struct {
    Ref     EntityRef `json:"ref"`
    EventID uint64    `json:"event_id"` // server id of the owning event
    Start   string    `json:"start"`    // "HH:mm"
    End     string    `json:"end"`      // "HH:mm"
}

// TierEntry is a staged price tier.
type TierEntry struct {
    Ref        EntityRef `json:"ref"`
    Category   string    `json:"category"`
    PriceCents uint32    `json:"price_cents"`
    Currency   string    `json:"currency"`
}

// SectionEntry is a staged seat section bound to a showtime and tier.
type SectionEntry struct {
    Ref        EntityRef `json:"ref"`
    ShowtimeID uint64    `json:"showtime_id"`
    TierID     uint64    `json:"tier_id"`
    Name       string    `json:"name"`
    Total      uint32    `json:"total_seats"`
    Available  uint32    `json:"available_seats"`
}

// Session is the full wizard state for one in-progress show.  It is a
// plain value with reducer-style methods; the whole struct round-trips
// through JSON so a reload resumes exactly where the operator left
// off.  The machine's state is the pair (CurrentStep, CompletedSteps).
type Session struct {
    ID             string          `json:"id"`
    OrganizerID    uint64          `json:"organizer_id"`
    ShowID         uint64          `json:"show_id"` // 0 = show not yet created
    CurrentStep    Step            `json:"current_step"`
    CompletedSteps map[Step]bool   `json:"completed_steps"`
    Error          string          `json:"error,omitempty"` // workflow-wide message
    Events         []EventEntry    `json:"events"`
    Showtimes      []ShowtimeEntry `json:"showtimes"`
    Tiers          []TierEntry     `json:"tiers"`
    Sections       []SectionEntry  `json:"sections"`
    CreatedAt      time.Time       `json:"created_at"`
    UpdatedAt      time.Time       `json:"updated_at"`
}

// NewSession returns a fresh session positioned on the first step with
// no steps complete.
func NewSession(organizerID uint64) *Session {
    now := time.Now().UTC()
    return &Session{
        ID:             uuid.NewString(),
        OrganizerID:    organizerID,
        CurrentStep:    FirstStep(),
        CompletedSteps: map[Step]bool{},
        CreatedAt:      now,
        UpdatedAt:      now,
    }
}

func (s *Session) touch() { s.UpdatedAt = time.Now().UTC() }

// GoToStep is an unconditional jump used for revisiting a previously
// completed step.  Changing the current step clears the workflow
// error.
func (s *Session) GoToStep(step Step) error {
    if !ValidStep(step) {
        return fmt.Errorf("unknown step %q", step)
    }
    s.CurrentStep = step
    s.Error = ""
    s.touch()
    return nil
}

// NextStep advances to the following step in canonical order; it is a
// no-op on the last step.  Completion is not checked here: advancing
// is the caller's responsibility after a successful save.
func (s *Session) NextStep() {
    if next, ok := NextOf(s.CurrentStep); ok {
        s.CurrentStep = next
        s.Error = ""
        s.touch()
    }
}

// PrevStep moves to the preceding step; no-op on the first step.
func (s *Session) PrevStep() {
    if prev, ok := PrevOf(s.CurrentStep); ok {
        s.CurrentStep = prev
        s.Error = ""
        s.touch()
    }
}

// MarkStepCompleted idempotently records step as complete.
func (s *Session) MarkStepCompleted(step Step) {
    if !ValidStep(step) {
        return
    }
    if s.CompletedSteps == nil {
        s.CompletedSteps = map[Step]bool{}
    }
    s.CompletedSteps[step] = true
    s.touch()
}

// MarkStepIncomplete removes step from the completed set, used when
// previously entered data is invalidated (e.g. the last entity of a
// step is deleted).
func (s *Session) MarkStepIncomplete(step Step) {
    delete(s.CompletedSteps, step)
    s.touch()
}

// StepCompleted reports whether step has been marked complete.
func (s *Session) StepCompleted(step Step) bool { return s.CompletedSteps[step] }

// SetError records a workflow-wide error message rendered by the
// shell; step-local errors stay in step-local responses.
func (s *Session) SetError(msg string) {
    s.Error = msg
    s.touch()
}

// CanProceedFrom reports whether the entity collection backing step
// holds at least one confirmed entity.  The review step is the
// terminal gate and always proceeds; its real gate is the publish
// action's own success or failure.
func (s *Session) CanProceedFrom(step Step) bool {
    switch step {
    case StepDetails:
        return s.ShowID != 0
    case StepPricing:
        return countConfirmed(refsOfTiers(s.Tiers)) > 0
    case StepEvents:
        return countConfirmed(refsOfEvents(s.Events)) > 0
    case StepShowtimes:
        return countConfirmed(refsOfShowtimes(s.Showtimes)) > 0
    case StepSeating:
        return countConfirmed(refsOfSections(s.Sections)) > 0
    case StepReview:
        return true
    }
    return false
}

// StepClickable implements the navigation contract: a step may be
// opened iff it is the current step or already completed.
func (s *Session) StepClickable(step Step) bool {
    return step == s.CurrentStep || s.CompletedSteps[step]
}

func countConfirmed(refs []EntityRef) int {
    n := 0
    for _, r := range refs {
        if r.State == StateConfirmed {
            n++
        }
    }
    return n
}

func refsOfEvents(es []EventEntry) []EntityRef {
    out := make([]EntityRef, len(es))
    for i, e := range es {
        out[i] = e.Ref
    }
    return out
}

func refsOfShowtimes(es []ShowtimeEntry) []EntityRef {
    out := make([]EntityRef, len(es))
    for i, e := range es {
        out[i] = e.Ref
    }
    return out
}

func refsOfTiers(es []TierEntry) []EntityRef {
    out := make([]EntityRef, len(es))
    for i, e := range es {
        out[i] = e.Ref
    }
    return out
}

func refsOfSections(es []SectionEntry) []EntityRef {
    out := make([]EntityRef, len(es))
    for i, e := range es {
        out[i] = e.Ref
    }
    return out
}

// ErrNoSuchEntry is wrapped by Confirm/Discard when the local id does
// not match a pending entry.
var ErrNoSuchEntry = fmt.Errorf("no pending entry with that local id")

// ---- events ----

// StageEvent appends a pending event and returns its reference.
func (s *Session) StageEvent(date string) EntityRef {
    e := EventEntry{Ref: newRef(), Date: date}
    s.Events = append(s.Events, e)
    s.touch()
    return e.Ref
}

// ConfirmEvent swaps a pending entry's placeholder for the server id.
func (s *Session) ConfirmEvent(localID string, serverID uint64) error {
    for i := range s.Events {
        if s.Events[i].Ref.LocalID == localID && s.Events[i].Ref.State == StatePending {
            s.Events[i].Ref.ServerID = serverID
            s.Events[i].Ref.State = StateConfirmed
            s.touch()
            return nil
        }
    }
    return fmt.Errorf("confirm event %s: %w", localID, ErrNoSuchEntry)
}

// DiscardEvent drops a pending entry after a failed create, keeping
// the session free of entities the server rejected.
func (s *Session) DiscardEvent(localID string) error {
    for i := range s.Events {
        if s.Events[i].Ref.LocalID == localID && s.Events[i].Ref.State == StatePending {
            s.Events = append(s.Events[:i], s.Events[i+1:]...)
            s.touch()
            return nil
        }
    }
    return fmt.Errorf("discard event %s: %w", localID, ErrNoSuchEntry)
}

// RemoveEvent deletes a confirmed event by server id; corrections are
// remove-then-recreate.  Returns false when no such event exists.
func (s *Session) RemoveEvent(serverID uint64) bool {
    for i := range s.Events {
        if s.Events[i].Ref.ServerID == serverID && s.Events[i].Ref.State == StateConfirmed {
            s.Events = append(s.Events[:i], s.Events[i+1:]...)
            s.touch()
            return true
        }
    }
    return false
}

// ---- showtimes ----

// StageShowtime appends a pending showtime for the given event.
func (s *Session) StageShowtime(eventID uint64, start, end string) EntityRef {
    e := ShowtimeEntry{Ref: newRef(), EventID: eventID, Start: start, End: end}
    s.Showtimes = append(s.Showtimes, e)
    s.touch()
    return e.Ref
}

// ConfirmShowtime swaps a pending entry's placeholder for the server id.
func (s *Session) ConfirmShowtime(localID string, serverID uint64) error {
    for i := range s.Showtimes {
        if s.Showtimes[i].Ref.LocalID == localID && s.Showtimes[i].Ref.State == StatePending {
            s.Showtimes[i].Ref.ServerID = serverID
            s.Showtimes[i].Ref.State = StateConfirmed
            s.touch()
            return nil
        }
    }
    return fmt.Errorf("confirm showtime %s: %w", localID, ErrNoSuchEntry)
}

// DiscardShowtime drops a pending entry after a failed create.
func (s *Session) DiscardShowtime(localID string) error {
    for i := range s.Showtimes {
        if s.Showtimes[i].Ref.LocalID == localID && s.Showtimes[i].Ref.State == StatePending {
            s.Showtimes = append(s.Showtimes[:i], s.Showtimes[i+1:]...)
            s.touch()
            return nil
        }
    }
    return fmt.Errorf("discard showtime %s: %w", localID, ErrNoSuchEntry)
}

// RemoveShowtime deletes a confirmed showtime by server id.
func (s *Session) RemoveShowtime(serverID uint64) bool {
    for i := range s.Showtimes {
        if s.Showtimes[i].Ref.ServerID == serverID && s.Showtimes[i].Ref.State == StateConfirmed {
            s.Showtimes = append(s.Showtimes[:i], s.Showtimes[i+1:]...)
            s.touch()
            return true
        }
    }
    return false
}

// ---- price tiers ----

// StageTier appends a pending price tier.
func (s *Session) StageTier(category string, priceCents uint32, currency string) EntityRef {
    e := TierEntry{Ref: newRef(), Category: category, PriceCents: priceCents, Currency: currency}
    s.Tiers = append(s.Tiers, e)
    s.touch()
    return e.Ref
}

// ConfirmTier swaps a pending entry's placeholder for the server id.
func (s *Session) ConfirmTier(localID string, serverID uint64) error {
    for i := range s.Tiers {
        if s.Tiers[i].Ref.LocalID == localID && s.Tiers[i].Ref.State == StatePending {
            s.Tiers[i].Ref.ServerID = serverID
            s.Tiers[i].Ref.State = StateConfirmed
            s.touch()
            return nil
        }
    }
    return fmt.Errorf("confirm tier %s: %w", localID, ErrNoSuchEntry)
}

// DiscardTier drops a pending entry after a failed create.
func (s *Session) DiscardTier(localID string) error {
    for i := range s.Tiers {
        if s.Tiers[i].Ref.LocalID == localID && s.Tiers[i].Ref.State == StatePending {
            s.Tiers = append(s.Tiers[:i], s.Tiers[i+1:]...)
            s.touch()
            return nil
        }
    }
    return fmt.Errorf("discard tier %s: %w", localID, ErrNoSuchEntry)
}

// RemoveTier deletes a confirmed tier by server id.
func (s *Session) RemoveTier(serverID uint64) bool {
    for i := range s.Tiers {
        if s.Tiers[i].Ref.ServerID == serverID && s.Tiers[i].Ref.State == StateConfirmed {
            s.Tiers = append(s.Tiers[:i], s.Tiers[i+1:]...)
            s.touch()
            return true
        }
    }
    return false
}

// ---- seat sections ----

// StageSection appends a pending seat section.
func (s *Session) StageSection(showtimeID, tierID uint64, name string, total, available uint32) EntityRef {
    e := SectionEntry{Ref: newRef(), ShowtimeID: showtimeID, TierID: tierID, Name: name, Total: total, Available: available}
    s.Sections = append(s.Sections, e)
    s.touch()
    return e.Ref
}

// ConfirmSection swaps a pending entry's placeholder for the server id.
func (s *Session) ConfirmSection(localID string, serverID uint64) error {
    for i := range s.Sections {
        if s.Sections[i].Ref.LocalID == localID && s.Sections[i].Ref.State == StatePending {
            s.Sections[i].Ref.ServerID = serverID
            s.Sections[i].Ref.State = StateConfirmed
            s.touch()
            return nil
        }
    }
    return fmt.Errorf("confirm section %s: %w", localID, ErrNoSuchEntry)
}

// DiscardSection drops a pending entry after a failed create.
func (s *Session) DiscardSection(localID string) error {
    for i := range s.Sections {
        if s.Sections[i].Ref.LocalID == localID && s.Sections[i].Ref.State == StatePending {
            s.Sections = append(s.Sections[:i], s.Sections[i+1:]...)
            s.touch()
            return nil
        }
    }
    return fmt.Errorf("discard section %s: %w", localID, ErrNoSuchEntry)
}

// RemoveSection deletes a confirmed section by server id.
func (s *Session) RemoveSection(serverID uint64) bool {
    for i := range s.Sections {
        if s.Sections[i].Ref.ServerID == serverID && s.Sections[i].Ref.State == StateConfirmed {
            s.Sections = append(s.Sections[:i], s.Sections[i+1:]...)
            s.touch()
            return true
        }
    }
    return false
}

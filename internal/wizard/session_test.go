package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionStartsOnFirstStep(t *testing.T) {
	s := NewSession(42)
	assert.Equal(t, StepDetails, s.CurrentStep)
	assert.Empty(t, s.CompletedSteps)
	assert.Zero(t, s.ShowID)
	assert.NotEmpty(t, s.ID)
}

func TestStepOrderNeighbors(t *testing.T) {
	// Walk the canonical order forward and back.
	cur := FirstStep()
	visited := []Step{cur}
	for {
		next, ok := NextOf(cur)
		if !ok {
			break
		}
		cur = next
		visited = append(visited, cur)
	}
	assert.Equal(t, Steps, visited)
	assert.Equal(t, StepReview, cur)

	_, ok := NextOf(StepReview)
	assert.False(t, ok, "review is terminal")
	_, ok = PrevOf(StepDetails)
	assert.False(t, ok, "details is first")
}

func TestNextPrevNoOpAtEnds(t *testing.T) {
	s := NewSession(1)
	s.PrevStep()
	assert.Equal(t, StepDetails, s.CurrentStep)

	require.NoError(t, s.GoToStep(StepReview))
	s.NextStep()
	assert.Equal(t, StepReview, s.CurrentStep)
}

func TestGoToStepClearsError(t *testing.T) {
	s := NewSession(1)
	s.SetError("complete the previous step first")
	require.NoError(t, s.GoToStep(StepPricing))
	assert.Empty(t, s.Error)

	s.SetError("again")
	s.NextStep()
	assert.Empty(t, s.Error)

	assert.Error(t, s.GoToStep(Step("checkout")), "unknown steps are rejected")
}

func TestMarkStepCompletedIdempotent(t *testing.T) {
	s := NewSession(1)
	s.MarkStepCompleted(StepPricing)
	s.MarkStepCompleted(StepPricing)
	assert.Len(t, s.CompletedSteps, 1)
	assert.True(t, s.StepCompleted(StepPricing))

	s.MarkStepIncomplete(StepPricing)
	assert.False(t, s.StepCompleted(StepPricing))
	assert.Empty(t, s.CompletedSteps)
}

func TestStepClickability(t *testing.T) {
	s := NewSession(1)
	// Fresh session: only the current (first) step is clickable.
	for _, step := range Steps {
		want := step == StepDetails
		assert.Equal(t, want, s.StepClickable(step), "fresh session, step %s", step)
	}

	// Complete details and pricing, move to events: the two completed
	// steps and the current one are clickable, nothing ahead is.
	s.MarkStepCompleted(StepDetails)
	s.MarkStepCompleted(StepPricing)
	require.NoError(t, s.GoToStep(StepEvents))
	for _, step := range Steps {
		want := step == StepEvents || step == StepDetails || step == StepPricing
		assert.Equal(t, want, s.StepClickable(step), "mid-wizard, step %s", step)
	}
}

func TestCanProceedRequiresConfirmedEntities(t *testing.T) {
	s := NewSession(1)

	// Pending entities are not evidence of persistence.
	ref := s.StageTier("VIP", 100000, "INR")
	assert.False(t, s.CanProceedFrom(StepPricing))

	require.NoError(t, s.ConfirmTier(ref.LocalID, 11))
	assert.True(t, s.CanProceedFrom(StepPricing))

	// Monotonic while entities exist; reverts only on explicit removal.
	assert.True(t, s.CanProceedFrom(StepPricing))
	assert.True(t, s.RemoveTier(11))
	assert.False(t, s.CanProceedFrom(StepPricing))
}

func TestCanProceedPerStep(t *testing.T) {
	s := NewSession(1)
	for _, step := range []Step{StepDetails, StepPricing, StepEvents, StepShowtimes, StepSeating} {
		assert.False(t, s.CanProceedFrom(step), "empty session, step %s", step)
	}
	assert.True(t, s.CanProceedFrom(StepReview), "review is unconditionally proceedable")

	s.ShowID = 7
	assert.True(t, s.CanProceedFrom(StepDetails))

	ev := s.StageEvent("2026-09-01")
	require.NoError(t, s.ConfirmEvent(ev.LocalID, 21))
	assert.True(t, s.CanProceedFrom(StepEvents))

	st := s.StageShowtime(21, "19:00", "21:00")
	require.NoError(t, s.ConfirmShowtime(st.LocalID, 31))
	assert.True(t, s.CanProceedFrom(StepShowtimes))

	sec := s.StageSection(31, 11, "Balcony", 100, 100)
	require.NoError(t, s.ConfirmSection(sec.LocalID, 41))
	assert.True(t, s.CanProceedFrom(StepSeating))
}

func TestDiscardDropsPendingEntry(t *testing.T) {
	s := NewSession(1)
	ref := s.StageEvent("2026-09-01")
	require.Len(t, s.Events, 1)
	require.NoError(t, s.DiscardEvent(ref.LocalID))
	assert.Empty(t, s.Events, "failed create leaves no optimistic entry behind")

	// Discarding twice, or confirming a discarded entry, fails.
	assert.ErrorIs(t, s.DiscardEvent(ref.LocalID), ErrNoSuchEntry)
	assert.ErrorIs(t, s.ConfirmEvent(ref.LocalID, 5), ErrNoSuchEntry)
}

func TestConfirmedEntryCannotBeConfirmedAgain(t *testing.T) {
	s := NewSession(1)
	ref := s.StageShowtime(3, "10:00", "12:00")
	require.NoError(t, s.ConfirmShowtime(ref.LocalID, 9))
	assert.ErrorIs(t, s.ConfirmShowtime(ref.LocalID, 10), ErrNoSuchEntry)
	assert.Equal(t, uint64(9), s.Showtimes[0].Ref.ServerID)
}

// TestWizardEndToEnd walks the whole workflow the way the handlers
// drive it: persist at least one entity per step, mark complete,
// advance, publish.
func TestWizardEndToEnd(t *testing.T) {
	s := NewSession(77)

	// Details: show created and confirmed by the server.
	require.NoError(t, ValidateShowDetails("Hamlet", 3, 120))
	s.ShowID = 100
	s.MarkStepCompleted(StepDetails)
	s.NextStep()
	require.Equal(t, StepPricing, s.CurrentStep)

	// Pricing: one VIP tier at 1000 INR.
	require.NoError(t, ValidatePriceTier("VIP", 100000, "INR"))
	tier := s.StageTier("VIP", 100000, "INR")
	require.NoError(t, s.ConfirmTier(tier.LocalID, 200))
	require.True(t, s.CanProceedFrom(StepPricing))
	s.MarkStepCompleted(StepPricing)
	s.NextStep()
	require.Equal(t, StepEvents, s.CurrentStep)

	// Events: one event tomorrow.
	require.NoError(t, ValidateEventDate("2026-08-31", s.Events))
	ev := s.StageEvent("2026-08-31")
	require.NoError(t, s.ConfirmEvent(ev.LocalID, 300))
	s.MarkStepCompleted(StepEvents)
	s.NextStep()

	// Showtimes: 19:00-21:00.
	require.NoError(t, ValidateShowtime(300, "19:00", "21:00", s.Showtimes))
	st := s.StageShowtime(300, "19:00", "21:00")
	require.NoError(t, s.ConfirmShowtime(st.LocalID, 400))
	s.MarkStepCompleted(StepShowtimes)
	s.NextStep()

	// Seating: VIP-A, 100 seats.
	require.NoError(t, ValidateSeatSection(400, "VIP-A", 100, 100, s.Sections))
	sec := s.StageSection(400, 200, "VIP-A", 100, 100)
	require.NoError(t, s.ConfirmSection(sec.LocalID, 500))
	s.MarkStepCompleted(StepSeating)
	s.NextStep()
	require.Equal(t, StepReview, s.CurrentStep)

	// Publish succeeded: review completes and all six steps are done.
	s.MarkStepCompleted(StepReview)
	for _, step := range Steps {
		assert.True(t, s.StepCompleted(step), "step %s should be complete", step)
	}
	assert.Len(t, s.CompletedSteps, len(Steps))
}

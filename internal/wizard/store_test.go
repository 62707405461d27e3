package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSessionRoundTrip simulates a reload after completing the details
// and pricing steps: the reloaded session must match the stored one
// exactly.
func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := NewSession(7)
	s.ShowID = 100
	s.MarkStepCompleted(StepDetails)
	tier := s.StageTier("PREMIUM", 50000, "INR")
	require.NoError(t, s.ConfirmTier(tier.LocalID, 200))
	s.MarkStepCompleted(StepPricing)
	require.NoError(t, s.GoToStep(StepEvents))

	require.NoError(t, store.Save(ctx, s))

	got, err := store.Load(ctx, 7, s.ID)
	require.NoError(t, err)

	assert.Equal(t, s.CurrentStep, got.CurrentStep)
	assert.Equal(t, s.CompletedSteps, got.CompletedSteps)
	assert.Equal(t, s.ShowID, got.ShowID)
	assert.Equal(t, s.Tiers, got.Tiers)
	assert.Equal(t, s.Events, got.Events)
	assert.True(t, got.StepCompleted(StepDetails))
	assert.True(t, got.StepCompleted(StepPricing))
	assert.False(t, got.StepCompleted(StepEvents))
}

func TestPendingEntriesSurviveReload(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := NewSession(7)
	ref := s.StageEvent("2026-09-01")
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Load(ctx, 7, s.ID)
	require.NoError(t, err)
	require.Len(t, got.Events, 1)
	assert.Equal(t, StatePending, got.Events[0].Ref.State)
	assert.Equal(t, ref.LocalID, got.Events[0].Ref.LocalID)

	// The reloaded session can still confirm the pending entry.
	require.NoError(t, got.ConfirmEvent(ref.LocalID, 33))
	assert.True(t, got.CanProceedFrom(StepEvents))
}

func TestLoadMissingSession(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Load(context.Background(), 1, "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteResetsSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := NewSession(3)
	require.NoError(t, store.Save(ctx, s))
	require.NoError(t, store.Delete(ctx, 3, s.ID))

	_, err := store.Load(ctx, 3, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Reset is idempotent.
	assert.NoError(t, store.Delete(ctx, 3, s.ID))
}

func TestSessionsAreScopedToOrganizer(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := NewSession(3)
	require.NoError(t, store.Save(ctx, s))

	_, err := store.Load(ctx, 4, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound, "another organizer cannot load the session")
}

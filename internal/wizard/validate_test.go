package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShowDetails(t *testing.T) {
	assert.NoError(t, ValidateShowDetails("Hamlet", 1, 120))
	assert.Error(t, ValidateShowDetails("", 1, 120))
	assert.Error(t, ValidateShowDetails("  ", 1, 120))
	assert.Error(t, ValidateShowDetails("Hamlet", 0, 120))
	assert.Error(t, ValidateShowDetails("Hamlet", 1, 0))
}

func TestValidateEventDate(t *testing.T) {
	existing := []EventEntry{{Ref: EntityRef{State: StateConfirmed, ServerID: 1}, Date: "2026-09-01"}}

	assert.NoError(t, ValidateEventDate("2026-09-02", existing))
	assert.ErrorIs(t, ValidateEventDate("2026-09-01", existing), ErrDuplicateEventDate)
	assert.Error(t, ValidateEventDate("09/01/2026", existing))
	assert.Error(t, ValidateEventDate("", existing))
}

func TestValidateShowtimeOverlap(t *testing.T) {
	existing := []ShowtimeEntry{{
		Ref:     EntityRef{State: StateConfirmed, ServerID: 1},
		EventID: 5,
		Start:   "19:00",
		End:     "21:00",
	}}

	// Overlapping interval is rejected.
	err := ValidateShowtime(5, "20:00", "22:00", existing)
	assert.ErrorIs(t, err, ErrShowtimeOverlap)

	// Touching boundaries are allowed: intervals are half-open.
	assert.NoError(t, ValidateShowtime(5, "21:00", "22:00", existing))
	assert.NoError(t, ValidateShowtime(5, "17:00", "19:00", existing))

	// Containment in either direction is an overlap.
	assert.ErrorIs(t, ValidateShowtime(5, "19:30", "20:30", existing), ErrShowtimeOverlap)
	assert.ErrorIs(t, ValidateShowtime(5, "18:00", "22:00", existing), ErrShowtimeOverlap)

	// Same interval under a different event does not conflict.
	assert.NoError(t, ValidateShowtime(6, "20:00", "22:00", existing))
}

func TestValidateShowtimeShape(t *testing.T) {
	assert.Error(t, ValidateShowtime(1, "21:00", "19:00", nil), "end before start")
	assert.Error(t, ValidateShowtime(1, "19:00", "19:00", nil), "end must be strictly after start")
	assert.Error(t, ValidateShowtime(1, "7pm", "9pm", nil))
	assert.Error(t, ValidateShowtime(1, "19:00", "25:00", nil))
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("19:30")
	require.NoError(t, err)
	assert.Equal(t, 19*60+30, m)

	_, err = ParseClock("19h30")
	assert.Error(t, err)
}

func TestValidatePriceTier(t *testing.T) {
	assert.NoError(t, ValidatePriceTier("VIP", 100000, "INR"))
	assert.Error(t, ValidatePriceTier("", 100000, "INR"))
	assert.Error(t, ValidatePriceTier("VIP", 0, "INR"))
	assert.Error(t, ValidatePriceTier("VIP", 100000, "RUPEES"))
}

func TestValidateSeatSectionDuplicateName(t *testing.T) {
	existing := []SectionEntry{{
		Ref:        EntityRef{State: StateConfirmed, ServerID: 1},
		ShowtimeID: 9,
		Name:       "Balcony",
		Total:      50,
		Available:  50,
	}}

	assert.ErrorIs(t, ValidateSeatSection(9, "Balcony", 40, 40, existing), ErrDuplicateSectionName)
	assert.ErrorIs(t, ValidateSeatSection(9, "balcony", 40, 40, existing), ErrDuplicateSectionName,
		"name uniqueness is case-insensitive")
	assert.ErrorIs(t, ValidateSeatSection(9, "  BALCONY ", 40, 40, existing), ErrDuplicateSectionName)

	// Same name under a different showtime is fine.
	assert.NoError(t, ValidateSeatSection(10, "Balcony", 40, 40, existing))
}

func TestValidateSeatSectionCounts(t *testing.T) {
	assert.Error(t, ValidateSeatSection(1, "Stalls", 0, 0, nil))
	assert.Error(t, ValidateSeatSection(1, "Stalls", 10, 11, nil))
	assert.NoError(t, ValidateSeatSection(1, "Stalls", 10, 0, nil), "zero available is a valid sold-out state")
	assert.Error(t, ValidateSeatSection(1, "", 10, 10, nil))
}

package wizard

// Step identifies one stage of the show-creation workflow.
type Step string

// The six wizard steps.  A show is created on the details step and
// published on the review step; everything between attaches inventory
// to it.
const (
    StepDetails   Step = "details"
    StepPricing   Step = "pricing"
    StepEvents    Step = "events"
    StepShowtimes Step = "showtimes"
    StepSeating   Step = "seating"
    StepReview    Step = "review"
)

// Steps is the canonical wizard order.  Pricing precedes seating
// because seat sections reference a price tier as well as a showtime;
// with this ordering every entity's prerequisites are already
// persisted by the time its step is reached.
var Steps = []Step{
    StepDetails,
    StepPricing,
    StepEvents,
    StepShowtimes,
    StepSeating,
    StepReview,
}

// FirstStep returns the step a fresh session starts on.
func FirstStep() Step { return Steps[0] }

// LastStep returns the terminal review step.
func LastStep() Step { return Steps[len(Steps)-1] }

// StepIndex returns the position of s in the canonical order, or -1
// when s is not a known step.
func StepIndex(s Step) int {
    for i, v := range Steps {
        if v == s {
            return i
        }
    }
    return -1
}

// ValidStep reports whether s is one of the known steps.
func ValidStep(s Step) bool { return StepIndex(s) >= 0 }

// NextOf returns the step following s.  The second return value is
// false when s is the last step or unknown.
func NextOf(s Step) (Step, bool) {
    i := StepIndex(s)
    if i < 0 || i == len(Steps)-1 {
        return s, false
    }
    return Steps[i+1], true
}

// PrevOf returns the step preceding s.  The second return value is
// false when s is the first step or unknown.
func PrevOf(s Step) (Step, bool) {
    i := StepIndex(s)
    if i <= 0 {
        return s, false
    }
    return Steps[i-1], true
}

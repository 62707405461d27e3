package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/showgrid/showgrid/internal/queue"
	"github.com/showgrid/showgrid/internal/repository"
	queue_publisher "github.com/showgrid/showgrid/internal/service"
	"github.com/showgrid/showgrid/internal/wizard"
)

// ReviewSummary handles GET /v1/wizard/sessions/:sid/review and
// returns everything the organizer is about to publish.
func (h *WizardHandler) ReviewSummary(c echo.Context) error {
	s, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	if s.ShowID == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "save show details first"})
	}
	show, err := h.Shows.GetByIDAndOwner(c.Request().Context(), s.ShowID, s.OrganizerID)
	if err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load show failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"show":      show,
		"events":    s.Events,
		"showtimes": s.Showtimes,
		"tiers":     s.Tiers,
		"sections":  s.Sections,
		"session":   s,
	})
}

// PublishShow handles POST /v1/wizard/sessions/:sid/publish.  Every
// prior step must be complete; on success the show goes live and a
// show.published event is emitted.  A failed publish records a
// retryable error on the session and changes nothing else.
func (h *WizardHandler) PublishShow(c echo.Context) error {
	s, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	for _, st := range wizard.Steps {
		if st == wizard.StepReview {
			continue
		}
		if !s.StepCompleted(st) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "all steps must be completed before publishing",
				"step":  st,
			})
		}
	}

	ctx := c.Request().Context()
	show, err := h.Shows.Publish(ctx, s.ShowID, s.OrganizerID)
	if err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		s.SetError("publishing failed: " + err.Error())
		_ = h.Store.Save(ctx, s)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "publish failed", "session": s})
	}

	s.MarkStepCompleted(wizard.StepReview)
	if !h.saveSession(c, s) {
		return nil
	}

	eventCount := 0
	for _, ev := range s.Events {
		if ev.Ref.State == wizard.StateConfirmed {
			eventCount++
		}
	}
	tierCount := 0
	for _, t := range s.Tiers {
		if t.Ref.State == wizard.StateConfirmed {
			tierCount++
		}
	}
	// Broker failures must not fail the publish; the publisher logs.
	_ = queue_publisher.PublishShowPublished(ctx, queue.ShowPublishedEvent{
		ShowID:      show.ID,
		OwnerID:     show.OwnerID,
		VenueID:     show.VenueID,
		Name:        show.Name,
		EventCount:  eventCount,
		TierCount:   tierCount,
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"show": show, "session": s})
}

package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/showgrid/showgrid/internal/model"
	"github.com/showgrid/showgrid/internal/repository"
	"github.com/showgrid/showgrid/internal/wizard"
)

type eventReq struct {
	Date string `json:"date"` // "YYYY-MM-DD"
}

// AddEvent handles POST /v1/wizard/sessions/:sid/events.  Dates are
// validated against the session first and against the unique index in
// the database second, so two browser tabs cannot race the same day
// in.
func (h *WizardHandler) AddEvent(c echo.Context) error {
	s, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	if s.ShowID == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "save show details first"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Date = strings.TrimSpace(req.Date)
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}
	if err := wizard.ValidateEventDate(req.Date, s.Events); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	ref := s.StageEvent(req.Date)

	ev := &model.Event{ShowID: s.ShowID, Date: req.Date}
	if err := h.Events.Create(ctx, ev); err != nil {
		_ = s.DiscardEvent(ref.LocalID)
		if err == repository.ErrEventDateTaken {
			s.SetError("that date is already scheduled")
			_ = h.Store.Save(ctx, s)
			return c.JSON(http.StatusConflict, echo.Map{"error": "date already scheduled"})
		}
		s.SetError("adding event failed, please retry")
		_ = h.Store.Save(ctx, s)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	if err := s.ConfirmEvent(ref.LocalID, ev.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm event failed"})
	}
	s.MarkStepCompleted(wizard.StepEvents)
	if !h.saveSession(c, s) {
		return nil
	}
	return c.JSON(http.StatusCreated, echo.Map{"event": ev, "session": s})
}

// DeleteEvent handles DELETE /v1/wizard/sessions/:sid/events/:id.
// Events with showtimes refuse to go; removing the last event reopens
// the step.
func (h *WizardHandler) DeleteEvent(c echo.Context) error {
	s, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx := c.Request().Context()
	if err := h.Events.Delete(ctx, id, s.OrganizerID); err != nil {
		switch err {
		case repository.ErrEventNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "event still has showtimes"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete event failed"})
	}
	s.RemoveEvent(id)
	if !s.CanProceedFrom(wizard.StepEvents) {
		s.MarkStepIncomplete(wizard.StepEvents)
	}
	if !h.saveSession(c, s) {
		return nil
	}
	return c.JSON(http.StatusOK, echo.Map{"session": s})
}

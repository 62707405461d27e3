package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/showgrid/showgrid/internal/model"
	"github.com/showgrid/showgrid/internal/repository"
	"github.com/showgrid/showgrid/internal/wizard"
)

type showtimeReq struct {
	EventID uint64 `json:"event_id"`
	Start   string `json:"start"` // "HH:mm"
	End     string `json:"end"`   // "HH:mm"
}

// eventDate returns the date of a confirmed event in the session.
func eventDate(s *wizard.Session, eventID uint64) (string, bool) {
	for _, ev := range s.Events {
		if ev.Ref.State == wizard.StateConfirmed && ev.Ref.ServerID == eventID {
			return ev.Date, true
		}
	}
	return "", false
}

// AddShowtime handles POST /v1/wizard/sessions/:sid/showtimes.  The
// interval is checked against the session's in-memory showtimes and
// then against the database, which also sees showtimes created in
// other sessions for the same event.
func (h *WizardHandler) AddShowtime(c echo.Context) error {
	s, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	var req showtimeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Start = strings.TrimSpace(req.Start)
	req.End = strings.TrimSpace(req.End)

	date, found := eventDate(s, req.EventID)
	if !found {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id is not a confirmed event of this show"})
	}
	if err := wizard.ValidateShowtime(req.EventID, req.Start, req.End, s.Showtimes); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	startsAt := date + " " + req.Start + ":00"
	endsAt := date + " " + req.End + ":00"

	overlaps, err := h.Showtimes.FindOverlapping(ctx, req.EventID, startsAt, endsAt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "check showtimes failed"})
	}
	if len(overlaps) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    "showtime overlaps an existing one",
			"overlaps": overlaps,
		})
	}

	ref := s.StageShowtime(req.EventID, req.Start, req.End)

	st := &model.Showtime{EventID: req.EventID, StartsAt: startsAt, EndsAt: endsAt}
	if err := h.Showtimes.Create(ctx, st); err != nil {
		_ = s.DiscardShowtime(ref.LocalID)
		s.SetError("adding showtime failed, please retry")
		_ = h.Store.Save(ctx, s)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create showtime failed"})
	}
	if err := s.ConfirmShowtime(ref.LocalID, st.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm showtime failed"})
	}
	s.MarkStepCompleted(wizard.StepShowtimes)
	if !h.saveSession(c, s) {
		return nil
	}
	return c.JSON(http.StatusCreated, echo.Map{"showtime": st, "session": s})
}

// DeleteShowtime handles DELETE /v1/wizard/sessions/:sid/showtimes/:id.
func (h *WizardHandler) DeleteShowtime(c echo.Context) error {
	s, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}

	ctx := c.Request().Context()
	if err := h.Showtimes.Delete(ctx, id, s.OrganizerID); err != nil {
		switch err {
		case repository.ErrShowtimeNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "showtime still has seat sections"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete showtime failed"})
	}
	s.RemoveShowtime(id)
	if !s.CanProceedFrom(wizard.StepShowtimes) {
		s.MarkStepIncomplete(wizard.StepShowtimes)
	}
	if !h.saveSession(c, s) {
		return nil
	}
	return c.JSON(http.StatusOK, echo.Map{"session": s})
}

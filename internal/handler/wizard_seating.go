package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/showgrid/showgrid/internal/model"
	"github.com/showgrid/showgrid/internal/repository"
	"github.com/showgrid/showgrid/internal/wizard"
)

type sectionReq struct {
	ShowtimeID     uint64 `json:"showtime_id"`
	PriceTierID    uint64 `json:"price_tier_id"`
	Name           string `json:"name"`
	TotalSeats     uint32 `json:"total_seats"`
	AvailableSeats uint32 `json:"available_seats"`
}

func sessionHasShowtime(s *wizard.Session, id uint64) bool {
	for _, st := range s.Showtimes {
		if st.Ref.State == wizard.StateConfirmed && st.Ref.ServerID == id {
			return true
		}
	}
	return false
}

func sessionHasTier(s *wizard.Session, id uint64) bool {
	for _, t := range s.Tiers {
		if t.Ref.State == wizard.StateConfirmed && t.Ref.ServerID == id {
			return true
		}
	}
	return false
}

// AddSeatSection handles POST /v1/wizard/sessions/:sid/sections.  A
// section binds a showtime to a price tier; both must already be
// confirmed in this session.  Section names are unique per showtime,
// compared case-insensitively.
func (h *WizardHandler) AddSeatSection(c echo.Context) error {
	s, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	var req sectionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if !sessionHasShowtime(s, req.ShowtimeID) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "showtime_id is not a confirmed showtime of this show"})
	}
	if !sessionHasTier(s, req.PriceTierID) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_tier_id is not a confirmed tier of this show"})
	}
	if err := wizard.ValidateSeatSection(req.ShowtimeID, req.Name, req.TotalSeats, req.AvailableSeats, s.Sections); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	ref := s.StageSection(req.ShowtimeID, req.PriceTierID, req.Name, req.TotalSeats, req.AvailableSeats)

	sec := &model.SeatSection{
		ShowtimeID:     req.ShowtimeID,
		PriceTierID:    req.PriceTierID,
		Name:           req.Name,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.AvailableSeats,
	}
	if err := h.Sections.Create(ctx, sec); err != nil {
		_ = s.DiscardSection(ref.LocalID)
		if err == repository.ErrSectionNameTaken {
			s.SetError("a section with that name already exists for this showtime")
			_ = h.Store.Save(ctx, s)
			return c.JSON(http.StatusConflict, echo.Map{"error": "section name already taken"})
		}
		s.SetError("adding seat section failed, please retry")
		_ = h.Store.Save(ctx, s)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create section failed"})
	}
	if err := s.ConfirmSection(ref.LocalID, sec.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm section failed"})
	}
	s.MarkStepCompleted(wizard.StepSeating)
	if !h.saveSession(c, s) {
		return nil
	}
	return c.JSON(http.StatusCreated, echo.Map{"section": sec, "session": s})
}

// DeleteSeatSection handles DELETE /v1/wizard/sessions/:sid/sections/:id.
func (h *WizardHandler) DeleteSeatSection(c echo.Context) error {
	s, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid section id"})
	}

	ctx := c.Request().Context()
	if err := h.Sections.Delete(ctx, id, s.OrganizerID); err != nil {
		switch err {
		case repository.ErrSectionNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "section not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "section has bookings"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete section failed"})
	}
	s.RemoveSection(id)
	if !s.CanProceedFrom(wizard.StepSeating) {
		s.MarkStepIncomplete(wizard.StepSeating)
	}
	if !h.saveSession(c, s) {
		return nil
	}
	return c.JSON(http.StatusOK, echo.Map{"session": s})
}

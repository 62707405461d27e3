package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/showgrid/showgrid/internal/model"
	"github.com/showgrid/showgrid/internal/repository"
	"github.com/showgrid/showgrid/internal/wizard"
)

type detailsReq struct {
	VenueID     uint64 `json:"venue_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DurationMin uint32 `json:"duration_min"`
	ImageURL    string `json:"image_url"`
	AgeLimit    uint8  `json:"age_limit"`
	Language    string `json:"language"`
}

// SaveDetails handles PUT /v1/wizard/sessions/:sid/details.  The first
// successful save creates the draft show; later saves update it.  A
// saved draft is the completion evidence for the details step.
func (h *WizardHandler) SaveDetails(c echo.Context) error {
	s, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	var req detailsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := wizard.ValidateShowDetails(req.Name, req.VenueID, req.DurationMin); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	organizerID := s.OrganizerID

	if _, err := h.Venues.GetByIDAndOwner(ctx, req.VenueID, organizerID); err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verify venue failed"})
	}

	show := &model.Show{
		ID:          s.ShowID,
		VenueID:     req.VenueID,
		OwnerID:     organizerID,
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		DurationMin: req.DurationMin,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		AgeLimit:    req.AgeLimit,
		Language:    strings.TrimSpace(req.Language),
	}
	if s.ShowID == 0 {
		if err := h.Shows.Create(ctx, show); err != nil {
			s.SetError("saving show details failed, please retry")
			_ = h.Store.Save(ctx, s)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create show failed"})
		}
		s.ShowID = show.ID
	} else {
		if err := h.Shows.Update(ctx, show); err != nil {
			if err == repository.ErrShowNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
			}
			s.SetError("saving show details failed, please retry")
			_ = h.Store.Save(ctx, s)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update show failed"})
		}
	}

	s.MarkStepCompleted(wizard.StepDetails)
	if !h.saveSession(c, s) {
		return nil
	}
	return c.JSON(http.StatusOK, echo.Map{"show": show, "session": s})
}

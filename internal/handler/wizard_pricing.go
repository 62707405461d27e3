package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/showgrid/showgrid/internal/model"
	"github.com/showgrid/showgrid/internal/repository"
	"github.com/showgrid/showgrid/internal/wizard"
)

type tierReq struct {
	Category    string `json:"category"`
	PriceCents  uint32 `json:"price_cents"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Capacity    uint32 `json:"capacity"`
}

// AddPriceTier handles POST /v1/wizard/sessions/:sid/tiers.  The tier
// is staged locally, written to the database, and confirmed in the
// session only once the write succeeds.  A failed write discards the
// staged entry so the wizard never shows phantom tiers.
func (h *WizardHandler) AddPriceTier(c echo.Context) error {
	s, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	if s.ShowID == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "save show details first"})
	}
	var req tierReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Category = strings.ToUpper(strings.TrimSpace(req.Category))
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if err := wizard.ValidatePriceTier(req.Category, req.PriceCents, req.Currency); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	ref := s.StageTier(req.Category, req.PriceCents, req.Currency)

	tier := &model.PriceTier{
		ShowID:      s.ShowID,
		Category:    req.Category,
		PriceCents:  req.PriceCents,
		Currency:    req.Currency,
		Description: strings.TrimSpace(req.Description),
		Capacity:    req.Capacity,
	}
	if err := h.Tiers.Create(ctx, tier); err != nil {
		_ = s.DiscardTier(ref.LocalID)
		s.SetError("adding price tier failed, please retry")
		_ = h.Store.Save(ctx, s)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create tier failed"})
	}
	if err := s.ConfirmTier(ref.LocalID, tier.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm tier failed"})
	}
	s.MarkStepCompleted(wizard.StepPricing)
	if !h.saveSession(c, s) {
		return nil
	}
	return c.JSON(http.StatusCreated, echo.Map{"tier": tier, "session": s})
}

// DeletePriceTier handles DELETE /v1/wizard/sessions/:sid/tiers/:id.
// Removing the last tier reopens the pricing step.
func (h *WizardHandler) DeletePriceTier(c echo.Context) error {
	s, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tier id"})
	}

	ctx := c.Request().Context()
	if err := h.Tiers.Delete(ctx, id, s.OrganizerID); err != nil {
		switch err {
		case repository.ErrPriceTierNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tier not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "tier is referenced by seat sections"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete tier failed"})
	}
	s.RemoveTier(id)
	if !s.CanProceedFrom(wizard.StepPricing) {
		s.MarkStepIncomplete(wizard.StepPricing)
	}
	if !h.saveSession(c, s) {
		return nil
	}
	return c.JSON(http.StatusOK, echo.Map{"session": s})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/showgrid/showgrid/internal/config"
	"github.com/showgrid/showgrid/internal/repository"
	"github.com/showgrid/showgrid/internal/wizard"
)

// WizardHandler drives the multi-step show creation flow.  Every
// endpoint loads the organizer's session from the store, applies one
// reducer, and saves the session back, so the flow survives restarts
// and browser reloads.
type WizardHandler struct {
	Cfg       config.Config
	Store     wizard.SessionStore
	Venues    *repository.VenueRepo
	Shows     *repository.ShowRepo
	Events    *repository.EventRepo
	Showtimes *repository.ShowtimeRepo
	Tiers     *repository.PriceTierRepo
	Sections  *repository.SeatSectionRepo
}

func NewWizardHandler(cfg config.Config, store wizard.SessionStore,
	venues *repository.VenueRepo, shows *repository.ShowRepo, events *repository.EventRepo,
	showtimes *repository.ShowtimeRepo, tiers *repository.PriceTierRepo, sections *repository.SeatSectionRepo) *WizardHandler {
	return &WizardHandler{
		Cfg:       cfg,
		Store:     store,
		Venues:    venues,
		Shows:     shows,
		Events:    events,
		Showtimes: showtimes,
		Tiers:     tiers,
		Sections:  sections,
	}
}

// stepView is the navigation state of one step as rendered for the
// sidebar: clickability is computed, never stored.
type stepView struct {
	Step      wizard.Step `json:"step"`
	Current   bool        `json:"current"`
	Completed bool        `json:"completed"`
	Clickable bool        `json:"clickable"`
}

func sessionView(s *wizard.Session) echo.Map {
	steps := make([]stepView, 0, len(wizard.Steps))
	for _, st := range wizard.Steps {
		steps = append(steps, stepView{
			Step:      st,
			Current:   st == s.CurrentStep,
			Completed: s.StepCompleted(st),
			Clickable: s.StepClickable(st),
		})
	}
	return echo.Map{"session": s, "steps": steps}
}

// loadSession fetches the :sid session scoped to the caller.  On
// failure it writes the response itself and returns false.
func (h *WizardHandler) loadSession(c echo.Context) (*wizard.Session, bool) {
	organizerID, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return nil, false
	}
	sid := c.Param("sid")
	if sid == "" {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "session id required"})
		return nil, false
	}
	s, err := h.Store.Load(c.Request().Context(), organizerID, sid)
	if err != nil {
		if err == wizard.ErrSessionNotFound {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
			return nil, false
		}
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "load session failed"})
		return nil, false
	}
	return s, true
}

// saveSession persists the session; on failure it writes a 500 and
// returns false.
func (h *WizardHandler) saveSession(c echo.Context, s *wizard.Session) bool {
	if err := h.Store.Save(c.Request().Context(), s); err != nil {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "save session failed"})
		return false
	}
	return true
}

// CreateSession handles POST /v1/wizard/sessions and starts a fresh
// wizard on the first step.
func (h *WizardHandler) CreateSession(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	s := wizard.NewSession(organizerID)
	if !h.saveSession(c, s) {
		return nil
	}
	return c.JSON(http.StatusCreated, sessionView(s))
}

// GetSession handles GET /v1/wizard/sessions/:sid.
func (h *WizardHandler) GetSession(c echo.Context) error {
	s, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, sessionView(s))
}

// DeleteSession handles DELETE /v1/wizard/sessions/:sid.  Confirmed
// entities stay in the database; only the in-progress flow state is
// dropped.
func (h *WizardHandler) DeleteSession(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sid := c.Param("sid")
	if sid == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session id required"})
	}
	if err := h.Store.Delete(c.Request().Context(), organizerID, sid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete session failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GotoStep handles POST /v1/wizard/sessions/:sid/goto/:step.  Jumping
// is only allowed onto the current step or an already completed one.
func (h *WizardHandler) GotoStep(c echo.Context) error {
	s, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	step := wizard.Step(c.Param("step"))
	if !wizard.ValidStep(step) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown step"})
	}
	if !s.StepClickable(step) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "step not reachable yet"})
	}
	if err := s.GoToStep(step); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown step"})
	}
	if !h.saveSession(c, s) {
		return nil
	}
	return c.JSON(http.StatusOK, sessionView(s))
}

// ContinueStep handles POST /v1/wizard/sessions/:sid/continue.  It is
// the gate between steps: the current step must have evidence of
// completion before the wizard advances.  The review step has no
// successor and completes only through a successful publish, so
// continuing from it is refused.
func (h *WizardHandler) ContinueStep(c echo.Context) error {
	s, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	if _, hasNext := wizard.NextOf(s.CurrentStep); !hasNext {
		return c.JSON(http.StatusConflict, echo.Map{"error": "publish the show to finish"})
	}
	if !s.CanProceedFrom(s.CurrentStep) {
		s.SetError("complete the current step before continuing")
		if !h.saveSession(c, s) {
			return nil
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": "step incomplete", "session": s})
	}
	s.MarkStepCompleted(s.CurrentStep)
	s.NextStep()
	if !h.saveSession(c, s) {
		return nil
	}
	return c.JSON(http.StatusOK, sessionView(s))
}

// BackStep handles POST /v1/wizard/sessions/:sid/back.  Going back is
// never gated.
func (h *WizardHandler) BackStep(c echo.Context) error {
	s, ok := h.loadSession(c)
	if !ok {
		return nil
	}
	s.PrevStep()
	if !h.saveSession(c, s) {
		return nil
	}
	return c.JSON(http.StatusOK, sessionView(s))
}

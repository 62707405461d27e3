package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showgrid/showgrid/internal/wizard"
)

// The navigation endpoints only touch the session store, so they can
// be exercised end to end against the in-memory store.

func newNavHandler() *WizardHandler {
	return &WizardHandler{Store: wizard.NewMemoryStore()}
}

func navCtx(e *echo.Echo, method, path string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(""))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	return c, rec
}

type navResp struct {
	Session wizard.Session `json:"session"`
	Steps   []stepView     `json:"steps"`
}

func TestCreateAndGetSession(t *testing.T) {
	e := echo.New()
	h := newNavHandler()

	c, rec := navCtx(e, http.MethodPost, "/v1/wizard/sessions", 7)
	require.NoError(t, h.CreateSession(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created navResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, wizard.StepDetails, created.Session.CurrentStep)
	assert.Len(t, created.Steps, len(wizard.Steps))
	// Only the first step is reachable on a fresh session.
	for _, sv := range created.Steps {
		assert.Equal(t, sv.Step == wizard.StepDetails, sv.Clickable, "step %s", sv.Step)
	}

	c, rec = navCtx(e, http.MethodGet, "/", 7)
	c.SetParamNames("sid")
	c.SetParamValues(created.Session.ID)
	require.NoError(t, h.GetSession(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got navResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.Session.ID, got.Session.ID)
}

func TestGetSessionScopedToOrganizer(t *testing.T) {
	e := echo.New()
	h := newNavHandler()

	s := wizard.NewSession(7)
	require.NoError(t, h.Store.Save(context.Background(), s))

	c, rec := navCtx(e, http.MethodGet, "/", 8)
	c.SetParamNames("sid")
	c.SetParamValues(s.ID)
	require.NoError(t, h.GetSession(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContinueBlockedWithoutEvidence(t *testing.T) {
	e := echo.New()
	h := newNavHandler()

	s := wizard.NewSession(7)
	require.NoError(t, h.Store.Save(context.Background(), s))

	c, rec := navCtx(e, http.MethodPost, "/", 7)
	c.SetParamNames("sid")
	c.SetParamValues(s.ID)
	require.NoError(t, h.ContinueStep(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The refusal is persisted as a session-level error.
	reloaded, err := h.Store.Load(context.Background(), 7, s.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, reloaded.Error)
	assert.Equal(t, wizard.StepDetails, reloaded.CurrentStep)
}

func TestContinueAdvancesAfterDetailsSaved(t *testing.T) {
	e := echo.New()
	h := newNavHandler()

	s := wizard.NewSession(7)
	s.ShowID = 42 // a saved draft is the details evidence
	require.NoError(t, h.Store.Save(context.Background(), s))

	c, rec := navCtx(e, http.MethodPost, "/", 7)
	c.SetParamNames("sid")
	c.SetParamValues(s.ID)
	require.NoError(t, h.ContinueStep(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got navResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, wizard.StepPricing, got.Session.CurrentStep)
	assert.True(t, got.Session.StepCompleted(wizard.StepDetails))
}

func TestGotoRejectsUnreachableStep(t *testing.T) {
	e := echo.New()
	h := newNavHandler()

	s := wizard.NewSession(7)
	require.NoError(t, h.Store.Save(context.Background(), s))

	c, rec := navCtx(e, http.MethodPost, "/", 7)
	c.SetParamNames("sid", "step")
	c.SetParamValues(s.ID, string(wizard.StepReview))
	require.NoError(t, h.GotoStep(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	c, rec = navCtx(e, http.MethodPost, "/", 7)
	c.SetParamNames("sid", "step")
	c.SetParamValues(s.ID, "bogus")
	require.NoError(t, h.GotoStep(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackIsNoOpOnFirstStep(t *testing.T) {
	e := echo.New()
	h := newNavHandler()

	s := wizard.NewSession(7)
	require.NoError(t, h.Store.Save(context.Background(), s))

	c, rec := navCtx(e, http.MethodPost, "/", 7)
	c.SetParamNames("sid")
	c.SetParamValues(s.ID)
	require.NoError(t, h.BackStep(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got navResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, wizard.StepDetails, got.Session.CurrentStep)
}

func TestContinueRefusedOnReviewStep(t *testing.T) {
	e := echo.New()
	h := newNavHandler()

	s := wizard.NewSession(7)
	s.ShowID = 42
	for _, st := range wizard.Steps {
		if st != wizard.StepReview {
			s.MarkStepCompleted(st)
		}
	}
	require.NoError(t, s.GoToStep(wizard.StepReview))
	require.NoError(t, h.Store.Save(context.Background(), s))

	c, rec := navCtx(e, http.MethodPost, "/", 7)
	c.SetParamNames("sid")
	c.SetParamValues(s.ID)
	require.NoError(t, h.ContinueStep(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Review completion is publish evidence; continuing must not forge it.
	reloaded, err := h.Store.Load(context.Background(), 7, s.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.StepCompleted(wizard.StepReview))
	assert.Equal(t, wizard.StepReview, reloaded.CurrentStep)
}

func TestPublishRequiresAllPriorSteps(t *testing.T) {
	e := echo.New()
	h := newNavHandler()

	s := wizard.NewSession(7)
	s.ShowID = 42
	s.MarkStepCompleted(wizard.StepDetails)
	s.MarkStepCompleted(wizard.StepPricing)
	// events, showtimes and seating left incomplete
	require.NoError(t, s.GoToStep(wizard.StepReview))
	require.NoError(t, h.Store.Save(context.Background(), s))

	c, rec := navCtx(e, http.MethodPost, "/", 7)
	c.SetParamNames("sid")
	c.SetParamValues(s.ID)
	require.NoError(t, h.PublishShow(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Step wizard.Step `json:"step"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, wizard.StepEvents, body.Step)

	reloaded, err := h.Store.Load(context.Background(), 7, s.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.StepCompleted(wizard.StepReview))
}

func TestDeleteSessionIsIdempotent(t *testing.T) {
	e := echo.New()
	h := newNavHandler()

	s := wizard.NewSession(7)
	require.NoError(t, h.Store.Save(context.Background(), s))

	for i := 0; i < 2; i++ {
		c, rec := navCtx(e, http.MethodDelete, "/", 7)
		c.SetParamNames("sid")
		c.SetParamValues(s.ID)
		require.NoError(t, h.DeleteSession(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/showgrid/showgrid/internal/model"
	"github.com/showgrid/showgrid/internal/repository"
)

// PublicHandler serves the unauthenticated storefront: browsing
// published shows down to the seat sections a customer can book.
type PublicHandler struct {
	Shows     *repository.ShowRepo
	Venues    *repository.VenueRepo
	Events    *repository.EventRepo
	Showtimes *repository.ShowtimeRepo
	Tiers     *repository.PriceTierRepo
	Sections  *repository.SeatSectionRepo
}

func NewPublicHandler(shows *repository.ShowRepo, venues *repository.VenueRepo,
	events *repository.EventRepo, showtimes *repository.ShowtimeRepo,
	tiers *repository.PriceTierRepo, sections *repository.SeatSectionRepo) *PublicHandler {
	return &PublicHandler{
		Shows:     shows,
		Venues:    venues,
		Events:    events,
		Showtimes: showtimes,
		Tiers:     tiers,
		Sections:  sections,
	}
}

// publicShow strips owner-only fields from a show before it leaves the
// API.
type publicShow struct {
	ID          uint64 `json:"id"`
	VenueID     uint64 `json:"venue_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DurationMin uint32 `json:"duration_min"`
	ImageURL    string `json:"image_url"`
	AgeLimit    uint8  `json:"age_limit"`
	Language    string `json:"language"`
}

func toPublicShow(s model.Show) publicShow {
	return publicShow{
		ID:          s.ID,
		VenueID:     s.VenueID,
		Name:        s.Name,
		Description: s.Description,
		DurationMin: s.DurationMin,
		ImageURL:    s.ImageURL,
		AgeLimit:    s.AgeLimit,
		Language:    s.Language,
	}
}

// ListShows handles GET /v1/shows.
func (h *PublicHandler) ListShows(c echo.Context) error {
	shows, err := h.Shows.ListPublished(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list shows failed"})
	}
	out := make([]publicShow, 0, len(shows))
	for _, s := range shows {
		out = append(out, toPublicShow(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": out})
}

// GetShow handles GET /v1/shows/:id.  Drafts look like missing shows
// to the storefront.
func (h *PublicHandler) GetShow(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	s, err := h.Shows.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load show failed"})
	}
	if !s.IsPublic || s.Status != model.ShowStatusPublished {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
	}
	resp := echo.Map{"show": toPublicShow(*s)}
	if v, err := h.Venues.GetByID(c.Request().Context(), s.VenueID); err == nil {
		resp["venue"] = echo.Map{"id": v.ID, "name": v.Name, "address": v.Address, "city": v.City}
	}
	return c.JSON(http.StatusOK, resp)
}

// ListShowEvents handles GET /v1/shows/:id/events.
func (h *PublicHandler) ListShowEvents(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	ctx := c.Request().Context()
	s, err := h.Shows.GetByID(ctx, id)
	if err != nil || !s.IsPublic || s.Status != model.ShowStatusPublished {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
	}
	events, err := h.Events.ListByShow(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// ListEventShowtimes handles GET /v1/events/:id/showtimes.
func (h *PublicHandler) ListEventShowtimes(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	showtimes, err := h.Showtimes.ListByEvent(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list showtimes failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"showtimes": showtimes})
}

// ListShowtimeSections handles GET /v1/showtimes/:id/sections and
// includes the price tier of each section so the storefront can
// render prices without extra round trips.
func (h *PublicHandler) ListShowtimeSections(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	ctx := c.Request().Context()
	sections, err := h.Sections.ListByShowtime(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list sections failed"})
	}
	type sectionWithTier struct {
		Section model.SeatSection `json:"section"`
		Tier    *model.PriceTier  `json:"tier,omitempty"`
	}
	out := make([]sectionWithTier, 0, len(sections))
	for _, sec := range sections {
		entry := sectionWithTier{Section: sec}
		if t, err := h.Tiers.GetByID(ctx, sec.PriceTierID); err == nil {
			entry.Tier = t
		}
		out = append(out, entry)
	}
	return c.JSON(http.StatusOK, echo.Map{"sections": out})
}

// SearchShows handles GET /v1/search/shows?q= over published shows.
func (h *PublicHandler) SearchShows(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
	}
	shows, err := h.Shows.SearchPublished(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	out := make([]publicShow, 0, len(shows))
	for _, s := range shows {
		out = append(out, toPublicShow(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": out})
}

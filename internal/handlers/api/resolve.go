package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"grimoire/internal/config"
	"grimoire/internal/db"
	"grimoire/internal/grimoire"
	"grimoire/internal/metrics"
	"grimoire/internal/models"
	"grimoire/internal/validation"
)

// MissStore reports frequently unresolved queries.
type MissStore interface {
	GetTopMisses(ctx context.Context, limit int) ([]models.SlugLookup, error)
}

// ResolveHandler handles grimoire slug resolution via JSON API.
type ResolveHandler struct {
	index  *grimoire.Index
	misses MissStore
	cfg    *config.Config
}

// NewResolveHandler creates a new API resolve handler. misses may be nil when
// no database is configured.
func NewResolveHandler(index *grimoire.Index, misses MissStore, cfg *config.Config) *ResolveHandler {
	return &ResolveHandler{index: index, misses: misses, cfg: cfg}
}

// Resolve maps the q query parameter to a canonical slug. A miss is a
// successful response with a null slug.
func (h *ResolveHandler) Resolve(c fiber.Ctx) error {
	query := c.Query("q")
	if valid, msg := validation.ValidateQuery(query); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	result := h.index.Resolve(query)
	metrics.RecordSlugLookup(grimoire.Normalize(query), result.MatchType)

	resp := models.ResolveResponse{
		Query:     query,
		Slug:      result.Slug,
		MatchType: result.MatchType,
	}
	if result.Matched() {
		resp.URL = EntryURL(h.cfg.BaseURL, *result.Slug)
	}
	return jsonSuccess(c, resp)
}

// Entries lists the catalog.
func (h *ResolveHandler) Entries(c fiber.Ctx) error {
	entries := h.index.Entries()
	out := make([]models.EntrySummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.EntrySummary{
			Slug:  e.Slug,
			Title: e.Title,
			URL:   EntryURL(h.cfg.BaseURL, e.Slug),
		})
	}
	return jsonSuccess(c, out)
}

// Misses returns the most frequent unresolved queries.
func (h *ResolveHandler) Misses(c fiber.Ctx) error {
	if h.misses == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "lookup recording is disabled")
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(db.DefaultMissLimit)))
	if err != nil || limit < 1 || limit > db.MaxMissLimit {
		return jsonError(c, fiber.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", db.MaxMissLimit))
	}

	lookups, err := h.misses.GetTopMisses(c.Context(), limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch misses")
	}

	out := make([]models.MissResponse, 0, len(lookups))
	for _, l := range lookups {
		out = append(out, models.MissResponse{Query: l.Query, Count: l.Count})
	}
	return jsonSuccess(c, out)
}

// EntryURL returns the public page URL for a slug.
func EntryURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/grimoire/" + slug
}

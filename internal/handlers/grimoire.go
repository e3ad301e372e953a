package handlers

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v3"

	"grimoire/internal/captions"
	"grimoire/internal/config"
	"grimoire/internal/grimoire"
	"grimoire/internal/metrics"
	"grimoire/internal/models"
	"grimoire/internal/validation"
)

// GrimoireHandler serves the knowledge-base pages.
type GrimoireHandler struct {
	index       *grimoire.Index
	cfg         *config.Config
	redactEvery int
}

// NewGrimoireHandler creates a new grimoire page handler.
func NewGrimoireHandler(index *grimoire.Index, catalog *config.Catalog, cfg *config.Config) *GrimoireHandler {
	return &GrimoireHandler{index: index, cfg: cfg, redactEvery: catalog.RedactEvery}
}

// Index lists every entry.
func (h *GrimoireHandler) Index(c fiber.Ctx) error {
	return c.Render("index", Page(h.cfg, h.cfg.SiteTitle, fiber.Map{
		"Entries": h.index.Entries(),
	}))
}

// Show renders the entry named by the path. Non-canonical names (titles,
// aliases, keywords) redirect permanently to the canonical slug.
func (h *GrimoireHandler) Show(c fiber.Ctx) error {
	raw := c.Params("*")
	query, err := url.PathUnescape(raw)
	if err != nil {
		query = raw
	}
	return h.resolve(c, query)
}

// Search resolves the q query parameter the same way as Show.
func (h *GrimoireHandler) Search(c fiber.Ctx) error {
	query := c.Query("q")
	if valid, _ := validation.ValidateQuery(query); !valid {
		return c.Redirect().To("/")
	}
	return h.resolve(c, query)
}

func (h *GrimoireHandler) resolve(c fiber.Ctx, query string) error {
	result := h.index.Resolve(query)
	metrics.RecordSlugLookup(grimoire.Normalize(query), result.MatchType)

	switch result.MatchType {
	case models.MatchNone:
		return h.notFound(c, query)
	case models.MatchExact:
		entry, _ := h.index.Lookup(*result.Slug)
		if entry.Slug != query {
			// Anchored slug: let the browser scroll.
			return c.Redirect().Status(fiber.StatusMovedPermanently).To(entryPath(*result.Slug))
		}
		return c.Render("entry", Page(h.cfg, entry.Title, fiber.Map{
			"Entry":   entry,
			"Summary": renderMarkdown(entry.Summary),
			"Preview": captions.Redact(entry.Summary, h.redactEvery, captions.DefaultRedactMask),
		}))
	default:
		return c.Redirect().Status(fiber.StatusMovedPermanently).To(entryPath(*result.Slug))
	}
}

func (h *GrimoireHandler) notFound(c fiber.Ctx, query string) error {
	return c.Status(fiber.StatusNotFound).Render("error", Page(h.cfg, "Not Found", fiber.Map{
		"Message": "Nothing in the grimoire matches '" + strings.TrimSpace(query) + "'.",
	}))
}

func entryPath(slug string) string {
	base, anchor := validation.SplitAnchor(slug)
	return "/grimoire/" + base + anchor
}

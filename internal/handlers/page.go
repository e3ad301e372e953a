package handlers

import (
	"github.com/gofiber/fiber/v3"

	"grimoire/internal/config"
)

// Page builds the template data for a page: site branding from cfg, the page
// title, then data. Keys in data win.
func Page(cfg *config.Config, title string, data fiber.Map) fiber.Map {
	page := fiber.Map{
		"Title":       title,
		"SiteTitle":   cfg.SiteTitle,
		"SiteTagline": cfg.SiteTagline,
		"SiteFooter":  cfg.SiteFooter,
	}
	for k, v := range data {
		page[k] = v
	}
	return page
}

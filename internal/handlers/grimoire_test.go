package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/template/html/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimoire/internal/config"
	"grimoire/internal/grimoire"
	"grimoire/views"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()

	cat, err := config.DefaultCatalog()
	require.NoError(t, err)
	idx, err := grimoire.NewIndex(cat.Entries)
	require.NoError(t, err)

	cfg := &config.Config{SiteTitle: "Test Grimoire", SiteFooter: "footer text"}
	h := NewGrimoireHandler(idx, cat, cfg)

	app := fiber.New(fiber.Config{
		Views:       html.NewFileSystem(http.FS(views.FS), ".html"),
		ViewsLayout: "layouts/main",
	})
	app.Get("/", h.Index)
	app.Get("/search", h.Search)
	app.Get("/grimoire/*", h.Show)
	return app
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestIndexListsEntries(t *testing.T) {
	resp, body := get(t, testApp(t), "/")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Test Grimoire")
	assert.Contains(t, body, `href="/grimoire/zodiac/aries"`)
	assert.Contains(t, body, "footer text")
}

func TestShowExactRendersEntry(t *testing.T) {
	resp, body := get(t, testApp(t), "/grimoire/zodiac/aries")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<strong>Aries</strong>")
	assert.Contains(t, body, "the ram")
	assert.Contains(t, body, `name="description"`)
}

func TestShowRedirectsToCanonicalSlug(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		location string
	}{
		{"title", "/grimoire/Mercury%20Retrograde", "/grimoire/events/mercury-retrograde"},
		{"alias", "/grimoire/the%20ram", "/grimoire/zodiac/aries"},
		{"keyword", "/grimoire/love%20stone", "/grimoire/crystals/rose-quartz"},
		{"anchor", "/grimoire/zodiac/aries%23dates", "/grimoire/zodiac/aries#dates"},
	}

	app := testApp(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := get(t, app, tt.target)
			assert.Equal(t, fiber.StatusMovedPermanently, resp.StatusCode)
			assert.Equal(t, tt.location, resp.Header.Get("Location"))
		})
	}
}

func TestShowMissRendersNotFound(t *testing.T) {
	resp, body := get(t, testApp(t), "/grimoire/black-moon-lilith")

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "black-moon-lilith")
}

func TestSearch(t *testing.T) {
	app := testApp(t)

	resp, _ := get(t, app, "/search?q=love+stone")
	assert.Equal(t, fiber.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/grimoire/crystals/rose-quartz", resp.Header.Get("Location"))

	resp, _ = get(t, app, "/search")
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, _ = get(t, app, "/search?q=nothing+here")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRenderMarkdown(t *testing.T) {
	assert.Equal(t, "", string(renderMarkdown("")))
	assert.Contains(t, string(renderMarkdown("**bold**")), "<strong>bold</strong>")
	assert.NotContains(t, string(renderMarkdown("<script>x</script>")), "<script>")
}

func TestPage(t *testing.T) {
	cfg := &config.Config{SiteTitle: "T", SiteTagline: "tag", SiteFooter: "F"}
	data := Page(cfg, "page", fiber.Map{"Message": "hi", "SiteFooter": "override"})

	assert.Equal(t, "page", data["Title"])
	assert.Equal(t, "T", data["SiteTitle"])
	assert.Equal(t, "tag", data["SiteTagline"])
	assert.Equal(t, "override", data["SiteFooter"])
	assert.Equal(t, "hi", data["Message"])
}

package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"grimoire/internal/captions"
	"grimoire/internal/config"
	"grimoire/internal/models"
)

// maxRedactEvery bounds the caller-supplied redaction interval.
const maxRedactEvery = 100

// CaptionHandler validates generated social copy via JSON API.
type CaptionHandler struct {
	catalog *config.Catalog
}

// NewCaptionHandler creates a new API caption handler.
func NewCaptionHandler(catalog *config.Catalog) *CaptionHandler {
	return &CaptionHandler{catalog: catalog}
}

// ValidateHook checks an opening line.
func (h *CaptionHandler) ValidateHook(c fiber.Ctx) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	violations := captions.ValidateHook(body.Text, h.catalog.Hooks)
	return jsonSuccess(c, models.HookValidationResponse{
		Valid:      len(violations) == 0,
		WordCount:  captions.WordCount(body.Text),
		Violations: violations,
	})
}

// ValidateCaption checks a multi-line caption.
func (h *CaptionHandler) ValidateCaption(c fiber.Ctx) error {
	var body struct {
		Caption string `json:"caption"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	res := captions.ValidateCaption(body.Caption, h.catalog.Captions)
	return jsonSuccess(c, models.CaptionValidationResponse{
		Valid:      res.Valid(),
		Lines:      res.Lines,
		Violations: res.Violations,
	})
}

// Redact masks every nth word of a preview. The interval defaults to the
// catalog's.
func (h *CaptionHandler) Redact(c fiber.Ctx) error {
	var body struct {
		Text  string `json:"text"`
		Every int    `json:"every"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	every := body.Every
	if every == 0 {
		every = h.catalog.RedactEvery
	}
	if every < 1 || every > maxRedactEvery {
		return jsonError(c, fiber.StatusBadRequest, "every must be between 1 and 100")
	}

	return jsonSuccess(c, models.RedactResponse{
		Text: captions.Redact(body.Text, every, captions.DefaultRedactMask),
	})
}

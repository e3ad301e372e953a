package api

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v3"

	"grimoire/internal/alerts"
	"grimoire/internal/models"
	"grimoire/internal/validation"
)

// maxMessageLength bounds ingested log messages.
const maxMessageLength = 4000

// LogHandler ingests client log events into the alert pipeline.
type LogHandler struct {
	pipeline *alerts.Pipeline
}

// NewLogHandler creates a new API log handler.
func NewLogHandler(pipeline *alerts.Pipeline) *LogHandler {
	return &LogHandler{pipeline: pipeline}
}

// Ingest accepts a single log event and reports the pipeline outcome.
func (h *LogHandler) Ingest(c fiber.Ctx) error {
	var body struct {
		Level   string         `json:"level"`
		Message string         `json:"message"`
		Source  string         `json:"source"`
		Context map[string]any `json:"context"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if !validation.ValidateLevel(body.Level) {
		return jsonError(c, fiber.StatusBadRequest, "level must be one of debug, info, warn, error")
	}
	message := strings.TrimSpace(body.Message)
	if message == "" {
		return jsonError(c, fiber.StatusBadRequest, "message is required")
	}
	if len(message) > maxMessageLength {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, "message is too long")
	}

	ev := &models.LogEvent{
		Level:   body.Level,
		Message: message,
		Source:  body.Source,
		Context: body.Context,
	}
	outcome := h.pipeline.Handle(c.Context(), ev)

	status := fiber.StatusAccepted
	if outcome == models.OutcomeFailed {
		status = fiber.StatusBadGateway
	}
	return jsonStatus(c, status, models.LogIngestResponse{ID: ev.ID, Outcome: outcome})
}

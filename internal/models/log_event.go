package models

import "github.com/google/uuid"

// Log levels accepted by the ingest pipeline.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Pipeline outcomes for an ingested log event.
const (
	OutcomeForwarded  = "forwarded"
	OutcomeSampledOut = "sampled_out"
	OutcomeDuplicate  = "duplicate"
	OutcomeDisabled   = "disabled"
	OutcomeFailed     = "failed"
)

// LogEvent is a client or server log line headed for the alert channel.
type LogEvent struct {
	ID      uuid.UUID      `json:"id"`
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Source  string         `json:"source,omitempty"`
	Context map[string]any `json:"context,omitempty"`
}

// DedupeKey returns the key used to suppress repeats of the same event.
func (e *LogEvent) DedupeKey() string {
	return e.Level + ":" + e.Source + ":" + e.Message
}

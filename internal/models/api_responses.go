package models

import "github.com/google/uuid"

// ResolveResponse contains the result of slug resolution.
type ResolveResponse struct {
	Query     string    `json:"query"`
	Slug      *string   `json:"slug"`
	MatchType MatchType `json:"match_type"`
	URL       string    `json:"url,omitempty"`
}

// EntrySummary is the catalog listing form of a ContentEntry.
type EntrySummary struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// MissResponse reports a frequently unresolved query.
type MissResponse struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// HookValidationResponse contains hook validation results.
type HookValidationResponse struct {
	Valid      bool     `json:"valid"`
	WordCount  int      `json:"word_count"`
	Violations []string `json:"violations"`
}

// CaptionValidationResponse contains caption validation results.
type CaptionValidationResponse struct {
	Valid      bool     `json:"valid"`
	Lines      []string `json:"lines"`
	Violations []string `json:"violations"`
}

// RedactResponse contains redacted preview text.
type RedactResponse struct {
	Text string `json:"text"`
}

// LogIngestResponse reports what the pipeline did with an ingested event.
type LogIngestResponse struct {
	ID      uuid.UUID `json:"id"`
	Outcome string    `json:"outcome"`
}

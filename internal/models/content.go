package models

// MatchType identifies which resolution tier produced a MatchResult.
type MatchType string

// Resolution tiers, in the order they are tried.
const (
	MatchExact   MatchType = "exact"
	MatchTitle   MatchType = "title"
	MatchAlias   MatchType = "alias"
	MatchKeyword MatchType = "keyword"
	MatchNone    MatchType = "none"
)

// ContentEntry is a titled grimoire knowledge-base item.
type ContentEntry struct {
	Slug     string   `json:"slug" yaml:"slug"`
	Title    string   `json:"title" yaml:"title"`
	Aliases  []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Summary  string   `json:"summary,omitempty" yaml:"summary,omitempty"` // markdown
}

// MatchResult is the outcome of resolving a free-text query to a slug.
// Slug is nil when MatchType is MatchNone.
type MatchResult struct {
	Slug      *string   `json:"slug"`
	MatchType MatchType `json:"match_type"`
}

// Matched returns true if the query resolved to an entry.
func (r MatchResult) Matched() bool {
	return r.Slug != nil && r.MatchType != MatchNone
}

// SlugOrEmpty returns the resolved slug, or "" when nothing matched.
func (r MatchResult) SlugOrEmpty() string {
	if r.Slug == nil {
		return ""
	}
	return *r.Slug
}

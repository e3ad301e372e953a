package grimoire

import (
	"errors"
	"fmt"
	"strings"

	"grimoire/internal/models"
	"grimoire/internal/validation"
)

// Index configuration errors.
var (
	ErrInvalidSlug   = errors.New("invalid slug")
	ErrDuplicateSlug = errors.New("duplicate slug")
	ErrMissingTitle  = errors.New("entry title is required")
)

// Index is an immutable lookup structure over catalog entries.
type Index struct {
	entries   []models.ContentEntry
	bySlug    map[string]int
	byTitle   map[string]string
	byAlias   map[string]string
	byKeyword map[string]string
}

// NewIndex builds an index from catalog entries. Entries are copied, so later
// changes to the input slice do not affect the index. When two entries share a
// normalized title, alias or keyword, the earlier entry wins.
func NewIndex(entries []models.ContentEntry) (*Index, error) {
	idx := &Index{
		entries:   make([]models.ContentEntry, 0, len(entries)),
		bySlug:    make(map[string]int, len(entries)),
		byTitle:   make(map[string]string, len(entries)),
		byAlias:   make(map[string]string),
		byKeyword: make(map[string]string),
	}

	for _, e := range entries {
		if !validation.ValidateSlug(e.Slug) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSlug, e.Slug)
		}
		if _, exists := idx.bySlug[e.Slug]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSlug, e.Slug)
		}
		if strings.TrimSpace(e.Title) == "" {
			return nil, fmt.Errorf("%w: %q", ErrMissingTitle, e.Slug)
		}

		entry := models.ContentEntry{
			Slug:     e.Slug,
			Title:    e.Title,
			Aliases:  append([]string(nil), e.Aliases...),
			Keywords: append([]string(nil), e.Keywords...),
			Summary:  e.Summary,
		}
		idx.bySlug[entry.Slug] = len(idx.entries)
		idx.entries = append(idx.entries, entry)

		register(idx.byTitle, entry.Title, entry.Slug)
		for _, a := range entry.Aliases {
			register(idx.byAlias, a, entry.Slug)
		}
		for _, k := range entry.Keywords {
			register(idx.byKeyword, k, entry.Slug)
		}
	}

	return idx, nil
}

func register(m map[string]string, key, slug string) {
	key = Normalize(key)
	if key == "" {
		return
	}
	if _, taken := m[key]; !taken {
		m[key] = slug
	}
}

// Resolve maps an arbitrary query to a canonical slug. It is total: every
// input, including the empty string, yields a result.
func (idx *Index) Resolve(query string) models.MatchResult {
	if idx == nil {
		return noMatch()
	}

	if base, _ := validation.SplitAnchor(query); base != "" {
		if _, ok := idx.bySlug[base]; ok {
			return match(query, models.MatchExact)
		}
	}

	norm := Normalize(query)
	if norm == "" {
		return noMatch()
	}
	if slug, ok := idx.byTitle[norm]; ok {
		return match(slug, models.MatchTitle)
	}
	if slug, ok := idx.byAlias[norm]; ok {
		return match(slug, models.MatchAlias)
	}
	if slug, ok := idx.byKeyword[norm]; ok {
		return match(slug, models.MatchKeyword)
	}
	return noMatch()
}

// Lookup returns the entry registered under slug. An "#anchor" suffix is
// ignored.
func (idx *Index) Lookup(slug string) (models.ContentEntry, bool) {
	if idx == nil {
		return models.ContentEntry{}, false
	}
	base, _ := validation.SplitAnchor(slug)
	i, ok := idx.bySlug[base]
	if !ok {
		return models.ContentEntry{}, false
	}
	return idx.entries[i], true
}

// Entries returns the catalog entries in catalog order.
func (idx *Index) Entries() []models.ContentEntry {
	if idx == nil {
		return nil
	}
	out := make([]models.ContentEntry, len(idx.entries))
	copy(out, idx.entries)
	return out
}

// Len returns the number of indexed entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

func match(slug string, mt models.MatchType) models.MatchResult {
	return models.MatchResult{Slug: &slug, MatchType: mt}
}

func noMatch() models.MatchResult {
	return models.MatchResult{MatchType: models.MatchNone}
}

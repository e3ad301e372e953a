package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"grimoire/internal/captions"
	"grimoire/internal/models"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// ErrInvalidCatalog is returned when a catalog file cannot be parsed.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the static content configuration: grimoire entries plus the
// content-tuning rules used by the caption validators.
type Catalog struct {
	Entries     []models.ContentEntry `yaml:"entries"`
	Hooks       captions.HookRules    `yaml:"hooks"`
	Captions    captions.CaptionRules `yaml:"captions"`
	RedactEvery int                   `yaml:"redact_every"`
}

// LoadCatalog loads the catalog at path. A missing file is an error wrapping
// os.ErrNotExist.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// LoadCatalogOrDefault loads the catalog at path, or the embedded default
// catalog when path is empty.
func LoadCatalogOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	return LoadCatalog(path)
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog parses YAML catalog data and fills unset rules with defaults.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	// Set defaults
	hooks := captions.DefaultHookRules()
	if cat.Hooks.ForbiddenOpenings == nil {
		cat.Hooks.ForbiddenOpenings = hooks.ForbiddenOpenings
	}
	if cat.Hooks.MinWords == 0 {
		cat.Hooks.MinWords = hooks.MinWords
	}
	if cat.Hooks.MaxWords == 0 {
		cat.Hooks.MaxWords = hooks.MaxWords
	}
	if cat.Hooks.MinWords > cat.Hooks.MaxWords {
		return nil, fmt.Errorf("%w: hooks.min_words %d exceeds max_words %d", ErrInvalidCatalog, cat.Hooks.MinWords, cat.Hooks.MaxWords)
	}

	capRules := captions.DefaultCaptionRules()
	if cat.Captions.LineCount == 0 {
		cat.Captions.LineCount = capRules.LineCount
	}
	if cat.Captions.CallToAction == "" {
		cat.Captions.CallToAction = capRules.CallToAction
	}
	if cat.RedactEvery == 0 {
		cat.RedactEvery = captions.DefaultRedactEvery
	}

	return &cat, nil
}

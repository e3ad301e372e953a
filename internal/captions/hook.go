package captions

import (
	"fmt"
	"strings"

	"grimoire/internal/grimoire"
)

// HookRules configures opening-line validation.
type HookRules struct {
	ForbiddenOpenings []string `yaml:"forbidden_openings"`
	MinWords          int      `yaml:"min_words"`
	MaxWords          int      `yaml:"max_words"`
}

// DefaultHookRules returns the stock hook rules.
func DefaultHookRules() HookRules {
	return HookRules{
		ForbiddenOpenings: []string{
			"did you know",
			"have you ever",
			"in today's",
			"let's talk about",
			"here's why",
			"welcome to",
			"today we",
			"hey guys",
		},
		MinWords: 6,
		MaxWords: 12,
	}
}

// ValidateHook checks an opening line against rules and returns the
// violations found. The forbidden-opening and word-count checks run
// independently. An empty slice means the hook is valid.
func ValidateHook(line string, rules HookRules) []string {
	violations := []string{}

	norm := grimoire.Normalize(line)
	for _, phrase := range rules.ForbiddenOpenings {
		p := grimoire.Normalize(phrase)
		if p == "" {
			continue
		}
		if strings.HasPrefix(norm, p) {
			violations = append(violations, fmt.Sprintf("opens with forbidden phrase %q", phrase))
			break
		}
	}

	n := WordCount(line)
	switch {
	case rules.MaxWords <= 0:
		// No upper bound.
		if n < rules.MinWords {
			violations = append(violations, fmt.Sprintf("word count %d, need at least %d", n, rules.MinWords))
		}
	case n < rules.MinWords || n > rules.MaxWords:
		violations = append(violations, fmt.Sprintf("word count %d outside range %d-%d", n, rules.MinWords, rules.MaxWords))
	}

	return violations
}

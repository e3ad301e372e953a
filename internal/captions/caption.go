package captions

import (
	"fmt"
	"strings"
)

// CaptionRules configures multi-line caption validation.
type CaptionRules struct {
	LineCount    int    `yaml:"line_count"`
	CallToAction string `yaml:"call_to_action"`
}

// DefaultCaptionRules returns the stock caption rules.
func DefaultCaptionRules() CaptionRules {
	return CaptionRules{
		LineCount:    4,
		CallToAction: "Save this",
	}
}

// CaptionValidationResult holds the split caption lines and any violations.
type CaptionValidationResult struct {
	Lines      []string
	Violations []string
}

// Valid returns true if no violations were found.
func (r CaptionValidationResult) Valid() bool {
	return len(r.Violations) == 0
}

// SplitLines splits a caption into trimmed, non-blank lines.
func SplitLines(caption string) []string {
	caption = strings.ReplaceAll(caption, "\r\n", "\n")
	lines := []string{}
	for _, l := range strings.Split(caption, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// ValidateCaption checks that caption has exactly rules.LineCount lines and
// that the final line carries the call to action.
func ValidateCaption(caption string, rules CaptionRules) CaptionValidationResult {
	res := CaptionValidationResult{
		Lines:      SplitLines(caption),
		Violations: []string{},
	}

	if len(res.Lines) != rules.LineCount {
		res.Violations = append(res.Violations, fmt.Sprintf("expected %d lines, got %d", rules.LineCount, len(res.Lines)))
	}

	if rules.CallToAction != "" {
		last := ""
		if n := len(res.Lines); n > 0 {
			last = res.Lines[n-1]
		}
		if !strings.Contains(last, rules.CallToAction) {
			res.Violations = append(res.Violations, fmt.Sprintf("final line must contain %q", rules.CallToAction))
		}
	}

	return res
}

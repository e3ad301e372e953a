package captions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordCount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"whitespace", "  \n\t", 0},
		{"simple", "Mercury goes retrograde tonight", 4},
		{"apostrophe", "Venus isn't shy about it", 5},
		{"curly apostrophe", "Venus isn’t shy", 3},
		{"punctuation ignored", "Wait... what?! — really", 3},
		{"emoji ignored", "Full moon 🌕 energy", 3},
		{"numbers", "12 houses, 3 modalities", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WordCount(tt.in))
		})
	}
}

func TestValidateHook(t *testing.T) {
	rules := DefaultHookRules()

	tests := []struct {
		name           string
		line           string
		wantViolations int
		wantContains   []string
	}{
		{"valid", "Your rising sign explains why strangers misread you", 0, nil},
		{"forbidden opening", "Did you know your moon sign shapes every mood", 1, []string{`forbidden phrase "did you know"`}},
		{"forbidden opening case insensitive", "  DID   you KNOW your moon sign shapes every mood", 1, []string{"forbidden phrase"}},
		{"too short", "Scorpios never forget", 1, []string{"word count 3 outside range 6-12"}},
		{"too long", "This one placement in your chart quietly decides how you love, fight, rest and heal", 1, []string{"word count 15 outside range 6-12"}},
		{"both", "Did you know this?", 2, []string{"forbidden phrase", "word count 4"}},
		{"exactly min", "Saturn returns feel like quiet reckonings", 0, nil},
		{"exactly max", "Saturn returns feel like quiet reckonings that rebuild you from the ground", 0, nil},
		{"empty", "", 1, []string{"word count 0"}},
		{"phrase mid sentence allowed", "Honestly, did you know Saturn rules discipline and time", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateHook(tt.line, rules)
			require.NotNil(t, got)
			assert.Len(t, got, tt.wantViolations, "violations: %v", got)
			joined := strings.Join(got, "\n")
			for _, want := range tt.wantContains {
				assert.Contains(t, joined, want)
			}
		})
	}
}

func TestValidateHook_CustomRules(t *testing.T) {
	rules := HookRules{ForbiddenOpenings: []string{"", "  "}, MinWords: 1, MaxWords: 0}
	assert.Empty(t, ValidateHook("anything goes here as long as it has words", rules))
	assert.Equal(t, []string{"word count 0, need at least 1"}, ValidateHook("", rules))
}

func TestValidateHook_NoUpperBound(t *testing.T) {
	rules := HookRules{MinWords: 6}

	assert.Equal(t, []string{"word count 3, need at least 6"}, ValidateHook("Scorpios never forget", rules))
	assert.Empty(t, ValidateHook("This one placement in your chart quietly decides how you love, fight, rest and heal", rules))
	for _, v := range ValidateHook("short", rules) {
		assert.NotContains(t, v, "-0")
	}
}

func TestValidateCaption(t *testing.T) {
	rules := DefaultCaptionRules()

	t.Run("well formed", func(t *testing.T) {
		caption := "Your moon sign is your inner weather.\nIt shows how you self-soothe.\nAnd what you need to feel safe.\nSave this for your next hard day."
		res := ValidateCaption(caption, rules)
		assert.Empty(t, res.Violations)
		assert.True(t, res.Valid())
		assert.Len(t, res.Lines, 4)
	})

	t.Run("crlf and blank lines", func(t *testing.T) {
		caption := "\r\nOne\r\n\r\nTwo\r\n  Three  \r\nSave this post\r\n\r\n"
		res := ValidateCaption(caption, rules)
		assert.Empty(t, res.Violations)
		assert.Equal(t, []string{"One", "Two", "Three", "Save this post"}, res.Lines)
	})

	t.Run("wrong line count", func(t *testing.T) {
		res := ValidateCaption("One\nTwo\nSave this", rules)
		require.Len(t, res.Violations, 1)
		assert.Equal(t, "expected 4 lines, got 3", res.Violations[0])
	})

	t.Run("missing call to action", func(t *testing.T) {
		res := ValidateCaption("One\nTwo\nThree\nFollow for more", rules)
		require.Len(t, res.Violations, 1)
		assert.Equal(t, `final line must contain "Save this"`, res.Violations[0])
	})

	t.Run("call to action not on final line", func(t *testing.T) {
		res := ValidateCaption("Save this\nTwo\nThree\nFour", rules)
		assert.Len(t, res.Violations, 1)
	})

	t.Run("empty", func(t *testing.T) {
		res := ValidateCaption("", rules)
		assert.NotNil(t, res.Lines)
		assert.Empty(t, res.Lines)
		assert.Len(t, res.Violations, 2)
	})
}

func TestRedact(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		every int
		want  string
	}{
		{"every sixth", "one two three four five six seven eight nine ten eleven twelve thirteen", 6,
			"one two three four five X seven eight nine ten eleven X thirteen"},
		{"fewer words than interval", "one two three", 6, "one two three"},
		{"counts across lines", "a b c\nd e f g", 3, "a b X\nd e X g"},
		{"collapses spaces", "a   b  c", 2, "a X c"},
		{"disabled", "a b c", 0, "a b c"},
		{"every word", "a b", 1, "X X"},
		{"empty", "", 6, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Redact(tt.text, tt.every, "X"))
		})
	}
}

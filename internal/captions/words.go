package captions

import (
	"regexp"
	"strings"
)

var wordRE = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`)

// WordCount counts word tokens in s. Inner apostrophes do not split a word and
// punctuation and emoji are not counted.
func WordCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return len(wordRE.FindAllString(s, -1))
}

package captions

import "strings"

// DefaultRedactEvery is the stock word interval for locked previews.
const DefaultRedactEvery = 6

// DefaultRedactMask replaces redacted words.
const DefaultRedactMask = "█████"

// Redact replaces every nth whitespace-separated word (n, 2n, 3n, ...) with
// mask. Line breaks are preserved; runs of spaces collapse to one. Redact
// returns text unchanged when every is less than 1.
func Redact(text string, every int, mask string) string {
	if every < 1 {
		return text
	}

	lines := strings.Split(text, "\n")
	count := 0
	for i, line := range lines {
		words := strings.Fields(line)
		for j := range words {
			count++
			if count%every == 0 {
				words[j] = mask
			}
		}
		lines[i] = strings.Join(words, " ")
	}
	return strings.Join(lines, "\n")
}

package logging

import "strings"

// ShouldSample decides whether an event at level is kept. Warnings and errors
// are always kept. Lower levels are kept when rnd() >= 1-rate, so rate is the
// fraction retained; rate is clamped to [0, 1] and rnd must return values in
// [0, 1).
func ShouldSample(level string, rate float64, rnd func() float64) bool {
	switch strings.ToLower(level) {
	case "warn", "error":
		return true
	}

	if rate >= 1 {
		return true
	}
	if rate <= 0 || rnd == nil {
		return false
	}
	return rnd() >= 1-rate
}

package logging

import "strings"

// deniedKeys lists context keys that never leave the process, in canonical
// form (lowercase, separators removed).
var deniedKeys = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"token":         {},
	"ip":            {},
	"useragent":     {},
}

var separators = strings.NewReplacer("-", "", "_", "")

func canonicalKey(k string) string {
	return separators.Replace(strings.ToLower(k))
}

// IsSensitiveKey reports whether a context key is on the deny-list.
func IsSensitiveKey(key string) bool {
	_, denied := deniedKeys[canonicalKey(key)]
	return denied
}

// SanitizeContext returns a copy of fields without deny-listed keys. The input
// map is not modified; nested values are copied by reference.
func SanitizeContext(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if IsSensitiveKey(k) {
			continue
		}
		out[k] = v
	}
	return out
}

package pricing

import "strings"

// NamesMatch reports whether a vendor listing name answers a requested card
// name. Exact case-insensitive match first, then substring containment either
// way so "Sol Ring" still matches "Sol Ring (Foil)". Containment is a
// best-effort fallback; it can over-match on very short names, which is why
// it lives behind this one function.
func NamesMatch(requested, listed string) bool {
	a := strings.ToLower(strings.TrimSpace(requested))
	b := strings.ToLower(strings.TrimSpace(listed))

	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

package lifting

import (
	"sort"
	"strings"
)

// Normalize trims, lowercases and deduplicates a list of feature phrases,
// preserving first-seen order among distinct phrases (the LLM response
// parser and the auto-lift rules share this contract).
func Normalize(phrases []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// SortedUnion returns the sorted, deduplicated union of a and b, used by
// hierarchy and module feature aggregation.
func SortedUnion(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, list := range [][]string{a, b} {
		for _, p := range list {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	sort.Strings(out)
	return out
}

package matching

import "strings"

// ParseSkills splits a comma separated skill list. Only commas delimit, so
// multi-word skills such as "React Native" stay whole. Tokens are trimmed,
// empty tokens are dropped and duplicates (case-insensitive) collapse onto
// their first occurrence.
func ParseSkills(raw string) []string {
	return Merge(nil, raw)
}

// Merge appends the skills parsed from incoming to existing. Comparison is
// case-insensitive and the first seen casing wins. The result never holds two
// equal skills.
func Merge(existing []string, incoming string) []string {
	return MergeLists(existing, strings.Split(incoming, ","))
}

// MergeLists is Merge for an already split incoming list.
func MergeLists(existing []string, incoming []string) []string {
	out := make([]string, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}

	for _, s := range existing {
		add(s)
	}
	for _, s := range incoming {
		add(s)
	}
	return out
}

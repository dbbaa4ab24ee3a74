package resolve

import (
	"sort"
	"strings"
)

const (
	// DefaultMinSimilarity is the normalized similarity a name needs to be suggested.
	DefaultMinSimilarity = 0.75
	// DefaultMaxSuggestions caps the number of suggestions per field.
	DefaultMaxSuggestions = 3
)

// Suggest returns source names that look like near misses of name, best first.
// Exact matches are never suggested.
func Suggest(name string, candidates []string) []string {
	type scored struct {
		name  string
		score float64
	}

	norm := normalizeIdent(name)

	var ranked []scored
	for _, c := range candidates {
		if c == name {
			continue
		}

		score := similarity(norm, normalizeIdent(c))
		if score >= DefaultMinSimilarity {
			ranked = append(ranked, scored{name: c, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].name < ranked[j].name
	})

	if len(ranked) > DefaultMaxSuggestions {
		ranked = ranked[:DefaultMaxSuggestions]
	}

	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.name)
	}

	return out
}

// normalizeIdent case-folds an identifier and strips _, - and spaces,
// so "user_id", "UserID" and "userId" compare equal.
func normalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// similarity is 1 - levenshtein(a, b) / max(len(a), len(b)).
func similarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshtein(a, b))/float64(max(len(a), len(b)))
}

// levenshtein computes the edit distance between a and b using two rows.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	if len(a) == 0 {
		return len(b)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

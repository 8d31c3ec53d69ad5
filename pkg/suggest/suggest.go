// Package suggest ranks candidate names by similarity to a mistyped one,
// for "did you mean" hints on unknown commands and flags.
package suggest

import (
	"cmp"
	"slices"
	"strings"
)

// threshold is the minimum similarity score for a candidate to be offered.
const threshold = 0.5

type scored struct {
	name  string
	score float64
}

// FindSimilar returns up to maxResults candidates similar to target,
// best-scoring first. Ties break alphabetically so the output is stable.
func FindSimilar(target string, candidates []string, maxResults int) []string {
	if target == "" || maxResults <= 0 {
		return nil
	}

	var ranked []scored
	for _, name := range candidates {
		if score := similarity(target, name); score > threshold {
			ranked = append(ranked, scored{name, score})
		}
	}
	slices.SortFunc(ranked, func(a, b scored) int {
		if a.score != b.score {
			return cmp.Compare(b.score, a.score)
		}
		return cmp.Compare(a.name, b.name)
	})

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.name
	}
	return out
}

// similarity scores two names on [0, 1]: exact match is 1, a prefix match
// scores 0.9, anything else falls back to normalized edit distance. Hyphens
// and underscores compare equal so "dry-run" matches "dry_run".
func similarity(a, b string) float64 {
	a = normalize(a)
	b = normalize(b)

	if a == b {
		return 1.0
	}
	if strings.HasPrefix(b, a) {
		return 0.9
	}
	distance := editDistance(a, b)
	longest := max(len(a), len(b))
	return 1.0 - float64(distance)/float64(longest)
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "-", "_")
}

// editDistance is the Levenshtein distance between a and b, computed with a
// rolling single-row table.
func editDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(a); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			next := min(row[j]+1, row[j-1]+1, prev+cost)
			prev = row[j]
			row[j] = next
		}
	}
	return row[len(b)]
}

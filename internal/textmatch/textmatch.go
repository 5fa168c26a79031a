// Package textmatch finds the closest known name for a mistyped one.
package textmatch

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Closest returns the candidate with the smallest edit distance to name.
// ok is false when no candidate is within maxDistance edits.
func Closest(name string, candidates []string, maxDistance int) (best string, ok bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	bestDist := maxDistance + 1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(name, strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist <= maxDistance
}

// Suggestion formats a "did you mean" hint, or "" when nothing is close.
func Suggestion(name string, candidates []string) string {
	if best, ok := Closest(name, candidates, 3); ok {
		return `, did you mean "` + best + `"?`
	}
	return ""
}

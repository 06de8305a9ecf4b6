// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package signature

import "strings"

// TokenJaccard measures word-overlap similarity between two texts: the size
// of the intersection of their lowercased word sets over the size of the
// union. Two empty texts score 1.0; one empty text scores 0.0.
func TokenJaccard(a, b string) float64 {
	if a == "" || b == "" {
		if a == b {
			return 1.0
		}
		return 0.0
	}

	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// SequenceRatio measures character-level similarity between two texts as
// 2*LCS(a,b) / (len(a)+len(b)), the longest-common-subsequence analogue of
// a diff match ratio. It is case-sensitive; callers lowercase when they
// want case-insensitive comparison. Two empty texts score 1.0.
func SequenceRatio(a, b string) float64 {
	if a == "" || b == "" {
		if a == b {
			return 1.0
		}
		return 0.0
	}

	ra := []rune(a)
	rb := []rune(b)

	// Keep the DP row on the shorter string.
	if len(rb) > len(ra) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[len(rb)]
	return 2.0 * float64(lcs) / float64(len(ra)+len(rb))
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(strings.ToLower(text)) {
		set[token] = struct{}{}
	}
	return set
}

package search

import "strings"

// matchScore is the approximate-substring score of pattern in text: the
// fewest edits turning pattern into some substring of text, divided by the
// pattern length. ok is false when the score exceeds threshold.
func matchScore(pattern, text []rune, patternStr, textStr string, threshold float64) (score float64, ok bool) {
	m := len(pattern)
	if m == 0 {
		return 0, true
	}
	if strings.Contains(textStr, patternStr) {
		return 0, true
	}

	maxErrors := int(threshold * float64(m))
	dist := substringDistance(pattern, text, maxErrors)
	if dist > maxErrors {
		return 1, false
	}
	return float64(dist) / float64(m), true
}

// substringDistance computes Sellers' edit distance of pattern against the
// best-matching substring of text. It stops early once the distance is
// known to be zero. The result is capped at limit+1.
func substringDistance(pattern, text []rune, limit int) int {
	m := len(pattern)
	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for i := range prev {
		prev[i] = i
	}

	best := prev[m]
	for _, tc := range text {
		curr[0] = 0
		for i := 1; i <= m; i++ {
			cost := 1
			if pattern[i-1] == tc {
				cost = 0
			}
			curr[i] = min(prev[i-1]+cost, prev[i]+1, curr[i-1]+1)
		}
		if curr[m] < best {
			best = curr[m]
			if best == 0 {
				return 0
			}
		}
		prev, curr = curr, prev
	}

	if best > limit {
		return limit + 1
	}
	return best
}

package match

// LevenshteinDistance computes the edit distance between two strings with
// unit costs for insert, delete, and substitute.
func LevenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Single-row DP over b.
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// Similarity scores two strings in [0, 1]: 1 iff equal, 0 if either is
// empty and they differ, otherwise 1 - distance/maxLen.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	maxLen := max(len(a), len(b))
	return 1.0 - float64(LevenshteinDistance(a, b))/float64(maxLen)
}

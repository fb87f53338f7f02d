package match

import "sort"

// DefaultThreshold is the minimum similarity for a fuzzy match to count.
const DefaultThreshold = 0.7

// Result is the outcome of a best-match search. Match is empty when no
// candidate reached the threshold.
type Result struct {
	Match      string
	Similarity float64
}

// Matched reports whether a candidate cleared the threshold.
func (r Result) Matched() bool {
	return r.Match != ""
}

// Ranked is a candidate together with its similarity score.
type Ranked struct {
	Candidate  string
	Similarity float64
}

// FindBestMatch returns the candidate most similar to query, both sides
// normalized first. If the best similarity is below threshold the result
// is empty: callers must not treat near-threshold misses as matches.
// Ties go to the first candidate in input order.
func FindBestMatch(query string, candidates []string, threshold float64) Result {
	normQuery := Normalize(query)

	best := Result{Similarity: -1}
	for _, c := range candidates {
		sim := Similarity(normQuery, Normalize(c))
		if sim > best.Similarity {
			best = Result{Match: c, Similarity: sim}
		}
	}

	if best.Similarity < 0 {
		return Result{}
	}
	if best.Similarity < threshold {
		return Result{Similarity: best.Similarity}
	}
	return best
}

// FindAllMatches returns every candidate at or above threshold, sorted by
// similarity descending. Used for listing ambiguous alternatives, not by
// the resolution cascade itself.
func FindAllMatches(query string, candidates []string, threshold float64) []Ranked {
	normQuery := Normalize(query)

	var out []Ranked
	for _, c := range candidates {
		sim := Similarity(normQuery, Normalize(c))
		if sim >= threshold {
			out = append(out, Ranked{Candidate: c, Similarity: sim})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	return out
}

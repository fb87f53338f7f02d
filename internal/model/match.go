package model

// MatchMethod indicates which resolution tier produced a match.
type MatchMethod string

// Match method constants, in cascade order.
const (
	MethodExact   MatchMethod = "exact"
	MethodAlias   MatchMethod = "alias"
	MethodFuzzy   MatchMethod = "fuzzy"
	MethodAIMatch MatchMethod = "ai_match"
	MethodAINew   MatchMethod = "ai_new"
	MethodNone    MatchMethod = "none"
)

// Confidence bands per method. Exact and alias matches use fixed scores;
// fuzzy matches are rescaled into [70, 89] so they can never be mistaken
// for the higher-certainty tiers.
const (
	ConfidenceExact    = 100.0
	ConfidenceAlias    = 95.0
	ConfidenceFuzzyMin = 70.0
	ConfidenceFuzzyMax = 89.0
)

// MatchResult is the immutable outcome of one resolution lookup. Item is
// nil only for MethodNone and for an ai_new draft pending confirmation.
type MatchResult struct {
	Item        *CanonicalItem
	Draft       *CanonicalItem
	RawName     string
	MatchedText string
	SourceHint  string
	Reasoning   string
	Method      MatchMethod
	Confidence  float64
	Similarity  float64
}

// Resolved reports whether the result carries a canonical item.
func (r MatchResult) Resolved() bool {
	return r.Item != nil
}

// NoMatch builds the terminal-failure result for a raw name.
func NoMatch(rawName string) MatchResult {
	return MatchResult{RawName: rawName, Method: MethodNone}
}

// Candidate is one entry of a similarity ranking, used when listing
// ambiguous alternatives rather than resolving.
type Candidate struct {
	Text       string
	Similarity float64
}

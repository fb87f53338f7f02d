package resolve

import (
	"github.com/pawprint/labresolve/internal/match"
	"github.com/pawprint/labresolve/internal/model"
)

// tier is one step of the resolution cascade: attempt a match against an
// immutable catalog snapshot. Tiers are pure and perform no I/O.
type tier interface {
	attempt(rawName, normName string, view *model.CatalogView) (model.MatchResult, bool)
}

// exactTier matches the normalized raw name against normalized canonical
// names. Exactness always wins over aliases, so this tier runs first.
type exactTier struct{}

func (exactTier) attempt(rawName, normName string, view *model.CatalogView) (model.MatchResult, bool) {
	item := view.ItemByNormName(normName)
	if item == nil {
		return model.MatchResult{}, false
	}
	return model.MatchResult{
		Item:        item,
		RawName:     rawName,
		MatchedText: item.Name,
		Method:      model.MethodExact,
		Confidence:  model.ConfidenceExact,
		Similarity:  1.0,
	}, true
}

// aliasTier matches the normalized raw name against registered aliases and
// resolves through to the owning item.
type aliasTier struct{}

func (aliasTier) attempt(rawName, normName string, view *model.CatalogView) (model.MatchResult, bool) {
	alias := view.AliasByNormText(normName)
	if alias == nil {
		return model.MatchResult{}, false
	}
	item := view.ItemByID(alias.ItemID)
	if item == nil {
		// Dangling alias rows are skipped rather than surfaced.
		return model.MatchResult{}, false
	}
	return model.MatchResult{
		Item:        item,
		RawName:     rawName,
		MatchedText: alias.Text,
		SourceHint:  alias.SourceHint,
		Method:      model.MethodAlias,
		Confidence:  model.ConfidenceAlias,
		Similarity:  1.0,
	}, true
}

// fuzzyTier runs best-match search over the union of canonical names and
// alias texts.
type fuzzyTier struct {
	threshold float64
}

func (f fuzzyTier) attempt(rawName, _ string, view *model.CatalogView) (model.MatchResult, bool) {
	best := match.FindBestMatch(rawName, view.FuzzyCandidates(), f.threshold)
	if !best.Matched() {
		return model.MatchResult{}, false
	}

	matchedNorm := match.Normalize(best.Match)

	item := view.ItemByNormName(matchedNorm)
	sourceHint := ""
	if item == nil {
		alias := view.AliasByNormText(matchedNorm)
		if alias == nil {
			return model.MatchResult{}, false
		}
		item = view.ItemByID(alias.ItemID)
		if item == nil {
			return model.MatchResult{}, false
		}
		sourceHint = alias.SourceHint
	}

	return model.MatchResult{
		Item:        item,
		RawName:     rawName,
		MatchedText: best.Match,
		SourceHint:  sourceHint,
		Method:      model.MethodFuzzy,
		Confidence:  fuzzyConfidence(best.Similarity),
		Similarity:  best.Similarity,
	}, true
}

// fuzzyConfidence rescales similarity in [0.7, 1.0] to a score in [70, 89].
// The slope is an empirical tuning constant carried over unchanged; 90+ is
// reserved for the higher-certainty tiers, so the score clamps at 89.
func fuzzyConfidence(similarity float64) float64 {
	score := model.ConfidenceFuzzyMin + (similarity-0.7)*63.33
	if score > model.ConfidenceFuzzyMax {
		return model.ConfidenceFuzzyMax
	}
	if score < model.ConfidenceFuzzyMin {
		return model.ConfidenceFuzzyMin
	}
	return score
}

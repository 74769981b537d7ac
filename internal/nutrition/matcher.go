package nutrition

import (
	"strings"
)

const (
	exactThreshold    = 0.95
	fuzzyThreshold    = 0.5
	fallbackThreshold = 0.3

	substringScore    = 0.85
	containmentWeight = 0.7
	minContainmentLen = 3

	approximateConfidence = 0.3
)

type IngredientMatcher struct {
	vocab *Vocabulary
}

func NewIngredientMatcher(vocab *Vocabulary) *IngredientMatcher {
	return &IngredientMatcher{vocab: vocab}
}

// Match resolves every estimated ingredient against the catalog pool.
// It never reports "no data": when no row clears the fallback threshold a
// synthetic category profile is substituted instead.
func (m *IngredientMatcher) Match(estimated []EstimatedIngredient, catalog []FactRow) []MatchedIngredient {
	matched := make([]MatchedIngredient, 0, len(estimated))
	for _, ing := range estimated {
		matched = append(matched, m.matchOne(ing, catalog))
	}
	return matched
}

func (m *IngredientMatcher) matchOne(ing EstimatedIngredient, catalog []FactRow) MatchedIngredient {
	var bestRow FactRow
	bestScore := -1.0

	for _, row := range catalog {
		score := Similarity(ing.NormalizedName, canonicalizeName(row.Name))
		if score > bestScore {
			bestScore = score
			bestRow = row
		}
	}

	var matchType MatchType
	switch {
	case bestScore >= exactThreshold:
		matchType = MatchExact
	case bestScore >= fuzzyThreshold:
		matchType = MatchFuzzy
	case bestScore >= fallbackThreshold:
		matchType = MatchCategoryFallback
	default:
		return m.approximate(ing)
	}

	return MatchedIngredient{
		IngredientID:         bestRow.ID,
		Name:                 bestRow.Name,
		OriginalDetectedName: ing.OriginalName,
		KcalPer100g:          bestRow.KcalPer100g,
		ProteinPer100g:       bestRow.ProteinPer100g,
		CarbsPer100g:         bestRow.CarbsPer100g,
		FatPer100g:           bestRow.FatPer100g,
		FiberPer100g:         bestRow.FiberPer100g,
		MatchedWeightGrams:   ing.EstimatedWeightGrams,
		MatchType:            matchType,
		MatchConfidence:      bestScore,
	}
}

// approximate builds a catalog-free match from the synthetic category
// profiles. IngredientID stays empty to signal there is no backing row.
func (m *IngredientMatcher) approximate(ing EstimatedIngredient) MatchedIngredient {
	category := m.DetectCategory(ing.NormalizedName)
	profile, ok := m.vocab.FallbackProfiles[category]
	if !ok {
		profile = m.vocab.FallbackProfiles["default"]
	}

	return MatchedIngredient{
		Name:                 profile.Name,
		OriginalDetectedName: ing.OriginalName,
		KcalPer100g:          profile.KcalPer100g,
		ProteinPer100g:       profile.ProteinPer100g,
		CarbsPer100g:         profile.CarbsPer100g,
		FatPer100g:           profile.FatPer100g,
		FiberPer100g:         profile.FiberPer100g,
		MatchedWeightGrams:   ing.EstimatedWeightGrams,
		MatchType:            MatchApproximate,
		MatchConfidence:      approximateConfidence,
	}
}

// DetectCategory picks the first category whose keyword list hits the name.
func (m *IngredientMatcher) DetectCategory(name string) string {
	for _, category := range categoryOrder {
		for _, keyword := range m.vocab.CategoryKeywords[category] {
			if strings.Contains(name, keyword) {
				return category
			}
		}
	}
	return "default"
}

// Similarity scores two canonical ingredient names on [0,1]: identical
// strings score 1.0, substring containment scores a flat 0.85, anything
// else falls back to a word-overlap ratio where equal tokens count full and
// containment between tokens longer than three characters counts 0.7.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return substringScore
	}

	tokensA := strings.Fields(a)
	tokensB := strings.Fields(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	overlap := 0.0
	for _, ta := range tokensA {
		best := 0.0
		for _, tb := range tokensB {
			switch {
			case ta == tb:
				best = 1.0
			case len(ta) > minContainmentLen && len(tb) > minContainmentLen &&
				(strings.Contains(ta, tb) || strings.Contains(tb, ta)):
				if best < containmentWeight {
					best = containmentWeight
				}
			}
			if best == 1.0 {
				break
			}
		}
		overlap += best
	}

	larger := len(tokensA)
	if len(tokensB) > larger {
		larger = len(tokensB)
	}

	return overlap / float64(larger)
}

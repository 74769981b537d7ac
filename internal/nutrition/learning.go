package nutrition

import (
	"strings"

	"github.com/KihadiMalick/Afri-Cal-sub000/internal/ai"
)

// LearningPolicy hoists the learning engine's tunables. Defaults are
// empirical policy values, not physical law.
type LearningPolicy struct {
	OverlapThreshold         float64
	MinDishCorrections       int
	MinIngredientOccurrences int
	MinApplyCorrections      int
	MinIngredientSupport     int
	BlendPerCorrection       float64
	MaxBlend                 float64
	MaxConfidenceBoost       float64
}

func DefaultLearningPolicy() LearningPolicy {
	return LearningPolicy{
		OverlapThreshold:         0.30,
		MinDishCorrections:       5,
		MinIngredientOccurrences: 2,
		MinApplyCorrections:      2,
		MinIngredientSupport:     3,
		BlendPerCorrection:       0.1,
		MaxBlend:                 0.7,
		MaxConfidenceBoost:       0.15,
	}
}

// LearningEngine mines past user corrections to bias weight estimates and
// confidence for dishes resembling the current detection. No model is
// trained; corrections are plain data.
type LearningEngine struct {
	policy    LearningPolicy
	estimator *PortionEstimator
}

func NewLearningEngine(vocab *Vocabulary, policy LearningPolicy) *LearningEngine {
	return &LearningEngine{
		policy:    policy,
		estimator: NewPortionEstimator(vocab),
	}
}

// ComputeBoost scores every past correction against the current detection
// and distills the best-supported dish group into a per-request boost.
// Insufficient evidence yields a no-boost result, never an error.
func (e *LearningEngine) ComputeBoost(detection ai.MealDetection, corrections []CorrectionRecord) LearningBoost {
	boost := LearningBoost{
		IngredientAdjustments: map[string]IngredientAdjustment{},
	}

	if len(detection.Ingredients) == 0 || len(corrections) == 0 {
		return boost
	}

	currentNames := make([]string, 0, len(detection.Ingredients))
	for _, ing := range detection.Ingredients {
		currentNames = append(currentNames, e.estimator.NormalizeName(ing.Name))
	}

	type dishGroup struct {
		corrections []CorrectionRecord
		overlapSum  float64
	}
	groups := map[string]*dishGroup{}

	for _, correction := range corrections {
		overlap := e.overlapScore(currentNames, correction.OriginalIngredients)
		if overlap < e.policy.OverlapThreshold {
			continue
		}

		group, ok := groups[correction.CorrectedDishName]
		if !ok {
			group = &dishGroup{}
			groups[correction.CorrectedDishName] = group
		}
		group.corrections = append(group.corrections, correction)
		group.overlapSum += overlap
	}

	var bestDish string
	var best *dishGroup
	for dish, group := range groups {
		if best == nil {
			bestDish, best = dish, group
			continue
		}
		switch {
		case len(group.corrections) > len(best.corrections):
			bestDish, best = dish, group
		case len(group.corrections) == len(best.corrections):
			if group.overlapSum/float64(len(group.corrections)) > best.overlapSum/float64(len(best.corrections)) {
				bestDish, best = dish, group
			}
		}
	}

	if best == nil {
		return boost
	}

	boost.CorrectionCount = len(best.corrections)
	if boost.CorrectionCount >= e.policy.MinDishCorrections {
		boost.SuggestedDishName = bestDish
	}
	boost.ConfidenceBoost = e.confidenceBoost(boost.CorrectionCount)

	weightSums := map[string]float64{}
	occurrences := map[string]int{}
	for _, correction := range best.corrections {
		for _, ing := range correction.CorrectedIngredients {
			name := e.estimator.NormalizeName(ing.Name)
			weightSums[name] += ing.WeightGrams
			occurrences[name]++
		}
	}

	for name, count := range occurrences {
		if count < e.policy.MinIngredientOccurrences {
			continue
		}
		boost.IngredientAdjustments[name] = IngredientAdjustment{
			BoostWeightGrams: weightSums[name] / float64(count),
			CorrectionCount:  count,
		}
	}

	return boost
}

// ApplyBoost blends historical corrected weights into matched ingredients.
// The blend never pulls more than MaxBlend toward history, preserving
// responsiveness to the current photo.
func (e *LearningEngine) ApplyBoost(matched []MatchedIngredient, boost LearningBoost) []MatchedIngredient {
	if boost.CorrectionCount < e.policy.MinApplyCorrections {
		return matched
	}

	out := make([]MatchedIngredient, len(matched))
	copy(out, matched)

	for i := range out {
		name := e.estimator.NormalizeName(out[i].OriginalDetectedName)
		adjustment, ok := boost.IngredientAdjustments[name]
		if !ok || adjustment.CorrectionCount < e.policy.MinIngredientSupport {
			continue
		}

		blend := float64(adjustment.CorrectionCount) * e.policy.BlendPerCorrection
		if blend > e.policy.MaxBlend {
			blend = e.policy.MaxBlend
		}

		out[i].MatchedWeightGrams = out[i].MatchedWeightGrams*(1-blend) + adjustment.BoostWeightGrams*blend
		out[i].MatchType = MatchLearned
		out[i].MatchConfidence = out[i].MatchConfidence + boost.ConfidenceBoost
		if out[i].MatchConfidence > 1 {
			out[i].MatchConfidence = 1
		}
	}

	return out
}

// overlapScore is a Jaccard-like ratio: how many current names equal,
// contain or are contained by an original detected name, over the union of
// both name sets.
func (e *LearningEngine) overlapScore(currentNames []string, original []CorrectionIngredient) float64 {
	originalNames := make([]string, 0, len(original))
	for _, ing := range original {
		originalNames = append(originalNames, e.estimator.NormalizeName(ing.Name))
	}
	if len(originalNames) == 0 {
		return 0
	}

	matches := 0
	for _, current := range currentNames {
		for _, orig := range originalNames {
			if namesOverlap(current, orig) {
				matches++
				break
			}
		}
	}

	union := map[string]struct{}{}
	for _, n := range currentNames {
		union[n] = struct{}{}
	}
	for _, n := range originalNames {
		union[n] = struct{}{}
	}

	return float64(matches) / float64(len(union))
}

func namesOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// Evidence saturates: the boost grows quickly for the first few corrections,
// slows from five onward and caps at MaxConfidenceBoost from ten.
func (e *LearningEngine) confidenceBoost(count int) float64 {
	var boost float64
	switch {
	case count >= 10:
		boost = e.policy.MaxConfidenceBoost
	case count >= 5:
		boost = 0.05 + 0.01*float64(count)
	case count > 0:
		boost = 0.015 * float64(count)
	}
	if boost > e.policy.MaxConfidenceBoost {
		boost = e.policy.MaxConfidenceBoost
	}
	return boost
}

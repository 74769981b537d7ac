package nutrition

import (
	"regexp"

	"github.com/KihadiMalick/Afri-Cal-sub000/internal/ai"
)

var oilPattern = regexp.MustCompile(`huile|frit|beurre|gras|oil|fried|butter`)

const (
	lowKcalThreshold     = 100
	heavyPlateGrams      = 150
	highKcalThreshold    = 1500
	extremeKcalThreshold = 2500
	fatDominantKcalFloor = 200
	fatDominantShare     = 0.7
	kcalPerGramFat       = 9.0
)

// CoherenceChecker runs independent plausibility predicates over a computed
// result. Warnings are advisory and additive; the checker never blocks.
type CoherenceChecker struct{}

func NewCoherenceChecker() *CoherenceChecker {
	return &CoherenceChecker{}
}

func (c *CoherenceChecker) Check(result NutritionResult, matched []MatchedIngredient, detection ai.MealDetection) []CoherenceWarning {
	warnings := []CoherenceWarning{}

	if result.TotalKcal < lowKcalThreshold && result.TotalWeightGrams > heavyPlateGrams {
		warnings = append(warnings, CoherenceWarning{
			Type:     "calories_low_for_weight",
			Message:  "Implausibly low calories for this weight — some ingredients may be missing from the detection.",
			Severity: SeverityWarning,
		})
	}

	if result.TotalKcal > extremeKcalThreshold {
		warnings = append(warnings, CoherenceWarning{
			Type:     "calories_excessive",
			Message:  "Total calories exceed a plausible single plate — weight likely overestimated.",
			Severity: SeverityError,
		})
	} else if result.TotalKcal > highKcalThreshold {
		warnings = append(warnings, CoherenceWarning{
			Type:     "calories_high",
			Message:  "Total calories are unusually high for a single plate.",
			Severity: SeverityWarning,
		})
	}

	if c.oilDetected(detection) && !anyMatchedOil(matched) {
		warnings = append(warnings, CoherenceWarning{
			Type:     "oil_not_matched",
			Message:  "Oil or frying detected visually but not reflected in matched ingredients — calories may be underestimated.",
			Severity: SeverityInfo,
		})
	}

	if result.TotalKcal > fatDominantKcalFloor {
		fatKcal := result.TotalFat * kcalPerGramFat
		if fatKcal > fatDominantShare*float64(result.TotalKcal) {
			warnings = append(warnings, CoherenceWarning{
				Type:     "fat_dominant",
				Message:  "Unusually fat-dominant macro split — verify the oil and meat portions.",
				Severity: SeverityInfo,
			})
		}
	}

	return warnings
}

func (c *CoherenceChecker) oilDetected(detection ai.MealDetection) bool {
	if detection.VisualCues.HasFriedItems {
		return true
	}
	if detection.VisualCues.OilLevel == "medium" || detection.VisualCues.OilLevel == "high" {
		return true
	}
	for _, ing := range detection.Ingredients {
		if oilPattern.MatchString(canonicalizeName(ing.Name)) {
			return true
		}
	}
	return false
}

func anyMatchedOil(matched []MatchedIngredient) bool {
	for _, ing := range matched {
		if oilPattern.MatchString(canonicalizeName(ing.Name)) {
			return true
		}
	}
	return false
}

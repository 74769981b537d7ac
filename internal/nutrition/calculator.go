package nutrition

import (
	"math"
)

// Texture adjusts caloric density only, never macro mass: oil absorption in
// fried foods raises kcal, fat rendering in dry-cooked foods lowers it.
var textureAdjustment = map[string]float64{
	TextureOily:  1.15,
	TextureSaucy: 1.05,
	TextureDry:   0.95,
	TextureMixed: 1.00,
}

const (
	detectionConfidenceWeight = 0.4
	matchRatioWeight          = 0.6

	// Post-correction recomputation has no texture or detection data left;
	// a user-edited list is assumed reliable.
	recalculateConfidence = 0.9
)

type NutritionCalculator struct{}

func NewNutritionCalculator() *NutritionCalculator {
	return &NutritionCalculator{}
}

// Calculate aggregates matched ingredients into totals. textures is keyed by
// the original detected name; missing entries fall back to mixed.
func (c *NutritionCalculator) Calculate(matched []MatchedIngredient, textures map[string]string, avgDetectionConfidence float64) NutritionResult {
	result := NutritionResult{
		PerIngredient: make([]IngredientNutrition, 0, len(matched)),
	}

	var kcalSum float64
	exactOrFuzzy := 0

	for _, ing := range matched {
		texture := textures[ing.OriginalDetectedName]
		adjustment, ok := textureAdjustment[texture]
		if !ok {
			adjustment = textureAdjustment[TextureMixed]
		}

		weightFactor := ing.MatchedWeightGrams / 100

		kcal := ing.KcalPer100g * weightFactor * adjustment
		protein := round1(ing.ProteinPer100g * weightFactor)
		carbs := round1(ing.CarbsPer100g * weightFactor)
		fat := round1(ing.FatPer100g * weightFactor)
		fiber := round1(ing.FiberPer100g * weightFactor)

		result.PerIngredient = append(result.PerIngredient, IngredientNutrition{
			Name:        ing.Name,
			WeightGrams: ing.MatchedWeightGrams,
			Kcal:        int(math.Round(kcal)),
			Protein:     protein,
			Carbs:       carbs,
			Fat:         fat,
			Fiber:       fiber,
		})

		kcalSum += kcal
		result.TotalProtein = round1(result.TotalProtein + protein)
		result.TotalCarbs = round1(result.TotalCarbs + carbs)
		result.TotalFat = round1(result.TotalFat + fat)
		result.TotalFiber = round1(result.TotalFiber + fiber)
		result.TotalWeightGrams += ing.MatchedWeightGrams

		if ing.MatchType == MatchExact || ing.MatchType == MatchFuzzy {
			exactOrFuzzy++
		}
	}

	result.TotalKcal = int(math.Round(kcalSum))

	matchRatio := 0.0
	if len(matched) > 0 {
		matchRatio = float64(exactOrFuzzy) / float64(len(matched))
	}
	result.ConfidenceScore = round2(avgDetectionConfidence*detectionConfidenceWeight + matchRatio*matchRatioWeight)

	return result
}

// Recalculate is the manual-adjustment entry point: neutral mixed texture,
// fixed detection confidence. Idempotent on the same ingredient list.
func (c *NutritionCalculator) Recalculate(matched []MatchedIngredient) NutritionResult {
	return c.Calculate(matched, map[string]string{}, recalculateConfidence)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

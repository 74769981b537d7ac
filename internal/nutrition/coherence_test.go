package nutrition

import (
	"testing"

	"github.com/KihadiMalick/Afri-Cal-sub000/internal/ai"
)

func hasWarning(warnings []CoherenceWarning, warningType string) bool {
	for _, w := range warnings {
		if w.Type == warningType {
			return true
		}
	}
	return false
}

func TestCheck_ExcessiveCaloriesIsError(t *testing.T) {
	checker := NewCoherenceChecker()

	result := NutritionResult{TotalKcal: 2800, TotalWeightGrams: 600}
	warnings := checker.Check(result, nil, ai.MealDetection{})

	found := false
	for _, w := range warnings {
		if w.Type == "calories_excessive" && w.Severity == SeverityError {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected error-severity warning for 2800 kcal, got %+v", warnings)
	}
}

func TestCheck_HighCaloriesIsWarning(t *testing.T) {
	checker := NewCoherenceChecker()

	result := NutritionResult{TotalKcal: 1800, TotalWeightGrams: 500}
	warnings := checker.Check(result, nil, ai.MealDetection{})

	if !hasWarning(warnings, "calories_high") {
		t.Errorf("Expected calories_high warning for 1800 kcal")
	}
	if hasWarning(warnings, "calories_excessive") {
		t.Errorf("Did not expect calories_excessive at 1800 kcal")
	}
}

func TestCheck_LowCaloriesForHeavyPlate(t *testing.T) {
	checker := NewCoherenceChecker()

	result := NutritionResult{TotalKcal: 60, TotalWeightGrams: 400}
	warnings := checker.Check(result, nil, ai.MealDetection{})

	if !hasWarning(warnings, "calories_low_for_weight") {
		t.Errorf("Expected calories_low_for_weight warning")
	}
}

func TestCheck_OilCueWithoutMatchedOil(t *testing.T) {
	checker := NewCoherenceChecker()

	detection := ai.MealDetection{
		VisualCues: ai.VisualCues{OilLevel: "high"},
		Ingredients: []ai.DetectedIngredient{
			{Name: "poulet"},
		},
	}
	matched := []MatchedIngredient{{Name: "poulet"}}
	result := NutritionResult{TotalKcal: 400, TotalWeightGrams: 250}

	warnings := checker.Check(result, matched, detection)
	if !hasWarning(warnings, "oil_not_matched") {
		t.Errorf("Expected oil_not_matched info warning")
	}
}

func TestCheck_OilCueSatisfiedByMatchedOil(t *testing.T) {
	checker := NewCoherenceChecker()

	detection := ai.MealDetection{
		VisualCues: ai.VisualCues{HasFriedItems: true},
	}
	matched := []MatchedIngredient{{Name: "huile d'arachide"}}
	result := NutritionResult{TotalKcal: 400, TotalWeightGrams: 250}

	warnings := checker.Check(result, matched, detection)
	if hasWarning(warnings, "oil_not_matched") {
		t.Errorf("Did not expect oil_not_matched when oil is matched")
	}
}

func TestCheck_FriedIngredientNameTriggersOilCue(t *testing.T) {
	checker := NewCoherenceChecker()

	detection := ai.MealDetection{
		Ingredients: []ai.DetectedIngredient{{Name: "poisson frit"}},
	}
	matched := []MatchedIngredient{{Name: "poisson"}}
	result := NutritionResult{TotalKcal: 400, TotalWeightGrams: 250}

	warnings := checker.Check(result, matched, detection)
	if !hasWarning(warnings, "oil_not_matched") {
		t.Errorf("Expected oil cue from fried ingredient name")
	}
}

func TestCheck_FatDominantSplit(t *testing.T) {
	checker := NewCoherenceChecker()

	// 50g fat = 450 fat kcal out of 500 total: 90% fat-derived
	result := NutritionResult{TotalKcal: 500, TotalFat: 50, TotalWeightGrams: 300}
	warnings := checker.Check(result, nil, ai.MealDetection{})

	if !hasWarning(warnings, "fat_dominant") {
		t.Errorf("Expected fat_dominant info warning")
	}
}

func TestCheck_FatDominantSkippedBelowFloor(t *testing.T) {
	checker := NewCoherenceChecker()

	result := NutritionResult{TotalKcal: 150, TotalFat: 15, TotalWeightGrams: 100}
	warnings := checker.Check(result, nil, ai.MealDetection{})

	if hasWarning(warnings, "fat_dominant") {
		t.Errorf("Did not expect fat_dominant below 200 kcal floor")
	}
}

func TestCheck_PlausibleResultHasNoWarnings(t *testing.T) {
	checker := NewCoherenceChecker()

	result := NutritionResult{TotalKcal: 650, TotalProtein: 40, TotalCarbs: 70, TotalFat: 20, TotalWeightGrams: 450}
	warnings := checker.Check(result, nil, ai.MealDetection{})

	if len(warnings) != 0 {
		t.Errorf("Expected no warnings for plausible result, got %+v", warnings)
	}
}

package nutrition

import (
	"encoding/json"
	"time"
)

type MatchType string

const (
	MatchExact            MatchType = "exact"
	MatchFuzzy            MatchType = "fuzzy"
	MatchCategoryFallback MatchType = "category_fallback"
	MatchApproximate      MatchType = "approximate_estimation"
	MatchLearned          MatchType = "learned"
)

const (
	TextureOily  = "oily"
	TextureSaucy = "saucy"
	TextureDry   = "dry"
	TextureMixed = "mixed"
)

// FactRow is one row of the nutrition-fact catalog. Both the raw ingredient
// and the composite preparation tables share this shape.
type FactRow struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	KcalPer100g    float64 `json:"kcal_per_100g"`
	ProteinPer100g float64 `json:"protein_per_100g"`
	CarbsPer100g   float64 `json:"carbs_per_100g"`
	FatPer100g     float64 `json:"fat_per_100g"`
	FiberPer100g   float64 `json:"fiber_per_100g"`
}

type EstimatedIngredient struct {
	NormalizedName       string  `json:"normalized_name"`
	OriginalName         string  `json:"original_name"`
	EstimatedWeightGrams float64 `json:"estimated_weight_grams"`
	TextureType          string  `json:"texture_type"`
	Confidence           float64 `json:"confidence"`
}

type MatchedIngredient struct {
	IngredientID         string    `json:"ingredient_id,omitempty"`
	Name                 string    `json:"name"`
	OriginalDetectedName string    `json:"original_detected_name"`
	KcalPer100g          float64   `json:"kcal_per_100g"`
	ProteinPer100g       float64   `json:"protein_per_100g"`
	CarbsPer100g         float64   `json:"carbs_per_100g"`
	FatPer100g           float64   `json:"fat_per_100g"`
	FiberPer100g         float64   `json:"fiber_per_100g"`
	MatchedWeightGrams   float64   `json:"matched_weight_grams"`
	MatchType            MatchType `json:"match_type"`
	MatchConfidence      float64   `json:"match_confidence"`
}

type IngredientNutrition struct {
	Name        string  `json:"name"`
	WeightGrams float64 `json:"weight_grams"`
	Kcal        int     `json:"kcal"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Fiber       float64 `json:"fiber"`
}

type NutritionResult struct {
	TotalKcal        int                   `json:"total_kcal"`
	TotalProtein     float64               `json:"total_protein"`
	TotalCarbs       float64               `json:"total_carbs"`
	TotalFat         float64               `json:"total_fat"`
	TotalFiber       float64               `json:"total_fiber"`
	TotalWeightGrams float64               `json:"total_weight_grams"`
	ConfidenceScore  float64               `json:"confidence_score"`
	PerIngredient    []IngredientNutrition `json:"per_ingredient"`
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type CoherenceWarning struct {
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// CorrectionIngredient is one user-corrected line item: the weight the user
// settled on and the nutrition profile it was corrected to.
type CorrectionIngredient struct {
	Name           string  `json:"name"`
	WeightGrams    float64 `json:"weight_grams"`
	KcalPer100g    float64 `json:"kcal_per_100g"`
	ProteinPer100g float64 `json:"protein_per_100g"`
	CarbsPer100g   float64 `json:"carbs_per_100g"`
	FatPer100g     float64 `json:"fat_per_100g"`
	FiberPer100g   float64 `json:"fiber_per_100g"`
}

// CorrectionRecord is append-only: created once when a user corrects a scan,
// never mutated afterwards.
type CorrectionRecord struct {
	ID                   string                 `json:"id"`
	ScanID               string                 `json:"scan_id"`
	OriginalDishName     string                 `json:"original_dish_name"`
	OriginalIngredients  []CorrectionIngredient `json:"original_ingredients"`
	CorrectedDishName    string                 `json:"corrected_dish_name"`
	CorrectedIngredients []CorrectionIngredient `json:"corrected_ingredients"`
	ImageHash            string                 `json:"image_hash,omitempty"`
	CreatedAt            time.Time              `json:"created_at"`
}

type IngredientAdjustment struct {
	BoostWeightGrams float64 `json:"boost_weight_g"`
	CorrectionCount  int     `json:"correction_count"`
}

// LearningBoost is computed per request from the correction history and
// discarded afterwards.
type LearningBoost struct {
	SuggestedDishName     string                          `json:"suggested_dish_name,omitempty"`
	IngredientAdjustments map[string]IngredientAdjustment `json:"ingredient_adjustments"`
	CorrectionCount       int                             `json:"correction_count"`
	ConfidenceBoost       float64                         `json:"confidence_boost"`
}

type ScanResult struct {
	DetectedMealName string              `json:"detected_meal_name"`
	PortionSize      string              `json:"portion_size"`
	Ingredients      []MatchedIngredient `json:"ingredients"`
	Nutrition        NutritionResult     `json:"nutrition"`
	Warnings         []CoherenceWarning  `json:"warnings"`
	ConfidenceScore  float64             `json:"confidence_score"`
	DetectionRaw     json.RawMessage     `json:"detection_raw,omitempty"`
}

package ai

import (
	"context"
	"encoding/json"
	"time"
)

type VisionService interface {
	AnalyzeMealPhoto(ctx context.Context, imageData []byte) (*MealDetection, json.RawMessage, error)
}

type MealDetection struct {
	DishName                  string               `json:"dish_name"`
	Confidence                float64              `json:"confidence"`
	PortionSize               string               `json:"portion_size"`
	EstimatedTotalWeightGrams float64              `json:"estimated_total_weight_grams"`
	Ingredients               []DetectedIngredient `json:"ingredients_detected"`
	VisualCues                VisualCues           `json:"visual_cues"`
	Timestamp                 time.Time            `json:"timestamp,omitempty"`
}

type DetectedIngredient struct {
	Name           string  `json:"name"`
	EstimatedRatio float64 `json:"estimated_ratio"`
	Grams          float64 `json:"grams,omitempty"`
	TextureType    string  `json:"texture_type"`
	Confidence     float64 `json:"confidence"`
}

type VisualCues struct {
	OilLevel      string `json:"oil_level,omitempty"`
	HasFriedItems bool   `json:"has_fried_items,omitempty"`
}

const defaultTotalWeightGrams = 300

// Normalize reconciles whatever shape the vision model returned into the
// internal one: confidences on [0,1], ratios derived from gram estimates
// when the model returned absolute amounts, and a usable total weight.
func (d *MealDetection) Normalize() {
	if d.Confidence > 1 {
		d.Confidence = d.Confidence / 100
	}
	if d.Confidence < 0 {
		d.Confidence = 0
	}

	gramSum := 0.0
	for i := range d.Ingredients {
		ing := &d.Ingredients[i]
		if ing.Confidence > 1 {
			ing.Confidence = ing.Confidence / 100
		}
		if ing.Confidence < 0 {
			ing.Confidence = 0
		}
		gramSum += ing.Grams
	}

	if d.EstimatedTotalWeightGrams <= 0 {
		if gramSum > 0 {
			d.EstimatedTotalWeightGrams = gramSum
		} else {
			d.EstimatedTotalWeightGrams = defaultTotalWeightGrams
		}
	}

	for i := range d.Ingredients {
		ing := &d.Ingredients[i]
		if ing.EstimatedRatio <= 0 && ing.Grams > 0 {
			ing.EstimatedRatio = ing.Grams / d.EstimatedTotalWeightGrams
		}
	}
}

// AverageIngredientConfidence falls back to the dish-level confidence when
// the model reported no per-ingredient values.
func (d *MealDetection) AverageIngredientConfidence() float64 {
	if len(d.Ingredients) == 0 {
		return d.Confidence
	}
	sum := 0.0
	counted := 0
	for _, ing := range d.Ingredients {
		if ing.Confidence > 0 {
			sum += ing.Confidence
			counted++
		}
	}
	if counted == 0 {
		return d.Confidence
	}
	return sum / float64(counted)
}

type Config struct {
	OpenAIAPIKey string
	Model        string
}

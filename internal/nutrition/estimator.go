package nutrition

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/KihadiMalick/Afri-Cal-sub000/internal/ai"
)

const minIngredientWeightGrams = 5

type PortionEstimator struct {
	vocab *Vocabulary
}

func NewPortionEstimator(vocab *Vocabulary) *PortionEstimator {
	return &PortionEstimator{vocab: vocab}
}

// Estimate converts relative detection ratios into absolute gram weights.
// It never fails: zero ratios degrade to an equal split and unknown names
// pass through unchanged.
func (e *PortionEstimator) Estimate(detection ai.MealDetection) []EstimatedIngredient {
	if len(detection.Ingredients) == 0 {
		return []EstimatedIngredient{}
	}

	ratioSum := 0.0
	for _, ing := range detection.Ingredients {
		if ing.EstimatedRatio > 0 {
			ratioSum += ing.EstimatedRatio
		}
	}

	estimated := make([]EstimatedIngredient, 0, len(detection.Ingredients))
	for _, ing := range detection.Ingredients {
		var ratio float64
		if ratioSum > 0 {
			if ing.EstimatedRatio > 0 {
				ratio = ing.EstimatedRatio / ratioSum
			}
		} else {
			ratio = 1.0 / float64(len(detection.Ingredients))
		}

		weight := math.Round(detection.EstimatedTotalWeightGrams * ratio)
		if weight < minIngredientWeightGrams {
			weight = minIngredientWeightGrams
		}

		texture := ing.TextureType
		if texture == "" {
			texture = TextureMixed
		}

		estimated = append(estimated, EstimatedIngredient{
			NormalizedName:       e.NormalizeName(ing.Name),
			OriginalName:         ing.Name,
			EstimatedWeightGrams: weight,
			TextureType:          texture,
			Confidence:           ing.Confidence,
		})
	}

	return estimated
}

// NormalizeName bridges vernacular and English ingredient names to the
// catalog vocabulary. Unmapped names pass through in canonical form.
func (e *PortionEstimator) NormalizeName(name string) string {
	canonical := canonicalizeName(name)
	if mapped, ok := e.vocab.Synonyms[canonical]; ok {
		return mapped
	}
	return canonical
}

// canonicalizeName lowercases, strips diacritics and normalizes apostrophes
// so "Bœuf sauté" and "boeuf saute" compare equal.
func canonicalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "’", "'")
	s = stripDiacritics(s)
	return s
}

func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	out := make([]rune, 0, len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		// œ does not decompose; expand it by hand
		if r == 'œ' {
			out = append(out, 'o', 'e')
			continue
		}
		out = append(out, r)
	}
	return norm.NFC.String(string(out))
}

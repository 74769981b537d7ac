package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/KihadiMalick/Afri-Cal-sub000/internal/ai"
)

// CatalogSource abstracts the two read-only nutrition-fact collections.
type CatalogSource interface {
	FetchIngredientFacts(ctx context.Context) ([]FactRow, error)
	FetchPreparationFacts(ctx context.Context) ([]FactRow, error)
}

// CorrectionSource is the bounded, most-recent-first read side of the
// append-only correction log. Writing is owned elsewhere.
type CorrectionSource interface {
	FetchRecent(ctx context.Context, limit int) ([]CorrectionRecord, error)
}

type Service struct {
	catalog          CatalogSource
	corrections      CorrectionSource
	estimator        *PortionEstimator
	matcher          *IngredientMatcher
	calculator       *NutritionCalculator
	checker          *CoherenceChecker
	learning         *LearningEngine
	correctionWindow int
}

type Config struct {
	Vocabulary       *Vocabulary
	Policy           LearningPolicy
	CorrectionWindow int
}

func NewService(catalog CatalogSource, corrections CorrectionSource, config Config) *Service {
	if config.Vocabulary == nil {
		config.Vocabulary = DefaultVocabulary()
	}
	if config.Policy == (LearningPolicy{}) {
		config.Policy = DefaultLearningPolicy()
	}
	if config.CorrectionWindow == 0 {
		config.CorrectionWindow = 100
	}

	return &Service{
		catalog:          catalog,
		corrections:      corrections,
		estimator:        NewPortionEstimator(config.Vocabulary),
		matcher:          NewIngredientMatcher(config.Vocabulary),
		calculator:       NewNutritionCalculator(),
		checker:          NewCoherenceChecker(),
		learning:         NewLearningEngine(config.Vocabulary, config.Policy),
		correctionWindow: config.CorrectionWindow,
	}
}

// Analyze runs the fresh-scan path: estimate → match → learning blend →
// calculate → coherence-check. The two catalog reads and the correction-log
// read are independent and issued concurrently. Only storage failures
// propagate; every data-quality condition degrades to a labeled fallback.
func (s *Service) Analyze(ctx context.Context, detection ai.MealDetection, raw json.RawMessage) (*ScanResult, error) {
	var (
		wg           sync.WaitGroup
		ingredients  []FactRow
		preparations []FactRow
		history      []CorrectionRecord
		ingErr       error
		prepErr      error
		histErr      error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		ingredients, ingErr = s.catalog.FetchIngredientFacts(ctx)
	}()
	go func() {
		defer wg.Done()
		preparations, prepErr = s.catalog.FetchPreparationFacts(ctx)
	}()
	go func() {
		defer wg.Done()
		history, histErr = s.corrections.FetchRecent(ctx, s.correctionWindow)
	}()
	wg.Wait()

	if ingErr != nil {
		return nil, fmt.Errorf("fetching ingredient facts: %w", ingErr)
	}
	if prepErr != nil {
		return nil, fmt.Errorf("fetching preparation facts: %w", prepErr)
	}
	if histErr != nil {
		return nil, fmt.Errorf("fetching corrections: %w", histErr)
	}

	catalog := make([]FactRow, 0, len(ingredients)+len(preparations))
	catalog = append(catalog, ingredients...)
	catalog = append(catalog, preparations...)

	estimated := s.estimator.Estimate(detection)
	matched := s.matcher.Match(estimated, catalog)

	boost := s.learning.ComputeBoost(detection, history)
	if boost.CorrectionCount > 0 {
		log.Printf("[PIPELINE] Learning boost from %d correction(s), confidence boost %.3f", boost.CorrectionCount, boost.ConfidenceBoost)
	}
	matched = s.learning.ApplyBoost(matched, boost)

	textures := make(map[string]string, len(estimated))
	for _, ing := range estimated {
		textures[ing.OriginalName] = ing.TextureType
	}

	result := s.calculator.Calculate(matched, textures, detection.AverageIngredientConfidence())
	warnings := s.checker.Check(result, matched, detection)

	mealName := detection.DishName
	if boost.SuggestedDishName != "" {
		mealName = boost.SuggestedDishName
		log.Printf("[PIPELINE] Dish name suggested from correction history: %s", mealName)
	}

	return &ScanResult{
		DetectedMealName: mealName,
		PortionSize:      detection.PortionSize,
		Ingredients:      matched,
		Nutrition:        result,
		Warnings:         warnings,
		ConfidenceScore:  result.ConfidenceScore,
		DetectionRaw:     raw,
	}, nil
}

// Adjust is the manual-adjustment re-entry point: the user-edited list is
// authoritative, so matching and learning are bypassed entirely and only
// nutrition and coherence are recomputed. Idempotent on the same input.
func (s *Service) Adjust(ingredients []MatchedIngredient, detection ai.MealDetection, raw json.RawMessage) *ScanResult {
	result := s.calculator.Recalculate(ingredients)
	warnings := s.checker.Check(result, ingredients, detection)

	return &ScanResult{
		DetectedMealName: detection.DishName,
		PortionSize:      detection.PortionSize,
		Ingredients:      ingredients,
		Nutrition:        result,
		Warnings:         warnings,
		ConfidenceScore:  result.ConfidenceScore,
		DetectionRaw:     raw,
	}
}

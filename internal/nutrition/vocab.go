package nutrition

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary bundles the static lookup tables the estimator and matcher
// depend on: vernacular-to-catalog synonyms, category keyword lists and the
// synthetic nutrition profiles used when the catalog has no usable row.
// It is injected at construction time so tests can override any table.
type Vocabulary struct {
	Version          string              `yaml:"version"`
	Synonyms         map[string]string   `yaml:"synonyms"`
	CategoryKeywords map[string][]string `yaml:"category_keywords"`
	FallbackProfiles map[string]FactRow  `yaml:"fallback_profiles"`
}

// categoryOrder fixes the keyword scan order so category detection is
// deterministic regardless of map iteration.
var categoryOrder = []string{"cereal", "meat", "fish", "vegetable", "oil", "sauce", "tuber", "fruit"}

func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Version: "2024-06",
		Synonyms: map[string]string{
			"chicken":        "poulet",
			"rice":           "riz blanc cuit",
			"riz":            "riz blanc cuit",
			"white rice":     "riz blanc cuit",
			"beef":           "boeuf",
			"viande":         "boeuf",
			"meat":           "boeuf",
			"fish":           "poisson",
			"lamb":           "mouton",
			"onion":          "oignon",
			"onions":         "oignon",
			"tomato":         "tomate",
			"tomatoes":       "tomate",
			"peanut sauce":   "sauce arachide",
			"oil":            "huile",
			"palm oil":       "huile de palme",
			"cassava":        "manioc",
			"plantain":       "banane plantain",
			"sweet potato":   "patate douce",
			"potato":         "pomme de terre",
			"potatoes":       "pomme de terre",
			"couscous":       "couscous de mil",
			"millet":         "mil",
			"bread":          "pain",
			"fried plantain": "alloco",
		},
		CategoryKeywords: map[string][]string{
			"cereal":    {"riz", "rice", "mil", "millet", "couscous", "pain", "bread", "pate", "fonio", "mais", "corn"},
			"meat":      {"viande", "boeuf", "poulet", "mouton", "agneau", "chicken", "beef", "lamb", "dibi", "brochette"},
			"fish":      {"poisson", "thiof", "fish", "crevette", "shrimp", "yaboy", "capitaine"},
			"vegetable": {"legume", "oignon", "tomate", "carotte", "chou", "salade", "gombo", "okra", "aubergine", "onion", "cabbage"},
			"oil":       {"huile", "oil", "beurre", "butter", "margarine"},
			"sauce":     {"sauce", "bouillon", "soupe", "mafe", "yassa", "marinade"},
			"tuber":     {"pomme de terre", "patate", "igname", "manioc", "yam", "cassava", "taro", "plantain"},
			"fruit":     {"fruit", "banane", "mangue", "orange", "papaye", "ananas", "mango"},
		},
		FallbackProfiles: map[string]FactRow{
			"cereal":    {Name: "cereale (estimation)", Category: "cereal", KcalPer100g: 130, ProteinPer100g: 2.7, CarbsPer100g: 28, FatPer100g: 0.3, FiberPer100g: 0.4},
			"meat":      {Name: "viande (estimation)", Category: "meat", KcalPer100g: 220, ProteinPer100g: 26, CarbsPer100g: 0, FatPer100g: 13, FiberPer100g: 0},
			"fish":      {Name: "poisson (estimation)", Category: "fish", KcalPer100g: 150, ProteinPer100g: 22, CarbsPer100g: 0, FatPer100g: 6, FiberPer100g: 0},
			"vegetable": {Name: "legume (estimation)", Category: "vegetable", KcalPer100g: 35, ProteinPer100g: 1.5, CarbsPer100g: 7, FatPer100g: 0.2, FiberPer100g: 2.5},
			"oil":       {Name: "huile (estimation)", Category: "oil", KcalPer100g: 884, ProteinPer100g: 0, CarbsPer100g: 0, FatPer100g: 100, FiberPer100g: 0},
			"sauce":     {Name: "sauce (estimation)", Category: "sauce", KcalPer100g: 120, ProteinPer100g: 2, CarbsPer100g: 8, FatPer100g: 9, FiberPer100g: 0.5},
			"tuber":     {Name: "tubercule (estimation)", Category: "tuber", KcalPer100g: 90, ProteinPer100g: 2, CarbsPer100g: 21, FatPer100g: 0.1, FiberPer100g: 1.8},
			"fruit":     {Name: "fruit (estimation)", Category: "fruit", KcalPer100g: 60, ProteinPer100g: 0.8, CarbsPer100g: 14, FatPer100g: 0.3, FiberPer100g: 2},
			"default":   {Name: "aliment (estimation)", Category: "default", KcalPer100g: 100, ProteinPer100g: 5, CarbsPer100g: 12, FatPer100g: 4, FiberPer100g: 1},
		},
	}
}

// LoadVocabularyFile overlays a YAML vocabulary file onto the defaults.
// Tables present in the file replace the corresponding default table whole;
// absent tables keep their defaults.
func LoadVocabularyFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	var override Vocabulary
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file: %w", err)
	}

	vocab := DefaultVocabulary()
	if override.Version != "" {
		vocab.Version = override.Version
	}
	if len(override.Synonyms) > 0 {
		vocab.Synonyms = override.Synonyms
	}
	if len(override.CategoryKeywords) > 0 {
		vocab.CategoryKeywords = override.CategoryKeywords
	}
	if len(override.FallbackProfiles) > 0 {
		vocab.FallbackProfiles = override.FallbackProfiles
	}

	return vocab, nil
}

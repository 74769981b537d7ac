package nutrition

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultVocabulary_ProfilesCoverAllCategories(t *testing.T) {
	vocab := DefaultVocabulary()

	for _, category := range categoryOrder {
		profile, ok := vocab.FallbackProfiles[category]
		if !ok {
			t.Errorf("Missing fallback profile for %s", category)
			continue
		}
		if profile.KcalPer100g <= 0 {
			t.Errorf("Profile %s has no calories", category)
		}
	}
	if _, ok := vocab.FallbackProfiles["default"]; !ok {
		t.Errorf("Missing default fallback profile")
	}
}

func TestLoadVocabularyFile_OverlaysSynonyms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	content := `version: "test"
synonyms:
  ndambe: haricots
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write vocab file: %v", err)
	}

	vocab, err := LoadVocabularyFile(path)
	if err != nil {
		t.Fatalf("LoadVocabularyFile failed: %v", err)
	}

	if vocab.Version != "test" {
		t.Errorf("Expected version override, got %q", vocab.Version)
	}
	if vocab.Synonyms["ndambe"] != "haricots" {
		t.Errorf("Expected synonym table replaced, got %+v", vocab.Synonyms)
	}
	// Synonym table is replaced whole, not merged
	if _, ok := vocab.Synonyms["chicken"]; ok {
		t.Errorf("Expected default synonyms dropped when overridden")
	}
	// Untouched tables keep defaults
	if len(vocab.CategoryKeywords) == 0 || len(vocab.FallbackProfiles) == 0 {
		t.Errorf("Expected default keyword and profile tables preserved")
	}
}

func TestLoadVocabularyFile_MissingFile(t *testing.T) {
	if _, err := LoadVocabularyFile("/nonexistent/vocab.yaml"); err == nil {
		t.Errorf("Expected error for missing file")
	}
}

func TestLoadVocabularyFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	if err := os.WriteFile(path, []byte("synonyms: [not: a: map"), 0644); err != nil {
		t.Fatalf("Failed to write vocab file: %v", err)
	}

	if _, err := LoadVocabularyFile(path); err == nil {
		t.Errorf("Expected error for invalid YAML")
	}
}

package database

import (
	"context"
	"testing"

	"github.com/KihadiMalick/Afri-Cal-sub000/internal/nutrition"
)

func TestCatalogRepo_InsertAndFetch(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCatalogRepo(db)
	ctx := context.Background()

	fact := &nutrition.FactRow{
		Name:           "riz blanc cuit",
		Category:       "cereal",
		KcalPer100g:    130,
		ProteinPer100g: 2.7,
		CarbsPer100g:   28,
		FatPer100g:     0.3,
		FiberPer100g:   0.4,
	}
	if err := repo.InsertIngredientFact(ctx, fact); err != nil {
		t.Fatalf("Failed to insert ingredient: %v", err)
	}
	if fact.ID == "" {
		t.Errorf("Expected generated ID on insert")
	}

	facts, err := repo.FetchIngredientFacts(ctx)
	if err != nil {
		t.Fatalf("Failed to fetch ingredients: %v", err)
	}
	if len(facts) != 1 {
		t.Fatalf("Expected 1 ingredient, got %d", len(facts))
	}
	if facts[0].Name != "riz blanc cuit" || facts[0].KcalPer100g != 130 {
		t.Errorf("Fetched fact does not match inserted: %+v", facts[0])
	}
}

func TestCatalogRepo_TablesAreSeparate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCatalogRepo(db)
	ctx := context.Background()

	ing := &nutrition.FactRow{Name: "poulet", Category: "meat", KcalPer100g: 165}
	prep := &nutrition.FactRow{Name: "sauce arachide", Category: "sauce", KcalPer100g: 210}

	if err := repo.InsertIngredientFact(ctx, ing); err != nil {
		t.Fatalf("Failed to insert ingredient: %v", err)
	}
	if err := repo.InsertPreparationFact(ctx, prep); err != nil {
		t.Fatalf("Failed to insert preparation: %v", err)
	}

	ingredients, err := repo.FetchIngredientFacts(ctx)
	if err != nil {
		t.Fatalf("Failed to fetch ingredients: %v", err)
	}
	preparations, err := repo.FetchPreparationFacts(ctx)
	if err != nil {
		t.Fatalf("Failed to fetch preparations: %v", err)
	}

	if len(ingredients) != 1 || ingredients[0].Name != "poulet" {
		t.Errorf("Unexpected ingredient rows: %+v", ingredients)
	}
	if len(preparations) != 1 || preparations[0].Name != "sauce arachide" {
		t.Errorf("Unexpected preparation rows: %+v", preparations)
	}
}

func TestCatalogRepo_InsertReplacesExistingID(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCatalogRepo(db)
	ctx := context.Background()

	fact := &nutrition.FactRow{ID: "ing-1", Name: "thiof", Category: "fish", KcalPer100g: 100}
	if err := repo.InsertIngredientFact(ctx, fact); err != nil {
		t.Fatalf("Failed to insert: %v", err)
	}

	fact.KcalPer100g = 150
	if err := repo.InsertIngredientFact(ctx, fact); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	facts, err := repo.FetchIngredientFacts(ctx)
	if err != nil {
		t.Fatalf("Failed to fetch: %v", err)
	}
	if len(facts) != 1 {
		t.Fatalf("Expected upsert to keep 1 row, got %d", len(facts))
	}
	if facts[0].KcalPer100g != 150 {
		t.Errorf("Expected updated kcal 150, got %.0f", facts[0].KcalPer100g)
	}
}

func TestCatalogRepo_EmptyTables(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCatalogRepo(db)

	facts, err := repo.FetchIngredientFacts(context.Background())
	if err != nil {
		t.Fatalf("Failed to fetch from empty table: %v", err)
	}
	if len(facts) != 0 {
		t.Errorf("Expected no rows, got %d", len(facts))
	}
}

package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/KihadiMalick/Afri-Cal-sub000/internal/nutrition"
)

// CatalogRepo reads the two nutrition-fact tables. Both are searched as one
// pool by the matcher; the split only reflects how rows are curated (raw
// ingredients vs composite preparations).
type CatalogRepo struct {
	db *DB
}

func NewCatalogRepo(db *DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) FetchIngredientFacts(ctx context.Context) ([]nutrition.FactRow, error) {
	return r.fetchFacts(ctx, "ingredients")
}

func (r *CatalogRepo) FetchPreparationFacts(ctx context.Context) ([]nutrition.FactRow, error) {
	return r.fetchFacts(ctx, "preparations")
}

func (r *CatalogRepo) fetchFacts(ctx context.Context, table string) ([]nutrition.FactRow, error) {
	query := fmt.Sprintf(`
		SELECT id, name, COALESCE(category, ''), kcal_per_100g, protein_per_100g,
			   carbs_per_100g, fat_per_100g, fiber_per_100g
		FROM %s
		ORDER BY name`, table)

	rows, err := r.db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var facts []nutrition.FactRow
	for rows.Next() {
		var fact nutrition.FactRow
		if err := rows.Scan(
			&fact.ID,
			&fact.Name,
			&fact.Category,
			&fact.KcalPer100g,
			&fact.ProteinPer100g,
			&fact.CarbsPer100g,
			&fact.FatPer100g,
			&fact.FiberPer100g,
		); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		facts = append(facts, fact)
	}

	return facts, rows.Err()
}

func (r *CatalogRepo) InsertIngredientFact(ctx context.Context, fact *nutrition.FactRow) error {
	return r.insertFact(ctx, "ingredients", fact)
}

func (r *CatalogRepo) InsertPreparationFact(ctx context.Context, fact *nutrition.FactRow) error {
	return r.insertFact(ctx, "preparations", fact)
}

func (r *CatalogRepo) insertFact(ctx context.Context, table string, fact *nutrition.FactRow) error {
	if fact.ID == "" {
		fact.ID = uuid.New().String()
	}

	var query string
	if r.db.dbType == "postgres" {
		query = fmt.Sprintf(`
			INSERT INTO %s (
				id, name, category, kcal_per_100g, protein_per_100g,
				carbs_per_100g, fat_per_100g, fiber_per_100g
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				category = EXCLUDED.category,
				kcal_per_100g = EXCLUDED.kcal_per_100g,
				protein_per_100g = EXCLUDED.protein_per_100g,
				carbs_per_100g = EXCLUDED.carbs_per_100g,
				fat_per_100g = EXCLUDED.fat_per_100g,
				fiber_per_100g = EXCLUDED.fiber_per_100g`, table)
	} else {
		query = fmt.Sprintf(`
			INSERT OR REPLACE INTO %s (
				id, name, category, kcal_per_100g, protein_per_100g,
				carbs_per_100g, fat_per_100g, fiber_per_100g
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, table)
	}

	_, err := r.db.conn.ExecContext(ctx, query,
		fact.ID,
		fact.Name,
		fact.Category,
		fact.KcalPer100g,
		fact.ProteinPer100g,
		fact.CarbsPer100g,
		fact.FatPer100g,
		fact.FiberPer100g,
	)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/KihadiMalick/Afri-Cal-sub000/internal/nutrition"
)

// CorrectionRepo owns the append-only correction log. The pipeline only ever
// performs bounded, most-recent-first reads; Append is called by the
// save-correction handler, outside the core.
type CorrectionRepo struct {
	db *DB
}

func NewCorrectionRepo(db *DB) *CorrectionRepo {
	return &CorrectionRepo{db: db}
}

func (r *CorrectionRepo) Append(ctx context.Context, record *nutrition.CorrectionRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	originalJSON, err := json.Marshal(record.OriginalIngredients)
	if err != nil {
		return fmt.Errorf("failed to marshal original ingredients: %w", err)
	}
	correctedJSON, err := json.Marshal(record.CorrectedIngredients)
	if err != nil {
		return fmt.Errorf("failed to marshal corrected ingredients: %w", err)
	}

	var query string
	if r.db.dbType == "postgres" {
		query = `
			INSERT INTO corrections (
				id, scan_id, original_dish_name, original_ingredients,
				corrected_dish_name, corrected_ingredients, image_hash, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	} else {
		query = `
			INSERT INTO corrections (
				id, scan_id, original_dish_name, original_ingredients,
				corrected_dish_name, corrected_ingredients, image_hash, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	}

	_, err = r.db.conn.ExecContext(ctx, query,
		record.ID,
		record.ScanID,
		record.OriginalDishName,
		string(originalJSON),
		record.CorrectedDishName,
		string(correctedJSON),
		record.ImageHash,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append correction: %w", err)
	}
	return nil
}

func (r *CorrectionRepo) FetchRecent(ctx context.Context, limit int) ([]nutrition.CorrectionRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, scan_id, COALESCE(original_dish_name, ''), original_ingredients,
			   corrected_dish_name, corrected_ingredients, COALESCE(image_hash, ''), created_at
		FROM corrections
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query corrections: %w", err)
	}
	defer rows.Close()

	var records []nutrition.CorrectionRecord
	for rows.Next() {
		var record nutrition.CorrectionRecord
		var originalJSON, correctedJSON string

		if err := rows.Scan(
			&record.ID,
			&record.ScanID,
			&record.OriginalDishName,
			&originalJSON,
			&record.CorrectedDishName,
			&correctedJSON,
			&record.ImageHash,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}

		if err := json.Unmarshal([]byte(originalJSON), &record.OriginalIngredients); err != nil {
			record.OriginalIngredients = []nutrition.CorrectionIngredient{}
		}
		if err := json.Unmarshal([]byte(correctedJSON), &record.CorrectedIngredients); err != nil {
			record.CorrectedIngredients = []nutrition.CorrectionIngredient{}
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/KihadiMalick/Afri-Cal-sub000/internal/models"
)

type ScanRepo struct {
	db *DB
}

func NewScanRepo(db *DB) *ScanRepo {
	return &ScanRepo{db: db}
}

func (r *ScanRepo) Insert(ctx context.Context, scan *models.MealScan) error {
	var query string
	if r.db.dbType == "postgres" {
		query = `
			INSERT INTO scans (id, filename, content_type, size, detection_raw, result, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
	} else {
		query = `
			INSERT INTO scans (id, filename, content_type, size, detection_raw, result, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
	}

	_, err := r.db.conn.ExecContext(ctx, query,
		scan.ID,
		scan.Filename,
		scan.ContentType,
		scan.Size,
		string(scan.DetectionRaw),
		string(scan.Result),
		scan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scan: %w", err)
	}
	return nil
}

func (r *ScanRepo) UpdateResult(ctx context.Context, id string, result []byte) error {
	query := `UPDATE scans SET result = $1 WHERE id = $2`

	res, err := r.db.conn.ExecContext(ctx, query, string(result), id)
	if err != nil {
		return fmt.Errorf("failed to update scan result: %w", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("scan not found")
	}
	return nil
}

func (r *ScanRepo) GetByID(ctx context.Context, id string) (*models.MealScan, error) {
	query := `
		SELECT id, filename, content_type, size, detection_raw, result, created_at
		FROM scans
		WHERE id = $1`

	scan := &models.MealScan{}
	var detectionRaw, result string

	err := r.db.conn.QueryRowContext(ctx, query, id).Scan(
		&scan.ID,
		&scan.Filename,
		&scan.ContentType,
		&scan.Size,
		&detectionRaw,
		&result,
		&scan.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}

	scan.DetectionRaw = []byte(detectionRaw)
	scan.Result = []byte(result)
	return scan, nil
}

func (r *ScanRepo) List(ctx context.Context, limit int) ([]models.MealScan, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, filename, content_type, size, detection_raw, result, created_at
		FROM scans
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var scans []models.MealScan
	for rows.Next() {
		var scan models.MealScan
		var detectionRaw, result string

		if err := rows.Scan(
			&scan.ID,
			&scan.Filename,
			&scan.ContentType,
			&scan.Size,
			&detectionRaw,
			&result,
			&scan.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		scan.DetectionRaw = []byte(detectionRaw)
		scan.Result = []byte(result)
		scans = append(scans, scan)
	}

	return scans, rows.Err()
}

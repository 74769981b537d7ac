package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MealScan is the persisted record of one analyzed photo: the stored file,
// the raw detection for provenance and the last computed result.
type MealScan struct {
	ID           string
	Filename     string
	ContentType  string
	Size         int64
	DetectionRaw json.RawMessage
	Result       json.RawMessage
	CreatedAt    time.Time
}

func NewMealScan(filename, contentType string, size int64) *MealScan {
	return &MealScan{
		ID:          uuid.New().String(),
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
		CreatedAt:   time.Now(),
	}
}

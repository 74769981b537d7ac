package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/KihadiMalick/Afri-Cal-sub000/internal/models"
)

func TestScanRepo_InsertAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewScanRepo(db)
	ctx := context.Background()

	scan := models.NewMealScan("photo.jpg", "image/jpeg", 2048)
	scan.DetectionRaw = []byte(`{"dish_name":"Thieb"}`)
	scan.Result = []byte(`{"total_kcal":650}`)

	if err := repo.Insert(ctx, scan); err != nil {
		t.Fatalf("Failed to insert scan: %v", err)
	}

	got, err := repo.GetByID(ctx, scan.ID)
	if err != nil {
		t.Fatalf("Failed to get scan: %v", err)
	}
	if got == nil {
		t.Fatalf("Expected scan, got nil")
	}
	if got.Filename != "photo.jpg" || got.ContentType != "image/jpeg" || got.Size != 2048 {
		t.Errorf("Scan metadata did not round-trip: %+v", got)
	}
	if string(got.DetectionRaw) != `{"dish_name":"Thieb"}` {
		t.Errorf("Detection raw did not round-trip: %s", got.DetectionRaw)
	}
}

func TestScanRepo_GetMissingReturnsNil(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewScanRepo(db)

	got, err := repo.GetByID(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("Expected no error for missing scan, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing scan, got %+v", got)
	}
}

func TestScanRepo_UpdateResult(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewScanRepo(db)
	ctx := context.Background()

	scan := models.NewMealScan("photo.jpg", "image/jpeg", 1024)
	if err := repo.Insert(ctx, scan); err != nil {
		t.Fatalf("Failed to insert scan: %v", err)
	}

	if err := repo.UpdateResult(ctx, scan.ID, []byte(`{"total_kcal":480}`)); err != nil {
		t.Fatalf("Failed to update result: %v", err)
	}

	got, err := repo.GetByID(ctx, scan.ID)
	if err != nil {
		t.Fatalf("Failed to get scan: %v", err)
	}
	if string(got.Result) != `{"total_kcal":480}` {
		t.Errorf("Expected updated result, got %s", got.Result)
	}
}

func TestScanRepo_UpdateResultMissingScan(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewScanRepo(db)

	if err := repo.UpdateResult(context.Background(), "nonexistent", []byte(`{}`)); err == nil {
		t.Errorf("Expected error updating missing scan")
	}
}

func TestScanRepo_ListMostRecentFirst(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewScanRepo(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		scan := models.NewMealScan(fmt.Sprintf("photo-%d.jpg", i), "image/jpeg", 100)
		scan.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Insert(ctx, scan); err != nil {
			t.Fatalf("Failed to insert scan %d: %v", i, err)
		}
	}

	scans, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("Failed to list scans: %v", err)
	}
	if len(scans) != 2 {
		t.Fatalf("Expected 2 scans, got %d", len(scans))
	}
	if scans[0].Filename != "photo-2.jpg" {
		t.Errorf("Expected most recent scan first, got %s", scans[0].Filename)
	}
}

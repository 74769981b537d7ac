package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/KihadiMalick/Afri-Cal-sub000/internal/ai"
	"github.com/KihadiMalick/Afri-Cal-sub000/internal/database"
	"github.com/KihadiMalick/Afri-Cal-sub000/internal/models"
	"github.com/KihadiMalick/Afri-Cal-sub000/internal/nutrition"
	"github.com/KihadiMalick/Afri-Cal-sub000/internal/storage"
)

type App struct {
	Storage        storage.Storage
	DB             *database.DB
	ScanRepo       *database.ScanRepo
	CorrectionRepo *database.CorrectionRepo
	Pipeline       *nutrition.Service
	Vision         ai.VisionService
	MaxUploadSize  int64
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// AnalyzeHandler runs the pipeline on a caller-provided detection JSON,
// without any vision call. This is the deterministic entry point: same
// detection plus same catalog snapshot yields the same result.
func (app *App) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var detection ai.MealDetection
	if err := json.Unmarshal(raw, &detection); err != nil {
		respondError(w, http.StatusBadRequest, "invalid detection JSON")
		return
	}
	detection.Normalize()

	result, err := app.Pipeline.Analyze(r.Context(), detection, raw)
	if err != nil {
		respondError(w, http.StatusBadGateway, "analysis failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// UploadScanHandler accepts a meal photo, runs the vision collaborator and
// then the pipeline, and persists the scan for later adjustment.
func (app *App) UploadScanHandler(w http.ResponseWriter, r *http.Request) {
	if app.Vision == nil {
		respondError(w, http.StatusServiceUnavailable, "vision service not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadSize)
	if err := r.ParseMultipartForm(app.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "photo too large")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to get photo")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(w, http.StatusBadRequest, "only image files are allowed")
		return
	}

	imageData, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read photo")
		return
	}

	detection, raw, err := app.Vision.AnalyzeMealPhoto(r.Context(), imageData)
	if err != nil {
		respondError(w, http.StatusBadGateway, "vision analysis failed")
		return
	}

	result, err := app.Pipeline.Analyze(r.Context(), *detection, raw)
	if err != nil {
		respondError(w, http.StatusBadGateway, "analysis failed")
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to rewind photo")
		return
	}

	filename, err := app.Storage.SaveFile(file, storage.FileInfo{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	scan := models.NewMealScan(filename, contentType, header.Size)
	scan.DetectionRaw = raw
	scan.Result, _ = json.Marshal(result)

	if err := app.ScanRepo.Insert(r.Context(), scan); err != nil {
		app.Storage.DeleteFile(filename)
		respondError(w, http.StatusInternalServerError, "failed to save scan")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"scan_id": scan.ID,
		"result":  result,
	})
}

// AdjustedIngredient is one line of a user-edited ingredient list.
type AdjustedIngredient struct {
	Name           string  `json:"name"`
	WeightGrams    float64 `json:"weight_grams"`
	KcalPer100g    float64 `json:"kcal_per_100g"`
	ProteinPer100g float64 `json:"protein_per_100g"`
	CarbsPer100g   float64 `json:"carbs_per_100g"`
	FatPer100g     float64 `json:"fat_per_100g"`
	FiberPer100g   float64 `json:"fiber_per_100g"`
}

type adjustRequest struct {
	Ingredients []AdjustedIngredient `json:"ingredients"`
}

// AdjustScanHandler recomputes nutrition from a user-edited ingredient list.
// User intent is authoritative: matching and learning are bypassed.
func (app *App) AdjustScanHandler(w http.ResponseWriter, r *http.Request) {
	scan, ok := app.loadScan(w, r)
	if !ok {
		return
	}

	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid adjustment JSON")
		return
	}

	var detection ai.MealDetection
	if len(scan.DetectionRaw) > 0 {
		if err := json.Unmarshal(scan.DetectionRaw, &detection); err == nil {
			detection.Normalize()
		}
	}

	ingredients := make([]nutrition.MatchedIngredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ingredients = append(ingredients, nutrition.MatchedIngredient{
			Name:                 ing.Name,
			OriginalDetectedName: ing.Name,
			KcalPer100g:          ing.KcalPer100g,
			ProteinPer100g:       ing.ProteinPer100g,
			CarbsPer100g:         ing.CarbsPer100g,
			FatPer100g:           ing.FatPer100g,
			FiberPer100g:         ing.FiberPer100g,
			MatchedWeightGrams:   ing.WeightGrams,
			MatchType:            nutrition.MatchExact,
			MatchConfidence:      1.0,
		})
	}

	result := app.Pipeline.Adjust(ingredients, detection, scan.DetectionRaw)

	resultJSON, _ := json.Marshal(result)
	if err := app.ScanRepo.UpdateResult(r.Context(), scan.ID, resultJSON); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store adjusted result")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type correctionRequest struct {
	CorrectedDishName    string                           `json:"corrected_dish_name"`
	CorrectedIngredients []nutrition.CorrectionIngredient `json:"corrected_ingredients"`
	ImageHash            string                           `json:"image_hash,omitempty"`
}

// SaveCorrectionHandler appends a user correction to the log that feeds the
// learning engine. The original detection context is snapshotted from the
// stored scan so future overlap scoring has both sides.
func (app *App) SaveCorrectionHandler(w http.ResponseWriter, r *http.Request) {
	scan, ok := app.loadScan(w, r)
	if !ok {
		return
	}

	var req correctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid correction JSON")
		return
	}
	if req.CorrectedDishName == "" || len(req.CorrectedIngredients) == 0 {
		respondError(w, http.StatusBadRequest, "corrected_dish_name and corrected_ingredients are required")
		return
	}

	var detection ai.MealDetection
	if len(scan.DetectionRaw) > 0 {
		json.Unmarshal(scan.DetectionRaw, &detection)
	}

	original := make([]nutrition.CorrectionIngredient, 0, len(detection.Ingredients))
	for _, ing := range detection.Ingredients {
		original = append(original, nutrition.CorrectionIngredient{
			Name:        ing.Name,
			WeightGrams: ing.Grams,
		})
	}

	record := &nutrition.CorrectionRecord{
		ScanID:               scan.ID,
		OriginalDishName:     detection.DishName,
		OriginalIngredients:  original,
		CorrectedDishName:    req.CorrectedDishName,
		CorrectedIngredients: req.CorrectedIngredients,
		ImageHash:            req.ImageHash,
	}

	if err := app.CorrectionRepo.Append(r.Context(), record); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save correction")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"correction_id": record.ID})
}

func (app *App) GetScanHandler(w http.ResponseWriter, r *http.Request) {
	scan, ok := app.loadScan(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":            scan.ID,
		"created_at":    scan.CreatedAt,
		"detection_raw": scan.DetectionRaw,
		"result":        scan.Result,
	})
}

func (app *App) ListScansHandler(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	scans, err := app.ScanRepo.List(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list scans")
		return
	}

	summaries := make([]map[string]interface{}, 0, len(scans))
	for _, scan := range scans {
		summaries = append(summaries, map[string]interface{}{
			"id":         scan.ID,
			"created_at": scan.CreatedAt,
			"result":     json.RawMessage(scan.Result),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"scans": summaries})
}

func (app *App) ScanPhotoHandler(w http.ResponseWriter, r *http.Request) {
	scan, ok := app.loadScan(w, r)
	if !ok {
		return
	}
	if scan.Filename == "" {
		http.NotFound(w, r)
		return
	}

	file, err := app.Storage.OpenFile(scan.Filename)
	if err != nil {
		http.Error(w, "Photo not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	stat, err := file.(interface{ Stat() (os.FileInfo, error) }).Stat()
	if err != nil {
		http.Error(w, "Error accessing photo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", scan.ContentType)
	http.ServeContent(w, r, scan.Filename, stat.ModTime(), file)
}

func (app *App) loadScan(w http.ResponseWriter, r *http.Request) (*models.MealScan, bool) {
	scanID := chi.URLParam(r, "id")
	if scanID == "" {
		http.NotFound(w, r)
		return nil, false
	}

	scan, err := app.ScanRepo.GetByID(r.Context(), scanID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load scan")
		return nil, false
	}
	if scan == nil {
		http.NotFound(w, r)
		return nil, false
	}

	return scan, true
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/KihadiMalick/Afri-Cal-sub000/internal/ai"
	"github.com/KihadiMalick/Afri-Cal-sub000/internal/api"
	"github.com/KihadiMalick/Afri-Cal-sub000/internal/database"
	"github.com/KihadiMalick/Afri-Cal-sub000/internal/nutrition"
	"github.com/KihadiMalick/Afri-Cal-sub000/internal/storage"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	maxUploadSize := os.Getenv("MAX_UPLOAD_SIZE")
	if maxUploadSize == "" {
		maxUploadSize = "10485760"
	}
	maxSize, err := strconv.ParseInt(maxUploadSize, 10, 64)
	if err != nil {
		log.Fatal("Invalid MAX_UPLOAD_SIZE:", err)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	// Database configuration
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	var dbConfig database.Config
	dbConfig.Type = dbType

	if dbType == "postgres" {
		dbConfig.Host = os.Getenv("DB_HOST")
		if dbConfig.Host == "" {
			dbConfig.Host = "localhost"
		}

		dbPortStr := os.Getenv("DB_PORT")
		if dbPortStr == "" {
			dbPortStr = "5432"
		}
		dbPort, err := strconv.Atoi(dbPortStr)
		if err != nil {
			log.Fatal("Invalid DB_PORT:", err)
		}
		dbConfig.Port = dbPort

		dbConfig.User = os.Getenv("DB_USER")
		if dbConfig.User == "" {
			dbConfig.User = "africal"
		}

		dbConfig.Password = os.Getenv("DB_PASSWORD")
		if dbConfig.Password == "" {
			dbConfig.Password = "africal_dev"
		}

		dbConfig.Name = os.Getenv("DB_NAME")
		if dbConfig.Name == "" {
			dbConfig.Name = "africal"
		}
	} else {
		dbConfig.SQLitePath = os.Getenv("DB_PATH")
		if dbConfig.SQLitePath == "" {
			dbConfig.SQLitePath = "./africal.db"
		}
	}

	localStorage, err := storage.NewLocalStorage(uploadDir)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	db, err := database.NewDB(dbConfig)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}

	log.Printf("Running database migrations from %s", migrationsPath)
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	catalogRepo := database.NewCatalogRepo(db)
	correctionRepo := database.NewCorrectionRepo(db)
	scanRepo := database.NewScanRepo(db)

	cacheTTL := 5 * time.Minute
	if v := os.Getenv("CATALOG_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cacheTTL = parsed
		}
	}
	cachedCatalog := database.NewCachedCatalog(catalogRepo, cacheTTL)

	vocab := nutrition.DefaultVocabulary()
	if vocabPath := os.Getenv("VOCAB_PATH"); vocabPath != "" {
		loaded, err := nutrition.LoadVocabularyFile(vocabPath)
		if err != nil {
			log.Printf("Warning: failed to load vocabulary from %s: %v", vocabPath, err)
		} else {
			vocab = loaded
			log.Printf("Loaded vocabulary %s from %s", vocab.Version, vocabPath)
		}
	}

	pipelineConfig := nutrition.Config{Vocabulary: vocab}
	if v := os.Getenv("CORRECTION_WINDOW"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			pipelineConfig.CorrectionWindow = parsed
		}
	}

	pipeline := nutrition.NewService(cachedCatalog, correctionRepo, pipelineConfig)

	var visionService ai.VisionService
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		visionService = ai.NewOpenAIClient(&ai.Config{
			OpenAIAPIKey: apiKey,
			Model:        os.Getenv("VISION_MODEL"),
		})
	} else {
		log.Printf("Vision service not configured. Set OPENAI_API_KEY to enable photo uploads; /api/analyze remains available")
	}

	app := &api.App{
		Storage:        localStorage,
		DB:             db,
		ScanRepo:       scanRepo,
		CorrectionRepo: correctionRepo,
		Pipeline:       pipeline,
		Vision:         visionService,
		MaxUploadSize:  maxSize,
	}

	router := api.NewRouter(app)

	log.Printf("Server starting on port %s", port)
	log.Printf("Upload directory: %s", uploadDir)
	log.Printf("Database type: %s", dbType)
	if dbType == "postgres" {
		log.Printf("Database connection: %s@%s:%d/%s", dbConfig.User, dbConfig.Host, dbConfig.Port, dbConfig.Name)
	} else {
		log.Printf("Database path: %s", dbConfig.SQLitePath)
	}
	log.Printf("Max upload size: %d bytes", maxSize)

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}

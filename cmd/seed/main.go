package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/KihadiMalick/Afri-Cal-sub000/internal/database"
	"github.com/KihadiMalick/Afri-Cal-sub000/internal/nutrition"
)

type seedFile struct {
	Ingredients  []nutrition.FactRow `json:"ingredients"`
	Preparations []nutrition.FactRow `json:"preparations"`
}

func main() {
	var (
		dbType     = flag.String("db", "sqlite", "Database type (postgres or sqlite)")
		host       = flag.String("host", "localhost", "Database host")
		port       = flag.Int("port", 5432, "Database port")
		user       = flag.String("user", "africal", "Database user")
		password   = flag.String("password", "africal_dev", "Database password")
		dbName     = flag.String("name", "africal", "Database name")
		sqlitePath = flag.String("sqlite", "./africal.db", "SQLite database path")
		file       = flag.String("file", "./seed/catalog.json", "Path to catalog JSON file")
	)
	flag.Parse()

	config := database.Config{
		Type:       *dbType,
		Host:       *host,
		Port:       *port,
		User:       *user,
		Password:   *password,
		Name:       *dbName,
		SQLitePath: *sqlitePath,
	}

	// Override with environment variables if set
	if env := os.Getenv("DB_TYPE"); env != "" {
		config.Type = env
	}
	if env := os.Getenv("DB_HOST"); env != "" {
		config.Host = env
	}
	if env := os.Getenv("DB_USER"); env != "" {
		config.User = env
	}
	if env := os.Getenv("DB_PASSWORD"); env != "" {
		config.Password = env
	}
	if env := os.Getenv("DB_NAME"); env != "" {
		config.Name = env
	}
	if env := os.Getenv("DB_PATH"); env != "" {
		config.SQLitePath = env
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("Failed to read catalog file:", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		log.Fatal("Failed to parse catalog file:", err)
	}

	db, err := database.NewDB(config)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	repo := database.NewCatalogRepo(db)
	ctx := context.Background()

	for i := range seed.Ingredients {
		if err := repo.InsertIngredientFact(ctx, &seed.Ingredients[i]); err != nil {
			log.Fatalf("Failed to insert ingredient %q: %v", seed.Ingredients[i].Name, err)
		}
	}
	for i := range seed.Preparations {
		if err := repo.InsertPreparationFact(ctx, &seed.Preparations[i]); err != nil {
			log.Fatalf("Failed to insert preparation %q: %v", seed.Preparations[i].Name, err)
		}
	}

	fmt.Printf("Seeded %d ingredient(s) and %d preparation(s)\n", len(seed.Ingredients), len(seed.Preparations))
}

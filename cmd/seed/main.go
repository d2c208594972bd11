// Command seed loads listings into the configured database, either from a
// JSON file of raw records (SEED_FILE) or from the built-in static listings.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"property-marketplace/internal/config"
	"property-marketplace/internal/database"
	"property-marketplace/internal/fixtures"
	"property-marketplace/internal/models"
	"property-marketplace/internal/normalize"
)

type rowSaver interface {
	SaveListing(ctx context.Context, row models.ListingRow) error
}

type rawSaver interface {
	SaveRaw(ctx context.Context, id string, raw normalize.RawRecord) error
}

type SeedResult struct {
	Source    string    `json:"source"`
	Saved     int       `json:"saved"`
	Failed    []string  `json:"failed,omitempty"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	_ = godotenv.Load()

	configPath := getEnv("CONFIG_PATH", "/app/config/marketplace.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.Database.Type = getEnv("DB_TYPE", cfg.Database.Type)
	cfg.Database.Mongo.URI = getEnv("MONGODB_URI", cfg.Database.Mongo.URI)

	store, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if store == nil {
		log.Fatal("No database configured (database.type is none)")
	}
	defer store.Close()

	result := &SeedResult{StartedAt: time.Now()}
	records, err := loadRecords(result)
	if err != nil {
		log.Fatalf("Failed to load records: %v", err)
	}

	ctx := context.Background()
	for _, raw := range records {
		if err := save(ctx, store, raw); err != nil {
			log.Printf("Failed to save %v: %v", raw["id"], err)
			result.Failed = append(result.Failed, fmt.Sprint(raw["id"]))
			continue
		}
		result.Saved++
	}
	result.Duration = time.Since(result.StartedAt).Round(time.Millisecond).String()

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
	if len(result.Failed) > 0 {
		os.Exit(1)
	}
}

// loadRecords reads SEED_FILE, falling back to the static listings with
// ids rewritten so they do not shadow the built-in source
func loadRecords(result *SeedResult) ([]normalize.RawRecord, error) {
	if path := os.Getenv("SEED_FILE"); path != "" {
		result.Source = path
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var records []normalize.RawRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return records, nil
	}

	result.Source = "static"
	records := fixtures.StaticListings(time.Now())
	for _, r := range records {
		r["id"] = strings.Replace(fmt.Sprint(r["id"]), "static-", "seed-", 1)
	}
	return records, nil
}

func save(ctx context.Context, store database.Store, raw normalize.RawRecord) error {
	switch s := store.(type) {
	case rowSaver:
		return s.SaveListing(ctx, database.RowFromProperty(normalize.Normalize(raw)))
	case rawSaver:
		p := normalize.Normalize(raw)
		return s.SaveRaw(ctx, p.ID, raw)
	}
	return fmt.Errorf("store %T cannot save listings", store)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

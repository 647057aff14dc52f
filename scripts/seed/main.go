// Seed the tracker database from a JSON file.
//
// Usage:
//
//	go run ./scripts/seed -category striver -file data/striver.json
package main

import (
	"flag"
	"log"

	"project/backend/config"
	"project/backend/models"
	"project/backend/services"
	"project/backend/store"
	"project/backend/utils"
)

func main() {
	categoryFlag := flag.String("category", string(models.CategoryDefault), "category to seed (striver, binary_search, contest_tracker)")
	fileFlag := flag.String("file", "", "path to the JSON seed file (default: <SEED_DATA_DIR>/<category>.json)")
	flag.Parse()

	if !models.KnownCategory(*categoryFlag) {
		log.Fatalf("unknown category %q", *categoryFlag)
	}
	category := models.Category(*categoryFlag)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	st := store.New(db)
	if err := st.AutoMigrate(); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	path := *fileFlag
	if path == "" {
		path = services.DefaultSeedPath(cfg.SeedDataDir, category)
	}

	if category == models.CategoryContest {
		count, err := services.SeedContests(st, path)
		if err != nil {
			log.Fatalf("Error seeding contests: %v", err)
		}
		log.Printf("Reconciled %d contest entries from %s", count, path)
		return
	}

	count, err := services.SeedQuestions(st, category, path)
	if err != nil {
		log.Fatalf("Error seeding %s: %v", category, err)
	}
	if count == 0 {
		log.Printf("Category %s already populated, nothing to do", category)
		return
	}
	log.Printf("Upserted %d questions into %s", count, category)
}

package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"project/backend/config"
	"project/backend/middleware"
	"project/backend/models"
	"project/backend/realtime"
	"project/backend/routes"
	"project/backend/services"
	"project/backend/store"
	"project/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	st := store.New(db)
	if err := st.AutoMigrate(); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	seedOnStart(st, cfg, logger)

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Real-time broker
	hub := realtime.NewHub()
	rt := realtime.NewHandler(st, cfg, hub, logger)

	// Setup routes
	routes.SetupRoutes(app, st, cfg, rt)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}

// seedOnStart runs the seeding contract for every category whose seed file
// is present. A malformed file is fatal: serving a partially seeded category
// is worse than not starting.
func seedOnStart(st *store.Store, cfg *config.Config, logger *log.Logger) {
	for _, category := range []models.Category{models.CategoryDefault, models.CategoryBinarySearch} {
		path := services.DefaultSeedPath(cfg.SeedDataDir, category)
		if _, err := os.Stat(path); err != nil {
			logger.Printf("no seed file for %s (%s), skipping", category, path)
			continue
		}
		count, err := services.SeedQuestions(st, category, path)
		if err != nil {
			log.Fatalf("Error seeding %s: %v", category, err)
		}
		if count > 0 {
			logger.Printf("seeded %d questions into %s", count, category)
		}
	}

	path := services.DefaultSeedPath(cfg.SeedDataDir, models.CategoryContest)
	if _, err := os.Stat(path); err != nil {
		logger.Printf("no contest seed file (%s), skipping", path)
		return
	}
	count, err := services.SeedContests(st, path)
	if err != nil {
		log.Fatalf("Error seeding contests: %v", err)
	}
	logger.Printf("reconciled %d contest entries", count)
}

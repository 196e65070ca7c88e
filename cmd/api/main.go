package main

import (
	"context"
	"log"
	"time"

	"livestock-supply-api-server/config"
	"livestock-supply-api-server/internal/api/routes"
	"livestock-supply-api-server/internal/auth"
	"livestock-supply-api-server/internal/database"
	"livestock-supply-api-server/internal/inventory"
	"livestock-supply-api-server/internal/s3"
	"livestock-supply-api-server/internal/socket"
	"livestock-supply-api-server/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load configuration (.env file, config.yaml, environment)
	godotenv.Load()
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if cfg.JWT.Secret != "" {
		auth.Secret = []byte(cfg.JWT.Secret)
	}
	tokenLifetime := 24 * time.Hour
	if cfg.JWT.Expiration != "" {
		parsed, err := time.ParseDuration(cfg.JWT.Expiration)
		if err != nil {
			log.Fatalf("Invalid jwt.expiration %q: %v", cfg.JWT.Expiration, err)
		}
		tokenLifetime = parsed
	}

	// 2. Connect to MongoDB and prepare the schema
	db, err := database.Connect(cfg.Mongo.URI, cfg.Mongo.DBName)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("Could not create indexes: %v", err)
	}
	if err := database.SeedDemoAccounts(db); err != nil {
		log.Fatalf("Could not seed demo accounts: %v", err)
	}

	// 3. Build the coordination engine on top of the Mongo stores
	stocks := store.NewStockStore(db)
	requests := store.NewRequestStore(db)
	coordinator := inventory.NewCoordinator(stocks, requests)
	reporter := inventory.NewReporter(stocks, requests)

	// 4. Supporting services: notifications and image storage
	wsHub := socket.NewHub()
	var uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Could not create S3 uploader: %v", err)
		}
	} else {
		log.Println("S3 bucket not configured; image uploads disabled")
	}

	// 5. Wire everything into the router and start serving
	router := routes.SetupRouter(cfg, db, coordinator, reporter, stocks, requests, uploader, wsHub, tokenLifetime)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"readiness-backend/internal/shared/config"
	"readiness-backend/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	sqlDB, err := store.Connect(ctx, cfg.DatabaseURL, store.DefaultOptions())
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := store.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
}

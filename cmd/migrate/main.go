package main

import (
	"context"
	"log"
	"os"

	"bosko-storefront/internal/config"
	"bosko-storefront/internal/db"
	"bosko-storefront/internal/migrate"
)

// Applies the device storage schema for the postgres and sqlite drivers.
func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect db: %v", err)
		}
		defer pool.Close()
		if err := migrate.Apply(ctx, pool); err != nil {
			logger.Fatalf("apply migrations: %v", err)
		}
	case config.StorageSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			logger.Fatalf("open sqlite: %v", err)
		}
		defer sqlDB.Close()
		if err := migrate.ApplySQLite(ctx, sqlDB); err != nil {
			logger.Fatalf("apply migrations: %v", err)
		}
	default:
		logger.Printf("storage driver %q has no schema to migrate", cfg.StorageDriver)
		return
	}

	logger.Println("migrations applied")
}

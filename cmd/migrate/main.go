package main

import (
	"context"
	"log"
	"os"

	"storefront/internal/config"
	"storefront/internal/migrate"
)

func main() {
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	config.LoadEnvFile(logger)
	cfg := config.FromEnv()

	version, err := migrate.Apply(context.Background(), cfg.DBConnString)
	if err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	logger.Printf("migrations applied, schema version %d", version)
}

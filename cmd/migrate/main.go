// Command migrate applies the embedded card schema migrations.
package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/tagme/internal/dbx"
	"github.com/dmitrijs2005/tagme/internal/logging"
	"github.com/dmitrijs2005/tagme/internal/repositories/repomanager"
	"github.com/dmitrijs2005/tagme/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(os.Stdout, logging.Options{Format: "json", Level: cfg.LogLevel, File: cfg.LogFile})

	db, err := dbx.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	if err := repomanager.NewPostgresRepositoryManager().RunMigrations(ctx, db); err != nil {
		logger.Error(ctx, "migrations failed", "error", err)
		_ = db.Close()
		os.Exit(1)
	}

	logger.Info(ctx, "migrations applied")
}

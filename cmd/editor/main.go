package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/tagme/internal/dbx"
	"github.com/dmitrijs2005/tagme/internal/editor"
	"github.com/dmitrijs2005/tagme/internal/editor/config"
	"github.com/dmitrijs2005/tagme/internal/logging"
	"github.com/dmitrijs2005/tagme/internal/objectstore"
	"github.com/dmitrijs2005/tagme/internal/repositories/repomanager"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(os.Stderr, logging.Options{Format: "text", Level: cfg.LogLevel, File: cfg.LogFile})

	db, err := dbx.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	store, err := objectstore.New(ctx, cfg.S3Options())
	if err != nil {
		log.Printf("%v", err)
		return
	}

	repo := repomanager.NewPostgresRepositoryManager().Cards(db)

	app := editor.NewApp(cfg, repo, store, logger)
	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}

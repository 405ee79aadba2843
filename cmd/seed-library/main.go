package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/stemsi/chemistry-web/internal/config"
	"github.com/stemsi/chemistry-web/internal/database"
	"github.com/stemsi/chemistry-web/internal/logger"
	"github.com/stemsi/chemistry-web/internal/repository"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	var path string
	var keep int
	flag.StringVar(&path, "file", cfg.LibraryPath, "Library JSON document to publish")
	flag.IntVar(&keep, "keep", 5, "Number of published versions to keep (0 keeps all)")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// Decode through the file source so a broken document never reaches
	// the table.
	doc, err := repository.NewFileLibraryRepository(path).Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to read library document")
	}

	fmt.Println("=== Publishing Library Catalog ===")
	for _, c := range doc.Categories {
		fmt.Printf("  %-20s %3d items\n", c.ID, len(c.Items))
	}

	libraryRepo := repository.NewPostgresLibraryRepository(pool)
	id, err := libraryRepo.Publish(ctx, doc, path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to publish library document")
	}
	fmt.Printf("\nPublished version %d with %d items.\n", id, repository.CountItems(doc))

	if keep > 0 {
		removed, err := libraryRepo.Prune(ctx, keep)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to prune old versions")
		}
		if removed > 0 {
			fmt.Printf("Pruned %d old versions.\n", removed)
		}
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samirrijal/waymark/internal/adapters/file"
	"github.com/samirrijal/waymark/internal/adapters/postgres"
	"github.com/samirrijal/waymark/internal/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: migrate <up|seed>")
	}

	cfg, err := config.Load("waymark-migrate")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "up":
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer pool.Close()
		runMigrations(ctx, pool)
	case "seed":
		seedFeatures(ctx, cfg)
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool) {
	files := []string{
		"migrations/001_features.sql",
	}

	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			log.Fatalf("read %s: %v", f, err)
		}

		_, err = pool.Exec(ctx, string(data))
		if err != nil {
			log.Fatalf("exec %s: %v", f, err)
		}

		fmt.Printf("OK  %s\n", f)
	}

	log.Println("all migrations applied")
}

// seedFeatures replaces the features table with the contents of the JSON
// dataset file, preserving file order so lookups resolve duplicates the
// same way under either source.
func seedFeatures(ctx context.Context, cfg *config.Config) {
	features, err := file.NewSource(cfg.Features.Path).LoadFeatures(ctx)
	if err != nil {
		log.Fatalf("load %s: %v", cfg.Features.Path, err)
	}

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	repo := postgres.NewFeatureRepo(db)
	if err := repo.Truncate(ctx); err != nil {
		log.Fatalf("truncate features: %v", err)
	}
	if err := repo.InsertBatch(ctx, features); err != nil {
		log.Fatalf("insert features: %v", err)
	}

	log.Printf("seeded %d features from %s", len(features), cfg.Features.Path)
}

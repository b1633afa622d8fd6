package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopairs/adapters/modelfile"
	"gopairs/adapters/postgres"
	"gopairs/domain/pairwise"
	"gopairs/domain/report"
	"gopairs/internal/migration"
	"gopairs/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// migrate applies the schema and, given a directory, backfills suite history
// from every model file found there.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate <database_url> [model_dir]")
	}

	databaseURL := os.Args[1]
	ctx := context.Background()

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Schema version %s applied", runner.Version())

	if len(os.Args) < 3 {
		return
	}

	files, err := findModelFiles(os.Args[2])
	if err != nil {
		log.Fatalf("Failed to find model files: %v", err)
	}
	log.Printf("Found %d model files to import", len(files))

	repo := postgres.NewSuiteRepository(db)
	imported := 0
	for _, file := range files {
		if err := importModel(ctx, repo, file); err != nil {
			log.Printf("Skipping %s: %v", file, err)
			continue
		}
		imported++
	}
	log.Printf("Imported %d/%d models", imported, len(files))
}

func importModel(ctx context.Context, repo ports.SuiteRepository, path string) error {
	m, err := modelfile.Load(ctx, path)
	if err != nil {
		return err
	}
	suite, err := pairwise.Generate(m)
	if err != nil {
		return err
	}

	stats := report.ComputeStatistics(m, suite, nil)
	rec := pairwise.NewRecord(m, suite, fmt.Sprint(stats.ExhaustiveCell()), stats.Reduction)
	if err := repo.Save(ctx, rec); err != nil {
		return err
	}
	log.Printf("Imported %s as suite %s (%d cases)", filepath.Base(path), rec.ID, rec.CaseCount())
	return nil
}

func findModelFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml", ".json", ".xlsx", ".csv":
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

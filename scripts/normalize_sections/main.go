package main

import (
	"fmt"
	"os"

	"github.com/bellari/internal/config"
	"github.com/bellari/internal/db"
	"github.com/bellari/internal/service"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}
	cfg := config.Load()

	if err := db.Init(db.Options{Driver: cfg.DBType, Path: cfg.DatabasePath, DSN: cfg.DatabaseURL}); err != nil {
		fmt.Fprintf(os.Stderr, "init db: %v\n", err)
		os.Exit(1)
	}

	results, err := service.NewSectionService(db.DB).NormalizeAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "normalize sections: %v\n", err)
		os.Exit(1)
	}

	changed := 0
	for _, result := range results {
		fmt.Printf("%-12s %3d sections, %3d renumbered\n", result.Slug, result.Total, result.Changed)
		changed += result.Changed
	}
	fmt.Printf("done: %d section(s) renumbered across %d page(s)\n", changed, len(results))
}

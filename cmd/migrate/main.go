package main

import (
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/kaloria/coach-hub/internal/config"
	"github.com/kaloria/coach-hub/internal/dbmigrate"
)

// Applies the schema and catalog-seed migrations in ./migrations.
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: go run ./cmd/migrate [up|down|status|version]")
	}

	command := os.Args[1]
	switch command {
	case "up", "down", "status", "version":
	default:
		log.Fatalf("unsupported command %q (allowed: up, down, status, version)", command)
	}

	cfg := config.Load()
	dbURL, source, warning, err := dbmigrate.SelectDatabaseURL(cfg, false)
	if err != nil {
		log.Fatal(err)
	}

	if warning != "" {
		log.Printf("WARN migrate: %s", warning)
	}
	log.Printf("migrate: command=%s using=%s", command, source)

	if err := dbmigrate.Run(command, dbURL, dbmigrate.DefaultMigrationsDir); err != nil {
		log.Fatal(err)
	}

	log.Printf("migrate: %s completed", command)
}

package main

import (
	"log"

	"github.com/joho/godotenv"

	"doseview/internal/config"
	"doseview/ui"
)

// The explorer binary serves the generic dataset explorer over generated
// sample data. The screening dashboard is the repository's root binary.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	explorer, err := ui.NewApp(ui.AppConfig{Seed: cfg.Data.SampleSeed})
	if err != nil {
		log.Fatalf("Failed to create explorer: %v", err)
	}
	if err := explorer.Start(cfg.Server.Port); err != nil {
		log.Fatalf("Explorer failed: %v", err)
	}
}

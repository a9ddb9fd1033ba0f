package main

import (
	"log"

	"github.com/joho/godotenv"

	"doseview/adapters/tabular"
	"doseview/app"
	"doseview/domain/table"
	"doseview/internal/config"
	"doseview/internal/sampledata"
	"doseview/ports"
	"doseview/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dataset, err := datasetSource(cfg).Load()
	if err != nil {
		log.Fatalf("Failed to load screening data: %v", err)
	}
	log.Printf("Loaded dataset %q: %d rows, %d columns",
		dataset.Name, dataset.Table.Len(), dataset.Table.Schema().Len())

	service := app.NewScreeningService(dataset)
	server, err := ui.NewServer(cfg, service)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	if err := server.Start(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// datasetSource picks the screening data source: the file named in the
// config, or generated sample data when no file is configured
func datasetSource(cfg *config.Config) ports.DatasetSource {
	if cfg.Data.DataFile != "" {
		return ports.DatasetSourceFunc(func() (*table.Dataset, error) {
			return tabular.LoadScreening(cfg.Data.DataFile)
		})
	}
	log.Println("DATA_FILE not set, generating sample screening data")
	return ports.DatasetSourceFunc(func() (*table.Dataset, error) {
		return sampledata.NewGenerator(cfg.Data.SampleSeed).Screening(), nil
	})
}

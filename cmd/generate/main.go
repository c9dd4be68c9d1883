package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/trade-journal/internal/journal"
	"github.com/rxtech-lab/trade-journal/internal/logger"
	"github.com/rxtech-lab/trade-journal/internal/store"
	"github.com/rxtech-lab/trade-journal/mocks"
	"gopkg.in/yaml.v2"
)

const (
	configSchemaName = "journal-config.json"
	filterSchemaName = "journal-filter.json"
	sampleConfigName = "journal-config.yaml"
	sampleTradesName = "sample-trades.csv"
	sampleTradeCount = 250
)

func writeFile(path string, content []byte) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
}

// writeSampleTrades stores generated trades in a scratch journal and exports
// them in the CSV layout the import command reads.
func writeSampleTrades(path string) error {
	ctx := context.Background()

	scratch, err := store.NewDuckDBStore("", logger.NewNopLogger())
	if err != nil {
		return err
	}
	defer scratch.Close()

	service := journal.NewService(scratch, logger.NewNopLogger(), journal.DefaultConfig())

	backtest, err := service.EnsureBacktest(ctx)
	if err != nil {
		return err
	}

	config := mocks.DefaultConfig()
	config.Count = sampleTradeCount

	for _, trade := range mocks.NewTradeGenerator(42).Generate(config) {
		if _, err := service.AddTrade(ctx, backtest.ID, trade); err != nil {
			return err
		}
	}

	return scratch.ExportTrades(ctx, backtest.ID, path, store.ExportFormatCSV)
}

func main() {
	config := journal.DefaultConfig()

	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		log.Fatalf("Failed to generate schema: %v", err)
	}

	filterSchemaJSON, err := journal.FilterStateSchemaJSON()
	if err != nil {
		log.Fatalf("Failed to generate filter schema: %v", err)
	}

	schemaPath := filepath.Join("./config", configSchemaName)
	writeFile(schemaPath, []byte(schemaJSON))
	writeFile(filepath.Join("./config", filterSchemaName), []byte(filterSchemaJSON))

	// the sample config is left alone once it exists
	sampleConfigPath := filepath.Join("./config", sampleConfigName)
	if _, err := os.Stat(sampleConfigPath); os.IsNotExist(err) {
		yamlBytes, err := yaml.Marshal(config)
		if err != nil {
			log.Fatalf("Failed to marshal sample config to yaml: %v", err)
		}

		yamlBytes = append([]byte("# yaml-language-server: $schema="+configSchemaName+"\n"), yamlBytes...)
		writeFile(sampleConfigPath, yamlBytes)
		log.Printf("Sample config successfully generated at %s", sampleConfigPath)
	}

	sampleTradesPath := filepath.Join("./data", sampleTradesName)
	if err := writeSampleTrades(sampleTradesPath); err != nil {
		log.Fatalf("Failed to write sample trades: %v", err)
	}

	log.Printf("Schema successfully generated at %s", schemaPath)
	log.Printf("Sample trades successfully generated at %s", sampleTradesPath)
}

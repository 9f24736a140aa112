package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"spotfinder/internal/config"
	"spotfinder/internal/importer"
	"spotfinder/internal/logging"
	"spotfinder/internal/repository"
)

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	if err := run(context.Background(), *file, "configs", os.Stdout); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// run imports the CSV at path into the store configured in configDir. The
// store is closed before run returns.
func run(ctx context.Context, path, configDir string, out io.Writer) error {
	fmt.Fprintf(out, "Starting import from file: %s\n", path)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening CSV: %w", err)
	}
	records, err := importer.ParseCSV(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("parsing CSV: %w", err)
	}

	fmt.Fprintf(out, "Parsed %d records\n", len(records))

	// Load config
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logging.Setup(cfg.LogLevel, true, os.Stderr)

	// Open store
	repo, err := repository.Open(ctx, repository.Options{Path: cfg.DBPath})
	if err != nil {
		return fmt.Errorf("opening location store: %w", err)
	}
	defer repo.Close()

	// Insert records
	res, err := importer.Import(ctx, repo, records)
	if err != nil {
		return fmt.Errorf("inserting records: %w", err)
	}

	// Verify data
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting records: %w", err)
	}

	for _, address := range res.Duplicates {
		fmt.Fprintf(out, "Skipped existing address: %s\n", address)
	}
	fmt.Fprintf(out, "Successfully imported %d records (%d skipped), store now holds %d locations\n",
		res.Inserted, len(res.Duplicates), count)
	return nil
}

// Package importer bulk-loads locations from CSV into the location store.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"spotfinder/internal/models"

	"github.com/rs/zerolog/log"
)

// Record is one parsed CSV row.
type Record struct {
	Address   string
	Latitude  float64
	Longitude float64
}

// Inserter is the part of the location store the importer needs.
type Inserter interface {
	Insert(ctx context.Context, address string, lat, lng float64) (bool, error)
}

// Result summarizes an import run.
type Result struct {
	Inserted   int
	Duplicates []string
}

// ParseCSV reads address,latitude,longitude rows. The first row is a header
// and is skipped.
func ParseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.TrimLeadingSpace = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("importer: file is empty")
		}
		return nil, fmt.Errorf("importer: failed to read header: %w", err)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("importer: failed to read record: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if len(row) < 3 {
			return nil, fmt.Errorf("importer: line %d: expected 3 columns, got %d", line, len(row))
		}

		address := strings.TrimSpace(row[0])
		if address == "" {
			return nil, fmt.Errorf("importer: line %d: empty address", line)
		}

		lat, err := models.ParseCoordinate(row[1])
		if err != nil {
			return nil, fmt.Errorf("importer: line %d: invalid latitude: %s", line, row[1])
		}

		lng, err := models.ParseCoordinate(row[2])
		if err != nil {
			return nil, fmt.Errorf("importer: line %d: invalid longitude: %s", line, row[2])
		}

		records = append(records, Record{Address: address, Latitude: lat, Longitude: lng})
	}

	return records, nil
}

// Import inserts every record. Duplicate addresses are reported, not fatal;
// a storage failure stops the run.
func Import(ctx context.Context, store Inserter, records []Record) (Result, error) {
	var res Result
	for _, rec := range records {
		inserted, err := store.Insert(ctx, rec.Address, rec.Latitude, rec.Longitude)
		if err != nil {
			return res, fmt.Errorf("importer: failed to insert %q: %w", rec.Address, err)
		}
		if !inserted {
			log.Debug().Str("address", rec.Address).Msg("skipping existing address")
			res.Duplicates = append(res.Duplicates, rec.Address)
			continue
		}
		res.Inserted++
	}
	return res, nil
}

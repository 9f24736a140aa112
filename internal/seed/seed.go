// Package seed holds the static location dataset loaded into a store when it
// is created for the first time.
package seed

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed gta.yaml
var defaultAsset []byte

// Entry is one named point of a dataset.
type Entry struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"lat"`
	Longitude float64 `yaml:"lng"`
}

// Dataset is a versioned list of seed entries.
type Dataset struct {
	Version   int     `yaml:"version"`
	Locations []Entry `yaml:"locations"`
}

// Default parses and validates the embedded Greater Toronto Area dataset.
func Default() (*Dataset, error) {
	return Parse(defaultAsset)
}

// Parse decodes a YAML dataset and validates it.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("seed: failed to decode dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate rejects empty datasets, blank names and names that collide once
// trimmed and lowercased.
func (d *Dataset) Validate() error {
	if len(d.Locations) == 0 {
		return fmt.Errorf("seed: dataset has no locations")
	}

	seen := make(map[string]int, len(d.Locations))
	for i, e := range d.Locations {
		key := strings.ToLower(strings.TrimSpace(e.Name))
		if key == "" {
			return fmt.Errorf("seed: entry %d has an empty name", i)
		}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("seed: entry %d duplicates entry %d (%q)", i, prev, key)
		}
		seen[key] = i
	}
	return nil
}

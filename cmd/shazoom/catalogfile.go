package main

import (
	"encoding/json"
	"fmt"
	"os"

	"shazoom/catalog"
	"shazoom/config"
	"shazoom/index"
)

// catalogFile is the on-disk shape ingestCmd writes and queryCmd reads:
// the config the index was built under (queries are fingerprinted with
// this stored config, so they use the same knobs as the catalog), the
// song roster, and the index itself.
type catalogFile struct {
	Config config.Config `json:"config"`
	Songs  []catalog.Song `json:"songs"`
	Index  index.Index    `json:"index"`
}

func saveCatalogFile(path string, cf catalogFile) error {
	data, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return fmt.Errorf("shazoom: encoding catalog file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("shazoom: writing catalog file %q: %w", path, err)
	}
	return nil
}

func loadCatalogFile(path string) (catalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalogFile{}, fmt.Errorf("shazoom: reading catalog file %q: %w", path, err)
	}
	var cf catalogFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return catalogFile{}, fmt.Errorf("shazoom: decoding catalog file %q: %w", path, err)
	}
	return cf, nil
}

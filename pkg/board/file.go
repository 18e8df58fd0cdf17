package board

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a board document (a serialized snapshot) from a JSON file.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading board file: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("parsing board file %s: %w", path, err)
	}
	return s, nil
}

// Save writes a board document to a JSON file.
func Save(path string, s Snapshot) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding board: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing board file: %w", err)
	}
	return nil
}

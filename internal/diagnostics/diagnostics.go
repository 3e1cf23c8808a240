// Package diagnostics persists the missing-asset list collected during a run.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cfmigrate/internal/formatter"
	"cfmigrate/internal/models"
	"cfmigrate/pkg/stamp"
)

// reportHeader names the report columns.
var reportHeader = []string{"Article", "Source", "Path"}

// WriteJSON writes entries as an indented JSON array, replacing any existing file.
// No entries produce "[]".
func WriteJSON(path string, entries []models.MissingAssetEntry) error {
	if entries == nil {
		entries = []models.MissingAssetEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal missing assets: %w", err)
	}

	return writeFile(path, append(data, '\n'))
}

// LoadJSON reads a file written by WriteJSON.
func LoadJSON(path string) ([]models.MissingAssetEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var entries []models.MissingAssetEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return entries, nil
}

// Report renders entries as an aligned markdown table with a count line.
func Report(entries []models.MissingAssetEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Article, e.Src, e.Path})
	}

	return fmt.Sprintf("# Missing assets\n\n%d unresolved image references.\n\n%s", len(entries), formatter.Table(reportHeader, rows))
}

// WriteReport writes the markdown report for entries, stamped with the run id.
func WriteReport(path, runID string, entries []models.MissingAssetEntry) error {
	return writeFile(path, []byte(stamp.Sign(Report(entries), runID, len(entries), time.Now())))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // reports are meant to be shared
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

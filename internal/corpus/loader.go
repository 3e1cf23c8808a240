// Package corpus loads scraped article records from local files or remote URLs.
package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"cfmigrate/internal/config"
	"cfmigrate/internal/errs"
	"cfmigrate/internal/logger"
	"cfmigrate/internal/models"
)

// Loader reads corpus sources.
type Loader struct {
	fetcher *Fetcher
	logger  *logger.Logger
}

// NewLoader creates a loader fetching remote sources with fetcher.
func NewLoader(fetcher *Fetcher, log *logger.Logger) *Loader {
	if fetcher == nil {
		fetcher = NewFetcher()
	}

	return &Loader{fetcher: fetcher, logger: log}
}

// LoadSources reads every enabled source of cfg in order and concatenates their records.
// Any source failure aborts the load.
func (l *Loader) LoadSources(ctx context.Context, cfg *config.Config) ([]models.ArticleRecord, error) {
	var records []models.ArticleRecord

	sources := cfg.GetEnabledSources()
	for i := range sources {
		src := &sources[i]

		loaded, err := l.LoadSource(ctx, src)
		if err != nil {
			return nil, err
		}

		if l.logger != nil {
			l.logger.Info(fmt.Sprintf("Loaded %d records from %s (%s)", len(loaded), src.Name, src.GetSource()))
		}

		records = append(records, loaded...)
	}

	return records, nil
}

// LoadSource reads one source, preferring its local file.
func (l *Loader) LoadSource(ctx context.Context, src *config.SourceConfig) ([]models.ArticleRecord, error) {
	if src.IsLocalFile() {
		return LoadFile(src.File)
	}

	data, err := l.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return nil, errs.Corpus(err, fmt.Sprintf("fetch corpus %s", src.URL))
	}

	records, err := Decode(data)
	if err != nil {
		return nil, errs.Corpus(err, fmt.Sprintf("decode corpus %s", src.URL))
	}

	return records, nil
}

// LoadFile reads a corpus JSON file.
func LoadFile(path string) ([]models.ArticleRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Corpus(err, fmt.Sprintf("read corpus %s", path))
	}

	records, err := Decode(data)
	if err != nil {
		return nil, errs.Corpus(err, fmt.Sprintf("decode corpus %s", path))
	}

	return records, nil
}

// Decode parses a JSON array of {url, content} records.
// Records with missing fields are kept; the validator skips them later.
func Decode(data []byte) ([]models.ArticleRecord, error) {
	var records []models.ArticleRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse corpus JSON: %w", err)
	}

	return records, nil
}

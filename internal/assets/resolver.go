package assets

import (
	"sync"

	"cfmigrate/internal/models"
)

// Collector accumulates missing-asset entries for a whole run.
type Collector struct {
	entries []models.MissingAssetEntry
	mu      sync.Mutex
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records one missing asset.
func (c *Collector) Add(entry models.MissingAssetEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, entry)
}

// Entries returns a copy of the recorded entries in insertion order.
func (c *Collector) Entries() []models.MissingAssetEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.MissingAssetEntry, len(c.entries))
	copy(out, c.entries)

	return out
}

// Len returns the number of recorded entries.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Resolver rewrites image sources through the rename table.
type Resolver struct {
	table     *Table
	collector *Collector
}

// NewResolver creates a resolver. A nil table resolves nothing.
func NewResolver(table *Table, collector *Collector) *Resolver {
	if collector == nil {
		collector = NewCollector()
	}

	return &Resolver{table: table, collector: collector}
}

// Resolve extracts the first image of text and maps its source.
// On a miss the source is kept and an entry with the given structural path and
// article slug is recorded. Text without images yields the empty sentinel.
func (r *Resolver) Resolve(text, path, article string) models.ImageReference {
	ref, ok := ExtractImage(text)
	if !ok || ref.Src == "" {
		return models.ImageReference{}
	}

	if mapped, found := r.table.Lookup(ref.Src); found {
		ref.Src = mapped

		return ref
	}

	r.collector.Add(models.MissingAssetEntry{
		Src:     ref.Src,
		Path:    path,
		Article: article,
	})

	return ref
}

// Collector returns the collector receiving missing entries.
func (r *Resolver) Collector() *Collector {
	return r.collector
}

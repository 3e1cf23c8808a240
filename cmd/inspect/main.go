// Package main provides the inspect command-line tool: it transforms a corpus
// without submitting anything and writes the structured results as JSON.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"cfmigrate/internal/assets"
	"cfmigrate/internal/config"
	"cfmigrate/internal/corpus"
	"cfmigrate/internal/errs"
	"cfmigrate/internal/formatter"
	"cfmigrate/internal/models"
	"cfmigrate/internal/normalizer"
)

// errNoRecords is reported when a url filter matches nothing.
var errNoRecords = errors.New("no records matched")

// inspection is the JSON document written by the tool.
type inspection struct {
	Articles []*models.Article          `json:"articles,omitempty"`
	Stories  []*models.Story            `json:"stories,omitempty"`
	Skipped  []string                   `json:"skipped"`
	Failed   map[string]string          `json:"failed"`
	Missing  []models.MissingAssetEntry `json:"missingAssets"`
}

func main() {
	inputPath := flag.String("input", "", "Path to corpus JSON file")
	outputPath := flag.String("output", "", "Path to output JSON file (default: stdout)")
	kind := flag.String("kind", config.KindBlog, "Content flow: blog or story")
	url := flag.String("url", "", "Only inspect the record with this url")
	assetsPath := flag.String("assets", "", "Asset rename table (.xlsx or .csv)")
	sheet := flag.String("sheet", "", "Spreadsheet sheet name")
	damRoot := flag.String("dam-root", "/content/dam", "Asset root prefixed to section paths")
	sanitize := flag.Bool("sanitize", true, "Sanitize rendered HTML")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Usage: inspect -input <corpus.json> [-kind blog|story] [-output <out.json>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	records, err := corpus.LoadFile(*inputPath)
	if err != nil {
		log.Fatalf("Error loading corpus: %v\n", err)
	}

	records = filterByURL(records, *url)
	if len(records) == 0 && *url != "" {
		log.Fatalf("%v: %s\n", errNoRecords, *url)
	}

	fmt.Fprintf(os.Stderr, "📂 Inspecting %d records from %s\n", len(records), *inputPath)

	table, err := assets.LoadTable(*assetsPath, *sheet)
	if err != nil {
		log.Fatalf("Error loading asset table: %v\n", err)
	}

	collector := assets.NewCollector()
	transformer := normalizer.NewTransformer(
		assets.NewResolver(table, collector),
		formatter.NewRenderer(formatter.WithSanitizer(*sanitize)),
		*damRoot,
	)

	out := inspect(normalizer.NewProcessor(transformer), records, *kind == config.KindStory)
	out.Missing = collector.Entries()

	fmt.Fprintf(os.Stderr, "📊 %d articles, %d stories, %d skipped, %d failed, %d missing assets\n",
		len(out.Articles), len(out.Stories), len(out.Skipped), len(out.Failed), len(out.Missing))

	jsonData, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling JSON: %v\n", err)
	}

	if *outputPath == "" {
		fmt.Println(string(jsonData))

		return
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(*outputPath), 0o755); mkdirErr != nil {
		log.Fatalf("Error creating directory: %v\n", mkdirErr)
	}

	if err := os.WriteFile(*outputPath, jsonData, 0o644); err != nil { //nolint:gosec // inspection output is shared
		log.Fatalf("Error writing file: %v\n", err)
	}

	fmt.Fprintf(os.Stderr, "✅ Saved to: %s\n", *outputPath)
}

func inspect(processor *normalizer.Processor, records []models.ArticleRecord, story bool) *inspection {
	out := &inspection{
		Skipped: []string{},
		Failed:  map[string]string{},
	}

	for i := range records {
		record := &records[i]

		var err error
		if story {
			var s *models.Story
			if s, err = processor.ProcessStory(record); err == nil {
				out.Stories = append(out.Stories, s)
			}
		} else {
			var a *models.Article
			if a, err = processor.ProcessBlog(record); err == nil {
				out.Articles = append(out.Articles, a)
			}
		}

		switch {
		case err == nil:
		case errs.IsSkippable(err):
			out.Skipped = append(out.Skipped, record.URL)
		default:
			out.Failed[record.URL] = err.Error()
		}
	}

	return out
}

func filterByURL(records []models.ArticleRecord, url string) []models.ArticleRecord {
	if url == "" {
		return records
	}

	var matched []models.ArticleRecord

	for _, r := range records {
		if r.URL == url {
			matched = append(matched, r)
		}
	}

	return matched
}

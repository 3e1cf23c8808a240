package migrator_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"cfmigrate/internal/assets"
	"cfmigrate/internal/corpus"
	"cfmigrate/internal/diagnostics"
	"cfmigrate/internal/formatter"
	"cfmigrate/internal/logger"
	"cfmigrate/internal/migrator"
	"cfmigrate/internal/normalizer"
	"cfmigrate/internal/payload"
)

const flowArticle = `**Title Tag:** Careers for women | Example
**Meta Description:** Where to start.
**Page Title:** Careers For Women

**Date:** January 15, 2024
**Read Time:** 4

**Article Content:**

## Getting started
Start here.
![hero](/old/hero.jpg "Hero")

## Next steps
Keep going.
![chart](/old/chart.png "Chart")

**Search Tags:** careers, women&#039;s day
`

// repository records the requests the fake author instance receives.
type repository struct {
	mu      sync.Mutex
	targets []string
	updates map[string]map[string][]string
}

func (r *repository) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.targets = append(r.targets, req.URL.Path)

	if strings.HasSuffix(req.URL.Path, ".cfm.content.json") {
		r.updates[req.URL.Path] = req.MultipartForm.Value
	}

	w.WriteHeader(http.StatusOK)
}

func writeAssetTable(t *testing.T, path string) {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetRow("Sheet1", "A1", &[]any{"/old/hero.jpg", "/content/dam/site/images/hero.jpg"}); err != nil {
		t.Fatal(err)
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

func TestMigrationFlow(t *testing.T) {
	dir := t.TempDir()

	repo := &repository{updates: map[string]map[string][]string{}}
	server := httptest.NewServer(repo)
	defer server.Close()

	corpusPath := filepath.Join(dir, "blogData.json")
	data, _ := json.Marshal([]map[string]string{
		{"url": "https://www.example.com/en/blog/careers-for-women", "content": flowArticle},
		{"url": "https://www.example.com/en/blog/empty"},
	})

	if err := os.WriteFile(corpusPath, data, 0o600); err != nil {
		t.Fatal(err)
	}

	tablePath := filepath.Join(dir, "assetAssociation.xlsx")
	writeAssetTable(t, tablePath)

	// 1. Ingestion
	records, err := corpus.LoadFile(corpusPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	table, err := assets.LoadTable(tablePath, "")
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}

	// 2. Wiring
	log := logger.NewLoggerWithOptions(logger.Options{Writer: io.Discard})
	collector := assets.NewCollector()
	transformer := normalizer.NewTransformer(assets.NewResolver(table, collector), formatter.NewRenderer(formatter.WithSanitizer(true)), "/content/dam/site")

	sink := payload.NewFragmentSink(
		payload.NewHTTPClient("login-token=x", "csrf", 5*time.Second, log),
		payload.NewPacer(0, 0, 0),
		payload.Endpoints{
			AuthorBase: server.URL + "/api/assets/site/",
			CommandURL: server.URL + "/createfragment",
			DamRoot:    "/content/dam/site",
			ModelRoot:  "/conf/site/models",
		},
		log,
	)

	runner := migrator.NewRunner(normalizer.NewProcessor(transformer), sink, collector, migrator.Options{
		Kind:      migrator.KindBlog,
		Banner:    payload.Banner{ID: "139450823", Alt: "Success Stories", Type: "jpg"},
		URLPrefix: "https://www.example.com/en/blog",
	}, log)

	// 3. Run
	result := runner.Run(context.Background(), records)

	if result.Processed != 1 || result.Skipped != 1 || result.Submitted != 3 || len(result.Failures) != 0 {
		t.Fatalf("result = %+v", result)
	}

	// article: create + folder + update; each section: create + update
	if len(repo.targets) != 7 {
		t.Errorf("repository received %d requests, want 7: %v", len(repo.targets), repo.targets)
	}

	article := repo.updates["/api/assets/site/article-blogs/blogs/careers-for-women.cfm.content.json"]
	if article == nil {
		t.Fatalf("article update missing, got %v", repo.targets)
	}

	if got := article["publishDate"]; len(got) != 1 || got[0] != "2024-01-15" {
		t.Errorf("publishDate = %v", got)
	}

	if got := article["searchtags"]; len(got) != 2 || got[1] != "women's day" {
		t.Errorf("searchtags = %v", got)
	}

	if got := article["blogsection"]; len(got) != 2 || !strings.HasSuffix(got[1], "/careers-for-women-section2") {
		t.Errorf("blogsection = %v", got)
	}

	section1 := repo.updates["/api/assets/site/article-blogs/blog-sections/careers-for-women/careers-for-women-section1.cfm.content.json"]
	if got := section1["assetid"]; len(got) != 1 || got[0] != "/content/dam/site/images/hero.jpg" {
		t.Errorf("section1 assetid = %v", got)
	}

	if got := section1["titletype"]; len(got) != 1 || got[0] != "h2" {
		t.Errorf("section1 titletype = %v", got)
	}

	// 4. Diagnostics
	if len(result.Missing) != 1 || result.Missing[0].Src != "/old/chart.png" {
		t.Fatalf("missing = %+v", result.Missing)
	}

	missingPath := filepath.Join(dir, "out", "missingAssets.json")
	if err := diagnostics.WriteJSON(missingPath, result.Missing); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	loaded, err := diagnostics.LoadJSON(missingPath)
	if err != nil || len(loaded) != 1 || loaded[0].Article != "careers-for-women" {
		t.Errorf("LoadJSON() = %+v, %v", loaded, err)
	}
}

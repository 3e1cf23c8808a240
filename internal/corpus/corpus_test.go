package corpus

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"cfmigrate/internal/config"
	"cfmigrate/internal/errs"
	"cfmigrate/internal/logger"
)

const corpusJSON = `[
  {"url": "https://example.com/blog/one", "content": "**Page Title:** One\n\n"},
  {"url": "https://example.com/blog/two"}
]`

func testPolicy() *config.RetryPolicy {
	return &config.RetryPolicy{
		MaxAttempts:       3,
		InitialDelayMs:    1,
		MaxDelayMs:        5,
		BackoffMultiplier: 2.0,
		TimeoutSec:        5,
	}
}

func TestDecode(t *testing.T) {
	records, err := Decode([]byte(corpusJSON))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if records[1].URL != "https://example.com/blog/two" || records[1].Content != "" {
		t.Errorf("record[1] = %+v", records[1])
	}

	if _, err := Decode([]byte(`{"url": "x"}`)); err == nil {
		t.Error("expected error for non-array JSON")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	if err := os.WriteFile(path, []byte(corpusJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	records, err := LoadFile(path)
	if err != nil || len(records) != 2 {
		t.Fatalf("LoadFile() = %d records, %v", len(records), err)
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errs.IsCorpus(err) {
		t.Errorf("missing file error = %v, want corpus error", err)
	}
}

func TestFetcher_RetriesTemporaryStatus(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		_, _ = w.Write([]byte(corpusJSON))
	}))
	defer server.Close()

	body, err := NewFetcherWithConfig(testPolicy()).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if calls.Load() != 3 || len(body) != len(corpusJSON) {
		t.Errorf("calls = %d, body = %d bytes", calls.Load(), len(body))
	}
}

func TestFetcher_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewFetcherWithConfig(testPolicy()).Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrUnexpectedStatusCode) {
		t.Fatalf("Fetch() error = %v, want ErrUnexpectedStatusCode", err)
	}

	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestFetcher_GivesUp(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	if _, err := NewFetcherWithConfig(testPolicy()).Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error after exhausting attempts")
	}

	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestLoader_LoadSources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"url": "https://example.com/blog/remote", "content": "x"}]`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "corpus.json")
	if err := os.WriteFile(path, []byte(corpusJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer

	cfg := &config.Config{}
	cfg.Migrator.Sources = []config.SourceConfig{
		{Name: "local", File: path, Enabled: true},
		{Name: "disabled", File: "/does/not/exist.json"},
		{Name: "remote", URL: server.URL, Enabled: true},
	}

	loader := NewLoader(NewFetcherWithConfig(testPolicy()), logger.NewLoggerWithOptions(logger.Options{Writer: &buf}))

	records, err := loader.LoadSources(context.Background(), cfg)
	if err != nil {
		t.Fatalf("LoadSources() error = %v", err)
	}

	if len(records) != 3 || records[2].URL != "https://example.com/blog/remote" {
		t.Errorf("records = %+v", records)
	}

	out := buf.String()
	if !strings.Contains(out, path) || !strings.Contains(out, server.URL) {
		t.Errorf("load log should name each source location: %q", out)
	}

	if strings.Contains(out, "disabled") {
		t.Errorf("disabled source was loaded: %q", out)
	}
}

func TestLoader_RemoteFailureIsCorpusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	loader := NewLoader(NewFetcherWithConfig(testPolicy()), nil)
	_, err := loader.LoadSource(context.Background(), &config.SourceConfig{URL: server.URL, Enabled: true})

	if !errs.IsCorpus(err) || !errors.Is(err, ErrUnexpectedStatusCode) {
		t.Errorf("LoadSource() error = %v", err)
	}
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"cfmigrate/internal/diagnostics"
	"cfmigrate/internal/models"
)

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.md")

	entries := []models.MissingAssetEntry{{Src: "/a.jpg", Path: "/p", Article: "post"}}
	if err := diagnostics.WriteReport(path, "run-1", entries); err != nil {
		t.Fatal(err)
	}

	if code := verify(path); code != 0 {
		t.Errorf("verify(stamped) = %d, want 0", code)
	}

	plain := filepath.Join(dir, "plain.md")
	if err := os.WriteFile(plain, []byte(diagnostics.Report(entries)), 0o600); err != nil {
		t.Fatal(err)
	}

	if code := verify(plain); code != 1 {
		t.Errorf("verify(unstamped) = %d, want 1", code)
	}

	if code := verify(filepath.Join(dir, "missing.md")); code != 1 {
		t.Errorf("verify(missing) = %d, want 1", code)
	}
}

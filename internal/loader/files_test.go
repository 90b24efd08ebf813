package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/simfra/lingod/internal/model"
)

func writeSnapshot(t *testing.T, dir, locale, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, locale+".json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFilesLoad(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "en", `{
    "nav.home": "Home",
    "nav.about": "About",
    "welcome": "Welcome"
}`)

	f := NewFiles(dir)

	got, err := f.Load(context.Background(), "en", "nav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got["home"] != "Home" || got["about"] != "About" {
		t.Fatalf("got %v", got)
	}

	other, err := f.Load(context.Background(), "en", model.GroupOther)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(other) != 1 || other["welcome"] != "Welcome" {
		t.Fatalf("got %v", other)
	}
}

func TestFilesLoadMissingLocale(t *testing.T) {
	f := NewFiles(t.TempDir())

	got, err := f.Load(context.Background(), "de", "nav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

func TestFilesLoadMalformedSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "en", `["not", "an", "object"]`)

	if _, err := NewFiles(dir).Load(context.Background(), "en", "nav"); err == nil {
		t.Fatal("expected error for malformed snapshot file")
	}
}

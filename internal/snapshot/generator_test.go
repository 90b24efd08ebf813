package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/simfra/lingod/internal/model"
)

// fakeStore serves canned translations and languages.
type fakeStore struct {
	rows  []*model.Translation
	langs []*model.Language
}

func (f *fakeStore) UpsertTranslation(_ context.Context, _ *model.Translation) error { return nil }

func (f *fakeStore) GetTranslation(_ context.Context, _ int64) (*model.Translation, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeStore) ListTranslations(_ context.Context, filter model.TranslationFilter) ([]*model.Translation, error) {
	var out []*model.Translation
	for _, t := range f.rows {
		if filter.Lang == "" || t.Lang == filter.Lang {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteTranslation(_ context.Context, _ int64) error { return sql.ErrNoRows }

func (f *fakeStore) DistinctKeys(_ context.Context, _ model.KeyFilter) ([]string, error) {
	return nil, nil
}

func (f *fakeStore) DistinctGroups(_ context.Context) ([]string, error) { return nil, nil }

func (f *fakeStore) ListLanguages(_ context.Context, activeOnly bool) ([]*model.Language, error) {
	var out []*model.Language
	for _, l := range f.langs {
		if !activeOnly || l.Active {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) UpsertLanguage(_ context.Context, _ *model.Language) error { return nil }

func (f *fakeStore) Close() error { return nil }

func readSnapshot(t *testing.T, dir, locale string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, locale+".json"))
	if err != nil {
		t.Fatalf("read snapshot %s: %v", locale, err)
	}
	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("decode snapshot %s: %v", locale, err)
	}
	return flat
}

func TestRegenerateWritesActiveLocales(t *testing.T) {
	dir := t.TempDir()
	fs := &fakeStore{
		rows: []*model.Translation{
			{Lang: "en", Key: "nav.home", Value: "Home"},
			{Lang: "en", Key: "welcome"},
			{Lang: "pl", Key: "nav.home", Value: "Start"},
		},
		langs: []*model.Language{
			{Code: "en", Name: "English", Active: true},
			{Code: "pl", Name: "Polski", Active: true},
			{Code: "de", Name: "Deutsch", Active: false},
		},
	}
	g := New(fs, dir, true, slog.Default())

	if err := g.Regenerate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	en := readSnapshot(t, dir, "en")
	if en["nav.home"] != "Home" {
		t.Fatalf("got en=%v", en)
	}
	// Untranslated keys appear with an empty string, not missing.
	if v, ok := en["welcome"]; !ok || v != "" {
		t.Fatalf("expected empty placeholder for untranslated key, got %v", en)
	}

	pl := readSnapshot(t, dir, "pl")
	if pl["nav.home"] != "Start" {
		t.Fatalf("got pl=%v", pl)
	}

	// Inactive locales get no file.
	if _, err := os.Stat(filepath.Join(dir, "de.json")); !os.IsNotExist(err) {
		t.Fatal("expected no snapshot for inactive locale")
	}
}

func TestRegeneratePrunesInactiveLocales(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "de.json")
	if err := os.WriteFile(stale, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := &fakeStore{
		langs: []*model.Language{{Code: "en", Name: "English", Active: true}},
	}
	g := New(fs, dir, true, slog.Default())

	if err := g.Regenerate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatal("expected stale snapshot to be deleted")
	}
	if _, err := os.Stat(filepath.Join(dir, "en.json")); err != nil {
		t.Fatalf("expected en snapshot: %v", err)
	}
}

func TestRegenerateDisabledIsNoop(t *testing.T) {
	dir := t.TempDir()
	fs := &fakeStore{
		langs: []*model.Language{{Code: "en", Name: "English", Active: true}},
	}
	g := New(fs, dir, false, slog.Default())

	if err := g.Regenerate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files, got %d", len(entries))
	}
}

// memDest records mirror calls.
type memDest struct {
	writes  map[string][]byte
	removes []string
}

func (d *memDest) Write(_ context.Context, name string, data []byte) error {
	if d.writes == nil {
		d.writes = make(map[string][]byte)
	}
	d.writes[name] = append([]byte(nil), data...)
	return nil
}

func (d *memDest) Remove(_ context.Context, name string) error {
	d.removes = append(d.removes, name)
	return nil
}

func TestRegenerateMirrorsToDestinations(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "de.json")
	if err := os.WriteFile(stale, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := &fakeStore{
		rows:  []*model.Translation{{Lang: "en", Key: "nav.home", Value: "Home"}},
		langs: []*model.Language{{Code: "en", Name: "English", Active: true}},
	}
	g := New(fs, dir, true, slog.Default())
	dest := &memDest{}
	g.AddDestination(dest)

	if err := g.Regenerate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := dest.writes["en.json"]; !ok {
		t.Fatalf("expected mirror write for en.json, got %v", dest.writes)
	}
	if len(dest.removes) != 1 || dest.removes[0] != "de.json" {
		t.Fatalf("expected mirror prune of de.json, got %v", dest.removes)
	}
}

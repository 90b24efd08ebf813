package loader

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/simfra/lingod/internal/cache"
	"github.com/simfra/lingod/internal/model"
)

// fakeStore serves canned translations and counts list calls.
type fakeStore struct {
	rows      []*model.Translation
	listCalls int
}

func (f *fakeStore) UpsertTranslation(_ context.Context, t *model.Translation) error { return nil }

func (f *fakeStore) GetTranslation(_ context.Context, id int64) (*model.Translation, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeStore) ListTranslations(_ context.Context, filter model.TranslationFilter) ([]*model.Translation, error) {
	f.listCalls++
	var out []*model.Translation
	for _, t := range f.rows {
		if filter.Lang == "" || t.Lang == filter.Lang {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteTranslation(_ context.Context, id int64) error { return sql.ErrNoRows }

func (f *fakeStore) DistinctKeys(_ context.Context, _ model.KeyFilter) ([]string, error) {
	return nil, nil
}

func (f *fakeStore) DistinctGroups(_ context.Context) ([]string, error) { return nil, nil }

func (f *fakeStore) ListLanguages(_ context.Context, _ bool) ([]*model.Language, error) {
	return nil, nil
}

func (f *fakeStore) UpsertLanguage(_ context.Context, _ *model.Language) error { return nil }

func (f *fakeStore) Close() error { return nil }

func newTestLoader(rows ...*model.Translation) (*Loader, *fakeStore, cache.Cache) {
	fs := &fakeStore{rows: rows}
	c := cache.NewMemory(time.Hour)
	return New(fs, c), fs, c
}

func TestLoadGroupsByNamespace(t *testing.T) {
	l, _, _ := newTestLoader(
		&model.Translation{Lang: "en", Key: "nav.home", Value: "Home"},
		&model.Translation{Lang: "en", Key: "nav.about", Value: "About"},
		&model.Translation{Lang: "en", Key: "welcome", Value: "Welcome"},
	)

	got, err := l.Load(context.Background(), "en", "nav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got["home"] != "Home" || got["about"] != "About" {
		t.Fatalf("got %v", got)
	}

	// Bare keys land in the sentinel group.
	other, err := l.Load(context.Background(), "en", model.GroupOther)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(other) != 1 || other["welcome"] != "Welcome" {
		t.Fatalf("got %v", other)
	}
}

func TestLoadUnknownGroupIsEmpty(t *testing.T) {
	l, _, _ := newTestLoader(
		&model.Translation{Lang: "en", Key: "nav.home", Value: "Home"},
	)

	got, err := l.Load(context.Background(), "en", "does.not.exist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

func TestLoadEmptyLocale(t *testing.T) {
	l, _, _ := newTestLoader()

	got, err := l.Load(context.Background(), "de", "nav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

func TestLoadUsesCacheUntilInvalidated(t *testing.T) {
	l, fs, c := newTestLoader(
		&model.Translation{Lang: "en", Key: "nav.home", Value: "Home"},
	)

	for i := 0; i < 3; i++ {
		if _, err := l.Load(context.Background(), "en", "nav"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if fs.listCalls != 1 {
		t.Fatalf("expected 1 store read, got %d", fs.listCalls)
	}

	// After a write the value changes and the cache is invalidated; the next
	// load must see the fresh value, never the stale entry.
	fs.rows[0].Value = "Dashboard"
	c.Invalidate("en")

	got, err := l.Load(context.Background(), "en", "nav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["home"] != "Dashboard" {
		t.Fatalf("expected fresh value after invalidation, got %q", got["home"])
	}
	if fs.listCalls != 2 {
		t.Fatalf("expected 2 store reads, got %d", fs.listCalls)
	}
}

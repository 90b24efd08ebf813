package seed

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/simfra/lingod/internal/model"
)

type fakeStore struct {
	nextID int64
	rows   map[string]*model.Translation // keyed by lang\x00key
	langs  map[string]*model.Language
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows:  make(map[string]*model.Translation),
		langs: make(map[string]*model.Language),
	}
}

func (f *fakeStore) UpsertTranslation(_ context.Context, t *model.Translation) error {
	k := t.Lang + "\x00" + t.Key
	if existing, ok := f.rows[k]; ok {
		existing.Value = t.Value
		*t = *existing
		return nil
	}
	f.nextID++
	t.ID = f.nextID
	cp := *t
	f.rows[k] = &cp
	return nil
}

func (f *fakeStore) GetTranslation(_ context.Context, _ int64) (*model.Translation, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeStore) ListTranslations(_ context.Context, filter model.TranslationFilter) ([]*model.Translation, error) {
	var out []*model.Translation
	for _, t := range f.rows {
		if filter.Lang == "" || t.Lang == filter.Lang {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteTranslation(_ context.Context, _ int64) error { return sql.ErrNoRows }

func (f *fakeStore) DistinctKeys(_ context.Context, _ model.KeyFilter) ([]string, error) {
	return nil, nil
}

func (f *fakeStore) DistinctGroups(_ context.Context) ([]string, error) { return nil, nil }

func (f *fakeStore) ListLanguages(_ context.Context, _ bool) ([]*model.Language, error) {
	var out []*model.Language
	for _, l := range f.langs {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeStore) UpsertLanguage(_ context.Context, l *model.Language) error {
	cp := *l
	f.langs[l.Code] = &cp
	return nil
}

func (f *fakeStore) Close() error { return nil }

func TestApply(t *testing.T) {
	fs := newFakeStore()
	if err := Apply(context.Background(), fs, slog.Default()); err != nil {
		t.Fatalf("apply: %v", err)
	}

	for _, code := range []string{"en", "pl"} {
		lang, ok := fs.langs[code]
		if !ok || !lang.Active {
			t.Fatalf("expected active language %s, got %+v", code, lang)
		}
	}

	en, ok := fs.rows["en\x00validation.required"]
	if !ok {
		t.Fatal("expected seeded key validation.required for en")
	}
	if !en.Readonly {
		t.Fatal("seeded records must be readonly")
	}
	if _, ok := fs.rows["pl\x00auth.failed"]; !ok {
		t.Fatal("expected seeded key auth.failed for pl")
	}
}

func TestApplyPreservesEdits(t *testing.T) {
	fs := newFakeStore()
	edited := &model.Translation{Lang: "en", Key: "auth.failed", Value: "Custom message"}
	if err := fs.UpsertTranslation(context.Background(), edited); err != nil {
		t.Fatal(err)
	}

	if err := Apply(context.Background(), fs, slog.Default()); err != nil {
		t.Fatalf("apply: %v", err)
	}

	got := fs.rows["en\x00auth.failed"]
	if got.Value != "Custom message" {
		t.Fatalf("re-seed must not overwrite operator edits, got %q", got.Value)
	}
	if got.Readonly {
		t.Fatal("pre-existing row must keep its readonly flag")
	}
}

// Package seed loads the bundled baseline dictionaries into the store.
// Seeded records are marked readonly so they survive the admin delete path.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/simfra/lingod/internal/model"
	"github.com/simfra/lingod/internal/store"
)

//go:embed locales/*.json
var locales embed.FS

// localeNames maps bundled locale codes to display names.
var localeNames = map[string]string{
	"en": "English",
	"pl": "Polski",
}

// Apply registers the bundled locales as active languages and inserts their
// dictionaries as readonly records. Keys that already exist for a locale are
// left untouched, so re-seeding never overwrites operator edits.
func Apply(ctx context.Context, s store.Store, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return fmt.Errorf("seed: read bundled locales: %w", err)
	}

	for _, entry := range entries {
		locale := strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))

		name, ok := localeNames[locale]
		if !ok {
			name = locale
		}
		if err := s.UpsertLanguage(ctx, &model.Language{Code: locale, Name: name, Active: true}); err != nil {
			return fmt.Errorf("seed: register language %s: %w", locale, err)
		}

		data, err := locales.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return fmt.Errorf("seed: read %s: %w", entry.Name(), err)
		}
		var pairs map[string]string
		if err := json.Unmarshal(data, &pairs); err != nil {
			return fmt.Errorf("seed: parse %s: %w", entry.Name(), err)
		}

		existing, err := s.ListTranslations(ctx, model.TranslationFilter{Lang: locale})
		if err != nil {
			return fmt.Errorf("seed: list %s: %w", locale, err)
		}
		present := make(map[string]bool, len(existing))
		for _, t := range existing {
			present[t.Key] = true
		}

		keys := make([]string, 0, len(pairs))
		for k := range pairs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		inserted := 0
		for _, key := range keys {
			if present[key] {
				continue
			}
			t := &model.Translation{Lang: locale, Key: key, Value: pairs[key], Readonly: true}
			if err := s.UpsertTranslation(ctx, t); err != nil {
				return fmt.Errorf("seed: insert %s/%s: %w", locale, key, err)
			}
			inserted++
		}

		logger.Info("locale seeded", "locale", locale, "inserted", inserted, "skipped", len(keys)-inserted)
	}
	return nil
}

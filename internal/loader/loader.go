// Package loader implements the runtime-facing translation read path.
package loader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/simfra/lingod/internal/cache"
	"github.com/simfra/lingod/internal/model"
	"github.com/simfra/lingod/internal/store"
)

// Source is a runtime translation read path: given a locale and a group it
// returns the group's item→value mapping.
type Source interface {
	Load(ctx context.Context, locale, group string) (map[string]string, error)
}

// Loader resolves (locale, group) lookups against the cache, falling back to
// the store on a miss. It handles one locale at a time; fallback-locale
// selection is the caller's responsibility.
type Loader struct {
	store store.Store
	cache cache.Cache
}

var _ Source = (*Loader)(nil)

// New returns a Loader backed by the given store and cache.
func New(s store.Store, c cache.Cache) *Loader {
	return &Loader{store: s, cache: c}
}

// Load returns the item→value mapping for the given locale and group.
// Unknown groups yield an empty map, never an error; groups are derived from
// data, not declared upfront.
func (l *Loader) Load(ctx context.Context, locale, group string) (map[string]string, error) {
	grouped, ok := l.cache.Get(locale)
	if !ok {
		var err error
		grouped, err = l.Rebuild(ctx, locale)
		if err != nil {
			return nil, err
		}
	}

	if items, ok := grouped[group]; ok {
		return items, nil
	}
	return map[string]string{}, nil
}

// Rebuild queries every record for the locale, groups it by namespace, and
// replaces the cache entry. Concurrent rebuilds for the same locale may
// race; the grouping is deterministic from the store, so last writer wins
// without a correctness impact.
func (l *Loader) Rebuild(ctx context.Context, locale string) (model.Grouped, error) {
	rows, err := l.store.ListTranslations(ctx, model.TranslationFilter{Lang: locale})
	if err != nil {
		return nil, fmt.Errorf("rebuild %s: %w", locale, err)
	}

	grouped := make(model.Grouped)
	for _, t := range rows {
		group, item := model.SplitKey(t.Key)
		if grouped[group] == nil {
			grouped[group] = make(map[string]string)
		}
		grouped[group][item] = t.Value
	}

	l.cache.Set(locale, grouped)
	slog.Debug("translation cache rebuilt", "locale", locale, "groups", len(grouped))
	return grouped, nil
}

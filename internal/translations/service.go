// Package translations implements the domain operations over the record
// store: upserts, imports, the readonly delete guard, and the key/group
// queries behind the admin surface.
package translations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/simfra/lingod/internal/cache"
	"github.com/simfra/lingod/internal/events"
	"github.com/simfra/lingod/internal/model"
	"github.com/simfra/lingod/internal/snapshot"
	"github.com/simfra/lingod/internal/store"
)

// Service owns the write path. Every successful mutation runs the same
// explicit sequence: durable write, cache invalidation for the affected
// locale, snapshot regeneration, event publish. Snapshot and event failures
// are logged and never abort the committed write.
type Service struct {
	store     store.Store
	cache     cache.Cache
	snapshots *snapshot.Generator
	publisher events.Publisher
	logger    *slog.Logger
}

// New returns a Service. The publisher may be a NoopPublisher; the snapshot
// generator decides internally whether generation is enabled.
func New(s store.Store, c cache.Cache, g *snapshot.Generator, p events.Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: s, cache: c, snapshots: g, publisher: p, logger: logger}
}

// KeyValue is one key/value pair in a bulk or import payload.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BatchError records a single failed item in a batch operation.
type BatchError struct {
	Key string `json:"key"`
	Err error  `json:"-"`
}

// Message returns the failure text for JSON responses.
func (e BatchError) Message() string { return e.Err.Error() }

// BatchResult carries both the successes and the per-item failures of a
// batch write. A failure on one key never rolls back the others.
type BatchResult struct {
	Translations []*model.Translation
	Failures     []BatchError
}

// ImportResult reports the outcome of a file import.
type ImportResult struct {
	Translations []*model.Translation
	Imported     int
	Skipped      int
}

// Upsert creates or updates the unique (lang, key) row. The readonly flag of
// an existing row is never altered.
func (s *Service) Upsert(ctx context.Context, lang, key, value string) (*model.Translation, error) {
	t := &model.Translation{Lang: lang, Key: key, Value: value}
	if err := s.store.UpsertTranslation(ctx, t); err != nil {
		return nil, fmt.Errorf("upsert %s/%s: %w", lang, key, err)
	}

	s.afterWrite(ctx, lang)
	s.publish(ctx, events.TopicTranslationUpserted, events.TranslationUpserted{Translation: t})
	return t, nil
}

// BulkUpsert applies Upsert for each pair. Per-item failures are collected,
// not propagated as a whole-batch abort; invalidation and snapshot
// regeneration run once after the batch.
func (s *Service) BulkUpsert(ctx context.Context, lang string, pairs []KeyValue) *BatchResult {
	res := &BatchResult{}
	for _, kv := range pairs {
		t := &model.Translation{Lang: lang, Key: kv.Key, Value: kv.Value}
		if err := s.store.UpsertTranslation(ctx, t); err != nil {
			s.logger.Warn("bulk upsert item failed", "lang", lang, "key", kv.Key, "err", err)
			res.Failures = append(res.Failures, BatchError{Key: kv.Key, Err: err})
			continue
		}
		res.Translations = append(res.Translations, t)
	}

	if len(res.Translations) > 0 {
		s.afterWrite(ctx, lang)
		for _, t := range res.Translations {
			s.publish(ctx, events.TopicTranslationUpserted, events.TranslationUpserted{Translation: t})
		}
	}
	return res
}

// ErrImportFormat indicates an uploaded payload that is not a flat JSON
// object. Callers can tell it apart from a store failure mid-import.
var ErrImportFormat = errors.New("import payload must be a flat JSON object")

// ImportJSON decodes an uploaded JSON object of key/value pairs and imports
// it. Non-object payloads are rejected; non-string values import as empty
// strings, marking the key untranslated.
func (s *Service) ImportJSON(ctx context.Context, lang string, data []byte, prefix string) (*ImportResult, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}

	pairs := make(map[string]string, len(raw))
	for k, v := range raw {
		str, _ := v.(string)
		pairs[k] = str
	}
	return s.Import(ctx, lang, pairs, prefix)
}

// Import validates each source key against the allowed pattern, prepends the
// optional dotted prefix, and upserts the accepted pairs. Invalid keys are
// skipped and counted, never fatal. Re-importing the same set is idempotent
// because the upsert is keyed on (lang, key).
func (s *Service) Import(ctx context.Context, lang string, pairs map[string]string, prefix string) (*ImportResult, error) {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	res := &ImportResult{}
	for _, key := range keys {
		if !model.KeyPattern.MatchString(key) {
			s.logger.Warn("invalid translation key skipped", "lang", lang, "key", key)
			res.Skipped++
			continue
		}

		newKey := key
		if prefix != "" {
			newKey = prefix + "." + key
		}

		t := &model.Translation{Lang: lang, Key: newKey, Value: pairs[key]}
		if err := s.store.UpsertTranslation(ctx, t); err != nil {
			return nil, fmt.Errorf("import %s/%s: %w", lang, newKey, err)
		}
		res.Translations = append(res.Translations, t)
		res.Imported++
	}

	if res.Imported > 0 {
		s.afterWrite(ctx, lang)
	}
	s.publish(ctx, events.TopicTranslationsImported, events.TranslationsImported{
		Lang:     lang,
		Prefix:   prefix,
		Imported: res.Imported,
		Skipped:  res.Skipped,
	})

	s.logger.Info("translations imported",
		"lang", lang, "prefix", prefix,
		"imported", res.Imported, "skipped", res.Skipped,
	)
	return res, nil
}

// Delete removes the record with the given id. Records seeded from bundled
// language files (readonly=true) are protected: the delete fails with
// model.ErrReadonly and the record is left unchanged.
func (s *Service) Delete(ctx context.Context, id int64) error {
	t, err := s.store.GetTranslation(ctx, id)
	if err != nil {
		return err
	}
	if t.Readonly {
		return model.ErrReadonly
	}

	if err := s.store.DeleteTranslation(ctx, id); err != nil {
		return err
	}

	s.afterWrite(ctx, t.Lang)
	s.publish(ctx, events.TopicTranslationDeleted, events.TranslationDeleted{
		ID:   t.ID,
		Lang: t.Lang,
		Key:  t.Key,
	})
	return nil
}

// Get returns the record with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*model.Translation, error) {
	return s.store.GetTranslation(ctx, id)
}

// ListGroups returns the sorted set of namespaces observed across all keys.
// The sentinel bucket is always present, even with zero bare keys.
func (s *Service) ListGroups(ctx context.Context) ([]string, error) {
	groups, err := s.store.DistinctGroups(ctx)
	if err != nil {
		return nil, err
	}

	hasOther := false
	for _, g := range groups {
		if g == model.GroupOther {
			hasOther = true
			break
		}
	}
	if !hasOther {
		groups = append(groups, model.GroupOther)
		sort.Strings(groups)
	}
	return groups, nil
}

// ListKeys returns the distinct key set matching the filter.
func (s *Service) ListKeys(ctx context.Context, filter model.KeyFilter) ([]string, error) {
	return s.store.DistinctKeys(ctx, filter)
}

// Languages returns the locale registry, all entries or active only.
func (s *Service) Languages(ctx context.Context, activeOnly bool) ([]*model.Language, error) {
	return s.store.ListLanguages(ctx, activeOnly)
}

// IsKnownLanguage reports whether code is a registered locale.
func (s *Service) IsKnownLanguage(ctx context.Context, code string) (bool, error) {
	langs, err := s.store.ListLanguages(ctx, false)
	if err != nil {
		return false, err
	}
	for _, l := range langs {
		if strings.EqualFold(l.Code, code) {
			return true, nil
		}
	}
	return false, nil
}

// afterWrite runs the post-commit sequence: invalidate the locale's cache
// entry, then regenerate snapshots. The durable write has already happened;
// a snapshot failure is logged, never rolled back.
func (s *Service) afterWrite(ctx context.Context, lang string) {
	s.cache.Invalidate(lang)
	if !s.snapshots.Enabled() {
		return
	}
	if err := s.snapshots.Regenerate(ctx); err != nil {
		s.logger.Error("snapshot regeneration failed", "lang", lang, "err", err)
		return
	}
	s.publish(ctx, events.TopicSnapshotGenerated, events.SnapshotGenerated{Lang: lang})
}

// publish emits an event; failures are logged but do not block the caller.
func (s *Service) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.Warn("failed to publish event", "topic", topic, "err", err)
	}
}

// IsNotFound reports whether err means the referenced record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

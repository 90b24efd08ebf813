package events

import (
	"context"

	"github.com/simfra/lingod/internal/model"
)

// Event topic constants
const (
	TopicTranslationUpserted  = "lingo.translation.upserted"
	TopicTranslationDeleted   = "lingo.translation.deleted"
	TopicTranslationsImported = "lingo.translations.imported"
	TopicSnapshotGenerated    = "lingo.snapshot.generated"
)

// Event types

type TranslationUpserted struct {
	Translation *model.Translation `json:"translation"`
}

type TranslationDeleted struct {
	ID   int64  `json:"id"`
	Lang string `json:"lang"`
	Key  string `json:"key"`
}

type TranslationsImported struct {
	Lang     string `json:"lang"`
	Prefix   string `json:"prefix,omitempty"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// SnapshotGenerated carries the locale whose write triggered regeneration;
// the generator rewrites every active locale's file on each run.
type SnapshotGenerated struct {
	Lang string `json:"lang"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

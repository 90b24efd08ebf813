package store

import (
	"context"

	"github.com/simfra/lingod/internal/model"
)

// Store defines the persistence interface for translations and the locale
// registry. Not-found conditions are reported as sql.ErrNoRows.
type Store interface {
	// Translations
	UpsertTranslation(ctx context.Context, t *model.Translation) error
	GetTranslation(ctx context.Context, id int64) (*model.Translation, error)
	ListTranslations(ctx context.Context, filter model.TranslationFilter) ([]*model.Translation, error)
	DeleteTranslation(ctx context.Context, id int64) error

	// Key universe
	DistinctKeys(ctx context.Context, filter model.KeyFilter) ([]string, error)
	DistinctGroups(ctx context.Context) ([]string, error)

	// Locale registry
	ListLanguages(ctx context.Context, activeOnly bool) ([]*model.Language, error)
	UpsertLanguage(ctx context.Context, l *model.Language) error

	// Lifecycle
	Close() error
}

// Package client provides a transport-agnostic interface for the lingod
// service and an HTTP/JSON implementation that talks to its REST API.
package client

import (
	"context"

	"github.com/simfra/lingod/internal/model"
	"github.com/simfra/lingod/internal/translations"
)

// LingoClient is the interface that all lingod CLI commands use to
// communicate with the server. It is implemented by HTTPClient (default) and
// can be backed by any transport.
type LingoClient interface {
	// Translation CRUD
	List(ctx context.Context, req *ListRequest) (*translations.Page, error)
	Upsert(ctx context.Context, lang, key, value string) (*model.Translation, error)
	BulkUpsert(ctx context.Context, lang string, pairs []translations.KeyValue) (*BulkResponse, error)
	Import(ctx context.Context, lang, prefix, filename string, data []byte) (*ImportResponse, error)
	Delete(ctx context.Context, id int64) error

	// Metadata
	Groups(ctx context.Context) ([]string, error)
	Languages(ctx context.Context, activeOnly bool) ([]*model.Language, error)

	// Runtime lookup
	Load(ctx context.Context, locale, group string) (map[string]string, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// ListRequest holds parameters for listing translations.
type ListRequest struct {
	Lang    string
	Search  string
	Group   string
	Missing bool
	Page    int
	PerPage int
}

// BulkResponse is the response from BulkUpsert.
type BulkResponse struct {
	Translations []*model.Translation `json:"translations"`
	Failures     []BulkFailure        `json:"failures"`
}

// BulkFailure is one failed item in a bulk response.
type BulkFailure struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// ImportResponse is the response from Import.
type ImportResponse struct {
	Translations []*model.Translation `json:"translations"`
	Imported     int                  `json:"imported"`
	Skipped      int                  `json:"skipped"`
}

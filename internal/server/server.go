// Package server exposes the translation store over HTTP: the admin CRUD
// surface under a configurable route prefix and the runtime lookup path.
package server

import (
	"log/slog"

	"github.com/simfra/lingod/internal/loader"
	"github.com/simfra/lingod/internal/translations"
)

// TranslationServer holds the HTTP handler dependencies.
type TranslationServer struct {
	svc    *translations.Service
	loader loader.Source
	logger *slog.Logger
}

// NewTranslationServer returns a server backed by the given service and
// runtime read path.
func NewTranslationServer(svc *translations.Service, l loader.Source, logger *slog.Logger) *TranslationServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &TranslationServer{svc: svc, loader: l, logger: logger}
}

// inputError indicates invalid user input.
// The HTTP layer maps this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }

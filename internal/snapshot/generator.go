// Package snapshot regenerates the per-locale JSON files that mirror the
// translation store for consumers that prefer static files over live queries.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/simfra/lingod/internal/model"
	"github.com/simfra/lingod/internal/store"
)

// Destination is an optional mirror for generated snapshot files (S3, etc.).
type Destination interface {
	// Write uploads one locale's snapshot under its file name.
	Write(ctx context.Context, name string, data []byte) error
	// Remove deletes a mirrored snapshot that is no longer active.
	Remove(ctx context.Context, name string) error
}

// Generator writes one flattened JSON file per active locale and prunes
// files for locales that are no longer active.
type Generator struct {
	store        store.Store
	dir          string
	enabled      bool
	destinations []Destination
	logger       *slog.Logger
}

// New returns a Generator writing into dir. When enabled is false,
// Regenerate is a no-op.
func New(s store.Store, dir string, enabled bool, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{store: s, dir: dir, enabled: enabled, logger: logger}
}

// AddDestination registers a mirror that receives every written file.
func (g *Generator) AddDestination(d Destination) {
	g.destinations = append(g.destinations, d)
}

// Enabled reports whether Regenerate actually writes files.
func (g *Generator) Enabled() bool {
	return g.enabled
}

// Regenerate rewrites the snapshot file of every active locale and removes
// files for inactive ones. The operation is best-effort per locale: a
// failure on one locale is recorded and the rest are still attempted. The
// joined error is returned so callers can report it, but the triggering
// write is never rolled back — snapshots are a derived artifact, not the
// source of truth.
func (g *Generator) Regenerate(ctx context.Context) error {
	if !g.enabled {
		return nil
	}

	langs, err := g.store.ListLanguages(ctx, true)
	if err != nil {
		return fmt.Errorf("snapshot: list languages: %w", err)
	}

	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return fmt.Errorf("snapshot: create dir: %w", err)
	}

	active := make(map[string]struct{}, len(langs))
	var errs []error
	for _, lang := range langs {
		active[lang.Code] = struct{}{}
		if err := g.writeLocale(ctx, lang.Code); err != nil {
			g.logger.Error("snapshot write failed", "locale", lang.Code, "err", err)
			errs = append(errs, err)
		}
	}

	if err := g.prune(ctx, active); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// writeLocale serializes the locale's flat key→value mapping and writes it
// atomically via a temp file rename.
func (g *Generator) writeLocale(ctx context.Context, locale string) error {
	rows, err := g.store.ListTranslations(ctx, model.TranslationFilter{Lang: locale})
	if err != nil {
		return fmt.Errorf("list %s: %w", locale, err)
	}

	// Absent values become empty strings so every stored key is present.
	flat := make(map[string]string, len(rows))
	for _, t := range rows {
		flat[t.Key] = t.Value
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(flat); err != nil {
		return fmt.Errorf("encode %s: %w", locale, err)
	}

	name := locale + ".json"
	path := filepath.Join(g.dir, name)
	tmp, err := os.CreateTemp(g.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("temp file for %s: %w", locale, err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", locale, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", locale, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", locale, err)
	}

	for _, d := range g.destinations {
		if err := d.Write(ctx, name, buf.Bytes()); err != nil {
			// Mirrors are best-effort; the local file is authoritative.
			g.logger.Warn("snapshot mirror write failed", "locale", locale, "err", err)
		}
	}

	g.logger.Debug("snapshot written", "locale", locale, "keys", len(flat))
	return nil
}

// prune removes snapshot files whose locale is not in the active set.
func (g *Generator) prune(ctx context.Context, active map[string]struct{}) error {
	matches, err := filepath.Glob(filepath.Join(g.dir, "*.json"))
	if err != nil {
		return fmt.Errorf("snapshot: glob: %w", err)
	}

	var errs []error
	for _, path := range matches {
		locale := strings.TrimSuffix(filepath.Base(path), ".json")
		if _, ok := active[locale]; ok {
			continue
		}
		if err := os.Remove(path); err != nil {
			g.logger.Error("snapshot prune failed", "path", path, "err", err)
			errs = append(errs, fmt.Errorf("prune %s: %w", locale, err))
			continue
		}
		for _, d := range g.destinations {
			if err := d.Remove(ctx, locale+".json"); err != nil {
				g.logger.Warn("snapshot mirror prune failed", "locale", locale, "err", err)
			}
		}
		g.logger.Debug("obsolete snapshot removed", "locale", locale)
	}
	return errors.Join(errs...)
}

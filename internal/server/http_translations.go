package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strconv"

	"github.com/simfra/lingod/internal/model"
	"github.com/simfra/lingod/internal/translations"
)

// maxImportSize caps uploaded translation files.
const maxImportSize = 10 << 20

var localePattern = regexp.MustCompile(`^[a-z]{2}$`)

// validateLang checks the locale format and membership in the registry.
func (s *TranslationServer) validateLang(r *http.Request, lang string) error {
	if !localePattern.MatchString(lang) {
		return inputError("lang must be a two-letter locale code")
	}
	known, err := s.svc.IsKnownLanguage(r.Context(), lang)
	if err != nil {
		return err
	}
	if !known {
		return inputError("unknown language: " + lang)
	}
	return nil
}

// handleListTranslations handles GET {prefix}.
func (s *TranslationServer) handleListTranslations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lang := q.Get("lang")
	if lang == "" {
		writeError(w, http.StatusBadRequest, "lang is required")
		return
	}
	if err := s.validateLang(r, lang); err != nil {
		s.respondError(w, err)
		return
	}

	params := translations.PageParams{
		Lang:    lang,
		Search:  q.Get("search"),
		Group:   q.Get("group"),
		Missing: q.Get("missing") == "true" || q.Get("missing") == "1",
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		params.Page = n
	}
	if v := q.Get("per_page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "per_page must be between 1 and 100")
			return
		}
		params.PerPage = n
	}

	page, err := s.svc.ListPage(r.Context(), params)
	if err != nil {
		s.logger.Error("list translations failed", "lang", lang, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list translations")
		return
	}

	// Never null in JSON output.
	if page.Items == nil {
		page.Items = []*model.Translation{}
	}
	writeJSON(w, http.StatusOK, page)
}

type upsertInput struct {
	Lang  string `json:"lang"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// handleUpsertTranslation handles POST {prefix}.
func (s *TranslationServer) handleUpsertTranslation(w http.ResponseWriter, r *http.Request) {
	var in upsertInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.validateLang(r, in.Lang); err != nil {
		s.respondError(w, err)
		return
	}
	if in.Key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}
	if !model.KeyPattern.MatchString(in.Key) {
		writeError(w, http.StatusBadRequest, "key contains invalid characters")
		return
	}

	t, err := s.svc.Upsert(r.Context(), in.Lang, in.Key, in.Value)
	if err != nil {
		s.logger.Error("upsert failed", "lang", in.Lang, "key", in.Key, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to save translation")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type bulkInput struct {
	Lang         string                  `json:"lang"`
	Translations []translations.KeyValue `json:"translations"`
}

type bulkFailure struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// handleBulkUpsert handles POST {prefix}/bulk.
func (s *TranslationServer) handleBulkUpsert(w http.ResponseWriter, r *http.Request) {
	var in bulkInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.validateLang(r, in.Lang); err != nil {
		s.respondError(w, err)
		return
	}
	if len(in.Translations) == 0 {
		writeError(w, http.StatusBadRequest, "translations must not be empty")
		return
	}
	for _, kv := range in.Translations {
		if kv.Key == "" || !model.KeyPattern.MatchString(kv.Key) {
			writeError(w, http.StatusBadRequest, "invalid key: "+kv.Key)
			return
		}
	}

	res := s.svc.BulkUpsert(r.Context(), in.Lang, in.Translations)

	saved := res.Translations
	if saved == nil {
		saved = []*model.Translation{}
	}
	failures := make([]bulkFailure, 0, len(res.Failures))
	for _, f := range res.Failures {
		failures = append(failures, bulkFailure{Key: f.Key, Error: f.Message()})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"translations": saved,
		"failures":     failures,
	})
}

// handleImport handles POST {prefix}/import. The body is a multipart form
// with a "file" part holding a flat JSON object, plus "lang" and optional
// "prefix" fields.
func (s *TranslationServer) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	lang := r.FormValue("lang")
	if err := s.validateLang(r, lang); err != nil {
		s.respondError(w, err)
		return
	}

	prefix := r.FormValue("prefix")
	if prefix != "" && !model.KeyPattern.MatchString(prefix) {
		writeError(w, http.StatusBadRequest, "prefix contains invalid characters")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	res, err := s.svc.ImportJSON(r.Context(), lang, data, prefix)
	if err != nil {
		if errors.Is(err, translations.ErrImportFormat) {
			writeError(w, http.StatusBadRequest, "file must be a flat JSON object")
			return
		}
		s.logger.Error("import failed", "lang", lang, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to import translations")
		return
	}

	saved := res.Translations
	if saved == nil {
		saved = []*model.Translation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"translations": saved,
		"imported":     res.Imported,
		"skipped":      res.Skipped,
	})
}

// handleDeleteTranslation handles DELETE {prefix}/{id}.
func (s *TranslationServer) handleDeleteTranslation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	if err := s.svc.Delete(r.Context(), id); err != nil {
		switch {
		case translations.IsNotFound(err):
			writeError(w, http.StatusNotFound, "translation not found")
		case errors.Is(err, model.ErrReadonly):
			writeError(w, http.StatusForbidden, "translation is readonly")
		default:
			s.logger.Error("delete failed", "id", id, "err", err)
			writeError(w, http.StatusInternalServerError, "failed to delete translation")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListGroups handles GET {prefix}/groups.
func (s *TranslationServer) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.svc.ListGroups(r.Context())
	if err != nil {
		s.logger.Error("list groups failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list groups")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"groups": groups})
}

// handleListLanguages handles GET {prefix}/languages.
func (s *TranslationServer) handleListLanguages(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	langs, err := s.svc.Languages(r.Context(), activeOnly)
	if err != nil {
		s.logger.Error("list languages failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list languages")
		return
	}
	if langs == nil {
		langs = []*model.Language{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"languages": langs})
}

// handleLoad handles GET {prefix}/load/{locale}/{group}: the runtime lookup
// path. Unknown groups return an empty object, not 404.
func (s *TranslationServer) handleLoad(w http.ResponseWriter, r *http.Request) {
	locale := r.PathValue("locale")
	if !localePattern.MatchString(locale) {
		writeError(w, http.StatusBadRequest, "locale must be a two-letter code")
		return
	}

	items, err := s.loader.Load(r.Context(), locale, r.PathValue("group"))
	if err != nil {
		s.logger.Error("load failed", "locale", locale, "group", r.PathValue("group"), "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load translations")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// respondError maps a service error onto an HTTP status. Anything that is
// not invalid input is a store failure: full detail goes to the log, the
// caller only sees a generic message.
func (s *TranslationServer) respondError(w http.ResponseWriter, err error) {
	var ie inputError
	if errors.As(err, &ie) {
		writeError(w, http.StatusBadRequest, ie.Error())
		return
	}
	s.logger.Error("request failed", "err", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

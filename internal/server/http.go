package server

import (
	"encoding/json"
	"net/http"
)

// NewHTTPHandler returns an http.Handler with all routes registered. The
// admin surface lives under prefix (e.g. "/translations"); the runtime load
// path and health check sit alongside it. When authToken is non-empty,
// requests (except GET /v1/health) must include a valid
// Authorization: Bearer <token> header.
func (s *TranslationServer) NewHTTPHandler(authToken, prefix string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+prefix, s.handleListTranslations)
	mux.HandleFunc("POST "+prefix, s.handleUpsertTranslation)
	mux.HandleFunc("POST "+prefix+"/bulk", s.handleBulkUpsert)
	mux.HandleFunc("POST "+prefix+"/import", s.handleImport)
	mux.HandleFunc("DELETE "+prefix+"/{id}", s.handleDeleteTranslation)
	mux.HandleFunc("GET "+prefix+"/groups", s.handleListGroups)
	mux.HandleFunc("GET "+prefix+"/languages", s.handleListLanguages)
	mux.HandleFunc("GET "+prefix+"/load/{locale}/{group}", s.handleLoad)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return RequestLogger(s.logger, AuthMiddleware(authToken, mux))
}

// handleHealth handles GET /v1/health.
func (s *TranslationServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

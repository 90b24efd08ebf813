package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/simfra/lingod/internal/translations"
)

// testHandler captures the incoming request details and returns a canned response.
type testHandler struct {
	// captured from the request
	method      string
	path        string
	query       string
	body        string
	contentType string
	auth        string

	// canned response
	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.query = r.URL.RawQuery
	h.contentType = r.Header.Get("Content-Type")
	h.auth = r.Header.Get("Authorization")
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		h.body = string(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if h.responseBody != "" {
		_, _ = w.Write([]byte(h.responseBody))
	}
}

// newTestClient creates an HTTPClient pointed at a test server with the given handler.
func newTestClient(h http.Handler) (*HTTPClient, *httptest.Server) {
	srv := httptest.NewServer(h)
	c := NewHTTPClient(srv.URL, "", "")
	return c, srv
}

func TestHTTPClient_Upsert(t *testing.T) {
	h := &testHandler{
		responseBody: `{"id": 7, "lang": "en", "key": "nav.home", "value": "Home", "readonly": false}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	got, err := c.Upsert(context.Background(), "en", "nav.home", "Home")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h.method != http.MethodPost || h.path != "/translations" {
		t.Errorf("request = %s %s", h.method, h.path)
	}
	if !strings.Contains(h.body, `"key":"nav.home"`) {
		t.Errorf("body = %s", h.body)
	}
	if got.ID != 7 || got.Value != "Home" {
		t.Errorf("got %+v", got)
	}
}

func TestHTTPClient_List(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"lang": "en",
			"items": [{"id": 1, "lang": "en", "key": "nav.home", "value": "Home"}],
			"groups": ["nav", "other"],
			"languages": [{"code": "en", "name": "English", "active": true}],
			"pagination": {"total": 1, "per_page": 50, "current_page": 1, "last_page": 1}
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	page, err := c.List(context.Background(), &ListRequest{
		Lang: "en", Group: "nav", Missing: true, Page: 2, PerPage: 50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"lang=en", "group=nav", "missing=true", "page=2", "per_page=50"} {
		if !strings.Contains(h.query, want) {
			t.Errorf("query %q missing %q", h.query, want)
		}
	}
	if len(page.Items) != 1 || page.Items[0].Key != "nav.home" {
		t.Errorf("got %+v", page.Items)
	}
	if page.Pagination.Total != 1 {
		t.Errorf("got pagination %+v", page.Pagination)
	}
}

func TestHTTPClient_BulkUpsert(t *testing.T) {
	h := &testHandler{
		responseBody: `{"translations": [{"id": 1, "key": "a.b"}], "failures": [{"key": "a.c", "error": "boom"}]}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	resp, err := c.BulkUpsert(context.Background(), "en", []translations.KeyValue{
		{Key: "a.b", Value: "x"},
		{Key: "a.c", Value: "y"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h.path != "/translations/bulk" {
		t.Errorf("path = %s", h.path)
	}
	if len(resp.Translations) != 1 || len(resp.Failures) != 1 {
		t.Errorf("got %+v", resp)
	}
	if resp.Failures[0].Key != "a.c" {
		t.Errorf("got failure %+v", resp.Failures[0])
	}
}

func TestHTTPClient_Import(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"translations": [
				{"id": 7, "lang": "en", "key": "nav.home", "value": "Home"},
				{"id": 8, "lang": "en", "key": "nav.about", "value": "About"},
				{"id": 9, "lang": "en", "key": "nav.contact", "value": "Contact"}
			],
			"imported": 3, "skipped": 1
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	resp, err := c.Import(context.Background(), "en", "nav", "en.json", []byte(`{"home": "Home"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h.path != "/translations/import" {
		t.Errorf("path = %s", h.path)
	}
	if !strings.HasPrefix(h.contentType, "multipart/form-data") {
		t.Errorf("content type = %s", h.contentType)
	}
	for _, want := range []string{`name="lang"`, `name="prefix"`, `name="file"`, `"home": "Home"`} {
		if !strings.Contains(h.body, want) {
			t.Errorf("form body missing %q", want)
		}
	}
	if resp.Imported != 3 || resp.Skipped != 1 {
		t.Errorf("got %+v", resp)
	}
	if len(resp.Translations) != 3 || resp.Translations[0].Key != "nav.home" || resp.Translations[0].ID != 7 {
		t.Errorf("got translations %+v", resp.Translations)
	}
}

func TestHTTPClient_Delete(t *testing.T) {
	h := &testHandler{statusCode: http.StatusNoContent}
	c, srv := newTestClient(h)
	defer srv.Close()

	if err := c.Delete(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.method != http.MethodDelete || h.path != "/translations/42" {
		t.Errorf("request = %s %s", h.method, h.path)
	}
}

func TestHTTPClient_DeleteReadonly(t *testing.T) {
	h := &testHandler{
		statusCode:   http.StatusForbidden,
		responseBody: `{"error": "translation is readonly"}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	err := c.Delete(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusForbidden || apiErr.Message != "translation is readonly" {
		t.Errorf("got %+v", apiErr)
	}
}

func TestHTTPClient_Load(t *testing.T) {
	h := &testHandler{responseBody: `{"home": "Home", "about": "About"}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	items, err := c.Load(context.Background(), "en", "nav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.path != "/translations/load/en/nav" {
		t.Errorf("path = %s", h.path)
	}
	if items["home"] != "Home" || len(items) != 2 {
		t.Errorf("got %v", items)
	}
}

func TestHTTPClient_Languages(t *testing.T) {
	h := &testHandler{
		responseBody: `{"languages": [{"code": "en", "name": "English", "active": true}]}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	langs, err := c.Languages(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.query != "active=true" {
		t.Errorf("query = %s", h.query)
	}
	if len(langs) != 1 || langs[0].Code != "en" {
		t.Errorf("got %+v", langs)
	}
}

func TestHTTPClient_AuthHeader(t *testing.T) {
	h := &testHandler{responseBody: `{"status": "ok"}`}
	srv := httptest.NewServer(h)
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "/i18n", "secret")
	if _, err := c.Health(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.auth != "Bearer secret" {
		t.Errorf("auth header = %q", h.auth)
	}
	if h.path != "/v1/health" {
		t.Errorf("path = %s", h.path)
	}

	if _, err := c.Groups(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.path != "/i18n/groups" {
		t.Errorf("prefixed path = %s", h.path)
	}
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/simfra/lingod/internal/model"
	"github.com/simfra/lingod/internal/translations"
)

// DefaultPrefix is the admin route prefix used when none is configured.
const DefaultPrefix = "/translations"

// HTTPClient implements LingoClient using the lingod HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	prefix     string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080") and admin route prefix. When token is
// non-empty, an Authorization header is set on every request.
func NewHTTPClient(baseURL, prefix, token string) *HTTPClient {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		prefix:     strings.TrimRight(prefix, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

func (c *HTTPClient) List(ctx context.Context, req *ListRequest) (*translations.Page, error) {
	q := url.Values{}
	if req.Lang != "" {
		q.Set("lang", req.Lang)
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if req.Group != "" {
		q.Set("group", req.Group)
	}
	if req.Missing {
		q.Set("missing", "true")
	}
	if req.Page > 0 {
		q.Set("page", strconv.Itoa(req.Page))
	}
	if req.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(req.PerPage))
	}

	path := c.prefix
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page translations.Page
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) Upsert(ctx context.Context, lang, key, value string) (*model.Translation, error) {
	body := map[string]string{"lang": lang, "key": key, "value": value}
	var t model.Translation
	if err := c.doJSON(ctx, http.MethodPost, c.prefix, body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) BulkUpsert(ctx context.Context, lang string, pairs []translations.KeyValue) (*BulkResponse, error) {
	body := map[string]any{"lang": lang, "translations": pairs}
	var resp BulkResponse
	if err := c.doJSON(ctx, http.MethodPost, c.prefix+"/bulk", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Import(ctx context.Context, lang, prefix, filename string, data []byte) (*ImportResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("lang", lang); err != nil {
		return nil, fmt.Errorf("building form: %w", err)
	}
	if prefix != "" {
		if err := mw.WriteField("prefix", prefix); err != nil {
			return nil, fmt.Errorf("building form: %w", err)
		}
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("building form: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return nil, fmt.Errorf("building form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.prefix+"/import", &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	var result ImportResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Delete(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, c.prefix+"/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *HTTPClient) Groups(ctx context.Context) ([]string, error) {
	var resp struct {
		Groups []string `json:"groups"`
	}
	if err := c.doJSON(ctx, http.MethodGet, c.prefix+"/groups", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Groups, nil
}

func (c *HTTPClient) Languages(ctx context.Context, activeOnly bool) ([]*model.Language, error) {
	path := c.prefix + "/languages"
	if activeOnly {
		path += "?active=true"
	}
	var resp struct {
		Languages []*model.Language `json:"languages"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Languages, nil
}

func (c *HTTPClient) Load(ctx context.Context, locale, group string) (map[string]string, error) {
	path := c.prefix + "/load/" + url.PathEscape(locale) + "/" + url.PathEscape(group)
	var items map[string]string
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the
// JSON response. If result is nil, the response body is discarded.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.do(req, result)
}

// do executes a prepared request and decodes the JSON response.
func (c *HTTPClient) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

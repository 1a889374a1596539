// Package api is the HTTP client for the diary service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/entry"
)

// Client talks to the diary service. A zero Token sends unauthenticated
// requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	log        *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Keep the bearer token across redirects to the same service.
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
		log: zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithToken returns a copy of c that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// BaseURL is the service root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FileURL resolves an attachment path returned by the service to an
// absolute URL. Absolute URLs are returned unchanged.
func (c *Client) FileURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	return c.baseURL + path
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var resp AuthResult
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", creds, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Register creates an account and returns its session token.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	var resp AuthResult
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", reg, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Me returns the user the token belongs to.
func (c *Client) Me(ctx context.Context) (*entry.User, error) {
	var resp entry.User
	if err := c.doRequest(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}
	return &resp, nil
}

// ListDiaries returns the authenticated user's entries.
func (c *Client) ListDiaries(ctx context.Context) ([]*entry.Entry, error) {
	var resp []*entry.Entry
	if err := c.doRequest(ctx, http.MethodGet, "/api/diaries", nil, &resp); err != nil {
		return nil, fmt.Errorf("list diaries request failed: %w", err)
	}
	return resp, nil
}

// ListPublic returns everyone's public entries with author details.
func (c *Client) ListPublic(ctx context.Context) ([]*entry.Entry, error) {
	var resp []*entry.Entry
	if err := c.doRequest(ctx, http.MethodGet, "/api/diaries/public", nil, &resp); err != nil {
		return nil, fmt.Errorf("list public diaries request failed: %w", err)
	}
	return resp, nil
}

// CreateDiary submits a draft as a new entry.
func (c *Client) CreateDiary(ctx context.Context, d entry.Draft) (*entry.Entry, error) {
	var resp entry.Entry
	if err := c.doRequest(ctx, http.MethodPost, "/api/diaries", d, &resp); err != nil {
		return nil, fmt.Errorf("create diary request failed: %w", err)
	}
	return &resp, nil
}

// UpdateDiary replaces entry id with the draft.
func (c *Client) UpdateDiary(ctx context.Context, id string, d entry.Draft) (*entry.Entry, error) {
	var resp entry.Entry
	if err := c.doRequest(ctx, http.MethodPut, "/api/diaries/"+url.PathEscape(id), d, &resp); err != nil {
		return nil, fmt.Errorf("update diary request failed: %w", err)
	}
	return &resp, nil
}

// SetVisibility publishes or hides entry id.
func (c *Client) SetVisibility(ctx context.Context, id string, public bool) (*Visibility, error) {
	var resp Visibility
	path := fmt.Sprintf("/api/diaries/%s/visibility", url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodPatch, path, Visibility{IsPublic: public}, &resp); err != nil {
		return nil, fmt.Errorf("visibility request failed: %w", err)
	}
	return &resp, nil
}

// DeleteDiary removes entry id. Attachments are left in place.
func (c *Client) DeleteDiary(ctx context.Context, id string) error {
	var resp messageResponse
	if err := c.doRequest(ctx, http.MethodDelete, "/api/diaries/"+url.PathEscape(id), nil, &resp); err != nil {
		return fmt.Errorf("delete diary request failed: %w", err)
	}
	return nil
}

// DeleteFile removes a stored attachment by name.
func (c *Client) DeleteFile(ctx context.Context, name string) error {
	var resp messageResponse
	if err := c.doRequest(ctx, http.MethodDelete, "/api/files/"+url.PathEscape(name), nil, &resp); err != nil {
		return fmt.Errorf("delete file request failed: %w", err)
	}
	return nil
}

// Upload sends one file to the upload endpoint for kind. The multipart field
// is named after the kind.
func (c *Client) Upload(ctx context.Context, kind entry.Kind, filename string, r io.Reader) (*FileRef, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, string(kind), filepath.Base(filename)))
	h.Set("Content-Type", mimetype.Detect(data).String())
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write form part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form: %w", err)
	}

	var resp FileRef
	if err := c.send(ctx, http.MethodPost, "/api/upload/"+string(kind), &body, mw.FormDataContentType(), &resp); err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	return &resp, nil
}

// doRequest sends a JSON request and decodes the data envelope into result.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	var bodyReader io.Reader
	contentType := ""
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, bodyReader, contentType, result)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debugw("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	c.log.Debugw("request", "method", method, "path", path, "request_id", requestID,
		"status_code", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		wrapped := envelope[interface{}]{Data: result}
		if err := json.Unmarshal(respBody, &wrapped); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// Package client provides the HTTP client for the portfolio API.
// Every call resolves a logical endpoint against one configured base address,
// attaches the admin bearer token when a session holds one, and decodes the
// shared response envelope into either a Payload or an *Error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/JaimeStill/portfolio-admin/pkg/session"
	"github.com/google/uuid"
)

// Header names set on every request.
const (
	HeaderRequestID = "X-Request-ID"
	ContentTypeJSON = "application/json"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// Client performs requests against the portfolio API.
// It does not cache, retry, or de-duplicate.
type Client struct {
	baseURL string
	http    *http.Client
	session session.Store
	logger  *slog.Logger
}

// New creates a Client from a finalized configuration.
// A nil session store sends every request unauthenticated.
func New(cfg *Config, sess session.Store, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.TimeoutDuration()},
		session: sess,
		logger:  logger.With("system", "client"),
	}
}

// BaseURL returns the configured base address without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL resolves endpoint to an absolute URL.
func (c *Client) URL(endpoint Endpoint) string {
	return c.baseURL + string(endpoint)
}

// Do sends a JSON request. A nil body sends no request body.
func (c *Client) Do(ctx context.Context, method string, endpoint Endpoint, body any) (*Payload, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(endpoint), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", ContentTypeJSON)

	return c.send(req)
}

// Upload sends data as a single multipart/form-data file part named field.
func (c *Client) Upload(ctx context.Context, endpoint Endpoint, field, filename, contentType string, data []byte) (*Payload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write form part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(endpoint), &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.send(req)
}

func (c *Client) send(req *http.Request) (*Payload, error) {
	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("Accept", ContentTypeJSON)

	if token := c.token(req.Context()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger := c.logger.With(
		"request_id", requestID,
		"method", req.Method,
		"path", req.URL.Path,
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("request failed", "error", err)
		return nil, transportError(0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		logger.Warn("read response failed", "status", resp.StatusCode, "error", err)
		return nil, transportError(resp.StatusCode, err)
	}

	payload, err := decode(resp.StatusCode, body)

	logger.Debug("request completed",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"ok", err == nil,
	)

	return payload, err
}

func (c *Client) token(ctx context.Context) string {
	if c.session == nil {
		return ""
	}
	token, err := c.session.Token(ctx)
	if err != nil {
		c.logger.Warn("session token unavailable, sending unauthenticated", "error", err)
		return ""
	}
	return token
}

// Unauthorized reports whether err is a server rejection of the session.
func Unauthorized(err error) bool {
	var ce *Error
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Status == http.StatusUnauthorized || ce.Status == http.StatusForbidden
}

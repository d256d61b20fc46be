// Package api provides the DocumentAPI adapter for the document-processing HTTP service.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docparse-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.DocumentAPI = (*Client)(nil)

// RequestIDHeader carries a per-request identifier for server-side correlation.
const RequestIDHeader = "X-Request-ID"

// maxResponseBytes bounds how much of a response body is read.
// Detail responses carry the full OCR text.
const maxResponseBytes = 32 << 20

// Client talks to the document-processing service over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a client for settings.BaseURL.
// The base URL is taken from settings only; the environment is never read here.
func NewClient(settings domain.ClientSettings, opts ...Option) (*Client, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		client:  &http.Client{Timeout: settings.Timeout},
		baseURL: settings.NormalisedBaseURL(),
		limiter: rate.NewLimiter(rate.Limit(settings.RequestsPerSecond), settings.Burst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Upload submits the batch as one multipart request.
func (c *Client) Upload(ctx context.Context, batch domain.UploadBatch) ([]domain.ProcessingResult, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}
	for _, f := range batch.Files {
		if _, err := os.Stat(f.Path); err != nil {
			return nil, fmt.Errorf("upload: %w", err)
		}
	}

	body, contentType := multipartBody(batch)
	// Closing the reader unblocks the writer if the request never consumed it.
	defer body.Close()

	var resp uploadResponse
	if err := c.do(ctx, http.MethodPost, "/upload", nil, body, contentType, &resp); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	results, err := resp.toDomain()
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	return results, nil
}

// Health returns the service health.
func (c *Client) Health(ctx context.Context) (*domain.HealthSnapshot, error) {
	var resp healthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, "", &resp); err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}
	health, err := resp.toDomain()
	if err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}
	return health, nil
}

// ListDocuments returns stored documents, optionally for one user.
func (c *Client) ListDocuments(ctx context.Context, username string) ([]domain.DocumentRecord, error) {
	var query url.Values
	if username != "" {
		query = url.Values{"username": []string{username}}
	}

	var resp documentsResponse
	if err := c.do(ctx, http.MethodGet, "/documents", query, nil, "", &resp); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	docs, err := resp.toDomain()
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// GetDocument returns one record with its full detail.
func (c *Client) GetDocument(ctx context.Context, id int) (*domain.DocumentRecord, error) {
	var resp documentResponse
	if err := c.do(ctx, http.MethodGet, documentPath(id), nil, nil, "", &resp); err != nil {
		return nil, fmt.Errorf("get document %d: %w", id, err)
	}
	rec, err := resp.toDomain()
	if err != nil {
		return nil, fmt.Errorf("get document %d: %w", id, err)
	}
	return rec, nil
}

// DeleteDocument removes a record. The response body is not inspected.
func (c *Client) DeleteDocument(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, documentPath(id), nil, nil, "", nil); err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}
	return nil
}

// Stats returns aggregate counts.
func (c *Client) Stats(ctx context.Context) (*domain.StatsSnapshot, error) {
	var resp statsResponse
	if err := c.do(ctx, http.MethodGet, "/stats", nil, nil, "", &resp); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	stats, err := resp.toDomain()
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return stats, nil
}

func documentPath(id int) string {
	return "/documents/" + strconv.Itoa(id)
}

// do sends one request and decodes a 2xx JSON body into out.
// out may be nil when the body is not needed.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body io.Reader,
	contentType string,
	out any,
) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	logger.Debug("api: %s %s [%s]", method, path, requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", domain.ErrTransport, err)
	}

	logger.Debug("api: %s %s -> %d (%d bytes) [%s]", method, path, resp.StatusCode, len(data), requestID)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}
	return nil
}

package reportapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"image-detection/internal/domain"
)

// issueRequest is the request shape for the image-issue endpoint.
type issueRequest struct {
	FileID string `json:"fileId"`
	UserID string `json:"userId"`
}

// HTTPStatusError captures non-2xx upstream responses with status-aware context.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("reportapi: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Reporter is the interface that wraps ReportImageIssue.
type Reporter interface {
	ReportImageIssue(ctx context.Context, fileID, userID string, creds domain.Credentials) error
}

// Client files image-issue reports with the external API. The endpoint URL and
// API key arrive per call as credentials; nothing is cached between reports.
type Client struct {
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// resolvedHTTPClient returns the configured HTTP client, or a default with a
// 10s timeout if none was set (e.g. in tests that nil out the field).
func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// ReportImageIssue POSTs the file and user identifiers to the reporting API
// so the image can be investigated.
func (c *Client) ReportImageIssue(ctx context.Context, fileID, userID string, creds domain.Credentials) error {
	apiURL := strings.TrimSpace(creds.APIURL)
	if apiURL == "" {
		return errors.New("reportapi: api url must not be empty")
	}
	if strings.TrimSpace(creds.APIKey) == "" {
		return errors.New("reportapi: api key must not be empty")
	}

	body, err := json.Marshal(issueRequest{FileID: fileID, UserID: userID})
	if err != nil {
		return fmt.Errorf("reportapi: marshal request: %w", err)
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if reqErr != nil {
		return fmt.Errorf("reportapi: create request: %w", reqErr)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", creds.APIKey)
	req.Header.Set("X-Correlation-Id", newCorrelationID())

	res, doErr := c.resolvedHTTPClient().Do(req)
	if doErr != nil {
		return fmt.Errorf("reportapi: report image issue: %w", doErr)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return &HTTPStatusError{
			StatusCode: res.StatusCode,
			URL:        apiURL,
			Body:       string(buf),
		}
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 1<<20))
	return nil
}

var newCorrelationID = func() string {
	return uuid.NewString()
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/chainalign/internal/logging"
	"github.com/aretw0/chainalign/pkg/catalog"
	"github.com/aretw0/chainalign/pkg/domain"
)

// DefaultTimeout bounds every request of a Client.
const DefaultTimeout = 30 * time.Second

// TransportError reports a failed exchange with the session service.
// Status is zero when no response was received.
type TransportError struct {
	Op     string
	Status int
	Detail string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client talks to a remote session service. It implements ports.CatalogSource and
// ports.SessionService. Requests are never retried.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithClientLogger sets a custom structured logger for the client.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves the catalog. The service may answer with a bare array of units or
// with a {"models": [...], "count": n} envelope. Any malformed unit fails the fetch.
func (c *Client) Fetch(ctx context.Context) ([]domain.Unit, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "fetch catalog", http.MethodGet, "/models", nil, &raw); err != nil {
		return nil, err
	}

	var records []map[string]any
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("failed to decode catalog: %w", err)
		}
	} else {
		var doc catalog.Document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode catalog: %w", err)
		}
		records = doc.Models
	}

	units, err := catalog.Decode(records)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Fetched catalog", "units", len(units))
	return units, nil
}

// Start implements ports.SessionService.
func (c *Client) Start(ctx context.Context, req domain.StartSessionRequest) (*domain.StartSessionResponse, error) {
	var resp domain.StartSessionResponse
	if err := c.do(ctx, "start session", http.MethodPost, "/session/start", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Process implements ports.SessionService.
func (c *Client) Process(ctx context.Context, req domain.ProcessInputRequest) (*domain.ProcessInputResponse, error) {
	var resp domain.ProcessInputResponse
	if err := c.do(ctx, "process input", http.MethodPost, "/session/process", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Vote implements ports.SessionService.
func (c *Client) Vote(ctx context.Context, req domain.VoteRequest) (*domain.VoteResponse, error) {
	var resp domain.VoteResponse
	if err := c.do(ctx, "vote", http.MethodPost, "/session/vote", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Session service request failed", "op", op, "status", resp.StatusCode)
		return &TransportError{Op: op, Status: resp.StatusCode, Detail: detail(payload)}
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}

// detail extracts {"detail": "..."} from an error body, falling back to the raw text.
func detail(payload []byte) string {
	var e ErrorResponse
	if err := json.Unmarshal(payload, &e); err == nil && e.Detail != "" {
		return e.Detail
	}
	return strings.TrimSpace(string(payload))
}

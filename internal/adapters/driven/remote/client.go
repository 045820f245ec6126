// Package remote provides the HTTP adapter for the annotation service.
// It implements the AnnotationStore, ProgressStore and SearchIndex
// driven ports against the service's JSON API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

// Default configuration values.
const (
	DefaultTimeout = 15 * time.Second

	// DefaultRequestRate throttles outbound calls so bursty UI
	// activity cannot saturate the service.
	DefaultRequestRate = 10 // requests per second

	maxErrorBody = 4 << 10
)

// Config holds configuration for the remote client.
type Config struct {
	// BaseURL is the annotation service root, e.g. https://api.example.com.
	BaseURL string

	// Token is the bearer token sent on every request.
	Token string

	// Timeout is the per-request timeout (default: 15s).
	Timeout time.Duration

	// RequestRate is the outbound requests-per-second cap
	// (default: DefaultRequestRate).
	RequestRate float64
}

// Client talks to the annotation service.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	limiter *rate.Limiter
}

// NewClient creates a remote client from configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	reqRate := cfg.RequestRate
	if reqRate <= 0 {
		reqRate = DefaultRequestRate
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		limiter: rate.NewLimiter(rate.Limit(reqRate), int(reqRate)),
	}
}

// apiError is the service's error envelope.
type apiError struct {
	Message string `json:"message"`
}

// do executes one request and decodes a JSON response into out when
// out is non-nil. Connection-level failures map to
// domain.ErrServiceUnavailable so callers can degrade gracefully.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// checkStatus maps non-2xx responses to errors. 404 maps to
// domain.ErrNotFound so idempotent callers can treat it specially.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var msg apiError
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if json.Unmarshal(data, &msg) != nil || msg.Message == "" {
		msg.Message = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg.Message)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s", domain.ErrServiceUnavailable, msg.Message)
	default:
		return fmt.Errorf("annotation service: %s (%d)", msg.Message, resp.StatusCode)
	}
}

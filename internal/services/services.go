package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/songrec/internal/shared"
)

const (
	defaultBaseURL   = "http://127.0.0.1:5000"
	defaultTimeout   = 15 * time.Second
	defaultRateLimit = 10.0
)

// ClientOpts configures a [Client]. Zero values select the defaults.
type ClientOpts struct {
	BaseURL     string
	HTTPClient  *http.Client
	RateLimit   float64 // Requests per second (default: 10)
	SearchLimit int     // Maximum names kept from /search-songs; 0 keeps all
	Logger      *log.Logger
}

// Client calls the recommendation server.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	searchLimit int
	logger      *log.Logger
}

// NewClient creates a [Client].
func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewDiscardLogger()
	}

	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		httpClient:  opts.HTTPClient,
		limiter:     rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		searchLimit: opts.SearchLimit,
		logger:      opts.Logger,
	}
}

// BaseURL returns the server address requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// SetLogger replaces the request logger. Nil discards logs.
//
// Not safe to call while requests are in flight.
func (c *Client) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = shared.NewDiscardLogger()
	}
	c.logger = logger
}

// APIError is an error reported by the recommendation server.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return shared.ErrSongNotFound
	case e.StatusCode == http.StatusServiceUnavailable,
		strings.Contains(strings.ToLower(e.Message), "not initialized"):
		return shared.ErrServiceUnavailable
	default:
		return shared.ErrAPIRequest
	}
}

// envelope holds the fields every server response shares.
type envelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

// doRequest sends body (if any) as JSON and decodes the response into result.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %w", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request", "method", method, "endpoint", endpoint, "status", resp.StatusCode, "took", time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	path, _, _ := strings.Cut(endpoint, "?")

	var env envelope
	jsonErr := json.Unmarshal(data, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Endpoint: path, StatusCode: resp.StatusCode}
		if jsonErr == nil {
			apiErr.Message = env.Error
		}
		return apiErr
	}
	if jsonErr != nil {
		return fmt.Errorf("%w: failed to decode response: %w", shared.ErrAPIRequest, jsonErr)
	}
	if env.Error != "" || (env.Success != nil && !*env.Success) {
		return &APIError{Endpoint: path, StatusCode: resp.StatusCode, Message: env.Error}
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %w", shared.ErrAPIRequest, err)
		}
	}
	return nil
}

// Ping reports whether the server answers a search request.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.SearchSongs(ctx, ""); err != nil {
		return fmt.Errorf("server at %s is not reachable: %w", c.baseURL, err)
	}
	return nil
}

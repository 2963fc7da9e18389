package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultMaxRetries is the default number of attempts per request.
const DefaultMaxRetries = 3

// DefaultRetryWait is the default initial wait between retries.
const DefaultRetryWait = 1 * time.Second

// Client is a JSON REST client for platform APIs that ship without a Go
// SDK. Transient failures are retried with exponential backoff, and error
// responses come back as typed errors from this package.
type Client struct {
	client      *http.Client
	baseURL     string
	serviceName string
	token       string
	authScheme  string
	maxRetries  int
	retryWait   time.Duration
	logger      zerolog.Logger
}

// ClientConfig holds configuration for Client.
type ClientConfig struct {
	Client      *http.Client
	BaseURL     string
	ServiceName string

	// Token is sent as "Authorization: <AuthScheme> <Token>" on every
	// request. An empty token leaves the header unset.
	Token string

	// AuthScheme defaults to "token", the scheme Gitea expects.
	AuthScheme string

	MaxRetries int
	RetryWait  time.Duration

	// Logger receives per-request debug lines. The zero value is silent.
	Logger zerolog.Logger
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		client:      cfg.Client,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		serviceName: cfg.ServiceName,
		token:       cfg.Token,
		authScheme:  cfg.AuthScheme,
		maxRetries:  cfg.MaxRetries,
		retryWait:   cfg.RetryWait,
		logger:      cfg.Logger,
	}

	if c.client == nil {
		c.client = &http.Client{Timeout: DefaultTimeout}
	}
	if c.authScheme == "" {
		c.authScheme = "token"
	}
	if c.maxRetries <= 0 {
		c.maxRetries = DefaultMaxRetries
	}
	if c.retryWait <= 0 {
		c.retryWait = DefaultRetryWait
	}

	return c
}

// Request executes an HTTP request with retries for transient errors.
// The caller owns the response body.
func (c *Client) Request(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		payload = data
	}

	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", c.authScheme+" "+c.token)
		}

		c.logger.Debug().
			Str("method", method).
			Str("url", url).
			Int("attempt", attempt+1).
			Msg("platform request")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.maxRetries-1 {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(c.retryWait * time.Duration(1<<attempt)):
				}
				continue
			}
			return nil, fmt.Errorf("%s request failed: %w", c.serviceName, err)
		}

		if retryableStatus(resp.StatusCode) && attempt < c.maxRetries-1 {
			wait := retryAfter(resp)
			if wait <= 0 {
				wait = c.retryWait * time.Duration(1<<attempt)
			}
			resp.Body.Close()
			c.logger.Debug().
				Int("status", resp.StatusCode).
				Dur("wait", wait).
				Msg("retrying platform request")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("%s request failed: %w", c.serviceName, lastErr)
}

// Get performs a GET request and decodes the response into result.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	resp, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, path, result)
}

// Post performs a POST request and decodes the response into result.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	resp, err := c.Request(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, path, result)
}

// handleResponse checks status and decodes the response body.
func (c *Client) handleResponse(resp *http.Response, path string, result any) error {
	if resp.StatusCode >= 400 {
		return c.parseError(resp, path)
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s response: %w", c.serviceName, err)
	}

	return nil
}

// parseError shapes an error response into a typed error.
func (c *Client) parseError(resp *http.Response, path string) error {
	body, _ := io.ReadAll(resp.Body)

	// Gitea-style error payloads carry a message and sometimes a list of
	// detail strings.
	var errResp struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	var message string
	if json.Unmarshal(body, &errResp) == nil {
		message = errResp.Message
		if message == "" && len(errResp.Errors) > 0 {
			message = strings.Join(errResp.Errors, "; ")
		}
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &AuthError{Service: c.serviceName, Reason: message}
	case http.StatusTooManyRequests:
		return &RateLimitError{Service: c.serviceName, RetryAfter: retryAfter(resp)}
	}

	return &APIError{
		Service:    c.serviceName,
		StatusCode: resp.StatusCode,
		Message:    message,
		Endpoint:   path,
		RequestID:  resp.Header.Get("X-Request-Id"),
	}
}

// retryAfter reads the Retry-After header. Zero when absent or unparsable.
func retryAfter(resp *http.Response) time.Duration {
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// retryableStatus reports whether a status code is worth another attempt.
func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

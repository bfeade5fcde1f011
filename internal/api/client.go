// Package api is the HTTP client for the storefront API. It owns request
// building, bearer-token injection, response decoding and error
// normalization; all pricing, tax and inventory truth stays on the server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxBodySize = 4 << 20 // 4MiB
)

// TokenSource supplies the current access token. An empty string means the
// caller is anonymous; authenticated requests are then sent without
// credentials and the server is expected to reject them.
type TokenSource interface {
	Token() string
}

// UnauthorizedObserver is notified when any response comes back with status
// 401, regardless of whether the request carried credentials. Observers are
// invoked synchronously before the error is returned to the caller.
type UnauthorizedObserver interface {
	HandleUnauthorized()
}

// Config configures the client.
type Config struct {
	// BaseURL is the root of the storefront API (e.g. http://localhost:3001).
	BaseURL string
	// HTTPClient is used to execute requests. When nil, a default client with
	// a conservative timeout is used.
	HTTPClient *http.Client
	// TokenSource supplies bearer tokens for authenticated requests. May be
	// nil for a purely anonymous client.
	TokenSource TokenSource
	// Logger receives per-request debug lines. Defaults to a no-op logger.
	Logger *zerolog.Logger
	// MaxBodyBytes caps response bodies to prevent memory exhaustion.
	MaxBodyBytes int64
}

// Client talks to the storefront API. It performs a single attempt per
// request; retries and recovery are the caller's concern.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	tokens       TokenSource
	log          zerolog.Logger
	maxBodyBytes int64

	mu        sync.Mutex
	observers []UnauthorizedObserver
}

// New creates a storefront API client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api: BaseURL must be a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api: BaseURL scheme must be http or https")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodySize
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	return &Client{
		baseURL:      baseURL,
		httpClient:   httpClient,
		tokens:       cfg.TokenSource,
		log:          log,
		maxBodyBytes: maxBodyBytes,
	}, nil
}

// SubscribeUnauthorized registers an observer for 401 responses. The session
// store subscribes itself so an expired token cascades to a logged-out state.
func (c *Client) SubscribeUnauthorized(o UnauthorizedObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

func (c *Client) notifyUnauthorized() {
	c.mu.Lock()
	observers := make([]UnauthorizedObserver, len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()
	for _, o := range observers {
		o.HandleUnauthorized()
	}
}

// RequestOptions modifies a single request.
type RequestOptions struct {
	// Body is JSON-encoded when non-nil.
	Body any
	// RequiresAuth attaches the current bearer token, when one exists.
	RequiresAuth bool
	// Header entries are added to the request after the defaults.
	Header http.Header
}

// Do executes one request and decodes a JSON response into out when out is
// non-nil. Non-success statuses return *Error; a 401 additionally notifies
// the subscribed observers before Do returns. A response that declares JSON
// but fails to parse leaves out untouched rather than failing the call.
func (c *Client) Do(ctx context.Context, method, path string, opts RequestOptions, out any) error {
	reqURL := c.baseURL + "/" + strings.TrimLeft(path, "/")

	var bodyReader io.Reader
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("api: marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range opts.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if opts.RequiresAuth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("api request")

	// Token expired/invalid, or the user was never logged in. Observers run
	// before the error surfaces so the session is already cleared when the
	// caller handles the failure.
	if resp.StatusCode == http.StatusUnauthorized {
		c.notifyUnauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Message:    extractMessage(body, isJSON),
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	if out != nil && isJSON {
		// Parse failures degrade to an empty result rather than an error.
		_ = json.Unmarshal(body, out)
	}
	return nil
}

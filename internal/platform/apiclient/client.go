package apiclient

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"impactAdminWs/internal/shared/auth"
)

const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultTimeout = 10 * time.Second
	// LoginRoute is where operators land once their session is no longer valid.
	LoginRoute = "/login"
)

// Client wraps http.Client with the base URL, bearer credential and 401 handling
// shared by every resource service.
type Client struct {
	baseURL        string
	client         *http.Client
	tokens         auth.TokenStore
	onUnauthorized func()
	requestID      func() string
	logger         *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithTimeout bounds each round trip; it is a transport guard only.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeoutOrDefault(timeout)
	}
}

// WithUnauthorizedHandler registers the hook run after a 401 cleared the token.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func New(baseURL string, tokens auth.TokenStore, opts ...Option) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if tokens == nil {
		tokens = auth.NewMemoryTokenStore("")
	}
	c := &Client{
		baseURL:   trimmed,
		client:    &http.Client{Timeout: DefaultTimeout},
		tokens:    tokens,
		requestID: uuid.NewString,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL reports the API origin requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Tokens exposes the store so login flows can persist the issued token.
func (c *Client) Tokens() auth.TokenStore { return c.tokens }

// NewRequest builds a request for endpoint relative to the base URL.
func (c *Client) NewRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	return http.NewRequestWithContext(ctx, method, url, body)
}

// Do attaches the bearer token and request id, performs the call and applies
// the session-wide 401 policy. The caller owns the response body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if token := strings.TrimSpace(c.tokens.Token()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", c.requestID())
	}

	res, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", slog.String("method", req.Method), slog.String("path", req.URL.Path), slog.Any("error", err))
		return nil, err
	}
	c.logger.Debug("api response", slog.String("method", req.Method), slog.String("path", req.URL.Path), slog.Int("status", res.StatusCode))

	if res.StatusCode == http.StatusUnauthorized {
		c.tokens.ClearToken()
		c.logger.Info("api session rejected", slog.String("path", req.URL.Path), slog.String("redirect", LoginRoute))
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}
	return res, nil
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return DefaultTimeout
	}
	return value
}

// Package openfda provides taxonomy and corpus indexes backed by the openFDA
// device endpoints.
package openfda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/poiesic/taxonomist/index"
)

const (
	DefaultBaseURL   = "https://api.fda.gov"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 4 // requests per second
	DefaultLimit     = 100

	classificationPath = "/device/classification.json"
	clearancePath      = "/device/510k.json"
)

// Client issues rate-limited keyword queries against the openFDA device endpoints.
type Client struct {
	baseURL    string
	apiKey     string
	limit      int
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithAPIKey sets the API key sent with every request. Requests are anonymous without one.
func WithAPIKey(apiKey string) ClientOption {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLimit sets the number of records requested per query
func WithLimit(limit int) ClientOption {
	return func(c *Client) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a new openFDA client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		limit:   DefaultLimit,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Taxonomy returns the classification endpoint as a taxonomy index.
func (c *Client) Taxonomy() *Taxonomy {
	return &Taxonomy{client: c}
}

// Corpus returns the 510(k) clearance endpoint as a corpus index.
func (c *Client) Corpus() *Corpus {
	return &Corpus{client: c}
}

type response[T any] struct {
	Meta struct {
		Results struct {
			Skip  int `json:"skip"`
			Limit int `json:"limit"`
			Total int `json:"total"`
		} `json:"results"`
	} `json:"meta"`
	Results []T `json:"results"`
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// query performs one rate-limited search. It returns errNoMatches when the
// service reports an empty result set.
func query[T any](ctx context.Context, c *Client, path, search string, limit int) (*response[T], error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, index.Network("rate limit wait", err)
	}

	params := url.Values{}
	params.Set("search", search)
	params.Set("limit", strconv.Itoa(limit))
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, index.BadQuery(fmt.Sprintf("failed to create request: %v", err))
	}

	c.logger.Debug("openfda request", "path", path, "search", search, "limit", limit)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, index.Network("failed to execute request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var result response[T]
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, index.Network("failed to decode response", err)
	}
	return &result, nil
}

// errNoMatches marks a 404 NOT_FOUND answer, which openFDA uses for empty result sets.
var errNoMatches = errors.New("no matches")

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var parsed errorBody
	message := string(body)
	if json.Unmarshal(body, &parsed) == nil && parsed.Error.Message != "" {
		message = parsed.Error.Message
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errNoMatches
	case resp.StatusCode == http.StatusTooManyRequests:
		return index.RateLimited(message)
	case resp.StatusCode >= 500:
		return index.Network(fmt.Sprintf("status %d", resp.StatusCode), errors.New(message))
	default:
		return index.BadQuery(fmt.Sprintf("status %d: %s", resp.StatusCode, message))
	}
}

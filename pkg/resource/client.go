package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

const (
	// RequestIDHeader carries a unique id for every request.
	RequestIDHeader = "X-Request-Id"

	// ModeHeader carries the fetch mode.
	ModeHeader = "Sec-Fetch-Mode"

	contentTypeJSON = "application/json"

	// maxErrorBody caps how much of a non-2xx body is kept on HTTPError.
	maxErrorBody = 64 << 10
)

// responseKind selects how send consumes a response.
type responseKind int

const (
	expectJSON responseKind = iota
	expectStatus
)

// Client issues requests against a single base URL. It is safe for
// concurrent use; every call is independent.
type Client struct {
	config  ClientConfig
	baseURL string
	client  *http.Client
	logger  hclog.Logger
}

// New creates a Client from cfg.
func New(cfg ClientConfig) (*Client, error) {
	// Apply defaults
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	if cfg.BatchConcurrency == 0 {
		cfg.BatchConcurrency = defaultBatchConcurrency
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	headers := make(map[string]string, len(cfg.DefaultHeaders))
	for k, v := range cfg.DefaultHeaders {
		headers[k] = v
	}
	cfg.DefaultHeaders = headers

	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		// Copy so instrumentation never leaks into the caller's client.
		c := *cfg.HTTPClient
		httpClient = &c
	}
	if cfg.Metrics != nil {
		httpClient.Transport = cfg.Metrics.instrument(transportOf(httpClient))
	}

	return &Client{
		config:  cfg,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  httpClient,
		logger:  cfg.Logger.Named("resource-client"),
	}, nil
}

func transportOf(c *http.Client) http.RoundTripper {
	if c.Transport != nil {
		return c.Transport
	}
	return http.DefaultTransport
}

// Config returns a copy of the configuration the client was built with.
func (c *Client) Config() ClientConfig {
	cfg := c.config
	cfg.DefaultHeaders = make(map[string]string, len(c.config.DefaultHeaders))
	for k, v := range c.config.DefaultHeaders {
		cfg.DefaultHeaders[k] = v
	}
	return cfg
}

// BaseURL returns the base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Endpoint binds the CRUD verbs to resourcePath, e.g. "people" or "/people".
func (c *Client) Endpoint(resourcePath string) *Endpoint {
	return &Endpoint{
		client:       c,
		basePath:     c.baseURL,
		resourceName: strings.Trim(resourcePath, "/"),
	}
}

// Do sends a single request to route, relative to the base URL. The verbs on
// Endpoint are built on it; hosts can use it for routes that do not fit the
// resource shape.
func (c *Client) Do(ctx context.Context, method, route string, opts ...Option) (*Result, error) {
	target := c.baseURL + "/" + strings.TrimLeft(route, "/")
	return c.send(ctx, method, target, newRequestOptions(opts), expectJSON)
}

// send executes one request. It never retries. In JSON mode every 2xx body
// must be JSON, an empty one included; only 204 No Content is left unparsed.
func (c *Client) send(ctx context.Context, method, target string, o *RequestOptions, kind responseKind) (*Result, error) {
	target = withQuery(target, o.Query)

	if o.Cancel.Cancelled() {
		return nil, &CancelledError{URL: target, Err: context.Canceled}
	}
	if o.Mode != "" && !isMode(o.Mode) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, o.Mode)
	}
	if o.Cache != "" && !isCacheMode(o.Cache) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCacheMode, o.Cache)
	}

	ctx, cancel := context.WithCancel(ctx)
	stop := o.Cancel.bind(cancel)
	release := func() {
		stop()
		cancel()
	}

	req, err := c.newRequest(ctx, method, target, o)
	if err != nil {
		release()
		return nil, err
	}

	logger := c.logger.With(
		"method", method,
		"url", target,
		"request_id", req.Header.Get(RequestIDHeader),
	)
	logger.Debug("sending request")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		ctxErr := ctx.Err()
		release()
		if ctxErr != nil {
			logger.Debug("request cancelled", "error", ctxErr)
			return nil, &CancelledError{URL: target, Err: ctxErr}
		}
		logger.Debug("request failed", "error", err)
		return nil, &NetworkError{URL: target, Err: err}
	}

	logger.Debug("received response",
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	result := &Result{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		URL:        target,
	}

	// Handle HTTP errors
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		release()
		return nil, &HTTPError{Status: resp.StatusCode, URL: target, Body: body}
	}

	switch {
	case kind == expectStatus:
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		release()

	case o.ReturnRaw:
		resp.Body = &releaseOnClose{ReadCloser: resp.Body, release: release}
		result.Response = resp

	default:
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		ctxErr := ctx.Err()
		release()
		if err != nil {
			if ctxErr != nil {
				return nil, &CancelledError{URL: target, Err: ctxErr}
			}
			return nil, &NetworkError{URL: target, Err: fmt.Errorf("failed to read response: %w", err)}
		}

		result.Body = body
		if resp.StatusCode != http.StatusNoContent {
			var data any
			if err := json.Unmarshal(body, &data); err != nil {
				logger.Debug("response is not valid JSON", "error", err)
				return nil, &ParseError{URL: target, RawBody: body, Err: err}
			}
			result.Data = data
		}
	}

	if o.Callback != nil {
		o.Callback(result)
	}

	return result, nil
}

// newRequest builds the outgoing request with headers merged in order of
// precedence: defaults, mode, cache, per-call headers.
func (c *Client) newRequest(ctx context.Context, method, target string, o *RequestOptions) (*http.Request, error) {
	var bodyReader io.Reader
	if o.Body != nil {
		bodyBytes, err := json.Marshal(o.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range c.config.DefaultHeaders {
		req.Header.Set(k, v)
	}

	mode := c.config.DefaultMode
	if o.Mode != "" {
		mode = o.Mode
	}
	if mode != "" {
		req.Header.Set(ModeHeader, mode)
	}

	cache := c.config.DefaultCache
	if o.Cache != "" {
		cache = o.Cache
	}
	for k, v := range cacheHeaders[cache] {
		req.Header.Set(k, v)
	}

	for k, v := range o.Headers {
		req.Header.Set(k, v)
	}

	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", contentTypeJSON)
	}
	if o.Body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}

	if c.config.Authenticator != nil {
		if err := c.config.Authenticator.Authenticate(req); err != nil {
			return nil, fmt.Errorf("failed to authenticate request: %w", err)
		}
	}

	return req, nil
}

package hub

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/Iron-Ham/hubview/internal/errors"
	"github.com/Iron-Ham/hubview/internal/logging"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 16 << 20

// HubFetcher retrieves the top-level hub document.
type HubFetcher interface {
	FetchHub(ctx context.Context) (*Document, error)
}

// CollectionFetcher retrieves one collection by reference.
type CollectionFetcher interface {
	FetchCollection(ctx context.Context, href string) (*Collection, error)
}

// Client fetches hub and collection documents over HTTP. It never retries;
// every failure is returned to the caller as a *errors.FetchError.
type Client struct {
	hubURL     *url.URL
	httpClient *http.Client
	userAgent  string
	logger     *logging.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *logging.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for the hub at hubURL, which must be an
// absolute http(s) URL.
func NewClient(hubURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(hubURL)
	if err != nil {
		return nil, errors.NewValidationError("invalid hub url").
			WithField("hub.url").WithValue(hubURL).WithCause(err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.NewValidationError("hub url must be absolute http or https").
			WithField("hub.url").WithValue(hubURL)
	}

	c := &Client{
		hubURL:     u,
		httpClient: &http.Client{},
		userAgent:  "hubview",
		logger:     logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent("hub-client")
	return c, nil
}

// HubURL returns the hub endpoint.
func (c *Client) HubURL() string {
	return c.hubURL.String()
}

// ResolveHref resolves a collection reference against the hub URL.
// Absolute references are returned unchanged.
func (c *Client) ResolveHref(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return c.hubURL.ResolveReference(ref).String(), nil
}

// FetchHub retrieves and decodes the hub document. Transport failures,
// absent or non-2xx responses, and undecodable bodies all fail with a
// hub-scoped FetchError.
func (c *Client) FetchHub(ctx context.Context) (*Document, error) {
	target := c.hubURL.String()

	body, err := c.get(ctx, errors.ScopeHub, target)
	if err != nil {
		return nil, err
	}

	doc, err := DecodeDocument(body)
	if err != nil {
		return nil, errors.NewFetchError(errors.ScopeHub, errors.KindMalformed, target, err)
	}

	c.logger.Debug("hub fetched", "url", target, "rows", len(doc.Components))
	return doc, nil
}

// FetchCollection retrieves and decodes one collection. Failures are
// collection-scoped FetchErrors.
func (c *Client) FetchCollection(ctx context.Context, href string) (*Collection, error) {
	if href == "" {
		return nil, errors.NewFetchError(errors.ScopeCollection, errors.KindMalformed, href, nil).
			WithMessage("row has no items and no href")
	}

	target, err := c.ResolveHref(href)
	if err != nil {
		return nil, errors.NewFetchError(errors.ScopeCollection, errors.KindMalformed, href, err).
			WithMessage("invalid collection href")
	}

	body, err := c.get(ctx, errors.ScopeCollection, target)
	if err != nil {
		return nil, err
	}

	col, err := DecodeCollection(body)
	if err != nil {
		return nil, errors.NewFetchError(errors.ScopeCollection, errors.KindMalformed, target, err)
	}

	c.logger.Debug("collection fetched", "url", target, "items", len(col.Items))
	return col, nil
}

// get performs a GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, scope errors.Scope, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.NewFetchError(scope, errors.KindTransport, target, err).
			WithMessage("failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			err = errors.NewTimeoutError("GET "+target, c.httpClient.Timeout).WithCause(err)
		}
		return nil, errors.NewFetchError(scope, errors.KindTransport, target, err)
	}
	if resp == nil {
		return nil, errors.NewFetchError(scope, errors.KindHTTP, target, errors.ErrNoResponse)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("response received",
		"scope", scope.String(),
		"url", target,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, errors.NewFetchError(scope, errors.KindHTTP, target, nil).
			WithStatusCode(resp.StatusCode).
			WithMessage(fmt.Sprintf("unsuccessful http status %q", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.NewFetchError(scope, errors.KindTransport, target, err).
			WithMessage("failed to read response body")
	}
	return body, nil
}

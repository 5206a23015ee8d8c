package apiclient

import (
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// RequestOption adjusts a single call
type RequestOption func(*requestConfig)

type requestConfig struct {
	requiresAuth bool
	isFormData   bool
	headers      http.Header
	query        url.Values
}

func newRequestConfig(opts []RequestOption) *requestConfig {
	cfg := &requestConfig{
		requiresAuth: true,
		headers:      make(http.Header),
		query:        make(url.Values),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithoutAuth sends the request without the bearer token.
// The static Basic-Auth credential is attached instead, when configured.
func WithoutAuth() RequestOption {
	return func(c *requestConfig) {
		c.requiresAuth = false
	}
}

// AsFormData marks the body as multipart. Passing a *FormData body implies it.
func AsFormData() RequestOption {
	return func(c *requestConfig) {
		c.isFormData = true
	}
}

// WithHeader sets a custom header on the request
func WithHeader(key, value string) RequestOption {
	return func(c *requestConfig) {
		c.headers.Set(key, value)
	}
}

// WithQuery adds a query parameter to the request URL
func WithQuery(key, value string) RequestOption {
	return func(c *requestConfig) {
		c.query.Add(key, value)
	}
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying transport client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithTimeout sets the overall per-request timeout. It applies to a copy of the transport client,
// so the order relative to WithHTTPClient does not matter and the passed client is left as is.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = &timeout
	}
}

// WithBasicAuth sets the static credential used for unauthenticated endpoints
func WithBasicAuth(user, password string) Option {
	return func(c *Client) {
		c.basicUser = user
		c.basicPassword = password
	}
}

// WithNotifier sets the sink for global notifications
func WithNotifier(notifier Notifier) Option {
	return func(c *Client) {
		c.notifier = notifier
	}
}

// WithLogger sets the client logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMeterProvider sets the provider used for request metrics
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(c *Client) {
		c.meterProvider = provider
	}
}

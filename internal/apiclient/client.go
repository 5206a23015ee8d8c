// Package apiclient is the single outbound path to the seller API.
// It attaches credentials and turns every failure into an *Error.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/seller-portal/internal/dto"
	"github.com/prperemyshlev/seller-portal/internal/session"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const (
	// RequestIDHeader carries the per-request correlation id
	RequestIDHeader = "X-Request-ID"

	meterName = "github.com/prperemyshlev/seller-portal/internal/apiclient"
)

// Envelope is the decoded success body
type Envelope = dto.Envelope

// Pagination is the page metadata of list responses
type Pagination = dto.Pagination

// Credentials is the token source consulted for authenticated requests.
// *session.Session satisfies it.
type Credentials interface {
	Token(ctx context.Context) (string, bool)
	Clear(ctx context.Context)
}

// Client performs API calls. It is safe for concurrent use.
type Client struct {
	http          *http.Client
	baseURL       string
	credentials   Credentials
	notifier      Notifier
	logger        *zap.Logger
	basicUser     string
	basicPassword string
	meterProvider metric.MeterProvider
	timeout       *time.Duration

	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, credentials Credentials, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q is not absolute", baseURL)
	}

	if credentials == nil {
		credentials = noCredentials{}
	}

	c := &Client{
		http:        &http.Client{},
		baseURL:     strings.TrimRight(baseURL, "/"),
		credentials: credentials,
		notifier:    nopNotifier{},
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.http
		hc.Timeout = *c.timeout
		c.http = &hc
	}
	if c.meterProvider == nil {
		c.meterProvider = otel.GetMeterProvider()
	}

	meter := c.meterProvider.Meter(meterName)
	c.requests, err = meter.Int64Counter("apiclient.requests",
		metric.WithDescription("Outbound API requests by method, status and error kind"))
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}
	c.duration, err = meter.Float64Histogram("apiclient.request.duration",
		metric.WithDescription("Outbound API request latency"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return c, nil
}

// BaseURL returns the API root the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Envelope, error) {
	return c.Request(ctx, http.MethodGet, path, nil, opts...)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Envelope, error) {
	return c.Request(ctx, http.MethodPost, path, body, opts...)
}

// Put performs a PUT request
func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Envelope, error) {
	return c.Request(ctx, http.MethodPut, path, body, opts...)
}

// Patch performs a PATCH request
func (c *Client) Patch(ctx context.Context, path string, body any, opts ...RequestOption) (*Envelope, error) {
	return c.Request(ctx, http.MethodPatch, path, body, opts...)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*Envelope, error) {
	return c.Request(ctx, http.MethodDelete, path, nil, opts...)
}

// Request performs one API call. body is JSON-encoded unless it is a *FormData.
// Any returned error is an *Error.
func (c *Client) Request(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Envelope, error) {
	cfg := newRequestConfig(opts)
	requestID := uuid.NewString()
	start := time.Now()

	env, status, apiErr := c.do(ctx, method, path, body, cfg, requestID)
	c.record(ctx, method, path, status, apiErr, time.Since(start), requestID)

	if apiErr != nil {
		return nil, apiErr
	}
	return env, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, cfg *requestConfig, requestID string) (*Envelope, int, *Error) {
	if !supportedMethod(method) {
		c.logger.Warn("Unsupported request method", zap.String("method", method))
		return nil, 0, newError(KindUnknown, MsgRequestFailed, 0, nil)
	}

	payload, err := encodeBody(body, cfg.isFormData)
	if err != nil {
		c.logger.Warn("Failed to encode request body", zap.String("path", path), zap.Error(err))
		return nil, 0, newError(KindUnknown, MsgRequestFailed, 0, nil)
	}

	target, err := c.endpoint(path, cfg.query)
	if err != nil {
		c.logger.Warn("Failed to build request url", zap.String("path", path), zap.Error(err))
		return nil, 0, newError(KindUnknown, MsgRequestFailed, 0, nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload.reader)
	if err != nil {
		c.logger.Warn("Failed to create request", zap.String("path", path), zap.Error(err))
		return nil, 0, newError(KindUnknown, MsgRequestFailed, 0, nil)
	}

	for key, values := range cfg.headers {
		req.Header[key] = append([]string(nil), values...)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	switch {
	case payload.form:
		// the multipart boundary belongs to the encoder, never to the caller
		req.Header.Del("Content-Type")
		req.Header.Set("Content-Type", payload.contentType)
	case payload.contentType != "" && req.Header.Get("Content-Type") == "":
		req.Header.Set("Content-Type", payload.contentType)
	}

	c.authorize(ctx, req, cfg.requiresAuth)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, newError(KindUnknown, MsgRequestFailed, 0, nil)
		}
		apiErr := newError(KindNetwork, MsgNetwork, 0, nil)
		c.notify(ctx, apiErr)
		return nil, 0, apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("Failed to read response body", zap.String("path", path), zap.Error(err))
		return nil, resp.StatusCode, newError(KindUnknown, MsgRequestFailed, resp.StatusCode, nil)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		env, err := decodeEnvelope(raw, resp.StatusCode)
		if err != nil {
			c.logger.Warn("Failed to decode response envelope", zap.String("path", path), zap.Error(err))
			return nil, resp.StatusCode, newError(KindUnknown, MsgRequestFailed, resp.StatusCode, raw)
		}
		return env, resp.StatusCode, nil
	}

	return nil, resp.StatusCode, c.normalize(ctx, resp.StatusCode, raw)
}

// authorize attaches the bearer token for authenticated calls and the static credential otherwise
func (c *Client) authorize(ctx context.Context, req *http.Request, requiresAuth bool) {
	if !requiresAuth {
		if c.basicUser != "" {
			req.SetBasicAuth(c.basicUser, c.basicPassword)
		}
		return
	}

	token, ok := c.credentials.Token(ctx)
	if !ok {
		return
	}
	if session.IsTokenExpired(token) {
		c.logger.Debug("Stored token expired, sending request without it")
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

// normalize maps a non-2xx response to an *Error, applying the session and notification side effects
func (c *Client) normalize(ctx context.Context, status int, body []byte) *Error {
	switch status {
	case http.StatusUnauthorized:
		message := summaryMessage(body)
		if isCredentialRejection(message) {
			return newError(KindCredentialsRejected, message, status, body)
		}
		c.credentials.Clear(ctx)
		return newError(KindSessionExpired, MsgSessionExpired, status, body)

	case http.StatusBadRequest:
		message := summaryMessage(body)
		if len(fieldMessages(body)) > 0 {
			if message == "" {
				message = MsgValidation
			}
			return newError(KindValidation, message, status, body)
		}
		if message == "" {
			message = MsgRequestFailed
		}
		return newError(KindUnknown, message, status, body)

	case http.StatusForbidden:
		return newError(KindForbidden, MsgForbidden, status, body)

	case http.StatusNotFound:
		return newError(KindNotFound, MsgNotFound, status, body)

	case http.StatusInternalServerError:
		apiErr := newError(KindServer, MsgServer, status, body)
		c.notify(ctx, apiErr)
		return apiErr

	default:
		return newError(KindUnknown, MsgRequestFailed, status, body)
	}
}

func (c *Client) notify(ctx context.Context, apiErr *Error) {
	c.notifier.Notify(ctx, Notification{Kind: apiErr.Kind, Message: apiErr.Message, Status: apiErr.Status})
}

func (c *Client) record(ctx context.Context, method, path string, status int, apiErr *Error, elapsed time.Duration, requestID string) {
	outcome := "ok"
	if apiErr != nil {
		outcome = apiErr.Kind.String()
	}

	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.Int("status", status),
		attribute.String("kind", outcome),
	)
	c.requests.Add(ctx, 1, attrs)
	c.duration.Record(ctx, elapsed.Seconds(), attrs)

	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", elapsed),
		zap.String("request_id", requestID),
	}
	if apiErr != nil {
		fields = append(fields, zap.Stringer("kind", apiErr.Kind), zap.String("error", apiErr.Message))
		c.logger.Warn("API request failed", fields...)
		return
	}
	c.logger.Debug("API request", fields...)
}

func (c *Client) endpoint(path string, query url.Values) (string, error) {
	u, err := url.Parse(c.baseURL + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		q := u.Query()
		for key, values := range query {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

type encodedBody struct {
	reader      io.Reader
	contentType string
	form        bool
}

var errFormDataBody = errors.New("form-data request requires a *FormData body")

func encodeBody(body any, isFormData bool) (encodedBody, error) {
	if form, ok := body.(*FormData); ok {
		if form == nil {
			form = NewFormData()
		}
		buf, contentType, err := form.encode()
		if err != nil {
			return encodedBody{}, err
		}
		return encodedBody{reader: buf, contentType: contentType, form: true}, nil
	}

	if isFormData {
		return encodedBody{}, errFormDataBody
	}
	if body == nil {
		return encodedBody{}, nil
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return encodedBody{}, fmt.Errorf("failed to marshal body: %w", err)
	}
	return encodedBody{reader: bytes.NewReader(raw), contentType: "application/json"}, nil
}

func decodeEnvelope(raw []byte, status int) (*Envelope, error) {
	env := &Envelope{Status: status}
	if len(bytes.TrimSpace(raw)) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(raw, env); err != nil {
		return nil, err
	}
	if env.Status == 0 {
		env.Status = status
	}
	return env, nil
}

func supportedMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// DecodeData unmarshals the envelope's data into T.
// A missing or malformed data field is a KindUnknown *Error.
func DecodeData[T any](env *Envelope) (T, error) {
	var out T
	if env == nil || len(env.Data) == 0 {
		return out, newError(KindUnknown, MsgRequestFailed, 0, nil)
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, newError(KindUnknown, MsgRequestFailed, env.Status, env.Data)
	}
	return out, nil
}

type noCredentials struct{}

func (noCredentials) Token(context.Context) (string, bool) { return "", false }
func (noCredentials) Clear(context.Context)                {}

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
	"time"

	pkgerrors "github.com/SalisMR/fuscao-frontend/pkg/errors"
	"github.com/SalisMR/fuscao-frontend/pkg/logger"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

const (
	defaultTimeout             = 10 * time.Second
	defaultRetryAttempts       = 3
	defaultRetryBaseDelay      = 250 * time.Millisecond
	errorBodyReadLimit   int64 = 1024
)

// TokenSource yields the current bearer credential, or "" when no
// session is active.
type TokenSource func() string

// Client is the HTTP client for the workshop backend. Every call goes
// through doJSON so auth, correlation IDs, retries and error mapping
// live in one place.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	logger         *logger.Logger
	token          TokenSource
	retryAttempts  uint64
	retryBaseDelay time.Duration
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithTokenSource wires the session credential into outgoing requests.
func WithTokenSource(source TokenSource) Option {
	return func(c *Client) {
		if source != nil {
			c.token = source
		}
	}
}

// WithLogger enables structured request logging.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

// WithRetry tunes the retry policy applied to idempotent reads.
func WithRetry(attempts int, baseDelay time.Duration) Option {
	return func(c *Client) {
		if attempts >= 0 {
			c.retryAttempts = uint64(attempts)
		}
		if baseDelay > 0 {
			c.retryBaseDelay = baseDelay
		}
	}
}

// NewClient builds a backend client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "api base URL is required")
	}

	client := &Client{
		baseURL:        trimmed,
		httpClient:     &http.Client{Timeout: defaultTimeout},
		token:          func() string { return "" },
		retryAttempts:  defaultRetryAttempts,
		retryBaseDelay: defaultRetryBaseDelay,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

func (c *Client) buildURL(path string, query url.Values) string {
	full := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	return full
}

// doJSON executes one request and decodes the JSON response into out
// (skipped when out is nil). GET requests are retried on transport
// errors and 5xx responses; everything else runs exactly once because
// the backend has no idempotency tokens.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request body")
		}
		payload = encoded
	}

	attempt := func(ctx context.Context) error {
		return c.doOnce(ctx, method, path, query, payload, out)
	}

	if method != http.MethodGet || c.retryAttempts == 0 {
		return attempt(ctx)
	}

	backoff := retry.WithMaxRetries(c.retryAttempts, retry.NewExponential(c.retryBaseDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := attempt(ctx)
		if err == nil {
			return nil
		}
		if typed := pkgerrors.As(err); typed != nil && typed.Retryable() {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, payload []byte, out any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, query), reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log(ctx, "request", method, path, requestID, nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		wrapped := pkgerrors.Wrap(pkgerrors.CodeDependency, err, "servidor indisponível, tente novamente")
		c.log(ctx, "error", method, path, requestID, wrapped)
		return wrapped
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.errorFromResponse(resp)
		c.log(ctx, "error", method, path, requestID, apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response")
		}
	}
	return nil
}

// doBinary fetches a non-JSON payload, used for the PDF endpoints.
func (c *Client) doBinary(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, nil), reader)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log(ctx, "request", method, path, requestID, nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		wrapped := pkgerrors.Wrap(pkgerrors.CodeDependency, err, "servidor indisponível, tente novamente")
		c.log(ctx, "error", method, path, requestID, wrapped)
		return nil, wrapped
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.errorFromResponse(resp)
		c.log(ctx, "error", method, path, requestID, apiErr)
		return nil, apiErr
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read response body")
	}
	return raw, nil
}

// errorFromResponse maps a non-2xx response to the domain error
// taxonomy, surfacing the backend's own message when it sent one.
func (c *Client) errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	message := ""
	var envelope struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		switch {
		case envelope.Msg != "":
			message = envelope.Msg
		case envelope.Message != "":
			message = envelope.Message
		case envelope.Error != "":
			message = envelope.Error
		}
	}

	code := domainCodeForStatus(resp.StatusCode)
	cause := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	return pkgerrors.Wrap(code, cause, message)
}

func domainCodeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusTooManyRequests:
		return pkgerrors.CodeRateLimit
	case http.StatusBadRequest:
		return pkgerrors.CodeValidation
	default:
		if status >= 400 && status < 500 {
			return pkgerrors.CodeValidation
		}
		return pkgerrors.CodeDependency
	}
}

func (c *Client) log(ctx context.Context, phase, method, path, requestID string, err error) {
	if c == nil || c.logger == nil {
		return
	}
	ctx = c.logger.WithFields(ctx, map[string]any{
		"method": method,
		"path":   path,
		"phase":  phase,
	})
	ctx = c.logger.WithRequestID(ctx, requestID)
	if phase == "error" {
		c.logger.Error(ctx, fmt.Sprintf("api %s %s", method, path), err)
		return
	}
	c.logger.Info(ctx, fmt.Sprintf("api %s %s", method, path))
}

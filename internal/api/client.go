package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MichalMitros/crm-console/internal/platform/metrics"
)

// AuthScheme is format of Authorization header value.
type AuthScheme string

const (
	// AuthRaw sends token as it is.
	AuthRaw AuthScheme = "raw"
	// AuthBearer sends token as "Bearer <token>".
	AuthBearer AuthScheme = "bearer"
)

const contentTypeJSON = "application/json"

// TokenSource provides current credential token. Empty token means there is no session.
type TokenSource interface {
	Token() string
}

// Option is custom configuration of Client.
type Option func(c *Client)

// Client builds http requests to CRM API and decodes its responses.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	tokens    TokenSource
	scheme    AuthScheme
	metrics   *metrics.Metrics
}

// NewClient returns new Client calling API under baseURL.
func NewClient(client *http.Client, baseURL, userAgent string, ops ...Option) *Client {
	c := &Client{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		scheme:    AuthRaw,
	}

	for _, op := range ops {
		op(c)
	}

	return c
}

// request describes single API call.
type request struct {
	endpoint string
	method   string
	path     string
	query    url.Values
	body     any
	auth     bool
	timeout  time.Duration
}

// do sends the request and decodes response body into out.
// When out is *[]byte raw body is returned.
func (c *Client) do(ctx context.Context, r request, out any) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return fmt.Errorf("can't build http request: %w", err)
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.observe(r.endpoint, "none", started)
		return &Error{Kind: ErrTransport, Endpoint: r.endpoint, Err: err}
	}
	defer resp.Body.Close()

	c.observe(r.endpoint, strconv.Itoa(resp.StatusCode/100)+"xx", started)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: ErrTransport, Endpoint: r.endpoint, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(r.endpoint, resp.StatusCode, body)
	}

	return decodeBody(r.endpoint, body, out)
}

func (c *Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("can't marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept", contentTypeJSON)
	req.Header.Add("User-Agent", c.userAgent)
	if r.body != nil {
		req.Header.Add("Content-Type", contentTypeJSON)
	}
	if r.auth {
		if auth := c.authorization(); auth != "" {
			req.Header.Add("Authorization", auth)
		}
	}

	return req, nil
}

// authorization returns Authorization header value read from token source at call time.
func (c *Client) authorization() string {
	if c.tokens == nil {
		return ""
	}

	token := c.tokens.Token()
	if token == "" {
		return ""
	}

	if c.scheme == AuthBearer {
		return "Bearer " + token
	}
	return token
}

func (c *Client) observe(endpoint, status string, started time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.APIRequestDuration.WithLabelValues(endpoint, status).Observe(time.Since(started).Seconds())
}

func statusError(endpoint string, status int, body []byte) error {
	kind := ErrServer
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		kind = ErrUnauthorized
	}

	return &Error{
		Kind:     kind,
		Endpoint: endpoint,
		Status:   status,
		Message:  serverMessage(body),
	}
}

// serverMessage extracts message from error response body, if there is any.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

func decodeBody(endpoint string, body []byte, out any) error {
	if out == nil {
		return nil
	}

	if raw, ok := out.(*[]byte); ok {
		*raw = body
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: ErrDecode, Endpoint: endpoint, Err: err}
	}

	return nil
}

// WithTokenSource sets source of Authorization header.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithAuthScheme sets format of Authorization header.
func WithAuthScheme(scheme AuthScheme) Option {
	return func(c *Client) {
		c.scheme = scheme
	}
}

// WithMetrics sets collectors observing API calls.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

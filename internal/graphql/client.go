// Package graphql is the single entry point for calls to the rental GraphQL API.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rentaldesk/rental-bff/internal/logger"
	"github.com/rentaldesk/rental-bff/internal/metrics"
	"github.com/rentaldesk/rental-bff/internal/session"
)

const maxResponseBytes = 8 << 20

// Request is a GraphQL operation.
type Request struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors"`
}

// Doer executes GraphQL operations.
type Doer interface {
	Do(ctx context.Context, sess *session.Session, req Request, out any) error
}

// Option configures a Client.
type Option func(*Client)

// Client posts operations to the API.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for the given endpoint, e.g. https://api.example.com/graphql.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each HTTP round trip. Zero leaves only the context deadline.
// A client passed with WithHTTPClient is copied, not modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// Endpoint returns the URL operations are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Do runs req and decodes its data into out.
//
// When the API rejects the token signature the session is signed out and the
// same call is issued once more without credentials. A 401 signs the session
// out as well but is returned as is.
func (c *Client) Do(ctx context.Context, sess *session.Session, req Request, out any) error {
	err := c.do(ctx, sess, req, out)
	if !IsSignatureError(err) || sess == nil || !sess.IsAuthenticated() {
		return err
	}

	logger.FromContext(ctx).Warn().
		Str("operation", operationName(req)).
		Msg("Token signature rejected, signing out and retrying anonymously")
	sess.SignOut()

	err = c.do(ctx, sess, req, out)
	if IsSignatureError(err) {
		return fmt.Errorf("%w: %w", ErrSignatureExpired, err)
	}
	return err
}

func (c *Client) do(ctx context.Context, sess *session.Session, req Request, out any) (err error) {
	start := time.Now()
	op := operationName(req)
	defer func() {
		metrics.RecordGraphQLRequest(op, outcome(err), time.Since(start))
	}()

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode graphql request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build graphql request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if sess != nil {
		if token := sess.Token(); token != "" {
			httpReq.Header.Set("Authorization", "JWT "+token)
		}
		for _, cookie := range sess.Cookies() {
			httpReq.AddCookie(cookie)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("graphql %s: %w: %w", op, ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read graphql response: %w: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && sess != nil {
			sess.SignOut()
		}
		return &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Body: raw}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode graphql response: %w: %w", ErrTransport, err)
	}

	if len(env.Errors) > 0 {
		first := env.Errors[0]
		first.Message = normalizeMessage(first.Message)
		logger.FromContext(ctx).Debug().
			Str("operation", op).
			Str("error", first.Message).
			Msg("GraphQL error")
		return &first
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode graphql data for %s: %w", op, err)
	}
	return nil
}

// Execute runs req and returns its data decoded as T.
func Execute[T any](ctx context.Context, d Doer, sess *session.Session, req Request) (T, error) {
	var out T
	err := d.Do(ctx, sess, req, &out)
	return out, err
}

func operationName(req Request) string {
	if req.OperationName != "" {
		return req.OperationName
	}
	return "anonymous"
}

func outcome(err error) string {
	var httpErr *HTTPError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &httpErr):
		return "http_error"
	case IsBusinessError(err):
		return "graphql_error"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "transport_error"
	}
}

// Package rental exposes the rental GraphQL API as typed operations.
//
// Queries are served through the query cache. Mutations invalidate the
// domains whose lists they change. Cached results are scoped to the token
// fingerprint of the session that fetched them, so a reader only sees data the
// API served for its own token. Reads require an authenticated session.
package rental

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/rentaldesk/rental-bff/internal/graphql"
	"github.com/rentaldesk/rental-bff/internal/querycache"
	"github.com/rentaldesk/rental-bff/internal/querykey"
	"github.com/rentaldesk/rental-bff/internal/session"
	"github.com/rs/zerolog/log"
)

const defaultPageSize = 10

// ErrEmptyResponse is returned when the API answers without data.
var ErrEmptyResponse = errors.New("rental: empty response")

// Services runs rental operations for a session.
type Services struct {
	gql      graphql.Doer
	cache    *querycache.Client
	pageSize int
}

// Option configures Services.
type Option func(*Services)

// WithPageSize sets the page size of paginated lists.
func WithPageSize(n int) Option {
	return func(s *Services) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// NewServices creates the rental operations over a GraphQL client and a query cache.
func NewServices(gql graphql.Doer, cache *querycache.Client, opts ...Option) *Services {
	s := &Services{gql: gql, cache: cache, pageSize: defaultPageSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login exchanges credentials for a token and signs the session in.
func (s *Services) Login(ctx context.Context, sess *session.Session, email, password string) (string, error) {
	req := graphql.Request{
		OperationName: "Login",
		Query:         loginMutation,
		Variables:     map[string]any{"email": email, "password": password},
	}
	res, err := run[struct {
		Token string `json:"token"`
	}](ctx, s, sess, req, "login")
	if err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", ErrEmptyResponse
	}
	sess.SignIn(res.Token)
	log.Info().Str("email", email).Msg("User signed in")
	return res.Token, nil
}

// Logout signs the session out.
func (s *Services) Logout(sess *session.Session) {
	sess.SignOut()
}

func requireSession(sess *session.Session) error {
	if sess == nil || !sess.IsAuthenticated() {
		return graphql.ErrUnauthorized
	}
	return nil
}

func (s *Services) fetcher(sess *session.Session) querycache.Fetcher {
	return func(ctx context.Context, req graphql.Request, out any) error {
		return s.gql.Do(ctx, sess, req, out)
	}
}

// run executes req and decodes the value found at path in the response data.
func run[T any](ctx context.Context, s *Services, sess *session.Session, req graphql.Request, path ...string) (T, error) {
	var data json.RawMessage
	if err := s.gql.Do(ctx, sess, req, &data); err != nil {
		var zero T
		return zero, err
	}
	return extract[T](data, path...)
}

func extract[T any](data json.RawMessage, path ...string) (T, error) {
	var out T
	raw := data
	for _, field := range path {
		if len(raw) == 0 || string(raw) == "null" {
			return out, ErrEmptyResponse
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return out, fmt.Errorf("decode %s: %w", field, err)
		}
		next, ok := obj[field]
		if !ok {
			return out, fmt.Errorf("response has no field %q", field)
		}
		raw = next
	}
	if len(raw) == 0 || string(raw) == "null" {
		return out, ErrEmptyResponse
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// cached runs a query through the query cache.
func cached[T any](ctx context.Context, s *Services, sess *session.Session, key querykey.Key, req graphql.Request, path ...string) (T, error) {
	if err := requireSession(sess); err != nil {
		var zero T
		return zero, err
	}
	return querycache.Query(ctx, s.cache, key, func(ctx context.Context) (T, error) {
		return run[T](ctx, s, sess, req, path...)
	}, querycache.WithScope(sess.Fingerprint()))
}

// mutate runs a mutation and invalidates the given key prefixes on success.
func mutate[T any](ctx context.Context, s *Services, sess *session.Session, req graphql.Request, invalidate []querykey.Key, path ...string) (T, error) {
	if err := requireSession(sess); err != nil {
		var zero T
		return zero, err
	}
	return querycache.Mutate(ctx, s.cache, func(ctx context.Context) (T, error) {
		return run[T](ctx, s, sess, req, path...)
	}, invalidate...)
}

// list parses q against the query's filter shape and fetches the page.
func list[T any](ctx context.Context, s *Services, sess *session.Session, pq querycache.PaginatedQuery[T], q url.Values) (querycache.Page[T], error) {
	if err := requireSession(sess); err != nil {
		return querycache.Page[T]{}, err
	}
	params, err := querycache.ParseParams(q, pq.Shape)
	if err != nil {
		return querycache.Page[T]{}, err
	}
	if pq.PageSize == 0 {
		pq.PageSize = s.pageSize
	}
	return pq.Fetch(ctx, s.cache, s.fetcher(sess), params, querycache.WithScope(sess.Fingerprint()))
}

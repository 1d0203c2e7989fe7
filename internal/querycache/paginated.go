package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rentaldesk/rental-bff/internal/graphql"
	"github.com/rentaldesk/rental-bff/internal/querykey"
)

// ErrInvalidParam is matched by every ParamError.
var ErrInvalidParam = errors.New("invalid query parameter")

// DateLayout is the layout of Date filters.
const DateLayout = "2006-01-02"

const (
	pageParam   = "page"
	cursorParam = "after"
)

// FieldKind is the type of a filter parameter.
type FieldKind int

// Filter parameter kinds.
const (
	String FieldKind = iota
	Int
	Bool
	Date
	ID
)

func (k FieldKind) String() string {
	switch k {
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Date:
		return "date"
	case ID:
		return "id"
	default:
		return "string"
	}
}

// FilterShape declares the filter parameters a list accepts and their kinds.
type FilterShape map[string]FieldKind

// ParamError is a query-string value that does not parse as its declared kind.
type ParamError struct {
	Param string
	Value string
	Kind  FieldKind
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("parameter %q: %q is not a valid %s", e.Param, e.Value, e.Kind)
}

// Unwrap returns ErrInvalidParam.
func (e *ParamError) Unwrap() error {
	return ErrInvalidParam
}

// Params is the pagination state read from a query string.
type Params struct {
	Page   int
	Cursor string
	// Filters are the raw non-empty filter values, used for the cache key.
	Filters querykey.Filters
	// Variables are the typed filter values sent to the API.
	Variables map[string]any
}

// ParseParams reads page, cursor and the filters declared in shape from q.
// Parameters not in shape are ignored. A missing page is page 1.
func ParseParams(q url.Values, shape FilterShape) (Params, error) {
	p := Params{
		Page:      1,
		Cursor:    strings.TrimSpace(q.Get(cursorParam)),
		Filters:   querykey.Filters{},
		Variables: map[string]any{},
	}

	if raw := strings.TrimSpace(q.Get(pageParam)); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Params{}, &ParamError{Param: pageParam, Value: raw, Kind: Int}
		}
		p.Page = page
	}

	for name, kind := range shape {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			continue
		}
		v, err := parseValue(raw, kind)
		if err != nil {
			return Params{}, &ParamError{Param: name, Value: raw, Kind: kind}
		}
		p.Filters[name] = raw
		p.Variables[name] = v
	}
	return p, nil
}

func parseValue(raw string, kind FieldKind) (any, error) {
	switch kind {
	case Int:
		return strconv.Atoi(raw)
	case Bool:
		return strconv.ParseBool(raw)
	case Date:
		t, err := time.Parse(DateLayout, raw)
		if err != nil {
			return nil, err
		}
		return t.Format(DateLayout), nil
	default:
		return raw, nil
	}
}

// Gate decides whether a query may run for the given params.
type Gate func(Params) bool

// MinLength enables the query once the filter param has at least n characters.
func MinLength(param string, n int) Gate {
	return func(p Params) bool {
		return utf8.RuneCountInString(p.Filters[param]) >= n
	}
}

// Required enables the query once every param has a value.
func Required(params ...string) Gate {
	return func(p Params) bool {
		for _, name := range params {
			if p.Filters[name] == "" {
				return false
			}
		}
		return true
	}
}

// Mode selects the pagination style of a list.
type Mode int

// Pagination modes.
const (
	// PageMode lists accept page and return {page, pages, hasNext, hasPrev, objects}.
	PageMode Mode = iota
	// CursorMode lists accept first/after and return relay connections.
	CursorMode
)

// Page is one page of a list.
type Page[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page,omitempty"`
	Pages      int    `json:"pages,omitempty"`
	HasNext    bool   `json:"has_next"`
	HasPrev    bool   `json:"has_prev"`
	NextCursor string `json:"next_cursor,omitempty"`
}

type pageResult[T any] struct {
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
	Objects []T  `json:"objects"`
}

type connection[T any] struct {
	Edges []struct {
		Node T `json:"node"`
	} `json:"edges"`
	PageInfo struct {
		HasNextPage     bool   `json:"hasNextPage"`
		HasPreviousPage bool   `json:"hasPreviousPage"`
		EndCursor       string `json:"endCursor"`
	} `json:"pageInfo"`
}

// Fetcher executes a GraphQL request and decodes its data into out.
type Fetcher func(ctx context.Context, req graphql.Request, out any) error

// PaginatedQuery describes a paginated list of the API.
type PaginatedQuery[T any] struct {
	Domain        string
	OperationName string
	Document      string
	// ResultField is the field of the response data holding the list.
	ResultField string
	Shape       FilterShape
	Mode        Mode
	PageSize    int
	// Enabled gates the query. Nil is always enabled.
	Enabled Gate
}

// Key returns the cache key of the page selected by p.
func (q PaginatedQuery[T]) Key(p Params) querykey.Key {
	filters := maps.Clone(p.Filters)
	if filters == nil {
		filters = querykey.Filters{}
	}
	switch q.Mode {
	case CursorMode:
		filters[cursorParam] = p.Cursor
	default:
		filters[pageParam] = strconv.Itoa(p.Page)
	}
	return querykey.Domain(q.Domain).PaginatedWith(filters)
}

// Request returns the GraphQL request for the page selected by p.
func (q PaginatedQuery[T]) Request(p Params) graphql.Request {
	vars := make(map[string]any, len(p.Variables)+2)
	maps.Copy(vars, p.Variables)
	switch q.Mode {
	case CursorMode:
		if q.PageSize > 0 {
			vars["first"] = q.PageSize
		}
		if p.Cursor != "" {
			vars[cursorParam] = p.Cursor
		}
	default:
		vars[pageParam] = p.Page
		if q.PageSize > 0 {
			vars["pageSize"] = q.PageSize
		}
	}
	return graphql.Request{OperationName: q.OperationName, Query: q.Document, Variables: vars}
}

// Fetch returns the page selected by p through the query cache.
func (q PaginatedQuery[T]) Fetch(ctx context.Context, c *Client, do Fetcher, p Params, opts ...QueryOption) (Page[T], error) {
	enabled := q.Enabled == nil || q.Enabled(p)
	opts = append([]QueryOption{WithEnabled(enabled)}, opts...)

	return Query(ctx, c, q.Key(p), func(ctx context.Context) (Page[T], error) {
		return q.fetchPage(ctx, do, p)
	}, opts...)
}

// Next returns the params of the page after page, or false on the last page.
func (q PaginatedQuery[T]) Next(p Params, page Page[T]) (Params, bool) {
	if !page.HasNext {
		return Params{}, false
	}
	next := p
	switch q.Mode {
	case CursorMode:
		if page.NextCursor == "" {
			return Params{}, false
		}
		next.Cursor = page.NextCursor
	default:
		next.Page = page.Page + 1
	}
	return next, true
}

// FetchPages loads up to limit consecutive pages starting at p, stopping
// after the last page.
func (q PaginatedQuery[T]) FetchPages(ctx context.Context, c *Client, do Fetcher, p Params, limit int, opts ...QueryOption) ([]Page[T], error) {
	var pages []Page[T]
	for len(pages) < limit {
		page, err := q.Fetch(ctx, c, do, p, opts...)
		if err != nil {
			return pages, err
		}
		pages = append(pages, page)

		next, ok := q.Next(p, page)
		if !ok {
			break
		}
		p = next
	}
	return pages, nil
}

func (q PaginatedQuery[T]) fetchPage(ctx context.Context, do Fetcher, p Params) (Page[T], error) {
	var data map[string]json.RawMessage
	if err := do(ctx, q.Request(p), &data); err != nil {
		return Page[T]{}, err
	}
	raw, ok := data[q.ResultField]
	if !ok {
		return Page[T]{}, fmt.Errorf("response has no field %q", q.ResultField)
	}

	switch q.Mode {
	case CursorMode:
		var conn connection[T]
		if err := json.Unmarshal(raw, &conn); err != nil {
			return Page[T]{}, fmt.Errorf("decode %s: %w", q.ResultField, err)
		}
		items := make([]T, 0, len(conn.Edges))
		for _, e := range conn.Edges {
			items = append(items, e.Node)
		}
		return Page[T]{
			Items:      items,
			HasNext:    conn.PageInfo.HasNextPage,
			HasPrev:    conn.PageInfo.HasPreviousPage || p.Cursor != "",
			NextCursor: conn.PageInfo.EndCursor,
		}, nil
	default:
		var res pageResult[T]
		if err := json.Unmarshal(raw, &res); err != nil {
			return Page[T]{}, fmt.Errorf("decode %s: %w", q.ResultField, err)
		}
		if res.Objects == nil {
			res.Objects = []T{}
		}
		return Page[T]{
			Items:   res.Objects,
			Page:    res.Page,
			Pages:   res.Pages,
			HasNext: res.HasNext,
			HasPrev: res.HasPrev,
		}, nil
	}
}

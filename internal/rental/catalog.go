package rental

import (
	"context"
	"net/url"
	"time"

	"github.com/rentaldesk/rental-bff/internal/graphql"
	"github.com/rentaldesk/rental-bff/internal/querycache"
	"github.com/rentaldesk/rental-bff/internal/querykey"
	"github.com/rentaldesk/rental-bff/internal/session"
)

var productsList = querycache.PaginatedQuery[Product]{
	Domain:        querykey.Products,
	OperationName: "Products",
	Document:      productsQuery,
	ResultField:   "products",
	Mode:          querycache.CursorMode,
	Shape: querycache.FilterShape{
		"query":    querycache.String,
		"type":     querycache.String,
		"officeId": querycache.ID,
	},
}

// ListProducts returns a page of products. Pages are cursor based.
func (s *Services) ListProducts(ctx context.Context, sess *session.Session, q url.Values) (querycache.Page[Product], error) {
	return list(ctx, s, sess, productsList, q)
}

// ProductStock returns the stock of a product at every office for the
// range [start, end].
func (s *Services) ProductStock(ctx context.Context, sess *session.Session, productID string, start, end time.Time) ([]OfficeStock, error) {
	from, to := start.Format(querycache.DateLayout), end.Format(querycache.DateLayout)
	req := graphql.Request{
		OperationName: "ProductStock",
		Query:         productStockQuery,
		Variables:     map[string]any{"productId": productID, "startDate": from, "endDate": to},
	}
	key := querykey.Domain(querykey.Stock).Sub(productID, from, to)
	return cached[[]OfficeStock](ctx, s, sess, key, req, "productStockInRange")
}

// ProductServices returns the services offered with a product.
func (s *Services) ProductServices(ctx context.Context, sess *session.Session, productID string) ([]ProductService, error) {
	req := graphql.Request{
		OperationName: "ProductServices",
		Query:         productServicesQuery,
		Variables:     map[string]any{"productId": productID},
	}
	key := querykey.Domain(querykey.Services).Sub("product", productID)
	return cached[[]ProductService](ctx, s, sess, key, req, "productServices")
}

// ListOffices returns every office.
func (s *Services) ListOffices(ctx context.Context, sess *session.Session) ([]Office, error) {
	req := graphql.Request{OperationName: "Offices", Query: officesQuery}
	return cached[[]Office](ctx, s, sess, querykey.Domain(querykey.Offices).List(nil), req, "offices")
}

// ListLocalities returns the localities whose name matches query.
func (s *Services) ListLocalities(ctx context.Context, sess *session.Session, query string) ([]Locality, error) {
	vars := map[string]any{}
	if query != "" {
		vars["query"] = query
	}
	req := graphql.Request{OperationName: "Localities", Query: localitiesQuery, Variables: vars}
	key := querykey.Domain(querykey.Localities).List(querykey.Filters{"query": query})
	return cached[[]Locality](ctx, s, sess, key, req, "localities")
}

// CreateLocality creates a locality.
func (s *Services) CreateLocality(ctx context.Context, sess *session.Session, in LocalityInput) (Locality, error) {
	req := graphql.Request{OperationName: "CreateLocality", Query: createLocalityMutation, Variables: map[string]any{"input": in}}
	return mutate[Locality](ctx, s, sess, req, []querykey.Key{querykey.Domain(querykey.Localities).All()}, "createLocality", "locality")
}

package rental

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rentaldesk/rental-bff/internal/graphql"
	"github.com/rentaldesk/rental-bff/internal/querycache"
	"github.com/rentaldesk/rental-bff/internal/querykey"
	"github.com/rentaldesk/rental-bff/internal/session"
)

// ClientField is a client attribute that must be unique.
type ClientField string

// Unique client fields.
const (
	ClientDNI   ClientField = "dni"
	ClientEmail ClientField = "email"
)

var clients = querykey.Domain(querykey.Clients)

var clientsList = querycache.PaginatedQuery[Client]{
	Domain:        querykey.Clients,
	OperationName: "Clients",
	Document:      clientsQuery,
	ResultField:   "clients",
	Shape:         querycache.FilterShape{"query": querycache.String},
}

// clientSearch looks clients up by name, DNI or email once the query has
// three characters.
var clientSearch = func() querycache.PaginatedQuery[Client] {
	q := clientsList
	q.Enabled = querycache.MinLength("query", 3)
	return q
}()

// ListClients returns a page of clients.
func (s *Services) ListClients(ctx context.Context, sess *session.Session, q url.Values) (querycache.Page[Client], error) {
	return list(ctx, s, sess, clientsList, q)
}

// SearchClients returns clients matching the query parameter, or
// querycache.ErrDisabled while it is shorter than three characters.
func (s *Services) SearchClients(ctx context.Context, sess *session.Session, q url.Values) (querycache.Page[Client], error) {
	return list(ctx, s, sess, clientSearch, q)
}

// GetClient returns one client.
func (s *Services) GetClient(ctx context.Context, sess *session.Session, id string) (Client, error) {
	req := graphql.Request{OperationName: "Client", Query: clientQuery, Variables: map[string]any{"id": id}}
	return cached[Client](ctx, s, sess, clients.Detail(id), req, "client")
}

// ClientExists reports whether a client already uses value for field.
// The answer is never cached.
func (s *Services) ClientExists(ctx context.Context, sess *session.Session, field ClientField, value string) (bool, error) {
	if err := requireSession(sess); err != nil {
		return false, err
	}
	switch field {
	case ClientDNI, ClientEmail:
	default:
		return false, fmt.Errorf("unknown client field %q", field)
	}
	req := graphql.Request{
		OperationName: "ClientExists",
		Query:         clientExistsQuery,
		Variables:     map[string]any{string(field): value},
	}
	return run[bool](ctx, s, sess, req, "clientExists")
}

// CreateClient creates a client.
func (s *Services) CreateClient(ctx context.Context, sess *session.Session, in ClientInput) (Client, error) {
	req := graphql.Request{OperationName: "CreateClient", Query: createClientMutation, Variables: map[string]any{"input": in}}
	return mutate[Client](ctx, s, sess, req, []querykey.Key{clients.Lists()}, "createClient", "client")
}

// UpdateClient updates a client.
func (s *Services) UpdateClient(ctx context.Context, sess *session.Session, id string, in ClientInput) (Client, error) {
	req := graphql.Request{
		OperationName: "UpdateClient",
		Query:         updateClientMutation,
		Variables:     map[string]any{"id": id, "input": in},
	}
	return mutate[Client](ctx, s, sess, req, []querykey.Key{clients.All(), querykey.Domain(querykey.Contracts).Lists()}, "updateClient", "client")
}

// DeleteClient deletes a client.
func (s *Services) DeleteClient(ctx context.Context, sess *session.Session, id string) error {
	req := graphql.Request{OperationName: "DeleteClient", Query: deleteClientMutation, Variables: map[string]any{"id": id}}
	res, err := mutate[struct {
		Success bool `json:"success"`
	}](ctx, s, sess, req, []querykey.Key{clients.All()}, "deleteClient")
	if err != nil {
		return err
	}
	if !res.Success {
		return &graphql.Error{Message: "client could not be deleted"}
	}
	return nil
}

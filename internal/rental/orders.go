package rental

import (
	"context"
	"net/url"

	"github.com/rentaldesk/rental-bff/internal/graphql"
	"github.com/rentaldesk/rental-bff/internal/querycache"
	"github.com/rentaldesk/rental-bff/internal/querykey"
	"github.com/rentaldesk/rental-bff/internal/session"
)

var (
	stock          = querykey.Domain(querykey.Stock)
	products       = querykey.Domain(querykey.Products)
	contracts      = querykey.Domain(querykey.Contracts)
	supplierOrders = querykey.Domain(querykey.SupplierOrders)
	internalOrders = querykey.Domain(querykey.InternalOrders)
)

var suppliersList = querycache.PaginatedQuery[Supplier]{
	Domain:        querykey.Suppliers,
	OperationName: "Suppliers",
	Document:      suppliersQuery,
	ResultField:   "suppliers",
	Shape:         querycache.FilterShape{"query": querycache.String},
}

var purchasesList = querycache.PaginatedQuery[Purchase]{
	Domain:        querykey.Purchases,
	OperationName: "Purchases",
	Document:      purchasesQuery,
	ResultField:   "purchases",
	Shape: querycache.FilterShape{
		"query":     querycache.String,
		"officeId":  querycache.ID,
		"startDate": querycache.Date,
		"endDate":   querycache.Date,
	},
}

var contractsList = querycache.PaginatedQuery[Contract]{
	Domain:        querykey.Contracts,
	OperationName: "Contracts",
	Document:      contractsQuery,
	ResultField:   "contracts",
	Shape: querycache.FilterShape{
		"query":     querycache.String,
		"officeId":  querycache.ID,
		"status":    querycache.String,
		"startDate": querycache.Date,
		"endDate":   querycache.Date,
	},
}

// Supplier orders are listed per office.
var supplierOrdersList = querycache.PaginatedQuery[SupplierOrder]{
	Domain:        querykey.SupplierOrders,
	OperationName: "SupplierOrders",
	Document:      supplierOrdersQuery,
	ResultField:   "supplierOrders",
	Mode:          querycache.CursorMode,
	Shape: querycache.FilterShape{
		"officeId":   querycache.ID,
		"supplierId": querycache.ID,
		"status":     querycache.String,
	},
	Enabled: querycache.Required("officeId"),
}

var internalOrdersList = querycache.PaginatedQuery[InternalOrder]{
	Domain:        querykey.InternalOrders,
	OperationName: "InternalOrders",
	Document:      internalOrdersQuery,
	ResultField:   "internalOrders",
	Shape: querycache.FilterShape{
		"officeId": querycache.ID,
		"status":   querycache.String,
	},
}

// ListSuppliers returns a page of suppliers.
func (s *Services) ListSuppliers(ctx context.Context, sess *session.Session, q url.Values) (querycache.Page[Supplier], error) {
	return list(ctx, s, sess, suppliersList, q)
}

// ListPurchases returns a page of purchases.
func (s *Services) ListPurchases(ctx context.Context, sess *session.Session, q url.Values) (querycache.Page[Purchase], error) {
	return list(ctx, s, sess, purchasesList, q)
}

// ListContracts returns a page of contracts.
func (s *Services) ListContracts(ctx context.Context, sess *session.Session, q url.Values) (querycache.Page[Contract], error) {
	return list(ctx, s, sess, contractsList, q)
}

// CreateContract creates a rental contract. Stock availability changes with it.
func (s *Services) CreateContract(ctx context.Context, sess *session.Session, in CreateContractInput) (Contract, error) {
	req := graphql.Request{OperationName: "CreateContract", Query: createContractMutation, Variables: map[string]any{"input": in}}
	return mutate[Contract](ctx, s, sess, req, []querykey.Key{contracts.All(), stock.All()}, "createContract", "contract")
}

// ListSupplierOrders returns a page of supplier orders of the officeId
// parameter, or querycache.ErrDisabled when it is missing.
func (s *Services) ListSupplierOrders(ctx context.Context, sess *session.Session, q url.Values) (querycache.Page[SupplierOrder], error) {
	return list(ctx, s, sess, supplierOrdersList, q)
}

// CreateSupplierOrder creates a supplier order.
func (s *Services) CreateSupplierOrder(ctx context.Context, sess *session.Session, in SupplierOrderInput) (SupplierOrder, error) {
	req := graphql.Request{OperationName: "CreateSupplierOrder", Query: createSupplierOrderMutation, Variables: map[string]any{"input": in}}
	return mutate[SupplierOrder](ctx, s, sess, req, []querykey.Key{supplierOrders.All(), stock.All(), products.Lists()}, "createSupplierOrder", "supplierOrder")
}

// ListInternalOrders returns a page of internal orders.
func (s *Services) ListInternalOrders(ctx context.Context, sess *session.Session, q url.Values) (querycache.Page[InternalOrder], error) {
	return list(ctx, s, sess, internalOrdersList, q)
}

// CreateInternalOrder creates an internal order.
func (s *Services) CreateInternalOrder(ctx context.Context, sess *session.Session, in InternalOrderInput) (InternalOrder, error) {
	req := graphql.Request{OperationName: "CreateInternalOrder", Query: createInternalOrderMutation, Variables: map[string]any{"input": in}}
	return mutate[InternalOrder](ctx, s, sess, req, []querykey.Key{internalOrders.All()}, "createInternalOrder", "internalOrder")
}

// StartInternalOrder marks an internal order in progress. The units leave
// the source office.
func (s *Services) StartInternalOrder(ctx context.Context, sess *session.Session, id string) (InternalOrder, error) {
	req := graphql.Request{OperationName: "InProgressInternalOrder", Query: inProgressInternalOrderMutation, Variables: map[string]any{"id": id}}
	return mutate[InternalOrder](ctx, s, sess, req, []querykey.Key{internalOrders.All(), stock.All()}, "inProgressInternalOrder", "internalOrder")
}

// ReceiveInternalOrder records the units received at the destination office.
func (s *Services) ReceiveInternalOrder(ctx context.Context, sess *session.Session, id string, items []ReceivedLineInput) (InternalOrder, error) {
	req := graphql.Request{
		OperationName: "ReceiveInternalOrder",
		Query:         receiveInternalOrderMutation,
		Variables:     map[string]any{"id": id, "items": items},
	}
	return mutate[InternalOrder](ctx, s, sess, req, []querykey.Key{internalOrders.All(), stock.All()}, "receiveInternalOrder", "internalOrder")
}

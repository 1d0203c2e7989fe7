package http

import (
	"github.com/gin-gonic/gin"
)

// RentalAPI is the rental API served by the BFF.
type RentalAPI interface {
	Authenticator
	ClientsAPI
	CatalogAPI
	OrdersAPI
	ContractsAPI
}

// RentalRoutes handles registration of the rental domain routes.
type RentalRoutes struct {
	clients   *ClientsHandler
	catalog   *CatalogHandler
	orders    *OrdersHandler
	contracts *ContractsHandler
}

// NewRentalRoutes creates the rental route group.
func NewRentalRoutes(cfg *RouterConfig, errs ErrorMapper) *RentalRoutes {
	return &RentalRoutes{
		clients:   NewClientsHandler(cfg.Rental, errs),
		catalog:   NewCatalogHandler(cfg.Rental, errs),
		orders:    NewOrdersHandler(cfg.Rental, errs),
		contracts: NewContractsHandler(cfg.Rental, cfg.Contracts, errs),
	}
}

// RegisterProtectedRoutes registers the rental routes. They all need a session.
func (r *RentalRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	clients := rg.Group("/clients")
	{
		clients.GET("", r.clients.List)
		clients.GET("/search", r.clients.Search)
		clients.GET("/exists", r.clients.Exists)
		clients.GET("/:id", r.clients.Get)
		clients.POST("", r.clients.Create)
		clients.PUT("/:id", r.clients.Update)
		clients.DELETE("/:id", r.clients.Delete)
	}

	rg.GET("/products", r.catalog.ListProducts)
	rg.GET("/products/:id/stock", r.catalog.ProductStock)
	rg.GET("/products/:id/services", r.catalog.ProductServices)
	rg.GET("/offices", r.catalog.ListOffices)
	rg.GET("/localities", r.catalog.ListLocalities)
	rg.POST("/localities", r.catalog.CreateLocality)

	rg.GET("/suppliers", r.orders.ListSuppliers)
	rg.GET("/purchases", r.orders.ListPurchases)
	rg.GET("/supplier-orders", r.orders.ListSupplierOrders)
	rg.POST("/supplier-orders", r.orders.CreateSupplierOrder)
	internal := rg.Group("/internal-orders")
	{
		internal.GET("", r.orders.ListInternalOrders)
		internal.POST("", r.orders.CreateInternalOrder)
		internal.POST("/:id/in-progress", r.orders.StartInternalOrder)
		internal.POST("/:id/receive", r.orders.ReceiveInternalOrder)
	}

	rg.GET("/contracts", r.contracts.List)
	rg.POST("/contracts", r.contracts.Create)
	rg.POST("/contracts/quote", r.contracts.Quote)
}

package http

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rentaldesk/rental-bff/internal/contractform"
	"github.com/rentaldesk/rental-bff/internal/domain/dto"
	"github.com/rentaldesk/rental-bff/internal/domain/model"
	"github.com/rentaldesk/rental-bff/internal/middleware"
	"github.com/rentaldesk/rental-bff/internal/querycache"
	"github.com/rentaldesk/rental-bff/internal/rental"
	"github.com/rentaldesk/rental-bff/internal/session"
)

// OrdersAPI reads suppliers and purchases and manages stock orders.
type OrdersAPI interface {
	ListSuppliers(ctx context.Context, sess *session.Session, q url.Values) (querycache.Page[rental.Supplier], error)
	ListPurchases(ctx context.Context, sess *session.Session, q url.Values) (querycache.Page[rental.Purchase], error)
	ListSupplierOrders(ctx context.Context, sess *session.Session, q url.Values) (querycache.Page[rental.SupplierOrder], error)
	CreateSupplierOrder(ctx context.Context, sess *session.Session, in rental.SupplierOrderInput) (rental.SupplierOrder, error)
	ListInternalOrders(ctx context.Context, sess *session.Session, q url.Values) (querycache.Page[rental.InternalOrder], error)
	CreateInternalOrder(ctx context.Context, sess *session.Session, in rental.InternalOrderInput) (rental.InternalOrder, error)
	StartInternalOrder(ctx context.Context, sess *session.Session, id string) (rental.InternalOrder, error)
	ReceiveInternalOrder(ctx context.Context, sess *session.Session, id string, items []rental.ReceivedLineInput) (rental.InternalOrder, error)
}

// OrdersHandler provides HTTP handlers for supplier, purchase and order routes.
type OrdersHandler struct {
	api  OrdersAPI
	errs ErrorMapper
}

// NewOrdersHandler creates an orders handler.
func NewOrdersHandler(api OrdersAPI, errs ErrorMapper) *OrdersHandler {
	return &OrdersHandler{api: api, errs: errs}
}

// ListSuppliers handles GET /api/suppliers.
//
// @Summary      List suppliers
// @Tags         Orders
// @Produce      json
// @Param        page  query int    false "Page number"
// @Param        query query string false "Name filter"
// @Success      200 {object} dto.SuccessResponse "Page of suppliers"
// @Security     JWTAuth
// @Router       /api/suppliers [get]
func (h *OrdersHandler) ListSuppliers(c *gin.Context) {
	page, err := h.api.ListSuppliers(c.Request.Context(), middleware.GetSession(c), c.Request.URL.Query())
	respondPage(c, h.errs, page, err)
}

// ListPurchases handles GET /api/purchases.
//
// @Summary      List purchases
// @Tags         Orders
// @Produce      json
// @Param        page query int false "Page number"
// @Success      200 {object} dto.SuccessResponse "Page of purchases"
// @Security     JWTAuth
// @Router       /api/purchases [get]
func (h *OrdersHandler) ListPurchases(c *gin.Context) {
	page, err := h.api.ListPurchases(c.Request.Context(), middleware.GetSession(c), c.Request.URL.Query())
	respondPage(c, h.errs, page, err)
}

// ListSupplierOrders handles GET /api/supplier-orders.
//
// @Summary      List supplier orders
// @Description  Requires officeId; without it the page is empty.
// @Tags         Orders
// @Produce      json
// @Param        officeId   query string true  "Destination office"
// @Param        supplierId query string false "Supplier filter"
// @Param        after      query string false "Cursor"
// @Success      200 {object} dto.SuccessResponse "Page of supplier orders"
// @Security     JWTAuth
// @Router       /api/supplier-orders [get]
func (h *OrdersHandler) ListSupplierOrders(c *gin.Context) {
	page, err := h.api.ListSupplierOrders(c.Request.Context(), middleware.GetSession(c), c.Request.URL.Query())
	respondPage(c, h.errs, page, err)
}

// CreateSupplierOrder handles POST /api/supplier-orders.
//
// @Summary      Create supplier order
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body rental.SupplierOrderInput true "Order"
// @Success      201 {object} dto.SuccessResponse "Created order"
// @Failure      400 {object} dto.ErrorResponse "Validation failed"
// @Security     JWTAuth
// @Router       /api/supplier-orders [post]
func (h *OrdersHandler) CreateSupplierOrder(c *gin.Context) {
	in, err := BuildRequest[rental.SupplierOrderInput](c)
	if err != nil {
		h.errs.RespondBind(c, err)
		return
	}
	if err := contractform.ValidateInput(*in); err != nil {
		h.errs.Respond(c, err)
		return
	}

	order, err := h.api.CreateSupplierOrder(c.Request.Context(), middleware.GetSession(c), *in)
	if err != nil {
		h.errs.Respond(c, err)
		return
	}
	middleware.Audit(c, model.ActionCreateOrder, "Supplier order created", map[string]any{
		"order_id": order.ID,
		"kind":     "supplier",
	})
	NewResponseBuilder(c).SuccessCreated(order)
}

// ListInternalOrders handles GET /api/internal-orders.
//
// @Summary      List internal orders
// @Tags         Orders
// @Produce      json
// @Param        page   query int    false "Page number"
// @Param        status query string false "PENDING, IN_PROGRESS, COMPLETED or CANCELED"
// @Success      200 {object} dto.SuccessResponse "Page of internal orders"
// @Security     JWTAuth
// @Router       /api/internal-orders [get]
func (h *OrdersHandler) ListInternalOrders(c *gin.Context) {
	page, err := h.api.ListInternalOrders(c.Request.Context(), middleware.GetSession(c), c.Request.URL.Query())
	respondPage(c, h.errs, page, err)
}

// CreateInternalOrder handles POST /api/internal-orders.
//
// @Summary      Create internal order
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body rental.InternalOrderInput true "Order"
// @Success      201 {object} dto.SuccessResponse "Created order"
// @Failure      400 {object} dto.ErrorResponse "Validation failed"
// @Security     JWTAuth
// @Router       /api/internal-orders [post]
func (h *OrdersHandler) CreateInternalOrder(c *gin.Context) {
	in, err := BuildRequest[rental.InternalOrderInput](c)
	if err != nil {
		h.errs.RespondBind(c, err)
		return
	}
	if err := contractform.ValidateInput(*in); err != nil {
		h.errs.Respond(c, err)
		return
	}

	order, err := h.api.CreateInternalOrder(c.Request.Context(), middleware.GetSession(c), *in)
	if err != nil {
		h.errs.Respond(c, err)
		return
	}
	middleware.Audit(c, model.ActionCreateOrder, "Internal order created", map[string]any{
		"order_id": order.ID,
		"kind":     "internal",
	})
	NewResponseBuilder(c).SuccessCreated(order)
}

// StartInternalOrder handles POST /api/internal-orders/:id/in-progress.
//
// @Summary      Dispatch internal order
// @Tags         Orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.SuccessResponse "Order in progress"
// @Failure      422 {object} dto.ErrorResponse "Rejected by the rental API"
// @Security     JWTAuth
// @Router       /api/internal-orders/{id}/in-progress [post]
func (h *OrdersHandler) StartInternalOrder(c *gin.Context) {
	id := c.Param("id")
	order, err := h.api.StartInternalOrder(c.Request.Context(), middleware.GetSession(c), id)
	if err == nil {
		middleware.Audit(c, model.ActionUpdateOrder, "Internal order in progress", map[string]any{"order_id": id})
	}
	respond(c, h.errs, http.StatusOK, order, err)
}

// ReceiveInternalOrder handles POST /api/internal-orders/:id/receive.
//
// @Summary      Receive internal order
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        id      path string                          true "Order ID"
// @Param        request body dto.ReceiveInternalOrderRequest true "Received quantities"
// @Success      200 {object} dto.SuccessResponse "Received order"
// @Failure      400 {object} dto.ErrorResponse "Validation failed"
// @Security     JWTAuth
// @Router       /api/internal-orders/{id}/receive [post]
func (h *OrdersHandler) ReceiveInternalOrder(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.ReceiveInternalOrderRequest](c)
	if err != nil {
		h.errs.RespondBind(c, err)
		return
	}

	id := c.Param("id")
	order, err := h.api.ReceiveInternalOrder(c.Request.Context(), middleware.GetSession(c), id, req.Products)
	if err == nil {
		middleware.Audit(c, model.ActionUpdateOrder, "Internal order received", map[string]any{
			"order_id": id,
			"products": len(req.Products),
		})
	}
	respond(c, h.errs, http.StatusOK, order, err)
}

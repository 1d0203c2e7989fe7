package http

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentaldesk/rental-bff/internal/contractform"
	"github.com/rentaldesk/rental-bff/internal/domain/dto"
	"github.com/rentaldesk/rental-bff/internal/domain/model"
	"github.com/rentaldesk/rental-bff/internal/middleware"
	"github.com/rentaldesk/rental-bff/internal/querycache"
	"github.com/rentaldesk/rental-bff/internal/rental"
	"github.com/rentaldesk/rental-bff/internal/session"
)

// CatalogAPI reads products, offices and localities.
type CatalogAPI interface {
	ListProducts(ctx context.Context, sess *session.Session, q url.Values) (querycache.Page[rental.Product], error)
	ProductStock(ctx context.Context, sess *session.Session, productID string, start, end time.Time) ([]rental.OfficeStock, error)
	ProductServices(ctx context.Context, sess *session.Session, productID string) ([]rental.ProductService, error)
	ListOffices(ctx context.Context, sess *session.Session) ([]rental.Office, error)
	ListLocalities(ctx context.Context, sess *session.Session, query string) ([]rental.Locality, error)
	CreateLocality(ctx context.Context, sess *session.Session, in rental.LocalityInput) (rental.Locality, error)
}

// errPeriodOrder is returned when a stock range ends before it starts.
var errPeriodOrder = &dto.ValidationError{Field: "end", Message: "must be after start"}

// CatalogHandler provides HTTP handlers for catalog routes.
type CatalogHandler struct {
	api  CatalogAPI
	errs ErrorMapper
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(api CatalogAPI, errs ErrorMapper) *CatalogHandler {
	return &CatalogHandler{api: api, errs: errs}
}

// ListProducts handles GET /api/products.
//
// @Summary      List products
// @Description  Cursor paginated. Pass next_cursor of a page as "after" to read the next one.
// @Tags         Catalog
// @Produce      json
// @Param        after    query string false "Cursor"
// @Param        query    query string false "Name filter"
// @Param        type     query string false "Product type"
// @Param        officeId query string false "Office with stock"
// @Success      200 {object} dto.SuccessResponse "Page of products"
// @Security     JWTAuth
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, err := h.api.ListProducts(c.Request.Context(), middleware.GetSession(c), c.Request.URL.Query())
	respondPage(c, h.errs, page, err)
}

// ProductStock handles GET /api/products/:id/stock?start=YYYY-MM-DD&end=YYYY-MM-DD.
//
// @Summary      Product stock
// @Description  Units available at every office for the date range.
// @Tags         Catalog
// @Produce      json
// @Param        id    path  string true "Product ID"
// @Param        start query string true "First day (YYYY-MM-DD)"
// @Param        end   query string true "Last day (YYYY-MM-DD)"
// @Success      200 {object} dto.SuccessResponse "Stock per office"
// @Failure      400 {object} dto.ErrorResponse "Invalid dates"
// @Security     JWTAuth
// @Router       /api/products/{id}/stock [get]
func (h *CatalogHandler) ProductStock(c *gin.Context) {
	start, err := dateParam(c, "start")
	if err != nil {
		h.errs.Respond(c, err)
		return
	}
	end, err := dateParam(c, "end")
	if err != nil {
		h.errs.Respond(c, err)
		return
	}
	if !start.Before(end) {
		h.errs.Respond(c, errPeriodOrder)
		return
	}

	stock, err := h.api.ProductStock(c.Request.Context(), middleware.GetSession(c), c.Param("id"), start, end)
	respond(c, h.errs, http.StatusOK, stock, err)
}

// ProductServices handles GET /api/products/:id/services.
//
// @Summary      Product services
// @Tags         Catalog
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.SuccessResponse "Services offered with the product"
// @Security     JWTAuth
// @Router       /api/products/{id}/services [get]
func (h *CatalogHandler) ProductServices(c *gin.Context) {
	services, err := h.api.ProductServices(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	respond(c, h.errs, http.StatusOK, services, err)
}

// ListOffices handles GET /api/offices.
//
// @Summary      List offices
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Offices"
// @Security     JWTAuth
// @Router       /api/offices [get]
func (h *CatalogHandler) ListOffices(c *gin.Context) {
	offices, err := h.api.ListOffices(c.Request.Context(), middleware.GetSession(c))
	respond(c, h.errs, http.StatusOK, offices, err)
}

// ListLocalities handles GET /api/localities.
//
// @Summary      List localities
// @Tags         Catalog
// @Produce      json
// @Param        query query string false "Name filter"
// @Success      200 {object} dto.SuccessResponse "Localities"
// @Security     JWTAuth
// @Router       /api/localities [get]
func (h *CatalogHandler) ListLocalities(c *gin.Context) {
	localities, err := h.api.ListLocalities(c.Request.Context(), middleware.GetSession(c), c.Query("query"))
	respond(c, h.errs, http.StatusOK, localities, err)
}

// CreateLocality handles POST /api/localities.
//
// @Summary      Create locality
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        request body rental.LocalityInput true "Locality"
// @Success      201 {object} dto.SuccessResponse "Created locality"
// @Failure      400 {object} dto.ErrorResponse "Validation failed"
// @Security     JWTAuth
// @Router       /api/localities [post]
func (h *CatalogHandler) CreateLocality(c *gin.Context) {
	in, err := BuildRequest[rental.LocalityInput](c)
	if err != nil {
		h.errs.RespondBind(c, err)
		return
	}
	if err := contractform.ValidateInput(*in); err != nil {
		h.errs.Respond(c, err)
		return
	}

	locality, err := h.api.CreateLocality(c.Request.Context(), middleware.GetSession(c), *in)
	if err != nil {
		h.errs.Respond(c, err)
		return
	}
	middleware.Audit(c, model.ActionCreateLocality, "Locality created", map[string]any{"locality_id": locality.ID})
	NewResponseBuilder(c).SuccessCreated(locality)
}

func dateParam(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	t, err := time.Parse(querycache.DateLayout, raw)
	if err != nil {
		return time.Time{}, &querycache.ParamError{Param: name, Value: raw, Kind: querycache.Date}
	}
	return t, nil
}

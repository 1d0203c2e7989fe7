package http

import (
	"context"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rentaldesk/rental-bff/internal/contractform"
	"github.com/rentaldesk/rental-bff/internal/domain/model"
	"github.com/rentaldesk/rental-bff/internal/middleware"
	"github.com/rentaldesk/rental-bff/internal/querycache"
	"github.com/rentaldesk/rental-bff/internal/rental"
	"github.com/rentaldesk/rental-bff/internal/service"
	"github.com/rentaldesk/rental-bff/internal/session"
)

// ContractsAPI lists contracts.
type ContractsAPI interface {
	ListContracts(ctx context.Context, sess *session.Session, q url.Values) (querycache.Page[rental.Contract], error)
}

// ContractsHandler provides HTTP handlers for contract routes.
type ContractsHandler struct {
	api       ContractsAPI
	contracts service.ContractService
	errs      ErrorMapper
}

// NewContractsHandler creates a contracts handler.
func NewContractsHandler(api ContractsAPI, contracts service.ContractService, errs ErrorMapper) *ContractsHandler {
	return &ContractsHandler{api: api, contracts: contracts, errs: errs}
}

// List handles GET /api/contracts.
//
// @Summary      List contracts
// @Tags         Contracts
// @Produce      json
// @Param        page      query int    false "Page number"
// @Param        officeId  query string false "Office filter"
// @Param        status    query string false "Status filter"
// @Param        startDate query string false "From (YYYY-MM-DD)"
// @Param        endDate   query string false "To (YYYY-MM-DD)"
// @Success      200 {object} dto.SuccessResponse "Page of contracts"
// @Failure      400 {object} dto.ErrorResponse "Invalid query parameter"
// @Security     JWTAuth
// @Router       /api/contracts [get]
func (h *ContractsHandler) List(c *gin.Context) {
	page, err := h.api.ListContracts(c.Request.Context(), middleware.GetSession(c), c.Request.URL.Query())
	respondPage(c, h.errs, page, err)
}

// Quote handles POST /api/contracts/quote.
//
// @Summary      Quote contract
// @Description  Prices a contract form as it stands. Incomplete forms are priced with what they have.
// @Tags         Contracts
// @Accept       json
// @Produce      json
// @Param        request body contractform.State true "Contract form"
// @Success      200 {object} dto.SuccessResponse "Quote"
// @Failure      400 {object} dto.ErrorResponse "Malformed body"
// @Security     JWTAuth
// @Router       /api/contracts/quote [post]
func (h *ContractsHandler) Quote(c *gin.Context) {
	state, err := BuildRequest[contractform.State](c)
	if err != nil {
		h.errs.RespondBind(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(h.contracts.Quote(*state))
}

// Create handles POST /api/contracts.
//
// @Summary      Create contract
// @Description  Clamps allocations to current stock, validates the form and creates the contract with recomputed totals.
// @Tags         Contracts
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body contractform.State true "Contract form"
// @Success      201 {object} dto.SuccessResponse "Created contract"
// @Failure      400 {object} dto.ErrorResponse "Validation failed"
// @Failure      422 {object} dto.ErrorResponse "Rejected by the rental API"
// @Security     JWTAuth
// @Router       /api/contracts [post]
func (h *ContractsHandler) Create(c *gin.Context) {
	state, err := BuildRequest[contractform.State](c)
	if err != nil {
		h.errs.RespondBind(c, err)
		return
	}

	contract, err := h.contracts.Create(c.Request.Context(), middleware.GetSession(c), *state)
	if err != nil {
		middleware.AuditError(c, model.ActionCreateContract, "Contract creation failed", err, map[string]any{
			"client_id": state.ClientID,
		})
		h.errs.Respond(c, err)
		return
	}
	middleware.Audit(c, model.ActionCreateContract, "Contract created", map[string]any{"contract_id": contract.ID})
	NewResponseBuilder(c).SuccessCreated(contract)
}

package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentaldesk/rental-bff/internal/domain/dto"
	"github.com/rentaldesk/rental-bff/internal/domain/model"
	"github.com/rentaldesk/rental-bff/internal/i18n"
	"github.com/rentaldesk/rental-bff/internal/middleware"
	"github.com/rentaldesk/rental-bff/internal/service"
)

// ContractDraftsHandler provides HTTP handlers for the contract wizard.
type ContractDraftsHandler struct {
	drafts service.ContractDraftService
	errs   ErrorMapper
}

// NewContractDraftsHandler creates a contract drafts handler.
func NewContractDraftsHandler(drafts service.ContractDraftService, errs ErrorMapper) *ContractDraftsHandler {
	return &ContractDraftsHandler{drafts: drafts, errs: errs}
}

// List handles GET /api/contract-drafts.
//
// @Summary      List contract drafts
// @Description  The caller's live drafts, most recently edited first.
// @Tags         ContractDrafts
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Drafts"
// @Failure      503 {object} dto.ErrorResponse "Draft store unavailable"
// @Security     JWTAuth
// @Router       /api/contract-drafts [get]
func (h *ContractDraftsHandler) List(c *gin.Context) {
	drafts, err := h.drafts.List(c.Request.Context(), middleware.GetSession(c))
	respond(c, h.errs, http.StatusOK, drafts, err)
}

// Create handles POST /api/contract-drafts.
//
// @Summary      Start contract draft
// @Tags         ContractDrafts
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateDraftRequest false "Initial state"
// @Success      201 {object} dto.SuccessResponse "Draft at the client step"
// @Security     JWTAuth
// @Router       /api/contract-drafts [post]
func (h *ContractDraftsHandler) Create(c *gin.Context) {
	var req dto.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.errs.RespondBind(c, err)
		return
	}

	draft, err := h.drafts.Create(c.Request.Context(), middleware.GetSession(c), req.State)
	if err != nil {
		h.errs.Respond(c, err)
		return
	}
	c.Header("Location", "/api/contract-drafts/"+draft.ID)
	NewResponseBuilder(c).SuccessCreated(draft)
}

// Get handles GET /api/contract-drafts/:id.
//
// @Summary      Get contract draft
// @Tags         ContractDrafts
// @Produce      json
// @Param        id path string true "Draft ID"
// @Success      200 {object} dto.SuccessResponse "Draft"
// @Failure      404 {object} dto.ErrorResponse "Not found or expired"
// @Security     JWTAuth
// @Router       /api/contract-drafts/{id} [get]
func (h *ContractDraftsHandler) Get(c *gin.Context) {
	draft, err := h.drafts.Get(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	respond(c, h.errs, http.StatusOK, draft, err)
}

// Update handles PUT /api/contract-drafts/:id.
//
// @Summary      Save contract draft
// @Description  Replaces the state. Version must match the stored draft. Step may only go back.
// @Tags         ContractDrafts
// @Accept       json
// @Produce      json
// @Param        id      path string                 true "Draft ID"
// @Param        request body dto.UpdateDraftRequest true "New state"
// @Success      200 {object} dto.SuccessResponse "Saved draft"
// @Failure      404 {object} dto.ErrorResponse "Not found or expired"
// @Failure      409 {object} dto.ErrorResponse "Stale version or forward step"
// @Security     JWTAuth
// @Router       /api/contract-drafts/{id} [put]
func (h *ContractDraftsHandler) Update(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.UpdateDraftRequest](c)
	if err != nil {
		h.errs.RespondBind(c, err)
		return
	}

	draft, err := h.drafts.Update(c.Request.Context(), middleware.GetSession(c), c.Param("id"), service.DraftUpdate{
		Version: req.Version,
		Step:    req.Step,
		State:   req.State,
	})
	respond(c, h.errs, http.StatusOK, draft, err)
}

// Advance handles POST /api/contract-drafts/:id/advance.
//
// @Summary      Advance contract draft
// @Description  Clamps allocations to stock, validates the current step and moves to the next one.
// @Tags         ContractDrafts
// @Produce      json
// @Param        id path string true "Draft ID"
// @Success      200 {object} dto.SuccessResponse "Draft at the next step"
// @Failure      400 {object} dto.ErrorResponse "Current step is invalid"
// @Failure      409 {object} dto.ErrorResponse "Already at the last step or stale version"
// @Security     JWTAuth
// @Router       /api/contract-drafts/{id}/advance [post]
func (h *ContractDraftsHandler) Advance(c *gin.Context) {
	draft, err := h.drafts.Advance(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	respond(c, h.errs, http.StatusOK, draft, err)
}

// Quote handles GET /api/contract-drafts/:id/quote.
//
// @Summary      Quote contract draft
// @Tags         ContractDrafts
// @Produce      json
// @Param        id path string true "Draft ID"
// @Success      200 {object} dto.SuccessResponse "Quote"
// @Failure      404 {object} dto.ErrorResponse "Not found or expired"
// @Security     JWTAuth
// @Router       /api/contract-drafts/{id}/quote [get]
func (h *ContractDraftsHandler) Quote(c *gin.Context) {
	quote, err := h.drafts.Quote(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	respond(c, h.errs, http.StatusOK, quote, err)
}

// Submit handles POST /api/contract-drafts/:id/submit.
//
// @Summary      Submit contract draft
// @Description  Validates the whole draft against current stock, creates the contract and discards the draft.
// @Tags         ContractDrafts
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        id path string true "Draft ID"
// @Success      201 {object} dto.SuccessResponse "Created contract"
// @Failure      400 {object} dto.ErrorResponse "Validation failed"
// @Failure      422 {object} dto.ErrorResponse "Rejected by the rental API"
// @Security     JWTAuth
// @Router       /api/contract-drafts/{id}/submit [post]
func (h *ContractDraftsHandler) Submit(c *gin.Context) {
	id := c.Param("id")
	contract, err := h.drafts.Submit(c.Request.Context(), middleware.GetSession(c), id)
	if err != nil {
		middleware.AuditError(c, model.ActionSubmitDraft, "Contract draft submission failed", err, map[string]any{"draft_id": id})
		h.errs.Respond(c, err)
		return
	}
	middleware.Audit(c, model.ActionSubmitDraft, "Contract draft submitted", map[string]any{
		"draft_id":    id,
		"contract_id": contract.ID,
	})
	NewResponseBuilder(c).SuccessCreated(contract)
}

// Delete handles DELETE /api/contract-drafts/:id.
//
// @Summary      Discard contract draft
// @Tags         ContractDrafts
// @Produce      json
// @Param        id path string true "Draft ID"
// @Success      200 {object} dto.SuccessResponse{data=dto.MessageResponse} "Discarded"
// @Failure      404 {object} dto.ErrorResponse "Not found"
// @Security     JWTAuth
// @Router       /api/contract-drafts/{id} [delete]
func (h *ContractDraftsHandler) Delete(c *gin.Context) {
	if err := h.drafts.Delete(c.Request.Context(), middleware.GetSession(c), c.Param("id")); err != nil {
		h.errs.Respond(c, err)
		return
	}
	message := i18n.GetTranslator().Translate(i18n.SuccessKeyDraftDeleted, i18n.GetLocale(c))
	NewResponseBuilder(c).SuccessOK(dto.MessageResponse{Message: message})
}

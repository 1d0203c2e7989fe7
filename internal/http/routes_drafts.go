package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rentaldesk/rental-bff/internal/service"
)

// ContractDraftRoutes handles registration of the contract wizard routes.
type ContractDraftRoutes struct {
	handler *ContractDraftsHandler
}

// NewContractDraftRoutes creates the contract drafts route group.
func NewContractDraftRoutes(drafts service.ContractDraftService, errs ErrorMapper) *ContractDraftRoutes {
	return &ContractDraftRoutes{handler: NewContractDraftsHandler(drafts, errs)}
}

// RegisterProtectedRoutes registers the contract draft routes.
func (r *ContractDraftRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	drafts := rg.Group("/contract-drafts")
	{
		drafts.GET("", r.handler.List)
		drafts.POST("", r.handler.Create)
		drafts.GET("/:id", r.handler.Get)
		drafts.PUT("/:id", r.handler.Update)
		drafts.DELETE("/:id", r.handler.Delete)
		drafts.POST("/:id/advance", r.handler.Advance)
		drafts.GET("/:id/quote", r.handler.Quote)
		drafts.POST("/:id/submit", r.handler.Submit)
	}
}

package http

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rentaldesk/rental-bff/internal/contractform"
	"github.com/rentaldesk/rental-bff/internal/domain/dto"
	"github.com/rentaldesk/rental-bff/internal/domain/model"
	"github.com/rentaldesk/rental-bff/internal/i18n"
	"github.com/rentaldesk/rental-bff/internal/middleware"
	"github.com/rentaldesk/rental-bff/internal/querycache"
	"github.com/rentaldesk/rental-bff/internal/rental"
	"github.com/rentaldesk/rental-bff/internal/session"
)

// ClientsAPI manages clients.
type ClientsAPI interface {
	ListClients(ctx context.Context, sess *session.Session, q url.Values) (querycache.Page[rental.Client], error)
	SearchClients(ctx context.Context, sess *session.Session, q url.Values) (querycache.Page[rental.Client], error)
	GetClient(ctx context.Context, sess *session.Session, id string) (rental.Client, error)
	ClientExists(ctx context.Context, sess *session.Session, field rental.ClientField, value string) (bool, error)
	CreateClient(ctx context.Context, sess *session.Session, in rental.ClientInput) (rental.Client, error)
	UpdateClient(ctx context.Context, sess *session.Session, id string, in rental.ClientInput) (rental.Client, error)
	DeleteClient(ctx context.Context, sess *session.Session, id string) error
}

// ClientsHandler provides HTTP handlers for client routes.
type ClientsHandler struct {
	api  ClientsAPI
	errs ErrorMapper
}

// NewClientsHandler creates a clients handler.
func NewClientsHandler(api ClientsAPI, errs ErrorMapper) *ClientsHandler {
	return &ClientsHandler{api: api, errs: errs}
}

// List handles GET /api/clients.
//
// @Summary      List clients
// @Tags         Clients
// @Produce      json
// @Param        page  query int    false "Page number"
// @Param        query query string false "Name, DNI or email filter"
// @Success      200 {object} dto.SuccessResponse "Page of clients"
// @Failure      400 {object} dto.ErrorResponse "Invalid query parameter"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Security     JWTAuth
// @Router       /api/clients [get]
func (h *ClientsHandler) List(c *gin.Context) {
	page, err := h.api.ListClients(c.Request.Context(), middleware.GetSession(c), c.Request.URL.Query())
	respondPage(c, h.errs, page, err)
}

// Search handles GET /api/clients/search. Queries shorter than three
// characters return an empty page.
//
// @Summary      Search clients
// @Tags         Clients
// @Produce      json
// @Param        query query string true "At least three characters of a name, DNI or email"
// @Success      200 {object} dto.SuccessResponse "Page of clients"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Security     JWTAuth
// @Router       /api/clients/search [get]
func (h *ClientsHandler) Search(c *gin.Context) {
	page, err := h.api.SearchClients(c.Request.Context(), middleware.GetSession(c), c.Request.URL.Query())
	respondPage(c, h.errs, page, err)
}

// Get handles GET /api/clients/:id.
//
// @Summary      Get client
// @Tags         Clients
// @Produce      json
// @Param        id path string true "Client ID"
// @Success      200 {object} dto.SuccessResponse "Client"
// @Failure      404 {object} dto.ErrorResponse "Not found"
// @Security     JWTAuth
// @Router       /api/clients/{id} [get]
func (h *ClientsHandler) Get(c *gin.Context) {
	client, err := h.api.GetClient(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	respond(c, h.errs, http.StatusOK, client, err)
}

// Exists handles GET /api/clients/exists?dni=... or ?email=...
//
// @Summary      Check client uniqueness
// @Description  Reports whether a DNI or email is already registered. Never cached.
// @Tags         Clients
// @Produce      json
// @Param        dni   query string false "DNI"
// @Param        email query string false "Email"
// @Success      200 {object} dto.SuccessResponse{data=dto.ClientExistsResponse} "Uniqueness"
// @Failure      400 {object} dto.ErrorResponse "Neither dni nor email given"
// @Security     JWTAuth
// @Router       /api/clients/exists [get]
func (h *ClientsHandler) Exists(c *gin.Context) {
	field, value := rental.ClientDNI, c.Query("dni")
	if value == "" {
		field, value = rental.ClientEmail, c.Query("email")
	}
	if value == "" {
		NewResponseBuilder(c).ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidParameter,
			map[string]string{"dni": "dni or email is required"}, nil)
		return
	}

	exists, err := h.api.ClientExists(c.Request.Context(), middleware.GetSession(c), field, value)
	respond(c, h.errs, http.StatusOK, dto.ClientExistsResponse{Field: string(field), Value: value, Exists: exists}, err)
}

// Create handles POST /api/clients.
//
// @Summary      Create client
// @Description  Validates the client, checks DNI and email are unused and creates it.
// @Tags         Clients
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body rental.ClientInput true "Client"
// @Success      201 {object} dto.SuccessResponse "Created client"
// @Failure      400 {object} dto.ErrorResponse "Validation failed"
// @Failure      422 {object} dto.ErrorResponse "Rejected by the rental API"
// @Security     JWTAuth
// @Router       /api/clients [post]
func (h *ClientsHandler) Create(c *gin.Context) {
	in, err := BuildRequest[rental.ClientInput](c)
	if err != nil {
		h.errs.RespondBind(c, err)
		return
	}
	ctx, sess := c.Request.Context(), middleware.GetSession(c)
	if err := contractform.ValidateClient(ctx, *in, nil, h.checker(sess)); err != nil {
		h.errs.Respond(c, err)
		return
	}

	client, err := h.api.CreateClient(ctx, sess, *in)
	if err != nil {
		middleware.AuditError(c, model.ActionCreateClient, "Client creation failed", err, map[string]any{"dni": in.DNI})
		h.errs.Respond(c, err)
		return
	}
	middleware.Audit(c, model.ActionCreateClient, "Client created", map[string]any{"client_id": client.ID})
	c.Header("Location", "/api/clients/"+client.ID)
	NewResponseBuilder(c).SuccessCreated(client)
}

// Update handles PUT /api/clients/:id.
//
// @Summary      Update client
// @Tags         Clients
// @Accept       json
// @Produce      json
// @Param        id path string true "Client ID"
// @Param        request body rental.ClientInput true "Client"
// @Success      200 {object} dto.SuccessResponse "Updated client"
// @Failure      400 {object} dto.ErrorResponse "Validation failed"
// @Failure      404 {object} dto.ErrorResponse "Not found"
// @Security     JWTAuth
// @Router       /api/clients/{id} [put]
func (h *ClientsHandler) Update(c *gin.Context) {
	in, err := BuildRequest[rental.ClientInput](c)
	if err != nil {
		h.errs.RespondBind(c, err)
		return
	}
	ctx, sess, id := c.Request.Context(), middleware.GetSession(c), c.Param("id")

	current, err := h.api.GetClient(ctx, sess, id)
	if err != nil {
		h.errs.Respond(c, err)
		return
	}
	if err := contractform.ValidateClient(ctx, *in, &current, h.checker(sess)); err != nil {
		h.errs.Respond(c, err)
		return
	}

	client, err := h.api.UpdateClient(ctx, sess, id, *in)
	if err != nil {
		middleware.AuditError(c, model.ActionUpdateClient, "Client update failed", err, map[string]any{"client_id": id})
		h.errs.Respond(c, err)
		return
	}
	middleware.Audit(c, model.ActionUpdateClient, "Client updated", map[string]any{"client_id": id})
	NewResponseBuilder(c).SuccessOK(client)
}

// Delete handles DELETE /api/clients/:id.
//
// @Summary      Delete client
// @Tags         Clients
// @Produce      json
// @Param        id path string true "Client ID"
// @Success      200 {object} dto.SuccessResponse{data=dto.MessageResponse} "Deleted"
// @Failure      422 {object} dto.ErrorResponse "Rejected by the rental API"
// @Security     JWTAuth
// @Router       /api/clients/{id} [delete]
func (h *ClientsHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.api.DeleteClient(c.Request.Context(), middleware.GetSession(c), id); err != nil {
		middleware.AuditError(c, model.ActionDeleteClient, "Client deletion failed", err, map[string]any{"client_id": id})
		h.errs.Respond(c, err)
		return
	}
	middleware.Audit(c, model.ActionDeleteClient, "Client deleted", map[string]any{"client_id": id})
	message := i18n.GetTranslator().Translate(i18n.SuccessKeyClientDeleted, i18n.GetLocale(c))
	NewResponseBuilder(c).SuccessOK(dto.MessageResponse{Message: message})
}

func (h *ClientsHandler) checker(sess *session.Session) contractform.UniquenessChecker {
	return func(ctx context.Context, field rental.ClientField, value string) (bool, error) {
		return h.api.ClientExists(ctx, sess, field, value)
	}
}

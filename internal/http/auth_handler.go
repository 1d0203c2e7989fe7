package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentaldesk/rental-bff/internal/domain/dto"
	"github.com/rentaldesk/rental-bff/internal/domain/model"
	"github.com/rentaldesk/rental-bff/internal/graphql"
	"github.com/rentaldesk/rental-bff/internal/i18n"
	"github.com/rentaldesk/rental-bff/internal/middleware"
	"github.com/rentaldesk/rental-bff/internal/session"
)

// Authenticator signs sessions in and out of the rental API.
type Authenticator interface {
	Login(ctx context.Context, sess *session.Session, email, password string) (string, error)
	Logout(sess *session.Session)
}

// AuthHandler provides HTTP handlers for authentication routes.
type AuthHandler struct {
	auth Authenticator
	errs ErrorMapper
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(auth Authenticator, errs ErrorMapper) *AuthHandler {
	return &AuthHandler{auth: auth, errs: errs}
}

// Login handles POST /api/auth/login requests.
//
// @Summary      Login user
// @Description  Exchanges credentials for a rental API token. Send it back as "Authorization: JWT <token>".
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Signed in"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      409 {object} dto.ErrorResponse "Email verification required"
// @Failure      502 {object} dto.ErrorResponse "Rental API unavailable"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.LoginRequest](c)
	if err != nil {
		h.errs.RespondBind(c, err)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), middleware.GetSession(c), req.Email, req.Password)
	if err != nil {
		middleware.AuditError(c, model.ActionLogin, "Failed login attempt", err, map[string]any{
			"email": req.Email,
		})
		if graphql.IsBusinessError(err) {
			NewResponseBuilder(c).Error(http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials, err)
			return
		}
		h.errs.Respond(c, err)
		return
	}

	middleware.Audit(c, model.ActionLogin, "User logged in", map[string]any{"email": req.Email})
	NewResponseBuilder(c).SuccessOK(dto.LoginResponse{Token: token})
}

// Logout handles POST /api/auth/logout requests.
//
// @Summary      Logout user
// @Description  Ends the session. The client discards its token.
// @Tags         Auth
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.MessageResponse} "Signed out"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or expired token"
// @Security     JWTAuth
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.Audit(c, model.ActionLogout, "User logged out", nil)
	h.auth.Logout(middleware.GetSession(c))

	message := i18n.GetTranslator().Translate(i18n.SuccessKeyLoggedOut, i18n.GetLocale(c))
	NewResponseBuilder(c).SuccessOK(dto.MessageResponse{Message: message})
}

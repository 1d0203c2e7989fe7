package http

import (
	"github.com/gin-gonic/gin"
)

// AuthRoutes handles authentication route registration.
type AuthRoutes struct {
	handler *AuthHandler
}

// NewAuthRoutes creates a new AuthRoutes instance.
func NewAuthRoutes(auth Authenticator, errs ErrorMapper) *AuthRoutes {
	return &AuthRoutes{handler: NewAuthHandler(auth, errs)}
}

// RegisterPublicRoutes registers the login route.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", r.handler.Login)
}

// RegisterProtectedRoutes registers the logout route.
func (r *AuthRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	rg.POST("/auth/logout", r.handler.Logout)
}

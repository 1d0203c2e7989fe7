package http

import (
	"github.com/gin-gonic/gin"
)

// PublicRouteGroup registers routes reachable without a session, such as login.
type PublicRouteGroup interface {
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// ProtectedRouteGroup registers routes behind RequireSession. Handlers read
// the caller's session from the context and forward it to the rental API.
type ProtectedRouteGroup interface {
	RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vooud_backend/pkg/utils"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "

	// ContextVendedorIDKey is the gin context key holding the authenticated vendedor's ID.
	ContextVendedorIDKey = "vendedorID"
	// ContextVendedorEmailKey is the gin context key holding the authenticated vendedor's email.
	ContextVendedorEmailKey = "vendedorEmail"
)

// AuthMiddleware validates the JWT access token from the Authorization header
// and stores the vendedor identity in the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authorizationHeader)
		if header == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", nil))
			return
		}

		if !strings.HasPrefix(header, bearerPrefix) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header must be a Bearer token", nil))
			return
		}

		tokenString := strings.TrimPrefix(header, bearerPrefix)
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.LogError(err, "Token validation failed")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", nil))
			return
		}

		c.Set(ContextVendedorIDKey, claims.VendedorID)
		c.Set(ContextVendedorEmailKey, claims.Email)
		c.Next()
	}
}

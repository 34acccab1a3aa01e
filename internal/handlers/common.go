package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vooud_backend/internal/middleware"
	"vooud_backend/pkg/utils"
)

// currentVendedorID reads the authenticated vendedor's ID placed in the
// context by the auth middleware. Returns false after responding 401 if
// the value is missing or malformed.
func currentVendedorID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(middleware.ContextVendedorIDKey)
	if !exists {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required", nil))
		return uuid.Nil, false
	}
	vendedorID, ok := raw.(uuid.UUID)
	if !ok || vendedorID == uuid.Nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid authentication context", nil))
		return uuid.Nil, false
	}
	return vendedorID, true
}

// pathUUID parses the named path parameter as a UUID, responding 400 on failure.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := utils.ParseUUIDParam(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid "+name+" parameter, must be a UUID", err.Error()))
		return uuid.Nil, false
	}
	return id, true
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vooud_backend/internal/services"
	"vooud_backend/pkg/utils"
)

// AuthHandlers holds dependencies for authentication endpoints.
type AuthHandlers struct {
	authService services.AuthService
}

// NewAuthHandlers creates a new instance of AuthHandlers.
func NewAuthHandlers(as services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: as}
}

// Register handles POST /api/accounts/register
func (h *AuthHandlers) Register(c *gin.Context) {
	var req services.RegisterVendedorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid request payload", err.Error()))
		return
	}

	vendedor, err := h.authService.RegisterVendedor(req)
	if err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.As(err, &vErr):
			utils.RespondValidationFailed(c, vErr.Fields)
		case errors.Is(err, services.ErrEmailExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), nil))
		default:
			utils.LogError(err, "Failed to register vendedor")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to register vendedor", nil))
		}
		return
	}

	c.JSON(http.StatusCreated, vendedor)
}

// Login handles POST /api/token
func (h *AuthHandlers) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid request payload", err.Error()))
		return
	}

	tokens, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil))
			return
		}
		utils.LogError(err, "Login failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Login failed", nil))
		return
	}

	c.JSON(http.StatusOK, tokens)
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// Refresh handles POST /api/token/refresh
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid request payload", err.Error()))
		return
	}

	tokens, err := h.authService.RefreshTokens(req.Refresh)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil))
			return
		}
		utils.LogError(err, "Token refresh failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Token refresh failed", nil))
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Me handles GET /api/accounts/me
func (h *AuthHandlers) Me(c *gin.Context) {
	vendedorID, ok := currentVendedorID(c)
	if !ok {
		return
	}

	vendedor, err := h.authService.GetVendedorProfile(vendedorID)
	if err != nil {
		if errors.Is(err, services.ErrVendedorNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), nil))
			return
		}
		utils.LogError(err, "Failed to fetch vendedor profile")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch profile", nil))
		return
	}

	c.JSON(http.StatusOK, vendedor)
}

// DeleteAccount handles DELETE /api/accounts/me
func (h *AuthHandlers) DeleteAccount(c *gin.Context) {
	vendedorID, ok := currentVendedorID(c)
	if !ok {
		return
	}

	if err := h.authService.DeleteVendedor(vendedorID); err != nil {
		switch {
		case errors.Is(err, services.ErrVendedorNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), nil))
		case errors.Is(err, services.ErrVendedorEmUso):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), nil))
		default:
			utils.LogError(err, "Failed to delete vendedor")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete vendedor", nil))
		}
		return
	}

	c.Status(http.StatusNoContent)
}

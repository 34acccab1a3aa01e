package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vooud_backend/internal/services"
	"vooud_backend/pkg/utils"
)

// ClienteHandlers holds dependencies for customer read endpoints.
type ClienteHandlers struct {
	clienteService services.ClienteService
}

// NewClienteHandlers creates a new instance of ClienteHandlers.
func NewClienteHandlers(cs services.ClienteService) *ClienteHandlers {
	return &ClienteHandlers{clienteService: cs}
}

// GetClientes handles GET /api/operations/clientes
func (h *ClienteHandlers) GetClientes(c *gin.Context) {
	clientes, err := h.clienteService.GetClientes()
	if err != nil {
		utils.LogError(err, "Failed to list clientes")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to list clientes", nil))
		return
	}
	c.JSON(http.StatusOK, clientes)
}

// GetClienteByID handles GET /api/operations/clientes/:id
func (h *ClienteHandlers) GetClienteByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	cliente, err := h.clienteService.GetClienteByID(id)
	if err != nil {
		if errors.Is(err, services.ErrClienteNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), nil))
			return
		}
		utils.LogError(err, "Failed to fetch cliente")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch cliente", nil))
		return
	}
	c.JSON(http.StatusOK, cliente)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"vooud_backend/internal/models"
	"vooud_backend/internal/services"
	"vooud_backend/pkg/utils"
)

// VendaHandlers holds dependencies for sale endpoints.
type VendaHandlers struct {
	vendaService services.VendaService
}

// NewVendaHandlers creates a new instance of VendaHandlers.
func NewVendaHandlers(vs services.VendaService) *VendaHandlers {
	return &VendaHandlers{vendaService: vs}
}

// CreateVenda handles POST /api/operations/vendas
// The whole submission runs as one transaction; any invalid line aborts it.
func (h *VendaHandlers) CreateVenda(c *gin.Context) {
	vendedorID, ok := currentVendedorID(c)
	if !ok {
		return
	}

	var req services.CreateVendaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid request payload", err.Error()))
		return
	}

	result, err := h.vendaService.CreateVenda(vendedorID, req)
	if err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.As(err, &vErr):
			utils.RespondValidationFailed(c, vErr.Fields)
		case errors.Is(err, services.ErrVendedorDivergente):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, err.Error(), nil))
		case errors.Is(err, services.ErrQuiosqueNotFound),
			errors.Is(err, services.ErrJoiaNotFound),
			errors.Is(err, services.ErrInventarioNotFound),
			errors.Is(err, services.ErrEstoqueInsuficiente):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), nil))
		case errors.Is(err, services.ErrEstoqueConflito),
			errors.Is(err, services.ErrClienteConflito):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), nil))
		default:
			utils.LogError(err, "Failed to create venda")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create venda", nil))
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetVendas handles GET /api/operations/vendas
// Supports vendedor, quiosque and date (YYYY-MM-DD) filters plus pagination.
func (h *VendaHandlers) GetVendas(c *gin.Context) {
	var filters models.VendaFilters

	if raw := c.Query("vendedor"); raw != "" {
		id, err := utils.ParseUUIDParam(raw)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid vendedor filter, must be a UUID", nil))
			return
		}
		filters.VendedorID = &id
	}
	if raw := c.Query("quiosque"); raw != "" {
		id, err := utils.ParseUUIDParam(raw)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid quiosque filter, must be a UUID", nil))
			return
		}
		filters.QuiosqueID = &id
	}
	if raw := c.Query("date"); raw != "" {
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid date filter, must be YYYY-MM-DD", nil))
			return
		}
		filters.Date = &raw
	}

	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 100 {
		filters.PageSize = 20
	}

	result, err := h.vendaService.GetVendas(filters)
	if err != nil {
		utils.LogError(err, "Failed to list vendas")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to list vendas", nil))
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetVendaByID handles GET /api/operations/vendas/:id
func (h *VendaHandlers) GetVendaByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	venda, err := h.vendaService.GetVendaByID(id)
	if err != nil {
		if errors.Is(err, services.ErrVendaNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), nil))
			return
		}
		utils.LogError(err, "Failed to fetch venda")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch venda", nil))
		return
	}

	c.JSON(http.StatusOK, venda)
}

// MeuQuiosqueInventario handles GET /api/operations/meu-quiosque/inventario
// Returns 404 when the authenticated seller has no kiosk assigned.
func (h *VendaHandlers) MeuQuiosqueInventario(c *gin.Context) {
	vendedorID, ok := currentVendedorID(c)
	if !ok {
		return
	}

	view, err := h.vendaService.GetMeuQuiosqueInventario(vendedorID)
	if err != nil {
		if errors.Is(err, services.ErrQuiosqueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Nenhum quiosque associado a este vendedor."})
			return
		}
		utils.LogError(err, "Failed to fetch quiosque inventario")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch inventario", nil))
		return
	}

	c.JSON(http.StatusOK, view)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vooud_backend/internal/models"
	"vooud_backend/internal/services"
	"vooud_backend/pkg/utils"
)

// QuiosqueHandlers holds dependencies for loja, quiosque and restock endpoints.
type QuiosqueHandlers struct {
	quiosqueService services.QuiosqueService
}

// NewQuiosqueHandlers creates a new instance of QuiosqueHandlers.
func NewQuiosqueHandlers(qs services.QuiosqueService) *QuiosqueHandlers {
	return &QuiosqueHandlers{quiosqueService: qs}
}

// --- Loja Endpoints ---

// CreateLoja handles POST /api/operations/lojas
func (h *QuiosqueHandlers) CreateLoja(c *gin.Context) {
	var loja models.Loja
	if err := c.ShouldBindJSON(&loja); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid request payload", err.Error()))
		return
	}

	created, err := h.quiosqueService.CreateLoja(&loja)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			utils.RespondValidationFailed(c, vErr.Fields)
			return
		}
		utils.LogError(err, "Failed to create loja")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create loja", nil))
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetLojas handles GET /api/operations/lojas
func (h *QuiosqueHandlers) GetLojas(c *gin.Context) {
	lojas, err := h.quiosqueService.GetLojas()
	if err != nil {
		utils.LogError(err, "Failed to list lojas")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to list lojas", nil))
		return
	}
	c.JSON(http.StatusOK, lojas)
}

// DeleteLoja handles DELETE /api/operations/lojas/:id
func (h *QuiosqueHandlers) DeleteLoja(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.quiosqueService.DeleteLoja(id); err != nil {
		switch {
		case errors.Is(err, services.ErrLojaNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), nil))
		case errors.Is(err, services.ErrLojaEmUso):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), nil))
		default:
			utils.LogError(err, "Failed to delete loja")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete loja", nil))
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Quiosque Endpoints ---

// CreateQuiosque handles POST /api/operations/quiosques
func (h *QuiosqueHandlers) CreateQuiosque(c *gin.Context) {
	var req services.CreateQuiosqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid request payload", err.Error()))
		return
	}

	quiosque, err := h.quiosqueService.CreateQuiosque(req)
	if err != nil {
		h.respondQuiosqueError(c, err, "Failed to create quiosque")
		return
	}
	c.JSON(http.StatusCreated, quiosque)
}

// GetQuiosques handles GET /api/operations/quiosques
func (h *QuiosqueHandlers) GetQuiosques(c *gin.Context) {
	quiosques, err := h.quiosqueService.GetQuiosques()
	if err != nil {
		utils.LogError(err, "Failed to list quiosques")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to list quiosques", nil))
		return
	}
	c.JSON(http.StatusOK, quiosques)
}

// GetQuiosqueByID handles GET /api/operations/quiosques/:id
func (h *QuiosqueHandlers) GetQuiosqueByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	quiosque, err := h.quiosqueService.GetQuiosqueByID(id)
	if err != nil {
		h.respondQuiosqueError(c, err, "Failed to fetch quiosque")
		return
	}
	c.JSON(http.StatusOK, quiosque)
}

// UpdateQuiosque handles PUT /api/operations/quiosques/:id
func (h *QuiosqueHandlers) UpdateQuiosque(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req services.CreateQuiosqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid request payload", err.Error()))
		return
	}

	quiosque, err := h.quiosqueService.UpdateQuiosque(id, req)
	if err != nil {
		h.respondQuiosqueError(c, err, "Failed to update quiosque")
		return
	}
	c.JSON(http.StatusOK, quiosque)
}

// DeleteQuiosque handles DELETE /api/operations/quiosques/:id
func (h *QuiosqueHandlers) DeleteQuiosque(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.quiosqueService.DeleteQuiosque(id); err != nil {
		h.respondQuiosqueError(c, err, "Failed to delete quiosque")
		return
	}
	c.Status(http.StatusNoContent)
}

// Restock handles PUT /api/operations/quiosques/:id/inventario
// Sets the absolute stock count of one joia at the quiosque.
func (h *QuiosqueHandlers) Restock(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req services.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid request payload", err.Error()))
		return
	}

	item, err := h.quiosqueService.RestockQuiosque(id, req)
	if err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.As(err, &vErr):
			utils.RespondValidationFailed(c, vErr.Fields)
		case errors.Is(err, services.ErrQuiosqueNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), nil))
		case errors.Is(err, services.ErrJoiaNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), nil))
		default:
			utils.LogError(err, "Failed to restock quiosque")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to restock quiosque", nil))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *QuiosqueHandlers) respondQuiosqueError(c *gin.Context, err error, logMsg string) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.RespondValidationFailed(c, vErr.Fields)
	case errors.Is(err, services.ErrQuiosqueNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), nil))
	case errors.Is(err, services.ErrLojaNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), nil))
	case errors.Is(err, services.ErrIdentificadorExists),
		errors.Is(err, services.ErrVendedorJaResponsavel),
		errors.Is(err, services.ErrQuiosqueEmUso):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), nil))
	default:
		utils.LogError(err, logMsg)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, logMsg, nil))
	}
}

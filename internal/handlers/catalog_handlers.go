package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vooud_backend/internal/services"
	"vooud_backend/pkg/utils"
)

// CatalogHandlers holds dependencies for categoria and joia endpoints.
type CatalogHandlers struct {
	catalogService services.CatalogService
}

// NewCatalogHandlers creates a new instance of CatalogHandlers.
func NewCatalogHandlers(cs services.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalogService: cs}
}

type categoriaRequest struct {
	Nome string `json:"nome" binding:"required"`
}

// --- Categoria Endpoints ---

// CreateCategoria handles POST /api/catalog/categorias
func (h *CatalogHandlers) CreateCategoria(c *gin.Context) {
	var req categoriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid request payload", err.Error()))
		return
	}

	categoria, err := h.catalogService.CreateCategoria(req.Nome)
	if err != nil {
		h.respondCategoriaError(c, err, "Failed to create categoria")
		return
	}
	c.JSON(http.StatusCreated, categoria)
}

// GetCategorias handles GET /api/catalog/categorias
func (h *CatalogHandlers) GetCategorias(c *gin.Context) {
	categorias, err := h.catalogService.GetCategorias()
	if err != nil {
		utils.LogError(err, "Failed to list categorias")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to list categorias", nil))
		return
	}
	c.JSON(http.StatusOK, categorias)
}

// UpdateCategoria handles PUT /api/catalog/categorias/:id
func (h *CatalogHandlers) UpdateCategoria(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req categoriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid request payload", err.Error()))
		return
	}

	categoria, err := h.catalogService.UpdateCategoria(id, req.Nome)
	if err != nil {
		h.respondCategoriaError(c, err, "Failed to update categoria")
		return
	}
	c.JSON(http.StatusOK, categoria)
}

// DeleteCategoria handles DELETE /api/catalog/categorias/:id
func (h *CatalogHandlers) DeleteCategoria(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategoria(id); err != nil {
		h.respondCategoriaError(c, err, "Failed to delete categoria")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandlers) respondCategoriaError(c *gin.Context, err error, logMsg string) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.RespondValidationFailed(c, vErr.Fields)
	case errors.Is(err, services.ErrCategoriaNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), nil))
	case errors.Is(err, services.ErrNomeCategoriaDup), errors.Is(err, services.ErrCategoriaEmUso):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), nil))
	default:
		utils.LogError(err, logMsg)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, logMsg, nil))
	}
}

// --- Joia Endpoints ---

// CreateJoia handles POST /api/catalog/joias
func (h *CatalogHandlers) CreateJoia(c *gin.Context) {
	var req services.CreateJoiaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid request payload", err.Error()))
		return
	}

	joia, err := h.catalogService.CreateJoia(req)
	if err != nil {
		h.respondJoiaError(c, err, "Failed to create joia")
		return
	}
	c.JSON(http.StatusCreated, joia)
}

// GetJoias handles GET /api/catalog/joias
func (h *CatalogHandlers) GetJoias(c *gin.Context) {
	joias, err := h.catalogService.GetJoias()
	if err != nil {
		utils.LogError(err, "Failed to list joias")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to list joias", nil))
		return
	}
	c.JSON(http.StatusOK, joias)
}

// GetJoiaByID handles GET /api/catalog/joias/:id
func (h *CatalogHandlers) GetJoiaByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	joia, err := h.catalogService.GetJoiaByID(id)
	if err != nil {
		h.respondJoiaError(c, err, "Failed to fetch joia")
		return
	}
	c.JSON(http.StatusOK, joia)
}

// UpdateJoia handles PUT /api/catalog/joias/:id
func (h *CatalogHandlers) UpdateJoia(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req services.CreateJoiaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid request payload", err.Error()))
		return
	}

	joia, err := h.catalogService.UpdateJoia(id, req)
	if err != nil {
		h.respondJoiaError(c, err, "Failed to update joia")
		return
	}
	c.JSON(http.StatusOK, joia)
}

// DeleteJoia handles DELETE /api/catalog/joias/:id
func (h *CatalogHandlers) DeleteJoia(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteJoia(id); err != nil {
		h.respondJoiaError(c, err, "Failed to delete joia")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandlers) respondJoiaError(c *gin.Context, err error, logMsg string) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.RespondValidationFailed(c, vErr.Fields)
	case errors.Is(err, services.ErrJoiaNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), nil))
	case errors.Is(err, services.ErrCategoriaNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), nil))
	case errors.Is(err, services.ErrSKUExists), errors.Is(err, services.ErrJoiaEmUso):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), nil))
	default:
		utils.LogError(err, logMsg)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, logMsg, nil))
	}
}

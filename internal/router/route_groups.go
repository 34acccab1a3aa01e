package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vooud_backend/internal/handlers"
	"vooud_backend/internal/middleware"
)

// registerRoot exposes a discovery map of the API surface.
func registerRoot(engine *gin.Engine) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"register":       "/api/accounts/register",
			"login":          "/api/token",
			"refresh":        "/api/token/refresh",
			"me":             "/api/accounts/me",
			"categorias":     "/api/catalog/categorias",
			"joias":          "/api/catalog/joias",
			"lojas":          "/api/operations/lojas",
			"quiosques":      "/api/operations/quiosques",
			"clientes":       "/api/operations/clientes",
			"vendas":         "/api/operations/vendas",
			"meu_inventario": "/api/operations/meu-quiosque/inventario",
		})
	})
}

func registerAuthRoutes(engine *gin.Engine, h *handlers.AuthHandlers) {
	accounts := engine.Group("/api/accounts")
	{
		accounts.POST("/register", h.Register)

		me := accounts.Group("")
		me.Use(middleware.AuthMiddleware())
		{
			me.GET("/me", h.Me)
			me.DELETE("/me", h.DeleteAccount)
		}
	}

	token := engine.Group("/api/token")
	{
		token.POST("", h.Login)
		token.POST("/refresh", h.Refresh)
	}
}

func registerCatalogRoutes(engine *gin.Engine, h *handlers.CatalogHandlers) {
	catalog := engine.Group("/api/catalog")
	catalog.Use(middleware.AuthMiddleware())
	{
		catalog.POST("/categorias", h.CreateCategoria)
		catalog.GET("/categorias", h.GetCategorias)
		catalog.PUT("/categorias/:id", h.UpdateCategoria)
		catalog.DELETE("/categorias/:id", h.DeleteCategoria)

		catalog.POST("/joias", h.CreateJoia)
		catalog.GET("/joias", h.GetJoias)
		catalog.GET("/joias/:id", h.GetJoiaByID)
		catalog.PUT("/joias/:id", h.UpdateJoia)
		catalog.DELETE("/joias/:id", h.DeleteJoia)
	}
}

func registerOperationsRoutes(
	engine *gin.Engine,
	quiosques *handlers.QuiosqueHandlers,
	clientes *handlers.ClienteHandlers,
	vendas *handlers.VendaHandlers,
) {
	operations := engine.Group("/api/operations")
	operations.Use(middleware.AuthMiddleware())
	{
		operations.POST("/lojas", quiosques.CreateLoja)
		operations.GET("/lojas", quiosques.GetLojas)
		operations.DELETE("/lojas/:id", quiosques.DeleteLoja)

		operations.POST("/quiosques", quiosques.CreateQuiosque)
		operations.GET("/quiosques", quiosques.GetQuiosques)
		operations.GET("/quiosques/:id", quiosques.GetQuiosqueByID)
		operations.PUT("/quiosques/:id", quiosques.UpdateQuiosque)
		operations.DELETE("/quiosques/:id", quiosques.DeleteQuiosque)
		operations.PUT("/quiosques/:id/inventario", quiosques.Restock)

		operations.GET("/clientes", clientes.GetClientes)
		operations.GET("/clientes/:id", clientes.GetClienteByID)

		operations.POST("/vendas", vendas.CreateVenda)
		operations.GET("/vendas", vendas.GetVendas)
		operations.GET("/vendas/:id", vendas.GetVendaByID)

		operations.GET("/meu-quiosque/inventario", vendas.MeuQuiosqueInventario)
	}
}

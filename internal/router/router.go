package router

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"vooud_backend/internal/handlers"
	"vooud_backend/internal/repositories"
	"vooud_backend/internal/services"
)

// Setup wires repositories, services and handlers onto the given engine.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Repositories
	txManager := repositories.NewTxManager(db)
	vendedorRepo := repositories.NewVendedorRepository(db)
	clienteRepo := repositories.NewClienteRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	quiosqueRepo := repositories.NewQuiosqueRepository(db)
	vendaRepo := repositories.NewVendaRepository(db)

	// Services
	authService := services.NewAuthService(vendedorRepo, quiosqueRepo, txManager)
	catalogService := services.NewCatalogService(catalogRepo)
	quiosqueService := services.NewQuiosqueService(quiosqueRepo, catalogRepo)
	clienteService := services.NewClienteService(clienteRepo)
	vendaService := services.NewVendaService(vendaRepo, catalogRepo, quiosqueRepo, clienteRepo, txManager)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authService)
	catalogHandlers := handlers.NewCatalogHandlers(catalogService)
	quiosqueHandlers := handlers.NewQuiosqueHandlers(quiosqueService)
	clienteHandlers := handlers.NewClienteHandlers(clienteService)
	vendaHandlers := handlers.NewVendaHandlers(vendaService)

	registerRoot(engine)
	registerAuthRoutes(engine, authHandlers)
	registerCatalogRoutes(engine, catalogHandlers)
	registerOperationsRoutes(engine, quiosqueHandlers, clienteHandlers, vendaHandlers)
}

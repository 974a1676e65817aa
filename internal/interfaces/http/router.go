package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tallerpro/taller-api/internal/application/analytics"
	"github.com/tallerpro/taller-api/internal/application/auth"
	"github.com/tallerpro/taller-api/internal/application/reparation"
	"github.com/tallerpro/taller-api/internal/application/stock"
	"github.com/tallerpro/taller-api/internal/application/usecase"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ItemUC       *usecase.ItemUseCase
	CategoryUC   *usecase.CategoryUseCase
	SupplierUC   *usecase.SupplierUseCase
	VehicleUC    *usecase.VehicleUseCase
	ServiceUC    *usecase.ServiceUseCase
	ApplyStock   *stock.ApplyMovementUseCase
	StockQuery   *stock.QueryUseCase
	ReparationUC *reparation.UseCase
	InvoiceUC    *reparation.InvoiceUseCase
	DashboardUC  *analytics.DashboardUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
//
// Roles:
//   - admin     → todo, incluido registrar usuarios
//   - mecanico  → reparaciones y movimientos de stock
//   - recepcion → catálogo, vehículos y lecturas
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, el resto con Bearer Token
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)
	protected.Get("/auth/me", authHandler.Me)

	// Gestión de usuarios (solo admin)
	protected.Get("/users", RequireRole(entity.RoleAdmin), authHandler.ListUsers)
	protected.Put("/users/:id", RequireRole(entity.RoleAdmin), authHandler.UpdateUser)
	protected.Patch("/users/:id/status", RequireRole(entity.RoleAdmin), authHandler.UpdateUserStatus)

	writeCatalog := RequireRole(entity.RoleAdmin, entity.RoleRecepcion)
	writeStock := RequireRole(entity.RoleAdmin, entity.RoleMecanico)

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.StockQuery)
	items.Post("/", writeCatalog, itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Get("/:id/transactions", itemHandler.History)
	items.Put("/:id", writeCatalog, itemHandler.Update)
	items.Delete("/:id", RequireRole(entity.RoleAdmin), itemHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", writeCatalog, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", writeCatalog, categoryHandler.Update)
	categories.Delete("/:id", RequireRole(entity.RoleAdmin), categoryHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", writeCatalog, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", writeCatalog, supplierHandler.Update)
	suppliers.Delete("/:id", RequireRole(entity.RoleAdmin), supplierHandler.Delete)

	// Vehicles (protegido)
	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Post("/", writeCatalog, vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Get("/:id", vehicleHandler.GetByID)
	vehicles.Put("/:id", writeCatalog, vehicleHandler.Update)
	vehicles.Delete("/:id", RequireRole(entity.RoleAdmin), vehicleHandler.Delete)

	// Services (protegido)
	services := protected.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC)
	services.Post("/", writeCatalog, serviceHandler.Create)
	services.Get("/", serviceHandler.List)
	services.Get("/:id", serviceHandler.GetByID)
	services.Put("/:id", writeCatalog, serviceHandler.Update)
	services.Delete("/:id", RequireRole(entity.RoleAdmin), serviceHandler.Delete)

	// Libro de stock (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.ApplyStock, deps.StockQuery)
	stockGroup.Post("/transactions", writeStock, stockHandler.CreateEntry)
	stockGroup.Get("/transactions", stockHandler.List)
	stockGroup.Get("/transactions/:id", stockHandler.GetByID)
	stockGroup.Get("/stats", stockHandler.Stats)

	// Reparations (protegido)
	reparations := protected.Group("/reparations")
	reparationHandler := NewReparationHandler(deps.ReparationUC, deps.InvoiceUC)
	reparations.Post("/", writeStock, reparationHandler.Create)
	reparations.Get("/", reparationHandler.List)
	reparations.Get("/:id", reparationHandler.GetByID)
	reparations.Get("/:id/invoice", reparationHandler.DownloadInvoice)
	reparations.Put("/:id", writeStock, reparationHandler.Update)
	reparations.Patch("/:id/status", writeStock, reparationHandler.UpdateStatus)
	reparations.Delete("/:id", writeStock, reparationHandler.Delete)

	// Dashboard (protegido, cualquier rol)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.GetSummary)
}

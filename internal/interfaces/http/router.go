package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/logicshaper19/palmtrace/internal/application/auth"
	"github.com/logicshaper19/palmtrace/internal/application/traceability"
	"github.com/logicshaper19/palmtrace/internal/application/usecase"
	"github.com/logicshaper19/palmtrace/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	CompanyUC        *usecase.CompanyUseCase
	ProductUC        *usecase.ProductUseCase
	BatchUC          *usecase.BatchUseCase
	AllocateUC       *traceability.AllocateUseCase
	TransformationUC *traceability.TransformationUseCase
	ReportUC         *traceability.ReportUseCase
	JWTSecret        string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (public: onboarding happens before the first user exists)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Protected routes (Bearer token). Writes are closed to auditors.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	writer := RequireRole(entity.RoleAdmin, entity.RoleOperator)

	// Product catalog
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Batches
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC, deps.ReportUC)
	batches.Post("/", writer, batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Get("/:id/traceability.pdf", batchHandler.TraceabilityPDF)

	// Inventory pool + allocations
	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AllocateUC)
	inventory.Get("/pool", inventoryHandler.GetPool)
	inventory.Post("/allocations", writer, inventoryHandler.Allocate)

	// Transformation events + mass balance
	transformations := protected.Group("/transformations")
	transformationHandler := NewTransformationHandler(deps.TransformationUC)
	transformations.Post("/", writer, transformationHandler.Create)
	transformations.Get("/", transformationHandler.List)
	transformations.Get("/:id", transformationHandler.GetByID)
	transformations.Post("/:id/validate-balance", writer, transformationHandler.ValidateBalance)
	transformations.Get("/:id/mass-balance", transformationHandler.BalanceHistory)
}

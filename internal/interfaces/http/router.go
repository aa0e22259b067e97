package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dgomezm/custodia-pos/internal/application/auth"
	"github.com/dgomezm/custodia-pos/internal/application/custody"
	"github.com/dgomezm/custodia-pos/internal/application/folio"
	"github.com/dgomezm/custodia-pos/internal/application/inventory"
	"github.com/dgomezm/custodia-pos/internal/application/usecase"
	"github.com/dgomezm/custodia-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	CustodyUC   *custody.UseCase
	InventoryUC *inventory.UseCase
	FolioUC     *folio.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; escritura solo admin/almacenista)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	catalogWrite := RequireRole(entity.RoleAdmin, entity.RoleAlmacenista)
	products.Post("/", catalogWrite, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", catalogWrite, productHandler.Update)

	// Custody (protegido; transiciones solo admin/almacenista)
	custodyGroup := protected.Group("/custody")
	custodyHandler := NewCustodyHandler(deps.CustodyUC)
	custodyGroup.Post("/items", catalogWrite, custodyHandler.Register)
	custodyGroup.Get("/items", custodyHandler.List)
	custodyGroup.Get("/items/:id", custodyHandler.GetByID)
	custodyGroup.Post("/items/:id/transition", catalogWrite, custodyHandler.Transition)
	custodyGroup.Get("/items/:id/history", custodyHandler.History)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/entries", catalogWrite, inventoryHandler.RecordEntry)
	invGroup.Post("/exits", catalogWrite, inventoryHandler.RecordExit)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/stock/:id/recompute", RequireRole(entity.RoleAdmin), inventoryHandler.RecomputeStock)

	// Folios (protegido)
	folios := protected.Group("/folios")
	folioHandler := NewFolioHandler(deps.FolioUC)
	folios.Post("/allocate", folioHandler.Allocate)
	folios.Get("/exists", folioHandler.Exists)
}

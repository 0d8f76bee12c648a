package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/auth"
	appinventory "github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/application/purchasing"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/application/workorder"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	ShopUC        *usecase.ShopUseCase
	PartUC        *usecase.PartUseCase
	LocationUC    *usecase.LocationUseCase
	ApplyMove     *appinventory.ApplyStockMoveUseCase
	StockQueries  *appinventory.StockQueryUseCase
	Reconcile     *appinventory.ReconcileUseCase
	WorkOrderUC   *workorder.WorkOrderUseCase
	ConsumePart   *workorder.ConsumePartUseCase
	VoidLine      *workorder.VoidLineUseCase
	PurchaseUC    *purchasing.PurchaseOrderUseCase
	ReceiveUC     *purchasing.ReceiveUseCase
	JWTSecret     string
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

	// Usuarios (protegido, solo admin)
	protected.Post("/users", RequireRole(entity.RoleAdmin), authHandler.CreateUser)

	// Taller propio (protegido)
	shops := protected.Group("/shops")
	shopHandler := NewShopHandler(deps.ShopUC)
	shops.Get("/me", shopHandler.GetMine)
	shops.Put("/me", RequireRole(entity.RoleAdmin), shopHandler.UpdateMine)

	// Catálogo de repuestos (protegido)
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC, deps.StockQueries)
	parts.Post("/", partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/:id", partHandler.GetByID)
	parts.Put("/:id", partHandler.Update)
	parts.Get("/:id/stock", partHandler.GetStock)
	parts.Get("/:id/moves", partHandler.GetMoves)

	// Ubicaciones de stock (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC, deps.StockQueries)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id/stock", locationHandler.GetStock)
	locations.Get("/:id/moves", locationHandler.GetMoves)

	// Ledger de inventario (protegido; ajustes solo admin/recepcion)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ApplyMove, deps.StockQueries, deps.Reconcile)
	invGroup.Post("/adjustments", RequireRole(entity.RoleAdmin, entity.RoleRecepcion), inventoryHandler.Adjust)
	invGroup.Get("/negative", inventoryHandler.NegativeStock)
	invGroup.Get("/orphan-consumes", inventoryHandler.OrphanConsumes)
	invGroup.Get("/balance", inventoryHandler.VerifyBalance)

	// Órdenes de trabajo (protegido)
	workOrders := protected.Group("/work-orders")
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC, deps.ConsumePart, deps.VoidLine)
	workOrders.Post("/", workOrderHandler.Create)
	workOrders.Get("/", workOrderHandler.List)
	workOrders.Get("/:id", workOrderHandler.GetByID)
	workOrders.Put("/:id/status", workOrderHandler.UpdateStatus)
	workOrders.Post("/:id/lines", workOrderHandler.AddLine)
	workOrders.Get("/:id/allocations", workOrderHandler.ListAllocations)
	workOrders.Post("/lines/:id/consume", workOrderHandler.ConsumePart)
	workOrders.Delete("/lines/:id", workOrderHandler.DeleteLine)

	// Órdenes de compra (protegido; recepción solo admin/recepcion)
	purchaseOrders := protected.Group("/purchase-orders")
	purchasingHandler := NewPurchasingHandler(deps.PurchaseUC, deps.ReceiveUC)
	purchaseOrders.Post("/", purchasingHandler.Create)
	purchaseOrders.Get("/", purchasingHandler.List)
	purchaseOrders.Get("/:id", purchasingHandler.GetByID)
	purchaseOrders.Post("/:id/receive", RequireRole(entity.RoleAdmin, entity.RoleRecepcion), purchasingHandler.ReceiveOrder)
	purchaseOrders.Post("/lines/:id/receive", RequireRole(entity.RoleAdmin, entity.RoleRecepcion), purchasingHandler.ReceiveLine)
}

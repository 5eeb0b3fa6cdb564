package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName    string
	Transfers  *inventory.TransferUseCase
	Reconciler *inventory.AlertReconciler
	Workflow   *inventory.AlertWorkflowUseCase
	Stock      *inventory.StockQueryUseCase
	Catalog    *usecase.CatalogUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Transfers
	transfers := api.Group("/transfers")
	transferHandler := NewTransferHandler(deps.Transfers)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)

	// Alerts
	alerts := api.Group("/alerts")
	alertHandler := NewAlertHandler(deps.Reconciler, deps.Workflow)
	alerts.Get("/", alertHandler.List)
	alerts.Post("/reconcile", alertHandler.Reconcile)
	alerts.Get("/:id", alertHandler.GetByID)
	alerts.Patch("/:id/status", alertHandler.UpdateStatus)

	// Catálogo (solo lectura) y stock por producto
	catalogHandler := NewCatalogHandler(deps.Catalog)
	api.Get("/warehouses", catalogHandler.ListWarehouses)
	products := api.Group("/products")
	stockHandler := NewStockHandler(deps.Stock)
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id/stock", stockHandler.GetByProduct)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-pos/internal/application/inventory"
	"github.com/jhoicas/farmacia-pos/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Catalog         *inventory.CatalogService
	Ledger          *inventory.StockLedger
	MedicineQueries *inventory.MedicineQueryService
	Alerts          *inventory.AlertService
	Cart            *sales.CartService
	CompleteSale    *sales.CompleteSaleService
	SaleQueries     *sales.SalesQueryService
	JWTSecret       string
}

// Router registra las rutas de la API. Todo el POS requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", IdentityMiddleware(deps.JWTSecret))

	// Medicines: catálogo y consultas de inventario
	medicines := api.Group("/medicines")
	medicineHandler := NewMedicineHandler(deps.Catalog, deps.Ledger, deps.MedicineQueries)
	medicines.Post("/", medicineHandler.Create)
	medicines.Get("/", medicineHandler.List)
	medicines.Get("/search", medicineHandler.Search)
	medicines.Get("/low-stock", medicineHandler.LowStock)
	medicines.Get("/out-of-stock", medicineHandler.OutOfStock)
	medicines.Get("/expired", medicineHandler.Expired)
	medicines.Get("/expiring-soon", medicineHandler.ExpiringSoon)
	medicines.Get("/:id", medicineHandler.GetByID)
	medicines.Put("/:id", medicineHandler.Update)
	medicines.Post("/:id/restock", medicineHandler.Restock)
	medicines.Put("/:id/stock", medicineHandler.SetStock)
	medicines.Put("/:id/threshold", medicineHandler.SetThreshold)

	// Sales: carrito, cierre y consultas
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.Cart, deps.CompleteSale, deps.SaleQueries)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/today", saleHandler.Today)
	salesGroup.Get("/stats", saleHandler.Stats)
	salesGroup.Get("/top", saleHandler.Top)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/items", saleHandler.AddItem)
	salesGroup.Delete("/:id/items/:medicineId", saleHandler.RemoveItem)
	salesGroup.Put("/:id/discount", saleHandler.ApplyDiscount)
	salesGroup.Post("/:id/complete", saleHandler.Complete)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)

	// Alerts: alertas de stock bajo
	alerts := api.Group("/alerts")
	alertHandler := NewAlertHandler(deps.Alerts)
	alerts.Get("/", alertHandler.ListActive)
	alerts.Post("/sweep", alertHandler.Sweep)
	alerts.Post("/:id/dismiss", alertHandler.Dismiss)
	alerts.Post("/:id/reactivate", alertHandler.Reactivate)
}

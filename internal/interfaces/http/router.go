package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-pos-api/internal/application/analytics"
	"github.com/jhoicas/taller-pos-api/internal/application/catalog"
	"github.com/jhoicas/taller-pos-api/internal/application/exchange"
	"github.com/jhoicas/taller-pos-api/internal/application/inventory"
	"github.com/jhoicas/taller-pos-api/internal/application/order"
	"github.com/jhoicas/taller-pos-api/internal/application/partner"
	"github.com/jhoicas/taller-pos-api/internal/application/payment"
	"github.com/jhoicas/taller-pos-api/internal/application/sale"
	"github.com/jhoicas/taller-pos-api/internal/application/store"
	"github.com/jhoicas/taller-pos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Log             *logger.Logger
	OrderUC         *order.UseCase
	PaymentUC       *payment.UseCase
	SaleUC          *sale.UseCase
	ExchangeSvc     *exchange.RateService
	CategoryUC      *catalog.CategoryUseCase
	ServiceUC       *catalog.ServiceUseCase
	ProductUC       *catalog.ProductUseCase
	PaymentMethodUC *catalog.PaymentMethodUseCase
	CustomerUC      *partner.CustomerUseCase
	ContactUC       *partner.ContactUseCase
	AdjustmentUC    *inventory.UseCase
	StoreUC         *store.UseCase
	AnalyticsUC     *analytics.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log != nil {
		errLog = deps.Log
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Órdenes de trabajo
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id/status", orderHandler.ChangeStatus)
	orders.Patch("/:id/payment-status", orderHandler.UpdatePaymentStatus)
	orders.Post("/:id/details", orderHandler.AddDetail)
	orders.Delete("/:id/details/:detailId", orderHandler.RemoveDetail)
	orders.Delete("/:id", orderHandler.Delete)

	// Ventas
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/quick", saleHandler.QuickSale)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Patch("/:id/status", saleHandler.ChangeStatus)
	sales.Get("/:id/receipt", saleHandler.Receipt)
	orders.Post("/:id/sale", saleHandler.DeriveFromOrder)

	// Pagos (sobre orden o venta)
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	orders.Post("/:id/payments", paymentHandler.CreateForOrder)
	sales.Post("/:id/payments", paymentHandler.CreateForSale)
	payments := api.Group("/payments")
	payments.Get("/", paymentHandler.List)
	payments.Get("/:id", paymentHandler.GetByID)

	// Tasa de cambio
	exchangeGroup := api.Group("/exchange")
	exchangeHandler := NewExchangeHandler(deps.ExchangeSvc)
	exchangeGroup.Get("/rate", exchangeHandler.CurrentRate)
	exchangeGroup.Get("/config", exchangeHandler.GetConfig)
	exchangeGroup.Put("/config", exchangeHandler.UpdateConfig)
	exchangeGroup.Post("/sync", exchangeHandler.Sync)

	// Catálogo
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	services := api.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC)
	services.Post("/", serviceHandler.Create)
	services.Get("/", serviceHandler.List)
	services.Get("/:id", serviceHandler.GetByID)
	services.Put("/:id", serviceHandler.Update)
	services.Delete("/:id", serviceHandler.Delete)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	methods := api.Group("/payment-methods")
	methodHandler := NewPaymentMethodHandler(deps.PaymentMethodUC)
	methods.Post("/", methodHandler.Create)
	methods.Get("/", methodHandler.List)
	methods.Get("/:id", methodHandler.GetByID)
	methods.Put("/:id", methodHandler.Update)
	methods.Delete("/:id", methodHandler.Delete)

	// Clientes y contactos
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	contacts := api.Group("/contacts")
	contactHandler := NewContactHandler(deps.ContactUC)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/", contactHandler.List)
	contacts.Get("/:id", contactHandler.GetByID)
	contacts.Put("/:id", contactHandler.Update)
	contacts.Delete("/:id", contactHandler.Delete)

	// Ajustes de inventario
	adjustments := api.Group("/inventory/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)

	// Datos del comercio
	storeHandler := NewStoreHandler(deps.StoreUC)
	api.Get("/store", storeHandler.Get)
	api.Put("/store", storeHandler.Update)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.AnalyticsUC)
	api.Get("/dashboard", dashboardHandler.Dashboard)
}

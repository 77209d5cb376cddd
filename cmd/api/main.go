package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/taller-pos-api/internal/application/analytics"
	"github.com/jhoicas/taller-pos-api/internal/application/catalog"
	"github.com/jhoicas/taller-pos-api/internal/application/exchange"
	"github.com/jhoicas/taller-pos-api/internal/application/inventory"
	"github.com/jhoicas/taller-pos-api/internal/application/order"
	"github.com/jhoicas/taller-pos-api/internal/application/partner"
	"github.com/jhoicas/taller-pos-api/internal/application/payment"
	"github.com/jhoicas/taller-pos-api/internal/application/sale"
	"github.com/jhoicas/taller-pos-api/internal/application/store"
	infrabcv "github.com/jhoicas/taller-pos-api/internal/infrastructure/bcv"
	infrapdf "github.com/jhoicas/taller-pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/taller-pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/taller-pos-api/internal/interfaces/http"
	"github.com/jhoicas/taller-pos-api/pkg/config"
	"github.com/jhoicas/taller-pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (fuera de transacción)
	orderRepo := postgres.NewOrderRepository(pool)
	orderDetailRepo := postgres.NewOrderDetailRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	methodRepo := postgres.NewPaymentMethodRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	exchangeRepo := postgres.NewExchangeRateRepository(pool)
	adjustmentRepo := postgres.NewInventoryAdjustmentRepository(pool)
	storeRepo := postgres.NewStoreInfoRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Tasa de cambio: scraper del BCV con fallback a la última sincronizada
	bcvClient := infrabcv.NewClient(cfg.BCV, log)
	rateSvc := exchange.NewRateService(exchangeRepo, bcvClient, log)

	// Casos de uso
	orderUC := order.NewUseCase(txRunner, orderRepo, orderDetailRepo,
		customerRepo, serviceRepo, productRepo, rateSvc, log)
	paymentUC := payment.NewUseCase(txRunner, paymentRepo, methodRepo, rateSvc, log)
	receiptGen := infrapdf.NewReceiptGenerator()
	saleUC := sale.NewUseCase(txRunner, saleRepo, orderRepo, customerRepo,
		serviceRepo, productRepo, methodRepo, storeRepo, rateSvc, receiptGen, log)
	// órdenes y ventas se referencian mutuamente; el derivador se inyecta aparte
	orderUC.SetSaleCreator(saleUC)

	categoryUC := catalog.NewCategoryUseCase(categoryRepo)
	serviceUC := catalog.NewServiceUseCase(serviceRepo)
	productUC := catalog.NewProductUseCase(productRepo, categoryRepo)
	methodUC := catalog.NewPaymentMethodUseCase(methodRepo)
	customerUC := partner.NewCustomerUseCase(customerRepo)
	contactUC := partner.NewContactUseCase(contactRepo)
	adjustmentUC := inventory.NewUseCase(txRunner, adjustmentRepo, productRepo)
	storeUC := store.NewUseCase(storeRepo)
	analyticsUC := analytics.NewUseCase(analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller POS API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Log:             log,
		OrderUC:         orderUC,
		PaymentUC:       paymentUC,
		SaleUC:          saleUC,
		ExchangeSvc:     rateSvc,
		CategoryUC:      categoryUC,
		ServiceUC:       serviceUC,
		ProductUC:       productUC,
		PaymentMethodUC: methodUC,
		CustomerUC:      customerUC,
		ContactUC:       contactUC,
		AdjustmentUC:    adjustmentUC,
		StoreUC:         storeUC,
		AnalyticsUC:     analyticsUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

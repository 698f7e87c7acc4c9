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
	"github.com/shopspring/decimal"

	appanalytics "github.com/aaryaethnics/storefront-api/internal/application/analytics"
	"github.com/aaryaethnics/storefront-api/internal/application/auth"
	"github.com/aaryaethnics/storefront-api/internal/application/cart"
	"github.com/aaryaethnics/storefront-api/internal/application/catalog"
	"github.com/aaryaethnics/storefront-api/internal/application/order"
	"github.com/aaryaethnics/storefront-api/internal/application/usecase"
	infracommerce "github.com/aaryaethnics/storefront-api/internal/infrastructure/commerce"
	infrapdf "github.com/aaryaethnics/storefront-api/internal/infrastructure/pdf"
	"github.com/aaryaethnics/storefront-api/internal/infrastructure/postgres"
	"github.com/aaryaethnics/storefront-api/internal/infrastructure/sitemap"
	httpRouter "github.com/aaryaethnics/storefront-api/internal/interfaces/http"
	"github.com/aaryaethnics/storefront-api/pkg/config"
	"github.com/aaryaethnics/storefront-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	bannerRepo := postgres.NewBannerRepository(pool)
	menuRepo := postgres.NewMenuRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	cartRepo := postgres.NewCartSnapshotRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Category tree: initial build plus LISTEN/NOTIFY rebuilds.
	catalogUC := catalog.NewUseCase(categoryRepo, log)
	if err := catalogUC.Start(postgres.NewCategoryFeed(pool, log)); err != nil {
		log.Fatal().Err(err).Msg("category tree startup")
	}
	defer catalogUC.Stop()

	productUC := usecase.NewProductUseCase(productRepo, cfg.Commerce.Currency)
	bannerUC := usecase.NewBannerUseCase(bannerRepo)
	menuUC := usecase.NewMenuUseCase(menuRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	commerceClient := infracommerce.NewClient(cfg.Commerce.Endpoint, cfg.Commerce.AccessToken)
	cartManager := cart.NewManager(cartRepo, commerceClient)

	shippingFee, err := decimal.NewFromString(cfg.Pricing.ShippingFee)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Pricing.ShippingFee).Msg("invalid SHIPPING_FEE")
	}
	freeShippingMin, err := decimal.NewFromString(cfg.Pricing.FreeShippingMin)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Pricing.FreeShippingMin).Msg("invalid FREE_SHIPPING_MIN")
	}
	createOrderUC := order.NewCreateOrderUseCase(txRunner, productRepo, order.Pricing{
		ShippingFee:     shippingFee,
		FreeShippingMin: freeShippingMin,
	})
	orderAdminUC := order.NewAdminUseCase(orderRepo, infrapdf.NewMarotoReceiptGenerator())

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Aarya Ethnics Storefront API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:    catalogUC,
		ProductUC:    productUC,
		BannerUC:     bannerUC,
		MenuUC:       menuUC,
		CartManager:  cartManager,
		CreateOrder:  createOrderUC,
		OrderAdmin:   orderAdminUC,
		DashboardUC:  dashboardUC,
		AuthUC:       authUC,
		UserUC:       userUC,
		Sitemap:      sitemap.NewBuilder(cfg.App.BaseURL),
		CategoryRepo: categoryRepo,
		ProductRepo:  productRepo,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("server stopped")
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aaryaethnics/storefront-api/internal/application/analytics"
	"github.com/aaryaethnics/storefront-api/internal/application/auth"
	"github.com/aaryaethnics/storefront-api/internal/application/cart"
	"github.com/aaryaethnics/storefront-api/internal/application/catalog"
	"github.com/aaryaethnics/storefront-api/internal/application/order"
	"github.com/aaryaethnics/storefront-api/internal/application/usecase"
	"github.com/aaryaethnics/storefront-api/internal/domain/repository"
	"github.com/aaryaethnics/storefront-api/internal/infrastructure/sitemap"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	CatalogUC    *catalog.UseCase
	ProductUC    *usecase.ProductUseCase
	BannerUC     *usecase.BannerUseCase
	MenuUC       *usecase.MenuUseCase
	CartManager  *cart.Manager
	CreateOrder  *order.CreateOrderUseCase
	OrderAdmin   *order.AdminUseCase
	DashboardUC  *analytics.DashboardUseCase
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	Sitemap      *sitemap.Builder
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	JWTSecret    string
}

// Router registers the API routes: the public storefront surface, auth,
// and the admin panel behind AuthMiddleware + RequireRole("admin").
func Router(app *fiber.App, deps RouterDeps) {
	sitemapHandler := NewSitemapHandler(deps.Sitemap, deps.CategoryRepo, deps.ProductRepo)
	app.Get("/sitemap.xml", sitemapHandler.Get)

	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Storefront catalog (public)
	categoryHandler := NewCategoryHandler(deps.CatalogUC)
	api.Get("/categories/tree", categoryHandler.Tree)

	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/featured", productHandler.Featured)
	products.Get("/:slug", productHandler.GetBySlug)

	bannerHandler := NewBannerHandler(deps.BannerUC)
	api.Get("/banners", bannerHandler.Active)

	menuHandler := NewMenuHandler(deps.MenuUC)
	api.Get("/menu", menuHandler.Tree)

	// Session cart (public, keyed by X-Session-ID)
	cartHandler := NewCartHandler(deps.CartManager, deps.ProductUC)
	cartGroup := api.Group("/cart")
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items", cartHandler.UpdateItem)
	cartGroup.Put("/drawer", cartHandler.Drawer)
	cartGroup.Post("/sync", cartHandler.Sync)
	cartGroup.Get("/checkout-url", cartHandler.CheckoutURL)

	// Checkout (public; guests order without an account)
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.OrderAdmin)
	api.Post("/checkout", orderHandler.Checkout)

	// Admin panel (requires Bearer token with the admin role)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole("admin"))

	categories := admin.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/reorder", categoryHandler.Reorder)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	adminProducts := admin.Group("/products")
	adminProducts.Post("/", productHandler.Create)
	adminProducts.Get("/:id", productHandler.GetByID)
	adminProducts.Put("/:id", productHandler.Update)
	adminProducts.Delete("/:id", productHandler.Delete)

	banners := admin.Group("/banners")
	banners.Get("/", bannerHandler.List)
	banners.Post("/", bannerHandler.Create)
	banners.Put("/:id", bannerHandler.Update)
	banners.Delete("/:id", bannerHandler.Delete)

	menu := admin.Group("/menu")
	menu.Get("/", menuHandler.List)
	menu.Post("/", menuHandler.Create)
	menu.Put("/reorder", menuHandler.Reorder)
	menu.Put("/:id", menuHandler.Update)
	menu.Delete("/:id", menuHandler.Delete)

	orders := admin.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/status", orderHandler.UpdateStatus)
	orders.Get("/:id/receipt", orderHandler.Receipt)

	users := admin.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	admin.Get("/dashboard", dashboardHandler.Summary)
}

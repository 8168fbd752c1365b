package routes

import (
	"shoplite-catalog/internal/adapters/http/handlers"
	"shoplite-catalog/internal/adapters/http/middleware"
	"shoplite-catalog/internal/adapters/persistence/repositories"
	"shoplite-catalog/internal/config"
	"shoplite-catalog/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, categoryRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	permissionHandler := handlers.NewPermissionHandler(userService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// The guard middleware used by every protected route
	guard := middleware.AuthMiddleware(authService)

	// Auth routes
	auth := app.Group("/auth")
	auth.Post("/token", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/create_user", middleware.AuthRateLimiter(), authHandler.CreateUser)
	auth.Get("/read_current_user", guard, authHandler.ReadCurrentUser)

	// Category routes: reads are public, writes are admin only
	category := app.Group("/category")
	category.Get("/categories", categoryHandler.ListCategories)
	category.Get("/category/:id", categoryHandler.GetCategory)
	category.Post("/create_category", guard, middleware.AdminOnly(), categoryHandler.CreateCategory)
	category.Put("/update_category", guard, middleware.AdminOnly(), categoryHandler.UpdateCategory)
	category.Delete("/delete_category", guard, middleware.AdminOnly(), categoryHandler.DeleteCategory)

	// Product routes: reads are public; create needs supplier or admin;
	// update/delete additionally check ownership in the service
	products := app.Group("/products")
	products.Get("/all_products", productHandler.ListProducts)
	products.Get("/category/:category_slug", productHandler.ProductsByCategory)
	products.Get("/detail/:product_slug", productHandler.ProductDetail)
	products.Post("/create_product", guard, middleware.SupplierOrAdmin(), productHandler.CreateProduct)
	products.Put("/detail_update/:product_slug", guard, middleware.SupplierOrAdmin(), productHandler.UpdateProduct)
	products.Delete("/delete_product", guard, middleware.SupplierOrAdmin(), productHandler.DeleteProduct)

	// Permission routes: admin only
	permission := app.Group("/permission", guard, middleware.AdminOnly())
	permission.Get("/users", permissionHandler.ListUsers)
	permission.Patch("/update_permission", permissionHandler.UpdatePermission)
	permission.Delete("/delete_user", permissionHandler.DeleteUser)
}

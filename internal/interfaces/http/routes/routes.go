// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/projektikatalog/jeftinoRS/internal/config"
	"github.com/projektikatalog/jeftinoRS/internal/domain/cart"
	"github.com/projektikatalog/jeftinoRS/internal/domain/catalog"
	"github.com/projektikatalog/jeftinoRS/internal/domain/checkout"
	"github.com/projektikatalog/jeftinoRS/internal/domain/order"
	"github.com/projektikatalog/jeftinoRS/internal/domain/promotion"
	"github.com/projektikatalog/jeftinoRS/internal/domain/settings"
	"github.com/projektikatalog/jeftinoRS/internal/domain/user"
	"github.com/projektikatalog/jeftinoRS/internal/interfaces/http/handlers"
	"github.com/projektikatalog/jeftinoRS/internal/interfaces/http/middleware"
	"github.com/projektikatalog/jeftinoRS/internal/pkg/auth"
	"github.com/projektikatalog/jeftinoRS/internal/pkg/notify"
)

// SetupRoutes wires every route group onto the API router.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	jwtManager := auth.NewJWTManager(cfg)
	passwordManager := auth.NewPasswordManager(cfg.Security.BcryptCost)

	catalogService := catalog.NewService(db, cfg)
	promotionService := promotion.NewService(db, cfg)
	cartService := cart.NewService(redisClient, cfg, logger)
	orderService := order.NewService(db)
	settingsService := settings.NewService(db)
	userService := user.NewService(db, jwtManager, passwordManager)
	notifier := notify.NewTelegramNotifier(settingsService, cfg, logger)
	checkoutService := checkout.NewService(cartService, orderService, notifier, logger)

	authHandler := handlers.NewAuthHandler(userService)
	productHandler := handlers.NewProductHandler(catalogService)
	promotionHandler := handlers.NewPromotionHandler(promotionService)
	cartHandler := handlers.NewCartHandler(cartService, catalogService)
	promoHandler := handlers.NewPromoHandler(cartService, catalogService, promotionService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	// Public storefront
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	products := rg.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	promotions := rg.Group("/promotions")
	{
		promotions.GET("", promotionHandler.ListPromotions)
		promotions.GET("/:id", promotionHandler.GetPromotion)
	}

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
		cartGroup.POST("/items", cartHandler.AddItem)
		cartGroup.PUT("/items", cartHandler.UpdateItem)
		cartGroup.DELETE("/items", cartHandler.RemoveItem)
	}

	promo := rg.Group("/promo")
	{
		promo.POST("/start", promoHandler.Start)
		promo.GET("/session", promoHandler.GetSession)
		promo.DELETE("/session", promoHandler.Cancel)
		promo.GET("/steps/:index/products", promoHandler.StepProducts)
		promo.POST("/steps/:index/select", promoHandler.SelectForStep)
		promo.DELETE("/steps/:index", promoHandler.RemoveStepItem)
		promo.POST("/items", promoHandler.AddQuantityItem)
		promo.DELETE("/items", promoHandler.RemoveQuantityItem)
		promo.POST("/navigate/:direction", promoHandler.Navigate)
		promo.DELETE("/bundles/:id", promoHandler.RemoveBundle)
	}

	checkoutGroup := rg.Group("/checkout")
	{
		checkoutGroup.POST("", checkoutHandler.Submit)
		checkoutGroup.POST("/validate", checkoutHandler.Validate)
	}

	// Admin back-office
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)

		admin.POST("/promotions", promotionHandler.CreatePromotion)
		admin.PUT("/promotions/:id", promotionHandler.UpdatePromotion)
		admin.DELETE("/promotions/:id", promotionHandler.DeletePromotion)

		admin.GET("/orders", orderHandler.ListOrders)
		admin.GET("/orders/:id", orderHandler.GetOrder)
		admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
		admin.DELETE("/orders/:id", orderHandler.DeleteOrder)

		admin.GET("/settings", settingsHandler.ListSettings)
		admin.PUT("/settings/:key", settingsHandler.SetSetting)
	}
}

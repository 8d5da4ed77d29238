// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/your-org/glowing-legacy-backend/internal/config"
	"github.com/your-org/glowing-legacy-backend/internal/domain/message"
	"github.com/your-org/glowing-legacy-backend/internal/interfaces/http/handlers"
	"github.com/your-org/glowing-legacy-backend/internal/interfaces/http/middleware"
	"github.com/your-org/glowing-legacy-backend/internal/pkg/email"
)

// SetupRoutes wires all API routes onto the given group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, messageService *message.Service, emailService *email.Service, cfg *config.Config) {
	SetupProductRoutes(rg, db, cfg)
	SetupLegacyRoutes(rg, messageService, cfg)
	SetupMessageRoutes(rg, messageService, cfg)

	cartHandler := SetupCartRoutes(rg, db, redisClient, cfg)
	SetupOrderRoutes(rg, db, cartHandler, emailService, cfg)
}

// SetupProductRoutes sets up catalog routes. The catalog is public
// and read-only.
func SetupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/search", productHandler.SearchProducts)
		products.GET("/slug/:slug", productHandler.GetProductBySlug)
		products.GET("/:id", productHandler.GetProduct)
	}
}

// SetupLegacyRoutes sets up legacy readiness routes. The POST variant
// scores a caller-supplied snapshot and needs no account; the GET
// variant scores the authenticated user's stored content.
func SetupLegacyRoutes(rg *gin.RouterGroup, messageService *message.Service, cfg *config.Config) {
	legacyHandler := handlers.NewLegacyHandler(messageService, cfg)

	legacy := rg.Group("/legacy")
	{
		legacy.POST("/readiness", legacyHandler.EvaluateReadiness)

		protected := legacy.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/readiness", legacyHandler.GetReadiness)
		}
	}
}

// SetupMessageRoutes sets up video message, gift plan, delivery and
// emergency contact routes. All require authentication.
func SetupMessageRoutes(rg *gin.RouterGroup, messageService *message.Service, cfg *config.Config) {
	messageHandler := handlers.NewMessageHandler(messageService, cfg)

	messages := rg.Group("/messages")
	messages.Use(middleware.AuthMiddleware(cfg))
	{
		messages.POST("", messageHandler.CreateMessage)
		messages.GET("", messageHandler.GetMessages)
		messages.GET("/:id", messageHandler.GetMessage)
		messages.PUT("/:id", messageHandler.UpdateMessage)
		messages.DELETE("/:id", messageHandler.DeleteMessage)
	}

	giftPlans := rg.Group("/gift-plans")
	giftPlans.Use(middleware.AuthMiddleware(cfg))
	{
		giftPlans.POST("", messageHandler.CreateGiftPlan)
		giftPlans.GET("", messageHandler.GetGiftPlans)
		giftPlans.DELETE("/:id", messageHandler.DeleteGiftPlan)
	}

	deliveries := rg.Group("/deliveries")
	deliveries.Use(middleware.AuthMiddleware(cfg))
	{
		deliveries.POST("", messageHandler.ScheduleDelivery)
		deliveries.GET("", messageHandler.GetDeliveries)
		deliveries.POST("/:id/cancel", messageHandler.CancelDelivery)
	}

	contact := rg.Group("/emergency-contact")
	contact.Use(middleware.AuthMiddleware(cfg))
	{
		contact.PUT("", messageHandler.UpsertEmergencyContact)
		contact.GET("", messageHandler.GetEmergencyContact)
		contact.DELETE("", messageHandler.DeleteEmergencyContact)
	}
}

// SetupCartRoutes sets up cart routes. Carts work for guest sessions
// and authenticated users alike, so auth is optional.
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *handlers.CartHandler {
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)

		// Merging requires a signed-in user
		merge := cart.Group("")
		merge.Use(middleware.AuthMiddleware(cfg))
		{
			merge.POST("/merge", cartHandler.MergeGuestCart)
		}
	}

	return cartHandler
}

// SetupOrderRoutes sets up order routes. All require authentication;
// orders are placed from the user's stored cart.
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cartHandler *handlers.CartHandler, emailService *email.Service, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, cartHandler.Service(), emailService, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/receipt", orderHandler.GetOrderReceipt)
		orders.POST("/:id/cancel", orderHandler.CancelOrder)
	}
}

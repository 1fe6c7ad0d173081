package routes

import (
	"time"

	"farmstand-backend/cache"
	"farmstand-backend/cart"
	"farmstand-backend/checkout"
	"farmstand-backend/handlers"
	"farmstand-backend/middleware"

	"github.com/gin-gonic/gin"
)

// Deps carries everything the handlers need. Cache and Notify may be nil.
type Deps struct {
	Users    handlers.UserStore
	Products handlers.ProductCatalog
	Shops    handlers.ShopGetter
	Orders   handlers.AdminOrderStore
	Cart     *cart.Manager
	Checkout *checkout.Service
	Cache    *cache.Cache
	Notify   handlers.StatusNotifier
}

func SetupRoutes(r *gin.Engine, d Deps) {
	authHandler := &handlers.AuthHandler{Users: d.Users, Cache: d.Cache, Cart: d.Cart}
	productHandler := &handlers.ProductHandler{Products: d.Products, Shops: d.Shops, Cache: d.Cache}
	shopHandler := &handlers.ShopHandler{Shops: d.Shops}
	cartHandler := &handlers.CartHandler{Cart: d.Cart}
	orderHandler := &handlers.OrderHandler{Checkout: d.Checkout, Orders: d.Orders, Users: d.Users, Notify: d.Notify}

	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/auth/register", authLimiter.Middleware(), authHandler.Register)
		api.POST("/auth/login", authLimiter.Middleware(), authHandler.Login)

		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProduct)
		api.GET("/shops/:id", shopHandler.GetShop)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/profile", authHandler.GetProfile)
		protected.PUT("/auth/profile", authHandler.UpdateProfile)

		protected.GET("/cart", cartHandler.GetCart)
		protected.POST("/cart", cartHandler.AddToCart)
		protected.PUT("/cart/:id", cartHandler.UpdateCartItem)
		protected.DELETE("/cart/:id", cartHandler.RemoveFromCart)
		protected.DELETE("/cart", cartHandler.ClearCart)

		protected.POST("/orders", orderHandler.CreateOrder)
		protected.GET("/orders", orderHandler.GetOrders)
		protected.GET("/orders/:id", orderHandler.GetOrder)
	}

	// Admin routes (fulfillment hook)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

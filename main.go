package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farmstand-backend/cache"
	"farmstand-backend/cart"
	"farmstand-backend/checkout"
	"farmstand-backend/config"
	"farmstand-backend/notify"
	"farmstand-backend/routes"
	"farmstand-backend/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load environment variables
	if err := config.LoadEnv(); err != nil {
		log.Fatal("Error loading .env file:", err)
	}

	// Validate critical environment variables
	if err := config.ValidateEnv(); err != nil {
		log.Fatal("Environment validation failed: ", err)
	}

	ctx := context.Background()

	// Connect to the document store
	fsClient, err := store.Connect(ctx)
	if err != nil {
		log.Fatal("Failed to connect to Firestore:", err)
	}

	users := store.NewUsers(fsClient)
	products := store.NewProducts(fsClient)
	shops := store.NewShops(fsClient)
	carts := store.NewCarts(fsClient)
	orders := store.NewOrders(fsClient)

	// Session/catalog cache is optional
	sessionCache, err := cache.Connect(ctx)
	if err != nil {
		log.Printf("Warning: cache disabled: %v", err)
		sessionCache = nil
	}

	// Push notifications are optional
	sender, err := notify.Init(ctx)
	if err != nil {
		log.Printf("Warning: push notifications disabled: %v", err)
		sender = nil
	}

	cartManager := cart.New(carts)
	checkoutService := &checkout.Service{
		Orders: orders,
		Shops:  shops,
		Users:  users,
		Cart:   cartManager,
		Notify: sender,
	}

	// Setup Gin router
	r := gin.Default()

	// CORS configuration - filter out empty strings from AllowOrigins
	originCandidates := []string{os.Getenv("FRONTEND_URL"), os.Getenv("ADMIN_URL")}
	var origins []string
	for _, o := range originCandidates {
		if o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
		log.Println("WARNING: No CORS origins configured, defaulting to http://localhost:3000")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	routes.SetupRoutes(r, routes.Deps{
		Users:    users,
		Products: products,
		Shops:    shops,
		Orders:   orders,
		Cart:     cartManager,
		Checkout: checkoutService,
		Cache:    sessionCache,
		Notify:   sender,
	})

	// Start server with graceful shutdown
	port := config.GetEnv("PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	// Let detached cart persists finish before closing the store client
	cartManager.Flush()

	if err := fsClient.Close(); err != nil {
		log.Printf("Error closing Firestore client: %v", err)
	}
	if err := sessionCache.Close(); err != nil {
		log.Printf("Error closing cache: %v", err)
	}

	log.Println("Server exited gracefully")
}

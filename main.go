package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/backend"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/favorites"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/store"
	"storefront/internal/tracking"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureSessionStateIndexes(db); err != nil {
		log.Printf("session state index warning: %v", err)
	}

	records := store.NewMongo(db)
	api := backend.New(config.AppEnv.BackendBaseURL, config.AppEnv.HTTPTimeout)

	// product images are served from the backend host, next to its /api
	imageBaseURL := strings.TrimSuffix(config.AppEnv.BackendBaseURL, "/api")

	cache := catalog.New(api, records, imageBaseURL)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if _, err := cache.Load(ctx, false); err != nil {
			log.Printf("initial catalog load degraded: %v", err)
		}
		cancel()
	}

	carts := cart.NewService(records, cache)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		carts.PurgeLegacy(ctx)
		cancel()
	}

	favs := favorites.NewService(records, cache)
	wizard := checkout.NewWizard(records)

	var strategy checkout.PaymentStrategy
	if config.AppEnv.PaymentMode == config.PaymentModeEmbedded {
		strategy = checkout.NewEmbeddedForm(api)
	} else {
		strategy = checkout.NewHostedRedirect(api, config.AppEnv.PublicBaseURL)
	}
	log.Println("payment strategy:", strategy.Name())

	checkoutSvc := checkout.NewService(api, strategy, wizard, carts)
	trackingSvc := tracking.NewService(api)

	r := gin.Default()
	r.Use(middleware.Session())

	r.GET("/api/products", handlers.GetProducts(cache))
	r.GET("/api/products/:id", handlers.GetProduct(cache))
	r.GET("/api/categories", handlers.GetCategories(cache))

	r.GET("/api/cart", handlers.GetCart(carts))
	r.POST("/api/cart", handlers.AddToCart(carts))
	r.PUT("/api/cart/:productId", handlers.SetCartQuantity(carts))
	r.DELETE("/api/cart/:productId", handlers.RemoveFromCart(carts))
	r.DELETE("/api/cart", handlers.ClearCart(carts))

	r.GET("/api/favorites", handlers.GetFavorites(favs))
	r.PUT("/api/favorites/:productId", handlers.AddFavorite(favs))
	r.DELETE("/api/favorites/:productId", handlers.RemoveFavorite(favs))

	r.GET("/api/checkout", handlers.GetCheckoutState(checkoutSvc, carts))
	r.POST("/api/checkout/identity", handlers.SubmitIdentity(checkoutSvc))
	r.POST("/api/checkout/shipping", handlers.SubmitShipping(checkoutSvc))
	r.POST("/api/checkout/back", handlers.CheckoutBack(checkoutSvc))
	r.POST("/api/checkout/payment", handlers.SubmitPayment(checkoutSvc))
	r.GET("/api/checkout/confirm", handlers.ConfirmPayment(checkoutSvc))

	r.GET("/api/orders/:id/track", handlers.TrackOrder(trackingSvc))

	r.POST("/api/admin/login", handlers.AdminLogin(config.AppEnv))

	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/products", handlers.AdminListProducts(api, imageBaseURL))
		admin.POST("/products", handlers.AdminCreateProduct(api, cache, imageBaseURL))
		admin.PUT("/products/:id", handlers.AdminUpdateProduct(api, cache, imageBaseURL))
		admin.DELETE("/products/:id", handlers.AdminDeleteProduct(api, cache))
		admin.PUT("/products/:id/sale/remove", handlers.AdminRemoveSale(api, cache, imageBaseURL))
		admin.PUT("/products/:id/sale/:percent", handlers.AdminApplySale(api, cache, imageBaseURL))

		admin.GET("/orders", handlers.AdminListOrders(api))
		admin.GET("/orders/:id", handlers.AdminGetOrder(api))
		admin.PUT("/orders/:id/status", handlers.AdminSetOrderStatus(api))
		admin.POST("/orders/:id/ship", handlers.AdminShipOrder(api))
		admin.PUT("/orders/:id/deliver", handlers.AdminDeliverOrder(api))
		admin.POST("/orders/:id/cancel", handlers.AdminCancelOrder(api))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

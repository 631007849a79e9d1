// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/woocom/woocom-backend/internal/config"
	"github.com/woocom/woocom-backend/internal/handlers"
	"github.com/woocom/woocom-backend/internal/middleware"
	"github.com/woocom/woocom-backend/internal/models"
	"github.com/woocom/woocom-backend/internal/services"
	"github.com/woocom/woocom-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	userService := services.NewUserService(db, cfg)
	productService := services.NewProductService(db)
	cartService := services.NewCartService(db)
	ledgerService := services.NewLedgerService(db)
	orderService := services.NewOrderService(db, productService, ledgerService)
	reviewService := services.NewReviewService(db, productService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService, cartService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.PUT("/user/:email", authHandler.UpsertUser)
			auth.GET("/role/:email", authHandler.FetchRole)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.ListProducts)
			products.GET("/count", productHandler.CountProducts)
			products.GET("/category/:category", productHandler.ListByCategory)
			products.GET("/:id", productHandler.GetProduct)
			products.GET("/:id/cart/:email", middleware.OptionalAuth(), productHandler.GetProductWithCartStatus)

			// Seller-facing routes
			sellers := products.Group("")
			sellers.Use(middleware.AuthRequired(), middleware.RoleRequired(db, models.UserRoleSeller, models.UserRoleAdmin, models.UserRoleOwner))
			{
				sellers.GET("/manage", productHandler.ManageProducts)
				sellers.POST("", productHandler.CreateProduct)
				sellers.PUT("/:id", productHandler.UpdateProduct)
				sellers.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("/:email", cartHandler.GetCart)
			cart.PUT("/:email", cartHandler.AddLineItem)
			cart.PUT("/:email/items/:productId", cartHandler.UpdateLineItem)
			cart.PUT("/:email/items/:productId/quantity", cartHandler.UpdateQuantity)
			cart.DELETE("/:email/items/:productId", cartHandler.RemoveLineItem)
			cart.POST("/:email/address", cartHandler.AddAddress)
			cart.PUT("/:email/address", cartHandler.UpdateAddress)
			cart.PUT("/:email/address/select", cartHandler.SelectAddress)
			cart.DELETE("/:email/address/:addressId", cartHandler.RemoveAddress)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.POST("/:email", orderHandler.PlaceOrder)
			orders.GET("", middleware.RoleRequired(db, models.UserRoleSeller, models.UserRoleAdmin, models.UserRoleOwner), orderHandler.ListOrders)
			orders.GET("/:email", orderHandler.ListOrdersByUser)
			orders.PUT("/:status/:email/:orderId", orderHandler.TransitionStatus)
			orders.DELETE("/:email/:orderId", orderHandler.RemoveOrder)
		}

		// Review routes
		reviews := v1.Group("/reviews")
		{
			reviews.GET("", reviewHandler.ListReviews)
			reviews.PUT("/:email", middleware.AuthRequired(), reviewHandler.SubmitReview)
		}

		// User administration routes
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired(), middleware.RoleRequired(db, models.UserRoleAdmin, models.UserRoleOwner))
		{
			users.GET("", userHandler.ListUsers)
			users.PUT("/:id/admin", userHandler.MakeAdmin)
		}

		// Profile routes
		profile := v1.Group("/profile")
		profile.Use(middleware.AuthRequired())
		{
			profile.GET("/:email", userHandler.GetProfile)
			profile.PUT("/:email", userHandler.UpdateProfile)
		}
	}

	return r
}

// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/divyanshus020/Project-VMC-sub000/internal/config"
	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/upload"
	"github.com/divyanshus020/Project-VMC-sub000/internal/interfaces/http/handlers"
	"github.com/divyanshus020/Project-VMC-sub000/internal/interfaces/http/middleware"
	"github.com/divyanshus020/Project-VMC-sub000/internal/interfaces/ws"
)

// SetupRoutes wires every route group onto the API router
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, hub *ws.Hub, uploadService *upload.Service) {
	authHandler := handlers.NewAuthHandler(db, redisClient, cfg)
	productHandler := handlers.NewProductHandler(db, cfg)
	sizeHandler := handlers.NewSizeHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, cfg)
	enquiryHandler := handlers.NewEnquiryHandler(db, cfg, hub)
	userAdminHandler := handlers.NewUserAdminHandler(db, cfg)
	uploadHandler := handlers.NewUploadHandler(uploadService, cfg)
	wsHandler := handlers.NewWSHandler(hub, cfg)

	// Public auth endpoints
	auth := rg.Group("/auth")
	{
		auth.POST("/otp/request", middleware.OTPRateLimit(redisClient, 10), authHandler.RequestOTP)
		auth.POST("/otp/verify", authHandler.VerifyOTP)
		auth.POST("/login", authHandler.Login)
		auth.POST("/admin/login", authHandler.AdminLogin)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/forgot-password", middleware.OTPRateLimit(redisClient, 10), authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/me", authHandler.GetProfile)
			protected.PUT("/me", authHandler.UpdateProfile)
		}
	}

	// Public catalog endpoints; optional auth lets admins see inactive rows
	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		products.GET("", productHandler.List)
		products.GET("/categories", productHandler.Categories)
		products.GET("/:id", productHandler.Get)
	}

	sizes := rg.Group("/sizes")
	{
		sizes.GET("", sizeHandler.List)
		sizes.GET("/:id", sizeHandler.Get)
	}

	// Authenticated storefront endpoints
	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.GET("/count", cartHandler.GetItemCount)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
	}

	enquiries := rg.Group("/enquiries")
	enquiries.Use(middleware.AuthMiddleware(cfg))
	{
		enquiries.POST("/batch", enquiryHandler.CreateBatch)
		enquiries.POST("/from-cart", enquiryHandler.CreateFromCart)
		enquiries.GET("", enquiryHandler.ListMine)
		enquiries.GET("/:id", enquiryHandler.Get)
		enquiries.DELETE("/:id", enquiryHandler.Cancel)
	}

	// Status push channel
	rg.GET("/ws", middleware.AuthMiddleware(cfg), wsHandler.Connect)

	// Admin endpoints
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.POST("/products", productHandler.Create)
		admin.PUT("/products/:id", productHandler.Update)
		admin.DELETE("/products/:id", productHandler.Delete)
		admin.POST("/products/:id/images", productHandler.AddImage)

		admin.POST("/sizes", sizeHandler.Create)
		admin.PUT("/sizes/:id", sizeHandler.Update)
		admin.DELETE("/sizes/:id", sizeHandler.Delete)

		admin.GET("/enquiries", enquiryHandler.AdminList)
		admin.PUT("/enquiries/:id/status", enquiryHandler.AdminUpdateStatus)

		admin.GET("/users", userAdminHandler.ListUsers)
		admin.GET("/users/:id", userAdminHandler.GetUser)
		admin.PATCH("/users/:id/active", userAdminHandler.SetUserActive)
		admin.DELETE("/users/:id", userAdminHandler.DeleteUser)

		admin.GET("/admins", userAdminHandler.ListAdmins)
		admin.POST("/admins", userAdminHandler.CreateAdmin)
		admin.PUT("/admins/:id", userAdminHandler.UpdateAdmin)
		admin.DELETE("/admins/:id", userAdminHandler.DeleteAdmin)

		admin.POST("/uploads", uploadHandler.UploadImage)
		admin.POST("/uploads/bulk", uploadHandler.UploadImages)
		admin.DELETE("/uploads/:id", uploadHandler.Delete)
	}
}

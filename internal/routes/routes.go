package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BornToCode265/ADIS/internal/auth"
	"github.com/BornToCode265/ADIS/internal/handlers"
	"github.com/BornToCode265/ADIS/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	codec *auth.Codec,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	productHandler *handlers.ProductHandler,
	cropHandler *handlers.CropHandler,
	supportHandler *handlers.SupportHandler,
	dashboardHandler *handlers.DashboardHandler,
	adminHandler *handlers.AdminHandler,
) *gin.Engine {
	api := r.Group("/api")

	// ---- public
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/send-otp", authHandler.SendOTP)
	api.POST("/auth/verify-otp", authHandler.VerifyOTP)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/users/register", userHandler.Register)

	// Devices push readings with their serial only, no token.
	api.POST("/products/data", productHandler.IngestData)

	// Training library is open to everyone; uploads are admin only.
	api.GET("/support/documents", supportHandler.ListDocuments)
	api.POST("/support/documents", middleware.Auth(codec), middleware.RequireAdmin(), supportHandler.UploadDocument)

	// ---- protected
	protected := api.Group("", middleware.Auth(codec))
	{
		protected.POST("/auth/refresh-token", authHandler.RefreshToken)

		protected.GET("/users/profile", userHandler.GetProfile)
		protected.PUT("/users/profile", userHandler.UpdateProfile)
		protected.GET("/users/dashboard-data", dashboardHandler.Data)

		protected.POST("/products/register", productHandler.Register)
		protected.GET("/products/my-products", productHandler.MyProducts)
		protected.GET("/products/:productId/data", productHandler.GetData)
		protected.PUT("/products/:productId/settings", productHandler.UpdateSettings)

		protected.GET("/crops", cropHandler.List)
		protected.POST("/crops", cropHandler.Create)
		protected.PUT("/crops/:cropId", cropHandler.Update)
		protected.DELETE("/crops/:cropId", cropHandler.Delete)

		protected.GET("/support/tickets", supportHandler.MyTickets)
		protected.POST("/support/tickets", supportHandler.CreateTicket)
		protected.PUT("/support/tickets/:ticketId", supportHandler.UpdateTicket)

		protected.GET("/dashboard/data", dashboardHandler.Data)
		protected.GET("/dashboard/analytics", dashboardHandler.Analytics)
	}

	// ---- admin
	admin := api.Group("/admin", middleware.Auth(codec), middleware.RequireAdmin())
	{
		admin.GET("/users", adminHandler.Users)
		admin.PUT("/users/:userId/status", adminHandler.UpdateUserStatus)
		admin.GET("/products", adminHandler.Products)
		admin.GET("/tickets", adminHandler.Tickets)
		admin.PUT("/tickets/:ticketId/status", adminHandler.UpdateTicketStatus)
		admin.GET("/analytics", adminHandler.Analytics)
		admin.GET("/overview", adminHandler.Overview)
		admin.GET("/reports/overview", adminHandler.OverviewReport)
	}

	return r
}

package router

import (
	"github.com/gin-gonic/gin"

	"salao_backend/internal/middleware"
	"salao_backend/internal/models"
)

// SetupAuthRoutes registers the unauthenticated endpoints.
func SetupAuthRoutes(group *gin.RouterGroup, deps Deps) {
	auth := group.Group("/auth")
	{
		auth.POST("/signup", deps.Auth.Signup)
		auth.POST("/login", deps.Auth.Login)
		auth.POST("/refresh", deps.Auth.Refresh)
		auth.POST("/2fa/verify", deps.TwoFactor.VerifyLogin)
		auth.POST("/recovery", deps.Recovery.RequestRecovery)
		auth.POST("/recovery/reset", deps.Recovery.ResetPassword)
	}
	group.POST("/webhooks/asaas", deps.Billing.Webhook)
}

// SetupAccountRoutes registers session endpoints that need a token but no
// tenant schema.
func SetupAccountRoutes(group *gin.RouterGroup, deps Deps) {
	auth := group.Group("/auth")
	{
		auth.POST("/logout", deps.Auth.Logout)
		auth.GET("/me", deps.Auth.Me)
		auth.POST("/password", deps.Auth.ChangePassword)
		auth.POST("/2fa/setup", deps.TwoFactor.BeginSetup)
		auth.POST("/2fa/confirm", deps.TwoFactor.ConfirmSetup)
		auth.POST("/2fa/disable", deps.TwoFactor.Disable)
	}
}

// SetupClientRoutes registers customer endpoints.
func SetupClientRoutes(group *gin.RouterGroup, deps Deps) {
	clients := group.Group("/clients")
	clients.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		clients.POST("", deps.Clients.CreateClient)
		clients.GET("", deps.Clients.ListClients)
		clients.GET("/:id", deps.Clients.GetClient)
		clients.PUT("/:id", deps.Clients.UpdateClient)
		clients.DELETE("/:id", deps.Clients.DeleteClient)
	}
}

// SetupServiceRoutes registers catalog endpoints.
func SetupServiceRoutes(group *gin.RouterGroup, deps Deps) {
	services := group.Group("/services")
	services.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		services.GET("", deps.Services.ListServices)
		services.GET("/:id", deps.Services.GetService)
	}
	adminServices := group.Group("/services")
	adminServices.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		adminServices.POST("", deps.Services.CreateService)
		adminServices.PUT("/:id", deps.Services.UpdateService)
		adminServices.DELETE("/:id", deps.Services.DeleteService)
	}
}

// SetupEmployeeRoutes registers team endpoints, admin only for writes.
func SetupEmployeeRoutes(group *gin.RouterGroup, deps Deps) {
	employees := group.Group("/employees")
	employees.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		employees.GET("", deps.Employees.ListEmployees)
		employees.GET("/:id", deps.Employees.GetEmployee)
	}
	adminEmployees := group.Group("/employees")
	adminEmployees.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		adminEmployees.POST("", deps.Employees.CreateEmployee)
		adminEmployees.PUT("/:id", deps.Employees.UpdateEmployee)
		adminEmployees.DELETE("/:id", deps.Employees.DeleteEmployee)
	}
}

// SetupAppointmentRoutes registers booking endpoints.
func SetupAppointmentRoutes(group *gin.RouterGroup, deps Deps) {
	appointments := group.Group("/appointments")
	appointments.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		appointments.POST("", deps.Appointments.CreateAppointment)
		appointments.GET("", deps.Appointments.ListAppointments)
		appointments.GET("/:id", deps.Appointments.GetAppointment)
		appointments.PUT("/:id", deps.Appointments.UpdateAppointment)
		appointments.PATCH("/:id/status", deps.Appointments.UpdateStatus)
		appointments.DELETE("/:id", deps.Appointments.DeleteAppointment)
	}
}

// SetupInventoryRoutes registers product, stock and category endpoints.
func SetupInventoryRoutes(group *gin.RouterGroup, deps Deps) {
	products := group.Group("/products")
	products.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		products.POST("", deps.Inventory.CreateProduct)
		products.GET("", deps.Inventory.ListProducts)
		products.GET("/summary", deps.Inventory.Summary)
		products.GET("/:id", deps.Inventory.GetProduct)
		products.PUT("/:id", deps.Inventory.UpdateProduct)
		products.PATCH("/:id/stock", deps.Inventory.UpdateStock)
		products.DELETE("/:id", deps.Inventory.DeleteProduct)
	}

	categories := group.Group("/categories")
	categories.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		categories.GET("", deps.Inventory.ListCategories)
	}
	adminCategories := group.Group("/categories")
	adminCategories.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		adminCategories.POST("", deps.Inventory.CreateCategory)
		adminCategories.PUT("/:id", deps.Inventory.UpdateCategory)
		adminCategories.DELETE("/:id", deps.Inventory.DeleteCategory)
	}
}

// SetupLoyaltyRoutes registers loyalty and reward endpoints.
func SetupLoyaltyRoutes(group *gin.RouterGroup, deps Deps) {
	loyalty := group.Group("/loyalty")
	loyalty.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		loyalty.GET("", deps.Loyalty.GetProgram)
		loyalty.GET("/clients/:id", deps.Loyalty.GetClientProgram)
		loyalty.POST("/clients/:id/points", deps.Loyalty.AddPoints)
		loyalty.POST("/clients/:id/redeem", deps.Loyalty.RedeemReward)
		loyalty.GET("/rewards", deps.Loyalty.ListRewards)
	}
	adminLoyalty := group.Group("/loyalty/rewards")
	adminLoyalty.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		adminLoyalty.POST("", deps.Loyalty.CreateReward)
		adminLoyalty.PUT("/:id", deps.Loyalty.UpdateReward)
		adminLoyalty.DELETE("/:id", deps.Loyalty.DeleteReward)
	}
}

// SetupReportRoutes registers the revenue and booking report, admin only.
func SetupReportRoutes(group *gin.RouterGroup, deps Deps) {
	reports := group.Group("/reports")
	reports.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		reports.GET("", deps.Reports.Summary)
	}
}

// SetupNotificationRoutes registers the per-user in-app feed.
func SetupNotificationRoutes(group *gin.RouterGroup, deps Deps) {
	notifications := group.Group("/notifications")
	{
		notifications.GET("", deps.Notifications.List)
		notifications.POST("", deps.Notifications.Create)
		notifications.PATCH("", deps.Notifications.Update)
	}
}

// SetupAuditRoutes registers the audit trail and activity feed, admin only.
func SetupAuditRoutes(group *gin.RouterGroup, deps Deps) {
	audit := group.Group("/audit")
	audit.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		audit.GET("", deps.Audit.ListEntries)
		audit.POST("", deps.Audit.CreateEntry)
		audit.GET("/stats", deps.Audit.Stats)
		audit.GET("/export", deps.Audit.Export)
	}
	logs := group.Group("/logs")
	logs.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		logs.GET("", deps.Audit.ListActivity)
		logs.DELETE("", deps.Audit.ClearActivity)
	}
}

// SetupBackupRoutes registers backup management, admin only.
func SetupBackupRoutes(group *gin.RouterGroup, deps Deps) {
	backup := group.Group("/backups")
	backup.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		backup.POST("", deps.Backup.Run)
		backup.GET("", deps.Backup.History)
		backup.GET("/files", deps.Backup.Files)
		backup.GET("/config", deps.Backup.GetConfig)
		backup.PUT("/config", deps.Backup.UpdateConfig)
		backup.POST("/restore", deps.Backup.Restore)
	}
}

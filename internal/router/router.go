package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"salao_backend/internal/handlers"
	"salao_backend/internal/middleware"
	"salao_backend/internal/monitoring"
	"salao_backend/internal/services"
	"salao_backend/internal/tenantdb"
	"salao_backend/pkg/utils"
)

// Deps bundles everything the route tree needs.
type Deps struct {
	Auth      *handlers.AuthHandler
	TwoFactor *handlers.TwoFactorHandler
	Recovery  *handlers.RecoveryHandler
	Billing   *handlers.BillingHandler
	Reminders *handlers.ReminderHandler

	Clients       *handlers.ClientHandler
	Services      *handlers.ServiceHandler
	Employees     *handlers.EmployeeHandler
	Appointments  *handlers.AppointmentHandler
	Inventory     *handlers.InventoryHandler
	Loyalty       *handlers.LoyaltyHandler
	Reports       *handlers.ReportHandler
	Notifications *handlers.NotificationHandler
	Audit         *handlers.AuditHandler
	Backup        *handlers.BackupHandler

	ClinicService services.ClinicService
	Registry      *tenantdb.Registry
	PaymentURL    string
	CORSOrigins   []string
}

// Setup builds the gin engine with middleware and every route group.
func Setup(deps Deps) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())
	engine.Use(monitoring.Middleware())

	corsConfig := cors.DefaultConfig()
	if len(deps.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = deps.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")

	public := api.Group("")
	SetupAuthRoutes(public, deps)
	public.GET("/cron/reminders", deps.Reminders.Trigger)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	SetupAccountRoutes(authed, deps)
	SetupNotificationRoutes(authed, deps)

	tenant := authed.Group("")
	tenant.Use(middleware.TenantMiddleware(deps.ClinicService, deps.Registry, deps.PaymentURL))
	SetupClientRoutes(tenant, deps)
	SetupServiceRoutes(tenant, deps)
	SetupEmployeeRoutes(tenant, deps)
	SetupAppointmentRoutes(tenant, deps)
	SetupInventoryRoutes(tenant, deps)
	SetupLoyaltyRoutes(tenant, deps)
	SetupReportRoutes(tenant, deps)
	SetupAuditRoutes(tenant, deps)
	SetupBackupRoutes(tenant, deps)

	return engine
}

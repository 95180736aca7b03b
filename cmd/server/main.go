package main

import (
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"salao_backend/internal/crypto"
	"salao_backend/internal/database"
	"salao_backend/internal/handlers"
	"salao_backend/internal/models"
	"salao_backend/internal/monitoring"
	"salao_backend/internal/providers"
	"salao_backend/internal/repositories"
	"salao_backend/internal/router"
	"salao_backend/internal/services"
	"salao_backend/internal/tenantdb"
	"salao_backend/pkg/utils"
)

func main() {
	utils.InitLogger()
	monitoring.InitMetrics()

	dbConfig := database.Config{
		Host:     utils.Getenv("DB_HOST", "localhost"),
		Port:     utils.Getenv("DB_PORT", "5432"),
		User:     utils.Getenv("DB_USER", "postgres"),
		Password: utils.Getenv("DB_PASSWORD", "postgres"),
		Name:     utils.Getenv("DB_NAME", "salao"),
		SSLMode:  utils.Getenv("DB_SSLMODE", "disable"),
	}

	db, err := database.InitDB(dbConfig)
	if err != nil {
		utils.LogError(fmt.Errorf("connecting to database: %w", err))
		return
	}
	defer db.Close()

	publicMigrations := utils.Getenv("PUBLIC_MIGRATIONS_PATH", "migrations/public")
	tenantMigrations := utils.Getenv("TENANT_MIGRATIONS_PATH", "migrations/tenant")
	if err := database.RunPublicMigrations(dbConfig, publicMigrations); err != nil {
		utils.LogError(fmt.Errorf("running public migrations: %w", err))
		return
	}

	registry := tenantdb.NewRegistry(dbConfig.DSN())
	defer registry.Close()

	var cache *redis.Client
	if addr := utils.Getenv("REDIS_ADDR", ""); addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: utils.Getenv("REDIS_PASSWORD", ""),
		})
		defer cache.Close()
	}

	codec, err := crypto.NewCodecFromEnv()
	if err != nil {
		utils.LogError(fmt.Errorf("initializing PII codec: %w", err))
		return
	}

	// Repositories.
	clinicRepo := repositories.NewClinicRepository(db)
	userRepo := repositories.NewUserRepository(db)
	clientRepo := repositories.NewClientRepository(codec)
	serviceRepo := repositories.NewServiceRepository()
	employeeRepo := repositories.NewEmployeeRepository()
	appointmentRepo := repositories.NewAppointmentRepository()
	productRepo := repositories.NewProductRepository()
	categoryRepo := repositories.NewCategoryRepository()
	rewardRepo := repositories.NewRewardRepository()
	reportRepo := repositories.NewReportRepository()

	// Providers.
	billing := providers.NewAsaasClient(providers.AsaasConfigFromEnv())
	whatsApp := providers.NewWhatsAppSender(providers.WhatsAppConfigFromEnv())
	mailer := providers.NewSMTPMailer(providers.SMTPConfigFromEnv())

	// Services.
	audit := services.NewAuditService()
	activityLog := services.NewActivityLogService()
	attempts := services.NewLoginAttemptTracker()
	salonName := utils.Getenv("SALON_NAME", "Salão Estética")
	notifications := services.NewNotificationService(whatsApp, salonName, activityLog)

	clinicService := services.NewClinicService(clinicRepo, billing, cache, db, dbConfig, tenantMigrations)
	authService := services.NewAuthService(userRepo, clinicService, attempts)
	twoFactorService := services.NewTwoFactorService(userRepo, authService)
	recoveryService := services.NewPasswordRecoveryService(userRepo, mailer)
	clientService := services.NewClientService(clientRepo)
	catalogService := services.NewCatalogService(serviceRepo, categoryRepo)
	employeeService := services.NewEmployeeService(employeeRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, clientRepo, serviceRepo, employeeRepo, notifications)
	inventoryService := services.NewInventoryService(productRepo, categoryRepo)
	loyaltyService := services.NewLoyaltyService(clientRepo, rewardRepo)
	reportService := services.NewReportService(reportRepo)
	feed := services.NewNotificationFeedService()
	backupService := services.NewBackupService(dbConfig, models.BackupConfig{
		Schedule:      utils.Getenv("BACKUP_SCHEDULE", "0 3 * * *"),
		Compression:   utils.Getenv("BACKUP_COMPRESSION", "true") == "true",
		StoragePath:   utils.Getenv("BACKUP_PATH", "./backups"),
		RetentionDays: 7,
	})
	reminderService := services.NewReminderService(clinicRepo, appointmentRepo, clientRepo, registry, notifications)

	// Scheduled jobs.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(backupService.Config().Schedule, func() {
		if _, err := backupService.Run(); err != nil {
			utils.LogError(fmt.Errorf("scheduled backup: %w", err))
		}
	}); err != nil {
		utils.LogError(fmt.Errorf("scheduling backups: %w", err))
		return
	}
	if _, err := scheduler.AddFunc(utils.Getenv("REMINDER_SCHEDULE", "0 18 * * *"), reminderService.SendDailyReminders); err != nil {
		utils.LogError(fmt.Errorf("scheduling reminders: %w", err))
		return
	}
	if _, err := scheduler.AddFunc("@hourly", attempts.Sweep); err != nil {
		utils.LogError(fmt.Errorf("scheduling limiter sweep: %w", err))
		return
	}
	scheduler.Start()
	defer scheduler.Stop()

	cookieSecure := utils.Getenv("COOKIE_SECURE", "false") == "true"
	resetBaseURL := utils.Getenv("PASSWORD_RESET_URL", "http://localhost:3000/reset-password")
	paymentURL := utils.Getenv("PAYMENT_PORTAL_URL", "https://www.asaas.com")

	deps := router.Deps{
		Auth:      handlers.NewAuthHandler(authService, audit, activityLog, cookieSecure),
		TwoFactor: handlers.NewTwoFactorHandler(twoFactorService),
		Recovery:  handlers.NewRecoveryHandler(recoveryService, resetBaseURL),
		Billing:   handlers.NewBillingHandler(clinicService, utils.Getenv("ASAAS_WEBHOOK_TOKEN", "")),
		Reminders: handlers.NewReminderHandler(reminderService, utils.Getenv("CRON_SECRET", "")),

		Clients:       handlers.NewClientHandler(clientService, audit, activityLog),
		Services:      handlers.NewServiceHandler(catalogService, audit, activityLog),
		Employees:     handlers.NewEmployeeHandler(employeeService, audit, activityLog),
		Appointments:  handlers.NewAppointmentHandler(appointmentService, audit, activityLog),
		Inventory:     handlers.NewInventoryHandler(inventoryService, audit, activityLog),
		Loyalty:       handlers.NewLoyaltyHandler(loyaltyService, audit, activityLog),
		Reports:       handlers.NewReportHandler(reportService),
		Notifications: handlers.NewNotificationHandler(feed),
		Audit:         handlers.NewAuditHandler(audit, activityLog),
		Backup:        handlers.NewBackupHandler(backupService, audit, activityLog),

		ClinicService: clinicService,
		Registry:      registry,
		PaymentURL:    paymentURL,
	}
	if origins := utils.Getenv("CORS_ORIGINS", ""); origins != "" {
		deps.CORSOrigins = strings.Split(origins, ",")
	}

	engine := router.Setup(deps)
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("server listening on :" + port)
	if err := engine.Run(":" + port); err != nil {
		utils.LogError(fmt.Errorf("server stopped: %w", err))
	}
}

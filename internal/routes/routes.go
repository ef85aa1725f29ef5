// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"sjfs/internal/config"
	"sjfs/internal/handlers"
	"sjfs/internal/middleware"
	"sjfs/internal/models"
	"sjfs/internal/repositories"
	"sjfs/internal/services/audit"
	"sjfs/internal/services/auth"
	"sjfs/internal/services/deletion"
	"sjfs/internal/services/mailer"
	"sjfs/internal/services/notification"
	"sjfs/internal/services/order"
	"sjfs/internal/services/stock"
	"sjfs/internal/services/webhook"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	merchantRepo := repositories.NewMerchantRepository(db)
	orderRepo := repositories.NewOrderRepository(db, repositories.CacheService)
	warehouseRepo := repositories.NewWarehouseRepository(db)
	stockRepo := repositories.NewStockRepository(db)
	billingRepo := repositories.NewBillingRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	webhookRepo := repositories.NewWebhookRepository(db)
	auditRepo := repositories.NewAuditRepository(db)
	cascadeRepo := repositories.NewCascadeRepository(db)

	// Initialize services
	authService := auth.NewService(userRepo, merchantRepo)
	auditService := audit.NewService(auditRepo)
	mailService := mailer.NewLogMailer()
	notificationService := notification.NewService(
		notificationRepo,
		userRepo,
		repositories.CacheService,
		config.GetDurationEnv("NOTIFICATION_RETENTION", 0),
	)
	webhookService := webhook.NewService(webhookRepo, nil)
	stockService := stock.NewService(stockRepo, notificationService)
	orderService := order.NewService(
		orderRepo,
		warehouseRepo,
		subscriptionRepo,
		billingRepo,
		notificationService,
		auditService,
		mailService,
		webhookService,
	)
	deletionService := deletion.NewService(
		userRepo,
		merchantRepo,
		billingRepo,
		subscriptionRepo,
		cascadeRepo,
		auditService,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	orderHandler := handlers.NewOrderHandler(orderService)
	merchantHandler := handlers.NewMerchantHandler(merchantRepo, deletionService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	webhookHandler := handlers.NewWebhookHandler(webhookService)
	adminHandler := handlers.NewAdminHandler(stockService, notificationService, userRepo)

	app.Get("/health", handlers.Health)

	// Public endpoints (no auth required)
	api := app.Group("/api")
	api.Post("/login", authHandler.Login)
	api.Post("/register", authHandler.Register)
	api.Post("/refresh", authHandler.RefreshToken)

	// Protected routes with auth middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.Logout)
	protected.Post("/change-password", authHandler.ChangePassword)

	// Order routes
	orders := protected.Group("/orders")
	orders.Get("/", middleware.HasPermission(models.PermissionOrderRead), orderHandler.List)
	orders.Post("/", middleware.HasPermission(models.PermissionOrderWrite), orderHandler.Create)
	orders.Get("/:id", middleware.HasPermission(models.PermissionOrderRead), orderHandler.Get)
	orders.Put("/:id", middleware.RequireRoles(
		models.RolePlatformAdmin,
		models.RoleWarehouseStaff,
		models.RoleLogisticsPartner,
	), orderHandler.UpdateStatus)
	orders.Post("/:id/split", middleware.RequireRoles(
		models.RolePlatformAdmin,
		models.RoleWarehouseStaff,
	), orderHandler.Split)

	// Merchant routes
	merchants := protected.Group("/merchants")
	merchants.Get("/:id", middleware.HasPermission(models.PermissionMerchantRead), merchantHandler.Get)
	merchants.Delete("/:id", middleware.HasPermission(models.PermissionMerchantDelete), merchantHandler.Delete)

	// Notification routes
	notifications := protected.Group("/notifications")
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Put("/read-all", notificationHandler.MarkAllRead)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	// Webhook management routes
	webhooks := protected.Group("/webhooks", middleware.HasPermission(models.PermissionWebhookManage))
	webhooks.Get("/", webhookHandler.List)
	webhooks.Post("/", webhookHandler.Create)
	webhooks.Delete("/:id", webhookHandler.Delete)

	// Admin maintenance routes
	admin := protected.Group("/admin", middleware.RequireRoles(models.RolePlatformAdmin))
	admin.Post("/stock-sweep", adminHandler.StockSweep)
	admin.Post("/notifications/purge", adminHandler.PurgeNotifications)
	admin.Get("/users", adminHandler.ListUsers)
}

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"leadmart/internal/caching"
	"leadmart/internal/config"
	"leadmart/internal/handlers"
	"leadmart/internal/jobs/background"
	"leadmart/internal/middleware"
	"leadmart/internal/repositories"
	"leadmart/internal/services"
	"leadmart/internal/web"
	"leadmart/pkg/database"
)

const (
	version    = "1.0.0"
	sessionTTL = 24 * time.Hour
)

func main() {
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	// Create database connection pool
	pool, err := database.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Session secret
	sessionSecret := cfg.SessionSecret
	if sessionSecret == "" {
		sessionSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated session secret; sessions will not survive a restart")
	}

	// Mail configuration (SMTP is optional; without it deliveries are logged)
	mailCfg, err := config.LoadMailConfig(cfg.MailConfigPath)
	if err != nil {
		log.Fatalf("Failed to load mail config: %v", err)
	}
	var mailer services.Mailer
	if mailCfg.SMTP.Host != "" {
		mailer = services.NewSMTPMailer(mailCfg.SMTP)
	} else {
		log.Printf("No SMTP host configured, notifications will be logged")
		mailer = services.NewLogMailer()
	}

	// Object storage for lead exports
	storageSvc, err := services.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Create repositories
	userRepo := repositories.NewUserRepository(pool)
	agentRepo := repositories.NewAgentRepository(pool)
	leadRepo := repositories.NewLeadRepository(pool)
	notificationRepo := repositories.NewNotificationRepository(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer cacheSvc.Close()

	// Create services
	authSvc := services.NewAuthService(userRepo, agentRepo, cacheSvc, sessionSecret, sessionTTL)
	notificationSvc := services.NewNotificationService(notificationRepo, mailer, mailCfg.Notification)
	leadSvc := services.NewLeadService(leadRepo, notificationSvc, cacheSvc)
	exportSvc := services.NewExportService(leadRepo, storageSvc, cfg.ExportBucket)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	leadHandlers := handlers.NewLeadHandlers(leadSvc, exportSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Background notification dispatcher
	scheduler, err := background.NewJobScheduler(notificationSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.HTMLErrorHandler

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	e.Renderer = renderer

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Public pages
	e.GET("/", handlers.Landing)
	e.GET("/signup", authHandlers.SignupForm)
	e.POST("/signup", authHandlers.Signup)
	e.GET("/login", authHandlers.LoginForm)
	e.POST("/login", authHandlers.Login)

	// Protected pages (valid session cookie required)
	protected := e.Group("")
	protected.Use(middleware.SessionAuth(authSvc))

	protected.POST("/logout", authHandlers.Logout)

	protected.GET("/leads", leadHandlers.ListLeads)
	protected.POST("/leads/export", leadHandlers.ExportLeads)
	protected.GET("/leads/create", leadHandlers.CreateLeadForm)
	protected.POST("/leads/create", leadHandlers.CreateLead)
	protected.GET("/leads/:id", leadHandlers.GetLead)
	protected.GET("/leads/:id/update", leadHandlers.UpdateLeadForm)
	protected.POST("/leads/:id/update", leadHandlers.UpdateLead)
	protected.GET("/leads/:id/delete", leadHandlers.DeleteLeadForm)
	protected.POST("/leads/:id/delete", leadHandlers.DeleteLead)

	log.Printf("Leadmart server v%s starting on port %d", version, cfg.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}

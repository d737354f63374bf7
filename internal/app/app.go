package app

import (
	"context"
	"errors"
	"fmt"

	"guidehub_backend/internal/auth"
	"guidehub_backend/internal/config"
	"guidehub_backend/internal/database"
	"guidehub_backend/internal/email"
	"guidehub_backend/internal/handlers"
	"guidehub_backend/internal/logger"
	"guidehub_backend/internal/middleware"
	"guidehub_backend/internal/models"
	"guidehub_backend/internal/routes"
	"guidehub_backend/internal/services"
	"guidehub_backend/internal/storage"
	"guidehub_backend/internal/workers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	if err := seedFirstAdmin(db, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	router, mailer := SetupRouter(cfg, db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	workers.NewSubscriptionWorker(db, mailer).Start(ctx)
	workers.NewCleanupWorker(db).Start(ctx)
	logger.Info("Background workers started")

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full gin engine. Split from Run so tests can mount
// the router over their own database handle.
func SetupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, *email.Mailer) {
	store, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	mailer := email.NewMailer(email.NewSMTPSender(cfg), cfg.PublicBaseURL)

	serviceContainer := services.NewServiceContainer(cfg, store, mailer)
	appHandlers := handlers.NewAppHandlers(serviceContainer)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
	}))
	router.Use(middleware.DBMiddleware(db))

	routes.RegisterRoutes(router, appHandlers)

	// Local storage serves uploads directly; S3-backed setups use public
	// bucket URLs instead.
	if cfg.Storage.Type == "" || cfg.Storage.Type == "local" {
		router.Static("/files", cfg.Storage.BasePath)
	}

	return router, mailer
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("First admin credentials not configured. Skipping admin seeding.")
		return nil
	}

	var existing models.User
	result := db.Where("email = ?", adminEmail).First(&existing)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)
	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	return nil
}

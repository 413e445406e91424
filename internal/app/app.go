package app

import (
	"fmt"

	"worklink_backend/database"
	"worklink_backend/internal/auth"
	"worklink_backend/internal/config"
	"worklink_backend/internal/email"
	"worklink_backend/internal/handlers"
	"worklink_backend/internal/logger"
	"worklink_backend/internal/middleware"
	"worklink_backend/internal/models"
	"worklink_backend/internal/repositories"
	"worklink_backend/internal/routes"
	"worklink_backend/internal/services"
	"worklink_backend/internal/validator"
	"worklink_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.InitJWT(cfg)
	apperrors.Debug = cfg.Server.Env == "development"

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}
	logger.Info("AutoMigrate finished")

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)

	routes.RegisterRoutes(ginRouter, appHandlers, repositories.NewUserRepository())

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.SMTPHost != "" {
		emailProvider = email.NewSMTPProvider(cfg)
		logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		emailProvider = email.NewNoopProvider()
		logger.Warn("SMTP is not configured, emails will be logged instead of sent")
	}

	userRepo := repositories.NewUserRepository()
	sessionRepo := repositories.NewSessionRepository()
	jobRepo := repositories.NewJobRepository()
	appRepo := repositories.NewApplicationRepository()

	authService := services.NewAuthService(userRepo, sessionRepo, emailProvider)
	userService := services.NewUserService(userRepo, sessionRepo)
	jobService := services.NewJobService(jobRepo, appRepo)
	applicationService := services.NewApplicationService(appRepo, jobRepo, userRepo, emailProvider)

	return &services.ServiceContainer{
		AuthService:        authService,
		UserService:        userService,
		JobService:         jobService,
		ApplicationService: applicationService,
		EmailProvider:      emailProvider,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler:        handlers.NewUserHandler(baseHandler, services.UserService, services.AuthService),
		JobHandler:         handlers.NewJobHandler(baseHandler, services.JobService),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, services.ApplicationService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var adminUser models.User
		result := tx.Where("email = ?", adminEmail).First(&adminUser)

		if result.Error == nil {
			logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
			return nil
		}
		if !apperrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", result.Error)
		}

		logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		newAdmin := &models.User{
			Email:        adminEmail,
			PasswordHash: hash,
			Role:         models.UserRoleAdmin,
			Name:         "Administrator",
		}

		if err := tx.Create(newAdmin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		logger.Info("Successfully created first admin user", "email", adminEmail)
		return nil
	})
}

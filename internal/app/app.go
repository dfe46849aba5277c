package app

import (
	"context"
	"fmt"

	"unimatch_backend/internal/config"
	"unimatch_backend/internal/email"
	"unimatch_backend/internal/handlers"
	"unimatch_backend/internal/identity"
	"unimatch_backend/internal/logger"
	"unimatch_backend/internal/middleware"
	"unimatch_backend/internal/repositories"
	"unimatch_backend/internal/routes"
	"unimatch_backend/internal/services"
	"unimatch_backend/internal/storage"
	"unimatch_backend/internal/validator"
	"unimatch_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run boots the application: config, logger, database, router.
func Run() {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	logger.Info("starting server", "env", cfg.Server.Env, "port", cfg.Server.Port)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get database handle", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	if err := migrate(db); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}
	seedFirstAdmin(db, cfg)

	router := SetupRouter(db, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}

// SetupRouter builds the gin engine with all dependencies wired. Split from
// Run so tests can construct the router against their own database.
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}

	emailProvider := buildEmailProvider(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)
	matchRepo := repositories.NewMatchRepository(db)
	chatRepo := repositories.NewChatRepository(db)
	moderationRepo := repositories.NewModerationRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, emailProvider)
	profileService := services.NewProfileService(profileRepo, userRepo, identity.NewGenerator())
	verificationService := services.NewVerificationService(verificationRepo, profileRepo, userRepo, store)
	matchService := services.NewMatchService(matchRepo, profileRepo, userRepo)
	chatService := services.NewChatService(chatRepo, profileRepo)
	moderationService := services.NewModerationService(moderationRepo, userRepo)

	// Handlers
	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		Auth:         handlers.NewAuthHandler(base, authService),
		Profile:      handlers.NewProfileHandler(base, profileService),
		Verification: handlers.NewVerificationHandler(base, verificationService),
		Match:        handlers.NewMatchHandler(base, matchService),
		Chat:         handlers.NewChatHandler(base, chatService),
		Moderation:   handlers.NewModerationHandler(base, moderationService),
		Admin:        handlers.NewAdminHandler(base, verificationService, moderationService),
		File:         handlers.NewFileHandler(base, store),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(r, appHandlers)

	workers.NewCleanupWorker(userRepo, verificationRepo, store).Start(context.Background())

	return r
}

func buildEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("smtp not configured, using mock email provider")
		return NewMockEmailProvider()
	}

	provider, err := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
		PublicURL: cfg.App.PublicURL,
	})
	if err != nil {
		logger.Fatal("failed to initialize email provider", "error", err)
	}
	return provider
}

package app

import (
	"errors"

	"unimatch_backend/internal/auth"
	"unimatch_backend/internal/config"
	"unimatch_backend/internal/logger"
	"unimatch_backend/internal/models"
	"unimatch_backend/internal/repositories"

	"gorm.io/gorm"
)

// migrate keeps the schema in step with the models.
func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Profile{},
		&models.VerificationFile{},
		&models.Match{},
		&models.Conversation{},
		&models.ChatMessage{},
		&models.Block{},
		&models.Report{},
	)
}

// seedFirstAdmin creates the bootstrap admin account when configured and
// not yet present. Without it the admin surface is unreachable on a fresh
// database.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return
	}

	userRepo := repositories.NewUserRepository(db)
	if _, err := userRepo.FindByEmail(cfg.FirstAdminEmail); err == nil {
		return
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		logger.Error("failed to check for existing admin", "error", err)
		return
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		logger.Error("failed to hash admin password", "error", err)
		return
	}

	admin := &models.User{
		Email:         cfg.FirstAdminEmail,
		PasswordHash:  hash,
		Role:          models.UserRoleAdmin,
		Status:        models.UserStatusActive,
		EmailVerified: true,
	}
	if err := userRepo.Create(admin); err != nil {
		logger.Error("failed to seed admin account", "error", err)
		return
	}
	logger.Info("seeded first admin account", "email", cfg.FirstAdminEmail)
}

package services

import (
	"context"
	"errors"
	"time"

	"unimatch_backend/internal/auth"
	"unimatch_backend/internal/config"
	"unimatch_backend/internal/email"
	"unimatch_backend/internal/logger"
	"unimatch_backend/internal/models"
	"unimatch_backend/internal/repositories"
	"unimatch_backend/internal/services/dto"
	"unimatch_backend/pkg/apperrors"

	"github.com/google/uuid"
)

const (
	activationTokenTTL = 24 * time.Hour
	refreshTokenTTL    = 30 * 24 * time.Hour
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Activate(ctx context.Context, token string) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenPairResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error)
	Logout(ctx context.Context, userID, refreshToken string) error
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	email    email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, emailProvider email.Provider) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		email:    emailProvider,
	}
}

// Register creates a pending account and sends the activation link. A
// repeated registration for an unverified account re-issues the activation
// email instead of creating a second row; a verified account conflicts.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if existing != nil {
		if existing.EmailVerified {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		// Unverified duplicate: refresh the token and resend the link.
		exp := time.Now().Add(activationTokenTTL)
		existing.ActivationToken = uuid.New().String()
		existing.ActivationTokenExp = &exp
		if err := s.userRepo.Update(existing); err != nil {
			return nil, apperrors.InternalError(err)
		}
		s.sendActivationAsync(ctx, existing.Email, existing.ActivationToken)
		return &dto.RegisterResponse{
			Message: "Activation email sent. Please check your inbox.",
		}, nil
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	exp := time.Now().Add(activationTokenTTL)
	user := &models.User{
		Email:              req.Email,
		PasswordHash:       hash,
		Role:               models.UserRoleUser,
		Status:             models.UserStatusPending,
		ActivationToken:    uuid.New().String(),
		ActivationTokenExp: &exp,
		VerificationStatus: models.VerificationUnverified,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendActivationAsync(ctx, user.Email, user.ActivationToken)

	return &dto.RegisterResponse{
		Message: "Registration successful. Please check your email to activate your account.",
		UserID:  user.ID,
	}, nil
}

// sendActivationAsync delivers the activation email off the request path.
// Mail failures are logged, never surfaced: the user can re-register to get
// a fresh link.
func (s *AuthServiceImpl) sendActivationAsync(ctx context.Context, to, token string) {
	go func() {
		if err := s.email.SendActivation(to, token); err != nil {
			logger.CtxWithError(ctx, "failed to send activation email", err, "to", to)
		}
	}()
}

// Activate consumes the token from the email link and activates the account.
func (s *AuthServiceImpl) Activate(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByActivationToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if user.ActivationTokenExp != nil && user.ActivationTokenExp.Before(time.Now()) {
		return apperrors.ErrInvalidToken
	}

	if err := s.userRepo.SetEmailVerified(user.ID); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "account activated", "user_id", user.ID)
	return nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenPairResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return nil, apperrors.ErrUserNotActivated
	}

	switch user.Status {
	case models.UserStatusSuspended:
		return nil, apperrors.ErrUserSuspended
	case models.UserStatusBanned:
		return nil, apperrors.ErrUserBanned
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		logger.CtxWarn(ctx, "failed to record last login", "error", err, "user_id", user.ID)
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)
	return pair, nil
}

// Refresh rotates the refresh token and issues a new access token.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if stored.ExpiresAt.Before(time.Now()) {
		_ = s.userRepo.DeleteRefreshToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	switch user.Status {
	case models.UserStatusSuspended:
		return nil, apperrors.ErrUserSuspended
	case models.UserStatusBanned:
		return nil, apperrors.ErrUserBanned
	}

	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, userID, refreshToken string) error {
	if refreshToken == "" {
		return s.userRepo.DeleteUserRefreshTokens(userID)
	}

	stored, err := s.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	if stored.UserID != userID {
		return apperrors.ErrForbidden
	}
	return s.userRepo.DeleteRefreshToken(refreshToken)
}

func (s *AuthServiceImpl) issueTokens(user *models.User) (*dto.TokenPairResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.userRepo.CreateRefreshToken(refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	cfg := config.GetConfig()
	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		ExpiresAt:    time.Now().Add(time.Duration(cfg.JWT.TTL) * time.Minute),
		UserID:       user.ID,
		Role:         string(user.Role),
	}, nil
}

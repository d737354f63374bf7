package services

import (
	"errors"

	"guidehub_backend/internal/auth"
	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/email"
	"guidehub_backend/internal/logger"
	"guidehub_backend/internal/models"
	"guidehub_backend/internal/repositories"
	"guidehub_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	VerifyEmail(db *gorm.DB, token string) error
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	mailer   *email.Mailer
}

func NewAuthService(userRepo repositories.UserRepository, mailer *email.Mailer) AuthService {
	return &AuthServiceImpl{userRepo: userRepo, mailer: mailer}
}

func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      hash,
		Role:              models.UserRoleUser,
		Status:            models.UserStatusActive,
		VerificationToken: uuid.NewString(),
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.NewConflictError("auth", "an account with this email already exists")
		}
		return nil, apperrors.InternalError(err)
	}

	s.mailer.SendWelcome(user)
	s.mailer.SendVerification(user, user.VerificationToken)

	token, err := auth.GenerateToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{AccessToken: token, User: toUserResponse(user)}, nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.NewForbiddenError("this account is suspended")
	}

	if err := s.userRepo.UpdateLastLogin(db, user.ID); err != nil {
		logger.WithError(err).Warn("failed to record last login", "user_id", user.ID)
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{AccessToken: token, User: toUserResponse(user)}, nil
}

func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	if token == "" {
		return apperrors.NewBadRequestError("verification token is required")
	}
	user, err := s.userRepo.FindByVerificationToken(db, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("auth", "invalid or already used verification token")
		}
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.VerifyUser(db, user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func toUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		IsVerified:     user.IsVerified,
		IsPremium:      user.IsPremium,
		SubscriptionID: user.SubscriptionID,
		CreatedAt:      user.CreatedAt,
	}
}

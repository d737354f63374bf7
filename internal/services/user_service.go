package services

import (
	"errors"

	"guidehub_backend/internal/auth"
	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/repositories"
	"guidehub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error
	ListUsers(db *gorm.DB, criteria dto.UserCriteria) (*dto.UserListResponse, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) GetProfile(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "user not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return toUserResponse(user), nil
}

func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "user not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toUserResponse(user), nil
}

func (s *UserServiceImpl) ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user", "user not found")
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.NewUnauthorizedError("current password is incorrect")
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ValidationError(map[string]string{"new_password": err.Error()})
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	user.PasswordHash = hash
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) ListUsers(db *gorm.DB, criteria dto.UserCriteria) (*dto.UserListResponse, error) {
	criteria.Page, criteria.PageSize = normalizePagination(criteria.Page, criteria.PageSize)

	users, total, err := s.userRepo.FindWithFilter(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return &dto.UserListResponse{
		Users:    result,
		Total:    total,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}, nil
}

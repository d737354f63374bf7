package repositories

import (
	"errors"
	"time"

	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByVerificationToken(db *gorm.DB, token string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error
	UpdateLastLogin(db *gorm.DB, userID string) error
	VerifyUser(db *gorm.DB, userID string) error
	SetPremium(db *gorm.DB, userID string, premium bool, subscriptionID *string) error
	Delete(db *gorm.DB, userID string) error

	FindWithFilter(db *gorm.DB, criteria dto.UserCriteria) ([]models.User, int64, error)
	CountAll(db *gorm.DB) (int64, error)
	CountPremium(db *gorm.DB) (int64, error)
	FindStaleUnverified(db *gorm.DB, olderThan time.Time, limit int) ([]models.User, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("Subscription").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByVerificationToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	err := db.Where("verification_token = ? AND verification_token != ''", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	result := db.Model(user).Updates(map[string]interface{}{
		"name":               user.Name,
		"email":              user.Email,
		"password_hash":      user.PasswordHash,
		"role":               user.Role,
		"status":             user.Status,
		"is_verified":        user.IsVerified,
		"verification_token": user.VerificationToken,
		"updated_at":         time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateLastLogin(db *gorm.DB, userID string) error {
	return db.Model(&models.User{}).Where("id = ?", userID).
		Update("last_login_at", time.Now()).Error
}

func (r *UserRepositoryImpl) VerifyUser(db *gorm.DB, userID string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_verified":        true,
		"verification_token": "",
		"updated_at":         time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetPremium keeps the denormalized premium flag and the subscription link in
// one write so they never disagree.
func (r *UserRepositoryImpl) SetPremium(db *gorm.DB, userID string, premium bool, subscriptionID *string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_premium":      premium,
		"subscription_id": subscriptionID,
		"updated_at":      time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(db *gorm.DB, userID string) error {
	result := db.Where("id = ?", userID).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindWithFilter(db *gorm.DB, criteria dto.UserCriteria) ([]models.User, int64, error) {
	var users []models.User
	query := db.Model(&models.User{})

	if criteria.Role != "" {
		query = query.Where("role = ?", criteria.Role)
	}
	if criteria.Premium != nil {
		query = query.Where("is_premium = ?", *criteria.Premium)
	}
	if criteria.Search != "" {
		search := "%" + criteria.Search + "%"
		query = query.Where("email LIKE ? OR name LIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func (r *UserRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CountPremium(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("is_premium = ?", true).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) FindStaleUnverified(db *gorm.DB, olderThan time.Time, limit int) ([]models.User, error) {
	var users []models.User
	err := db.Where("is_verified = ? AND created_at < ?", false, olderThan).
		Limit(limit).Find(&users).Error
	return users, err
}

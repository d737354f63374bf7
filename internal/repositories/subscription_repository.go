package repositories

import (
	"errors"
	"time"

	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrDuplicateReference   = errors.New("reference code already used")
)

type SubscriptionRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Subscription, error)
	FindByReferenceCode(db *gorm.DB, code string) (*models.Subscription, error)
	FindLatestByUser(db *gorm.DB, userID string) (*models.Subscription, error)
	FindByUserAndStatus(db *gorm.DB, userID string, status models.SubscriptionStatus) (*models.Subscription, error)
	Create(db *gorm.DB, sub *models.Subscription) error
	Save(db *gorm.DB, sub *models.Subscription) error

	FindWithFilter(db *gorm.DB, criteria dto.SubscriptionCriteria) ([]models.Subscription, int64, error)
	FindExpired(db *gorm.DB, now time.Time, limit int) ([]models.Subscription, error)
	FindExpiringBetween(db *gorm.DB, from, to time.Time) ([]models.Subscription, error)
	CountByStatus(db *gorm.DB) (map[string]int64, error)
	CountByPlan(db *gorm.DB) (map[string]int64, error)
}

type SubscriptionRepositoryImpl struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &SubscriptionRepositoryImpl{}
}

func (r *SubscriptionRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.First(&sub, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) FindByReferenceCode(db *gorm.DB, code string) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.First(&sub, "reference_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindLatestByUser returns the most recently created subscription for the
// user regardless of status. The status endpoint reconciles premium access
// against this record, so ordering by created_at is load bearing.
func (r *SubscriptionRepositoryImpl) FindLatestByUser(db *gorm.DB, userID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) FindByUserAndStatus(db *gorm.DB, userID string, status models.SubscriptionStatus) (*models.Subscription, error) {
	var sub models.Subscription
	err := db.Where("user_id = ? AND status = ?", userID, status).
		Order("created_at DESC").First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) Create(db *gorm.DB, sub *models.Subscription) error {
	return db.Create(sub).Error
}

func (r *SubscriptionRepositoryImpl) Save(db *gorm.DB, sub *models.Subscription) error {
	result := db.Save(sub)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) FindWithFilter(db *gorm.DB, criteria dto.SubscriptionCriteria) ([]models.Subscription, int64, error) {
	var subs []models.Subscription
	query := db.Model(&models.Subscription{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Plan != "" {
		query = query.Where("plan = ?", criteria.Plan)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&subs).Error
	return subs, total, err
}

func (r *SubscriptionRepositoryImpl) FindExpired(db *gorm.DB, now time.Time, limit int) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := db.Where("status = ? AND end_date IS NOT NULL AND end_date < ?", models.SubscriptionStatusActive, now).
		Limit(limit).Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepositoryImpl) FindExpiringBetween(db *gorm.DB, from, to time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := db.Where("status = ? AND end_date BETWEEN ? AND ?", models.SubscriptionStatusActive, from, to).
		Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepositoryImpl) CountByStatus(db *gorm.DB) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := db.Model(&models.Subscription{}).
		Select("status, COUNT(*) as count").Group("status").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, r := range rows {
		result[r.Status] = r.Count
	}
	return result, nil
}

func (r *SubscriptionRepositoryImpl) CountByPlan(db *gorm.DB) (map[string]int64, error) {
	type row struct {
		Plan  string
		Count int64
	}
	var rows []row
	err := db.Model(&models.Subscription{}).
		Select("plan, COUNT(*) as count").Group("plan").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, r := range rows {
		result[r.Plan] = r.Count
	}
	return result, nil
}

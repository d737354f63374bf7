package repositories

import (
	"errors"
	"time"

	"guidehub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	FindByID(db *gorm.DB, id string) (*models.Notification, error)

	// FindForUser returns the user's own notifications plus broadcasts
	// (rows with a NULL user_id).
	FindForUser(db *gorm.DB, userID string, limit, offset int) ([]models.Notification, int64, error)
	CountUnread(db *gorm.DB, userID string) (int64, error)
	MarkRead(db *gorm.DB, id, userID string) error
	MarkAllRead(db *gorm.DB, userID string) error
	DeleteOlderThan(db *gorm.DB, cutoff time.Time) (int64, error)
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Notification, error) {
	var n models.Notification
	err := db.First(&n, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepositoryImpl) FindForUser(db *gorm.DB, userID string, limit, offset int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	query := db.Model(&models.Notification{}).
		Where("user_id = ? OR user_id IS NULL", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&notifications).Error
	return notifications, total, err
}

func (r *NotificationRepositoryImpl) CountUnread(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("(user_id = ? OR user_id IS NULL) AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) MarkRead(db *gorm.DB, id, userID string) error {
	now := time.Now()
	result := db.Model(&models.Notification{}).
		Where("id = ? AND (user_id = ? OR user_id IS NULL)", id, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllRead(db *gorm.DB, userID string) error {
	now := time.Now()
	return db.Model(&models.Notification{}).
		Where("(user_id = ? OR user_id IS NULL) AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}

func (r *NotificationRepositoryImpl) DeleteOlderThan(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("created_at < ? AND is_read = ?", cutoff, true).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

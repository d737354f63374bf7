package repositories

import (
	"errors"

	"guidehub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

type AnnouncementRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Announcement, error)
	FindActive(db *gorm.DB) ([]models.Announcement, error)
	FindAll(db *gorm.DB, limit, offset int) ([]models.Announcement, int64, error)
	Create(db *gorm.DB, announcement *models.Announcement) error
	Save(db *gorm.DB, announcement *models.Announcement) error
	Delete(db *gorm.DB, id string) error
}

type AnnouncementRepositoryImpl struct{}

func NewAnnouncementRepository() AnnouncementRepository {
	return &AnnouncementRepositoryImpl{}
}

func (r *AnnouncementRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Announcement, error) {
	var a models.Announcement
	err := db.First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AnnouncementRepositoryImpl) FindActive(db *gorm.DB) ([]models.Announcement, error) {
	var announcements []models.Announcement
	err := db.Where("is_active = ?", true).
		Order("published_at DESC").Find(&announcements).Error
	return announcements, err
}

func (r *AnnouncementRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.Announcement, int64, error) {
	var announcements []models.Announcement

	var total int64
	if err := db.Model(&models.Announcement{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&announcements).Error
	return announcements, total, err
}

func (r *AnnouncementRepositoryImpl) Create(db *gorm.DB, announcement *models.Announcement) error {
	return db.Create(announcement).Error
}

func (r *AnnouncementRepositoryImpl) Save(db *gorm.DB, announcement *models.Announcement) error {
	result := db.Save(announcement)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

func (r *AnnouncementRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Announcement{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

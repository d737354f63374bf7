package repositories

import (
	"errors"

	"guidehub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSettingNotFound = errors.New("setting not found")

type SettingRepository interface {
	Get(db *gorm.DB, name string) (*models.Setting, error)
	Set(db *gorm.DB, name, value string) error
	All(db *gorm.DB) ([]models.Setting, error)
}

type SettingRepositoryImpl struct{}

func NewSettingRepository() SettingRepository {
	return &SettingRepositoryImpl{}
}

func (r *SettingRepositoryImpl) Get(db *gorm.DB, name string) (*models.Setting, error) {
	var setting models.Setting
	err := db.First(&setting, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}
	return &setting, nil
}

func (r *SettingRepositoryImpl) Set(db *gorm.DB, name, value string) error {
	var existing models.Setting
	err := db.First(&existing, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Create(&models.Setting{Name: name, Value: value}).Error
		}
		return err
	}
	return db.Model(&existing).Update("value", value).Error
}

func (r *SettingRepositoryImpl) All(db *gorm.DB) ([]models.Setting, error) {
	var settings []models.Setting
	err := db.Order("name ASC").Find(&settings).Error
	return settings, err
}

package repositories

import (
	"errors"

	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrGuideNotFound = errors.New("guide not found")
	ErrSlugTaken     = errors.New("slug already taken")
)

type GuideRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Guide, error)
	FindBySlug(db *gorm.DB, slug string) (*models.Guide, error)
	SlugExists(db *gorm.DB, slug string) (bool, error)
	Create(db *gorm.DB, guide *models.Guide) error
	Save(db *gorm.DB, guide *models.Guide) error
	Delete(db *gorm.DB, id string) error
	IncrementViews(db *gorm.DB, id string) error

	FindWithFilter(db *gorm.DB, criteria dto.GuideCriteria, publishedOnly bool) ([]models.Guide, int64, error)
	CountAll(db *gorm.DB) (int64, error)
	RatingAggregate(db *gorm.DB, guideID string) (avg float64, count int64, err error)
}

type GuideRepositoryImpl struct{}

func NewGuideRepository() GuideRepository {
	return &GuideRepositoryImpl{}
}

func (r *GuideRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Guide, error) {
	var guide models.Guide
	err := db.First(&guide, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuideNotFound
		}
		return nil, err
	}
	return &guide, nil
}

func (r *GuideRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.Guide, error) {
	var guide models.Guide
	err := db.First(&guide, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuideNotFound
		}
		return nil, err
	}
	return &guide, nil
}

func (r *GuideRepositoryImpl) SlugExists(db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.Model(&models.Guide{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *GuideRepositoryImpl) Create(db *gorm.DB, guide *models.Guide) error {
	return db.Create(guide).Error
}

func (r *GuideRepositoryImpl) Save(db *gorm.DB, guide *models.Guide) error {
	result := db.Save(guide)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGuideNotFound
	}
	return nil
}

func (r *GuideRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("guide_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("guide_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Guide{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrGuideNotFound
		}
		return nil
	})
}

func (r *GuideRepositoryImpl) IncrementViews(db *gorm.DB, id string) error {
	return db.Model(&models.Guide{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *GuideRepositoryImpl) FindWithFilter(db *gorm.DB, criteria dto.GuideCriteria, publishedOnly bool) ([]models.Guide, int64, error) {
	var guides []models.Guide
	query := db.Model(&models.Guide{})

	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if criteria.Tag != "" {
		query = query.Where("tags LIKE ?", "%"+criteria.Tag+"%")
	}
	if criteria.PremiumOnly != nil {
		query = query.Where("is_premium = ?", *criteria.PremiumOnly)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&guides).Error
	return guides, total, err
}

func (r *GuideRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Guide{}).Count(&count).Error
	return count, err
}

func (r *GuideRepositoryImpl) RatingAggregate(db *gorm.DB, guideID string) (float64, int64, error) {
	type agg struct {
		Avg   float64
		Count int64
	}
	var result agg
	err := db.Model(&models.Rating{}).
		Select("COALESCE(AVG(value), 0) as avg, COUNT(*) as count").
		Where("guide_id = ?", guideID).
		Scan(&result).Error
	return result.Avg, result.Count, err
}

package repositories

import (
	"errors"

	"guidehub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Comment, error)
	Create(db *gorm.DB, comment *models.Comment) error
	Delete(db *gorm.DB, id string) error
	FindByGuide(db *gorm.DB, guideID string, limit, offset int) ([]models.Comment, int64, error)

	// Rating operations share the repository because ratings live and die
	// with the guide feedback surface.
	UpsertRating(db *gorm.DB, rating *models.Rating) error
	FindRating(db *gorm.DB, guideID, userID string) (*models.Rating, error)
}

type CommentRepositoryImpl struct{}

func NewCommentRepository() CommentRepository {
	return &CommentRepositoryImpl{}
}

func (r *CommentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Comment, error) {
	var comment models.Comment
	err := db.First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) Create(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

func (r *CommentRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepositoryImpl) FindByGuide(db *gorm.DB, guideID string, limit, offset int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	query := db.Model(&models.Comment{}).Where("guide_id = ?", guideID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").Order("created_at DESC").
		Limit(limit).Offset(offset).Find(&comments).Error
	return comments, total, err
}

func (r *CommentRepositoryImpl) UpsertRating(db *gorm.DB, rating *models.Rating) error {
	var existing models.Rating
	err := db.Where("guide_id = ? AND user_id = ?", rating.GuideID, rating.UserID).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.Create(rating).Error
		}
		return err
	}
	return db.Model(&existing).Update("value", rating.Value).Error
}

func (r *CommentRepositoryImpl) FindRating(db *gorm.DB, guideID, userID string) (*models.Rating, error) {
	var rating models.Rating
	err := db.Where("guide_id = ? AND user_id = ?", guideID, userID).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &rating, nil
}

package repositories

import (
	"errors"

	"guidehub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSubscriberNotFound = errors.New("newsletter subscriber not found")
	ErrAlreadySubscribed  = errors.New("email already subscribed")
)

type NewsletterRepository interface {
	Create(db *gorm.DB, subscriber *models.NewsletterSubscriber) error
	FindByEmail(db *gorm.DB, email string) (*models.NewsletterSubscriber, error)
	FindByToken(db *gorm.DB, token string) (*models.NewsletterSubscriber, error)
	FindActive(db *gorm.DB) ([]models.NewsletterSubscriber, error)
	Save(db *gorm.DB, subscriber *models.NewsletterSubscriber) error
}

type NewsletterRepositoryImpl struct{}

func NewNewsletterRepository() NewsletterRepository {
	return &NewsletterRepositoryImpl{}
}

func (r *NewsletterRepositoryImpl) Create(db *gorm.DB, subscriber *models.NewsletterSubscriber) error {
	var existing models.NewsletterSubscriber
	if err := db.Where("email = ?", subscriber.Email).First(&existing).Error; err == nil {
		if existing.IsActive {
			return ErrAlreadySubscribed
		}
		// Resubscribing reactivates the old row so the unsubscribe token stays stable.
		return db.Model(&existing).Update("is_active", true).Error
	}
	return db.Create(subscriber).Error
}

func (r *NewsletterRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.NewsletterSubscriber, error) {
	var subscriber models.NewsletterSubscriber
	err := db.First(&subscriber, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriberNotFound
		}
		return nil, err
	}
	return &subscriber, nil
}

func (r *NewsletterRepositoryImpl) FindByToken(db *gorm.DB, token string) (*models.NewsletterSubscriber, error) {
	var subscriber models.NewsletterSubscriber
	err := db.First(&subscriber, "unsubscribe_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriberNotFound
		}
		return nil, err
	}
	return &subscriber, nil
}

func (r *NewsletterRepositoryImpl) FindActive(db *gorm.DB) ([]models.NewsletterSubscriber, error) {
	var subscribers []models.NewsletterSubscriber
	err := db.Where("is_active = ?", true).Find(&subscribers).Error
	return subscribers, err
}

func (r *NewsletterRepositoryImpl) Save(db *gorm.DB, subscriber *models.NewsletterSubscriber) error {
	return db.Save(subscriber).Error
}

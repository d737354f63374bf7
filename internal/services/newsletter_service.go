package services

import (
	"errors"

	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/email"
	"guidehub_backend/internal/logger"
	"guidehub_backend/internal/models"
	"guidehub_backend/internal/repositories"
	"guidehub_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewsletterService interface {
	Subscribe(db *gorm.DB, req *dto.NewsletterSubscribeRequest) error
	Unsubscribe(db *gorm.DB, token string) error
	Send(db *gorm.DB, req *dto.SendNewsletterRequest) (*dto.SendNewsletterResponse, error)
}

type NewsletterServiceImpl struct {
	newsletterRepo repositories.NewsletterRepository
	mailer         *email.Mailer
}

func NewNewsletterService(newsletterRepo repositories.NewsletterRepository, mailer *email.Mailer) NewsletterService {
	return &NewsletterServiceImpl{newsletterRepo: newsletterRepo, mailer: mailer}
}

func (s *NewsletterServiceImpl) Subscribe(db *gorm.DB, req *dto.NewsletterSubscribeRequest) error {
	subscriber := &models.NewsletterSubscriber{
		Email:            req.Email,
		UnsubscribeToken: uuid.NewString(),
		IsActive:         true,
	}
	if err := s.newsletterRepo.Create(db, subscriber); err != nil {
		if errors.Is(err, repositories.ErrAlreadySubscribed) {
			return apperrors.NewConflictError("newsletter", "this email is already subscribed")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NewsletterServiceImpl) Unsubscribe(db *gorm.DB, token string) error {
	if token == "" {
		return apperrors.NewBadRequestError("unsubscribe token is required")
	}
	subscriber, err := s.newsletterRepo.FindByToken(db, token)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriberNotFound) {
			return apperrors.NewNotFoundError("newsletter", "invalid unsubscribe token")
		}
		return apperrors.InternalError(err)
	}
	subscriber.IsActive = false
	if err := s.newsletterRepo.Save(db, subscriber); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Send mails every active subscriber. Individual delivery failures are
// counted and logged, not fatal.
func (s *NewsletterServiceImpl) Send(db *gorm.DB, req *dto.SendNewsletterRequest) (*dto.SendNewsletterResponse, error) {
	subscribers, err := s.newsletterRepo.FindActive(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := &dto.SendNewsletterResponse{}
	for _, subscriber := range subscribers {
		if err := s.mailer.SendNewsletter(subscriber.Email, req.Subject, req.Body, subscriber.UnsubscribeToken); err != nil {
			logger.WithError(err).Warn("newsletter delivery failed", "email", subscriber.Email)
			result.Failed++
			continue
		}
		result.Recipients++
	}
	return result, nil
}

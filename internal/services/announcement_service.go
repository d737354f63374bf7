package services

import (
	"errors"
	"time"

	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/logger"
	"guidehub_backend/internal/models"
	"guidehub_backend/internal/repositories"
	"guidehub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AnnouncementService interface {
	Create(db *gorm.DB, adminID string, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	Update(db *gorm.DB, id string, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	Delete(db *gorm.DB, id string) error
	ListActive(db *gorm.DB) ([]*dto.AnnouncementResponse, error)
	ListAll(db *gorm.DB, page, pageSize int) ([]*dto.AnnouncementResponse, int64, error)
}

type AnnouncementServiceImpl struct {
	announcementRepo repositories.AnnouncementRepository
	notificationSvc  NotificationService
}

func NewAnnouncementService(announcementRepo repositories.AnnouncementRepository, notificationSvc NotificationService) AnnouncementService {
	return &AnnouncementServiceImpl{announcementRepo: announcementRepo, notificationSvc: notificationSvc}
}

func (s *AnnouncementServiceImpl) Create(db *gorm.DB, adminID string, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	now := time.Now()
	announcement := &models.Announcement{
		Title:       req.Title,
		Body:        req.Body,
		IsActive:    true,
		CreatedBy:   adminID,
		PublishedAt: &now,
	}
	if err := s.announcementRepo.Create(db, announcement); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Publishing pushes a broadcast so every account sees it in-app.
	if err := s.notificationSvc.Notify(db, nil, models.NotificationTypeAnnouncement,
		announcement.Title, announcement.Body, "/announcements", nil); err != nil {
		logger.WithError(err).Warn("failed to broadcast announcement", "announcement_id", announcement.ID)
	}

	return toAnnouncementResponse(announcement), nil
}

func (s *AnnouncementServiceImpl) Update(db *gorm.DB, id string, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	announcement, err := s.announcementRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAnnouncementNotFound) {
			return nil, apperrors.NewNotFoundError("announcement", "announcement not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Body != nil {
		announcement.Body = *req.Body
	}
	if req.IsActive != nil {
		announcement.IsActive = *req.IsActive
	}
	if err := s.announcementRepo.Save(db, announcement); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toAnnouncementResponse(announcement), nil
}

func (s *AnnouncementServiceImpl) Delete(db *gorm.DB, id string) error {
	err := s.announcementRepo.Delete(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAnnouncementNotFound) {
			return apperrors.NewNotFoundError("announcement", "announcement not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AnnouncementServiceImpl) ListActive(db *gorm.DB) ([]*dto.AnnouncementResponse, error) {
	announcements, err := s.announcementRepo.FindActive(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	result := make([]*dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		result = append(result, toAnnouncementResponse(&announcements[i]))
	}
	return result, nil
}

func (s *AnnouncementServiceImpl) ListAll(db *gorm.DB, page, pageSize int) ([]*dto.AnnouncementResponse, int64, error) {
	page, pageSize = normalizePagination(page, pageSize)

	announcements, total, err := s.announcementRepo.FindAll(db, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	result := make([]*dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		result = append(result, toAnnouncementResponse(&announcements[i]))
	}
	return result, total, nil
}

func toAnnouncementResponse(a *models.Announcement) *dto.AnnouncementResponse {
	return &dto.AnnouncementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		IsActive:    a.IsActive,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
	}
}

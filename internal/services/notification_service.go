package services

import (
	"encoding/json"

	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/models"
	"guidehub_backend/internal/repositories"
	"guidehub_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationService interface {
	// Notify stores an in-app notification. A nil userID broadcasts to
	// every account.
	Notify(db *gorm.DB, userID *string, ntype, title, message, link string, data map[string]interface{}) error
	ListForUser(db *gorm.DB, userID string, page, pageSize int) (*dto.NotificationListResponse, error)
	UnreadCount(db *gorm.DB, userID string) (int64, error)
	MarkRead(db *gorm.DB, id, userID string) error
	MarkAllRead(db *gorm.DB, userID string) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) Notify(db *gorm.DB, userID *string, ntype, title, message, link string, data map[string]interface{}) error {
	notification := &models.Notification{
		UserID:  userID,
		Type:    ntype,
		Title:   title,
		Message: message,
		Link:    link,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return apperrors.InternalError(err)
		}
		notification.Data = datatypes.JSON(raw)
	}
	if err := s.notificationRepo.Create(db, notification); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) ListForUser(db *gorm.DB, userID string, page, pageSize int) (*dto.NotificationListResponse, error) {
	page, pageSize = normalizePagination(page, pageSize)

	notifications, total, err := s.notificationRepo.FindForUser(db, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		result = append(result, toNotificationResponse(&notifications[i]))
	}
	return &dto.NotificationListResponse{
		Notifications: result,
		Total:         total,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func (s *NotificationServiceImpl) UnreadCount(db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *NotificationServiceImpl) MarkRead(db *gorm.DB, id, userID string) error {
	err := s.notificationRepo.MarkRead(db, id, userID)
	if err != nil {
		if err == repositories.ErrNotificationNotFound {
			return apperrors.NewNotFoundError("notification", "notification not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllRead(db *gorm.DB, userID string) error {
	if err := s.notificationRepo.MarkAllRead(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func toNotificationResponse(n *models.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		Broadcast: n.UserID == nil,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// normalizePagination clamps paging parameters to sane values.
func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

package handlers

import (
	"guidehub_backend/internal/repositories"
	"guidehub_backend/internal/services"
	"guidehub_backend/internal/validator"
)

// AppHandlers bundles all HTTP handlers for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Premium      *PremiumHandler
	Guide        *GuideHandler
	Comment      *CommentHandler
	Notification *NotificationHandler
	Newsletter   *NewsletterHandler
	Announcement *AnnouncementHandler
	Admin        *AdminHandler
}

func NewAppHandlers(svc *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(validator.New())

	userRepo := repositories.NewUserRepository()
	subscriptionRepo := repositories.NewSubscriptionRepository()
	guideRepo := repositories.NewGuideRepository()

	return &AppHandlers{
		Auth:         NewAuthHandler(base, svc.Auth),
		User:         NewUserHandler(base, svc.User),
		Premium:      NewPremiumHandler(base, svc.Subscription),
		Guide:        NewGuideHandler(base, svc.Guide, userRepo),
		Comment:      NewCommentHandler(base, svc.Comment),
		Notification: NewNotificationHandler(base, svc.Notification),
		Newsletter:   NewNewsletterHandler(base, svc.Newsletter),
		Announcement: NewAnnouncementHandler(base, svc.Announcement),
		Admin: NewAdminHandler(base, svc.User, svc.Subscription, svc.Setting,
			userRepo, subscriptionRepo, guideRepo),
	}
}

package services

import (
	"guidehub_backend/internal/config"
	"guidehub_backend/internal/email"
	"guidehub_backend/internal/repositories"
	"guidehub_backend/internal/storage"
)

// ServiceContainer wires every service with its repositories and shared
// infrastructure. Handlers receive this once at startup.
type ServiceContainer struct {
	Auth         AuthService
	User         UserService
	Subscription SubscriptionService
	Guide        GuideService
	Comment      CommentService
	Notification NotificationService
	Newsletter   NewsletterService
	Announcement AnnouncementService
	Setting      SettingService
}

func NewServiceContainer(cfg *config.Config, store storage.Storage, mailer *email.Mailer) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	subscriptionRepo := repositories.NewSubscriptionRepository()
	guideRepo := repositories.NewGuideRepository()
	commentRepo := repositories.NewCommentRepository()
	notificationRepo := repositories.NewNotificationRepository()
	newsletterRepo := repositories.NewNewsletterRepository()
	announcementRepo := repositories.NewAnnouncementRepository()
	settingRepo := repositories.NewSettingRepository()

	settingSvc := NewSettingService(settingRepo, cfg)
	notificationSvc := NewNotificationService(notificationRepo)

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo, mailer),
		User:         NewUserService(userRepo),
		Subscription: NewSubscriptionService(subscriptionRepo, userRepo, settingSvc, notificationSvc, mailer, store, cfg),
		Guide:        NewGuideService(guideRepo),
		Comment:      NewCommentService(commentRepo, guideRepo),
		Notification: notificationSvc,
		Newsletter:   NewNewsletterService(newsletterRepo, mailer),
		Announcement: NewAnnouncementService(announcementRepo, notificationSvc),
		Setting:      settingSvc,
	}
}

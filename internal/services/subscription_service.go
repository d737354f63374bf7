package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"guidehub_backend/internal/config"
	"guidehub_backend/internal/dto"
	"guidehub_backend/internal/email"
	"guidehub_backend/internal/logger"
	"guidehub_backend/internal/models"
	"guidehub_backend/internal/repositories"
	"guidehub_backend/internal/storage"
	"guidehub_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const adminReviewQueueLink = "/admin/subscriptions?status=pending_manual_verification"

// SubscriptionService owns every legal state change of a subscription and
// keeps the owning user's premium flag consistent with it. All other parts of
// the system treat user.IsPremium as read-only.
type SubscriptionService interface {
	Features(db *gorm.DB) (*dto.PremiumFeaturesResponse, error)
	SubmitManualPayment(db *gorm.DB, userID string, req *dto.ConfirmManualPaymentRequest) (*dto.SubscriptionResponse, error)
	AttachScreenshot(ctx context.Context, db *gorm.DB, userID, subscriptionID string, upload *dto.ScreenshotUpload) (*dto.SubscriptionResponse, error)
	AdminDecision(db *gorm.DB, adminID, subscriptionID string, req *dto.AdminDecisionRequest) (*dto.SubscriptionResponse, error)
	Cancel(db *gorm.DB, userID string) error
	Status(db *gorm.DB, userID string) (*dto.SubscriptionStatusResponse, error)
	List(db *gorm.DB, criteria dto.SubscriptionCriteria) (*dto.SubscriptionListResponse, error)
}

type SubscriptionServiceImpl struct {
	subscriptionRepo repositories.SubscriptionRepository
	userRepo         repositories.UserRepository
	settingSvc       SettingService
	notificationSvc  NotificationService
	mailer           *email.Mailer
	store            storage.Storage
	cfg              *config.Config
}

func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	userRepo repositories.UserRepository,
	settingSvc SettingService,
	notificationSvc NotificationService,
	mailer *email.Mailer,
	store storage.Storage,
	cfg *config.Config,
) SubscriptionService {
	return &SubscriptionServiceImpl{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		settingSvc:       settingSvc,
		notificationSvc:  notificationSvc,
		mailer:           mailer,
		store:            store,
		cfg:              cfg,
	}
}

func (s *SubscriptionServiceImpl) Features(db *gorm.DB) (*dto.PremiumFeaturesResponse, error) {
	settings, err := s.settingSvc.PremiumSettings(db)
	if err != nil {
		return nil, err
	}

	plans := make([]dto.PlanInfo, 0, len(models.PurchasablePlans))
	for _, plan := range models.PurchasablePlans {
		pricing, ok := settings.Plans[plan]
		if !ok {
			continue
		}
		plans = append(plans, dto.PlanInfo{
			Name:     plan,
			Price:    pricing.Price,
			Currency: pricing.Currency,
		})
	}

	instructions := ""
	if settings.UPIID != "" {
		instructions = fmt.Sprintf(
			"Pay via UPI to %s (%s), then submit the transaction id and reference code. Your plan activates after manual verification.",
			settings.UPIID, settings.PayeeName)
	}

	return &dto.PremiumFeaturesResponse{
		Plans:        plans,
		UPIID:        settings.UPIID,
		PayeeName:    settings.PayeeName,
		Instructions: instructions,
	}, nil
}

func (s *SubscriptionServiceImpl) SubmitManualPayment(db *gorm.DB, userID string, req *dto.ConfirmManualPaymentRequest) (*dto.SubscriptionResponse, error) {
	plan := models.PlanName(req.SelectedPlan)
	if !models.IsPurchasablePlan(plan) {
		return nil, apperrors.ValidationError(map[string]string{
			"selectedPlan": "must be one of: basic, advanced, pro",
		})
	}

	settings, err := s.settingSvc.PremiumSettings(db)
	if err != nil {
		return nil, err
	}
	pricing, ok := settings.Plans[plan]
	if !ok {
		return nil, apperrors.ConfigurationError(fmt.Sprintf("no price configured for plan %q", plan))
	}
	if pricing.Price <= 0 || math.IsNaN(pricing.Price) || math.IsInf(pricing.Price, 0) {
		return nil, apperrors.ConfigurationError(fmt.Sprintf("plan %q has an invalid price", plan))
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("subscription", "user not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if settings.RequireVerifiedEmail && !user.IsVerified {
		return nil, apperrors.NewForbiddenError("verify your email address before purchasing a subscription")
	}

	if _, err := s.subscriptionRepo.FindByUserAndStatus(db, userID, models.SubscriptionStatusActive); err == nil {
		return nil, apperrors.NewConflictError("subscription",
			"an active subscription already exists; cancel it before purchasing another plan")
	} else if !errors.Is(err, repositories.ErrSubscriptionNotFound) {
		return nil, apperrors.InternalError(err)
	}

	pending, err := s.subscriptionRepo.FindByUserAndStatus(db, userID, models.SubscriptionStatusPending)
	if err != nil && !errors.Is(err, repositories.ErrSubscriptionNotFound) {
		return nil, apperrors.InternalError(err)
	}

	// The reference code is externally unique; reusing one from another
	// subscription means a duplicate submission.
	if existing, err := s.subscriptionRepo.FindByReferenceCode(db, req.ReferenceCode); err == nil {
		if pending == nil || existing.ID != pending.ID {
			return nil, apperrors.NewConflictError("subscription",
				fmt.Sprintf("reference code %q was already used for another payment", req.ReferenceCode))
		}
	} else if !errors.Is(err, repositories.ErrSubscriptionNotFound) {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	refCode := req.ReferenceCode

	var sub *models.Subscription
	if pending != nil {
		// Re-submission while still pending mutates the existing record,
		// keeping its id stable.
		pending.Plan = plan
		pending.Amount = pricing.Price
		pending.Currency = pricing.Currency
		pending.TransactionID = req.TransactionID
		pending.ReferenceCode = &refCode
		pending.SubmittedAt = &now
		if err := s.subscriptionRepo.Save(db, pending); err != nil {
			return nil, apperrors.InternalError(err)
		}
		sub = pending
	} else {
		sub = &models.Subscription{
			UserID:        userID,
			Plan:          plan,
			Status:        models.SubscriptionStatusPending,
			Amount:        pricing.Price,
			Currency:      pricing.Currency,
			TransactionID: req.TransactionID,
			ReferenceCode: &refCode,
			SubmittedAt:   &now,
		}
		if err := s.subscriptionRepo.Create(db, sub); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	s.notifyAdmins(db, "New payment awaiting verification",
		fmt.Sprintf("%s submitted a manual payment for the %s plan (%.2f %s).",
			user.Email, sub.Plan, sub.Amount, sub.Currency),
		adminReviewQueueLink,
		map[string]interface{}{"subscription_id": sub.ID})
	if settings.AdminEmail != "" {
		s.mailer.SendPaymentReceived(settings.AdminEmail, user.Email, sub.Plan, sub.Amount, sub.Currency)
	} else {
		logger.Warn("admin contact email not configured, skipping payment review email",
			"subscription_id", sub.ID)
	}

	return toSubscriptionResponse(sub), nil
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func (s *SubscriptionServiceImpl) AttachScreenshot(ctx context.Context, db *gorm.DB, userID, subscriptionID string, upload *dto.ScreenshotUpload) (*dto.SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindByID(db, subscriptionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.NewNotFoundError("subscription", "subscription not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if sub.UserID != userID {
		return nil, apperrors.NewForbiddenError("you do not own this subscription")
	}
	if sub.Status != models.SubscriptionStatusInitiated && sub.Status != models.SubscriptionStatusPending {
		return nil, apperrors.NewConflictError("subscription",
			fmt.Sprintf("cannot attach a screenshot to a subscription in status '%s'", sub.Status))
	}

	if upload.Size > s.cfg.Upload.MaxScreenshotSize {
		return nil, apperrors.ValidationError(map[string]string{
			"screenshot": fmt.Sprintf("file exceeds the %d MB limit", s.cfg.Upload.MaxScreenshotSize/(1024*1024)),
		})
	}
	contentType := strings.ToLower(upload.ContentType)
	allowed := false
	for _, t := range s.cfg.Upload.AllowedImageTypes {
		if t == contentType {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperrors.ValidationError(map[string]string{
			"screenshot": "file must be a jpeg, png, gif or webp image",
		})
	}

	ext, ok := imageExtensions[contentType]
	if !ok {
		ext = filepath.Ext(upload.Filename)
	}
	path := fmt.Sprintf("screenshots/%s/%s%s", sub.ID, uuid.NewString(), ext)

	if err := s.store.Save(ctx, path, upload.Reader, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	oldPath := sub.ScreenshotPath
	sub.ScreenshotPath = path
	sub.ScreenshotURL = s.store.URL(path)
	if err := s.subscriptionRepo.Save(db, sub); err != nil {
		// No orphaned uploads: the file was accepted but the record was not.
		if delErr := s.store.Delete(ctx, path); delErr != nil {
			logger.WithError(delErr).Warn("failed to remove screenshot after db failure", "path", path)
		}
		return nil, apperrors.InternalError(err)
	}

	if oldPath != "" && oldPath != path {
		if delErr := s.store.Delete(ctx, oldPath); delErr != nil {
			logger.WithError(delErr).Warn("failed to delete replaced screenshot", "path", oldPath)
		}
	}

	s.notifyAdmins(db, "Payment screenshot uploaded",
		fmt.Sprintf("A payment screenshot was uploaded for subscription %s.", sub.ID),
		sub.ScreenshotURL,
		map[string]interface{}{"subscription_id": sub.ID})

	return toSubscriptionResponse(sub), nil
}

func (s *SubscriptionServiceImpl) AdminDecision(db *gorm.DB, adminID, subscriptionID string, req *dto.AdminDecisionRequest) (*dto.SubscriptionResponse, error) {
	admin, err := s.userRepo.FindByID(db, adminID)
	if err != nil || admin.Role != models.UserRoleAdmin {
		return nil, apperrors.NewForbiddenError("only administrators can decide on payments")
	}

	sub, err := s.subscriptionRepo.FindByID(db, subscriptionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.NewNotFoundError("subscription", "subscription not found")
		}
		return nil, apperrors.InternalError(err)
	}

	target := models.SubscriptionStatus(req.Status)
	if !models.CanTransitionSubscription(sub.Status, target) {
		return nil, apperrors.NewIllegalTransitionError("subscription", string(sub.Status), string(target))
	}

	user, err := s.userRepo.FindByID(db, sub.UserID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("subscription", "subscription owner not found")
	}

	now := time.Now()
	err = db.Transaction(func(tx *gorm.DB) error {
		sub.Status = target
		sub.VerifiedBy = adminID
		sub.VerifiedAt = &now
		if req.AdminNotes != "" {
			sub.AdminNotes = req.AdminNotes
		}

		switch target {
		case models.SubscriptionStatusActive:
			effectiveStart := now
			if sub.LastPaymentAt != nil {
				effectiveStart = *sub.LastPaymentAt
			}
			if sub.StartDate == nil {
				sub.StartDate = &effectiveStart
			}
			if sub.EndDate == nil {
				endDate := effectiveStart.AddDate(1, 0, 0)
				sub.EndDate = &endDate
			}
			if err := s.subscriptionRepo.Save(tx, sub); err != nil {
				return err
			}
			return s.userRepo.SetPremium(tx, user.ID, true, &sub.ID)

		case models.SubscriptionStatusFailed, models.SubscriptionStatusCancelled:
			if err := s.subscriptionRepo.Save(tx, sub); err != nil {
				return err
			}
			// Premium is revoked only when this subscription is the one the
			// user's access is linked to. Access granted by a different
			// subscription stays untouched.
			if user.SubscriptionID != nil && *user.SubscriptionID == sub.ID {
				return s.userRepo.SetPremium(tx, user.ID, false, nil)
			}
			if user.IsPremium && user.SubscriptionID == nil {
				return s.userRepo.SetPremium(tx, user.ID, false, nil)
			}
			return nil
		}
		return s.subscriptionRepo.Save(tx, sub)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.dispatchDecisionSideEffects(db, user, sub)

	return toSubscriptionResponse(sub), nil
}

// dispatchDecisionSideEffects sends the user-facing notification and email
// for a committed admin decision. The transition is authoritative, so any
// failure here is logged and swallowed.
func (s *SubscriptionServiceImpl) dispatchDecisionSideEffects(db *gorm.DB, user *models.User, sub *models.Subscription) {
	var title, message string
	switch sub.Status {
	case models.SubscriptionStatusActive:
		title = "Subscription activated"
		message = fmt.Sprintf("Your payment was verified. The %s plan is now active.", sub.Plan)
		s.mailer.SendSubscriptionActivated(user, sub.Plan, sub.EndDate)
	case models.SubscriptionStatusFailed:
		title = "Payment verification failed"
		message = "We could not verify your payment. You can resubmit the payment details."
		if sub.AdminNotes != "" {
			message = fmt.Sprintf("We could not verify your payment: %s", sub.AdminNotes)
		}
		s.mailer.SendSubscriptionRejected(user, sub.AdminNotes)
	case models.SubscriptionStatusCancelled:
		title = "Subscription cancelled"
		message = "Your subscription was cancelled."
		s.mailer.SendSubscriptionCancelled(user)
	default:
		return
	}

	if err := s.notificationSvc.Notify(db, &user.ID, models.NotificationTypeSubscription,
		title, message, "/premium/status",
		map[string]interface{}{"subscription_id": sub.ID, "status": string(sub.Status)}); err != nil {
		logger.WithError(err).Warn("failed to store decision notification", "subscription_id", sub.ID)
	}
}

func (s *SubscriptionServiceImpl) Cancel(db *gorm.DB, userID string) error {
	sub, err := s.subscriptionRepo.FindByUserAndStatus(db, userID, models.SubscriptionStatusActive)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return apperrors.NewNotFoundError("subscription", "no active subscription to cancel")
		}
		return apperrors.InternalError(err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		sub.Status = models.SubscriptionStatusCancelled
		if err := s.subscriptionRepo.Save(tx, sub); err != nil {
			return err
		}
		return s.userRepo.SetPremium(tx, userID, false, nil)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.notificationSvc.Notify(db, &userID, models.NotificationTypeSubscription,
		"Subscription cancelled", "Your subscription was cancelled at your request.", "",
		map[string]interface{}{"subscription_id": sub.ID}); err != nil {
		logger.WithError(err).Warn("failed to store cancellation notification", "subscription_id", sub.ID)
	}
	if user, err := s.userRepo.FindByID(db, userID); err == nil {
		s.mailer.SendSubscriptionCancelled(user)
	}

	return nil
}

// Status returns the user's latest subscription and self-heals the premium
// flag against it. The most recently created subscription wins, even over an
// older one that is still active.
func (s *SubscriptionServiceImpl) Status(db *gorm.DB, userID string) (*dto.SubscriptionStatusResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("subscription", "user not found")
		}
		return nil, apperrors.InternalError(err)
	}

	latest, err := s.subscriptionRepo.FindLatestByUser(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return &dto.SubscriptionStatusResponse{Status: "none", IsPremium: user.IsPremium}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	isPremium := user.IsPremium
	if latest.Status == models.SubscriptionStatusActive && !isPremium {
		if err := s.userRepo.SetPremium(db, userID, true, &latest.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
		isPremium = true
	} else if latest.Status != models.SubscriptionStatusActive && isPremium {
		if err := s.userRepo.SetPremium(db, userID, false, nil); err != nil {
			return nil, apperrors.InternalError(err)
		}
		isPremium = false
	}

	return &dto.SubscriptionStatusResponse{
		Status:       string(latest.Status),
		IsPremium:    isPremium,
		Subscription: toSubscriptionResponse(latest),
	}, nil
}

func (s *SubscriptionServiceImpl) List(db *gorm.DB, criteria dto.SubscriptionCriteria) (*dto.SubscriptionListResponse, error) {
	criteria.Page, criteria.PageSize = normalizePagination(criteria.Page, criteria.PageSize)

	subs, total, err := s.subscriptionRepo.FindWithFilter(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]*dto.SubscriptionResponse, 0, len(subs))
	for i := range subs {
		result = append(result, toSubscriptionResponse(&subs[i]))
	}
	return &dto.SubscriptionListResponse{
		Subscriptions: result,
		Total:         total,
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
	}, nil
}

func (s *SubscriptionServiceImpl) notifyAdmins(db *gorm.DB, title, message, link string, data map[string]interface{}) {
	if err := s.notificationSvc.Notify(db, nil, models.NotificationTypePaymentReview,
		title, message, link, data); err != nil {
		logger.WithError(err).Warn("failed to store admin notification", "title", title)
	}
}

func toSubscriptionResponse(sub *models.Subscription) *dto.SubscriptionResponse {
	resp := &dto.SubscriptionResponse{
		ID:            sub.ID,
		UserID:        sub.UserID,
		Plan:          sub.Plan,
		Status:        sub.Status,
		Amount:        sub.Amount,
		Currency:      sub.Currency,
		TransactionID: sub.TransactionID,
		ScreenshotURL: sub.ScreenshotURL,
		SubmittedAt:   sub.SubmittedAt,
		StartDate:     sub.StartDate,
		EndDate:       sub.EndDate,
		AdminNotes:    sub.AdminNotes,
		VerifiedAt:    sub.VerifiedAt,
		CreatedAt:     sub.CreatedAt,
	}
	if sub.ReferenceCode != nil {
		resp.ReferenceCode = *sub.ReferenceCode
	}
	return resp
}

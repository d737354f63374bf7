package workers

import (
	"context"
	"time"

	"guidehub_backend/internal/email"
	"guidehub_backend/internal/logger"
	"guidehub_backend/internal/models"
	"guidehub_backend/internal/repositories"

	"gorm.io/gorm"
)

// SubscriptionWorker expires subscriptions past their end date and sends
// expiry reminders. Runs on wall-clock tickers; the predicates make an
// overlapping run re-send an email at worst.
type SubscriptionWorker struct {
	db               *gorm.DB
	subscriptionRepo repositories.SubscriptionRepository
	userRepo         repositories.UserRepository
	mailer           *email.Mailer
}

func NewSubscriptionWorker(db *gorm.DB, mailer *email.Mailer) *SubscriptionWorker {
	return &SubscriptionWorker{
		db:               db,
		subscriptionRepo: repositories.NewSubscriptionRepository(),
		userRepo:         repositories.NewUserRepository(),
		mailer:           mailer,
	}
}

func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.expireSubscriptions(ctx)
	go w.sendExpiryReminders(ctx)
}

func (w *SubscriptionWorker) expireSubscriptions(ctx context.Context) {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription expiry worker stopped")
			return
		case <-ticker.C:
			w.runExpiry()
		}
	}
}

func (w *SubscriptionWorker) runExpiry() {
	subs, err := w.subscriptionRepo.FindExpired(w.db, time.Now(), 500)
	if err != nil {
		logger.WithError(err).Error("failed to query expired subscriptions")
		return
	}

	expired := 0
	for i := range subs {
		sub := &subs[i]
		err := w.db.Transaction(func(tx *gorm.DB) error {
			sub.Status = models.SubscriptionStatusExpired
			if err := w.subscriptionRepo.Save(tx, sub); err != nil {
				return err
			}
			user, err := w.userRepo.FindByID(tx, sub.UserID)
			if err != nil {
				return err
			}
			if user.SubscriptionID != nil && *user.SubscriptionID == sub.ID {
				return w.userRepo.SetPremium(tx, user.ID, false, nil)
			}
			return nil
		})
		if err != nil {
			logger.WithError(err).Error("failed to expire subscription", "subscription_id", sub.ID)
			continue
		}
		expired++
	}
	if expired > 0 {
		logger.Info("marked subscriptions as expired", "count", expired)
	}
}

func (w *SubscriptionWorker) sendExpiryReminders(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("expiry reminder worker stopped")
			return
		case <-ticker.C:
			w.runReminders()
		}
	}
}

func (w *SubscriptionWorker) runReminders() {
	now := time.Now()
	subs, err := w.subscriptionRepo.FindExpiringBetween(w.db, now, now.AddDate(0, 0, 7))
	if err != nil {
		logger.WithError(err).Error("failed to query expiring subscriptions")
		return
	}

	for i := range subs {
		sub := &subs[i]
		if sub.EndDate == nil {
			continue
		}
		user, err := w.userRepo.FindByID(w.db, sub.UserID)
		if err != nil {
			logger.WithError(err).Warn("expiring subscription has no owner", "subscription_id", sub.ID)
			continue
		}
		w.mailer.SendExpiryReminder(user, *sub.EndDate)
	}
	if len(subs) > 0 {
		logger.Info("sent expiry reminders", "count", len(subs))
	}
}

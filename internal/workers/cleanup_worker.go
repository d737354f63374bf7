package workers

import (
	"context"
	"time"

	"guidehub_backend/internal/logger"
	"guidehub_backend/internal/repositories"

	"gorm.io/gorm"
)

const (
	notificationRetention  = 90 * 24 * time.Hour
	unverifiedAccountGrace = 30 * 24 * time.Hour
)

// CleanupWorker prunes read notifications and abandoned unverified accounts
// once a day.
type CleanupWorker struct {
	db               *gorm.DB
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

func NewCleanupWorker(db *gorm.DB) *CleanupWorker {
	return &CleanupWorker{
		db:               db,
		notificationRepo: repositories.NewNotificationRepository(),
		userRepo:         repositories.NewUserRepository(),
	}
}

func (w *CleanupWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *CleanupWorker) run(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			w.runOnce()
		}
	}
}

func (w *CleanupWorker) runOnce() {
	deleted, err := w.notificationRepo.DeleteOlderThan(w.db, time.Now().Add(-notificationRetention))
	if err != nil {
		logger.WithError(err).Error("failed to prune old notifications")
	} else if deleted > 0 {
		logger.Info("pruned old notifications", "count", deleted)
	}

	stale, err := w.userRepo.FindStaleUnverified(w.db, time.Now().Add(-unverifiedAccountGrace), 500)
	if err != nil {
		logger.WithError(err).Error("failed to query stale unverified accounts")
		return
	}
	removed := 0
	for i := range stale {
		if err := w.userRepo.Delete(w.db, stale[i].ID); err != nil {
			logger.WithError(err).Warn("failed to delete stale account", "user_id", stale[i].ID)
			continue
		}
		removed++
	}
	if removed > 0 {
		logger.Info("deleted stale unverified accounts", "count", removed)
	}
}

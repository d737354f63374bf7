package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is an in-app message. A NULL UserID means broadcast: the row
// is visible to every account.
type Notification struct {
	BaseModel
	UserID  *string `gorm:"type:uuid;index"`
	Type    string  `gorm:"not null"` // "payment_review", "subscription", "announcement", ...
	Title   string  `gorm:"not null"`
	Message string
	Link    string
	Data    datatypes.JSON `gorm:"type:jsonb"`
	IsRead  bool           `gorm:"default:false"`
	ReadAt  *time.Time
}

const (
	NotificationTypePaymentReview = "payment_review"
	NotificationTypeSubscription  = "subscription"
	NotificationTypeAnnouncement  = "announcement"
)

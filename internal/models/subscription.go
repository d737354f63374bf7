package models

import "time"

// Subscription is one manual-payment purchase attempt. A user accumulates
// historical rows; at most one of them is active or pending at a time.
type Subscription struct {
	BaseModel
	UserID string             `gorm:"not null;index"`
	Plan   PlanName           `gorm:"type:varchar(32);not null"`
	Status SubscriptionStatus `gorm:"type:varchar(40);not null;default:'pending_manual_verification';index"`

	// Price snapshot at submission time. Immutable once set, except by
	// re-submission while still pending.
	Amount   float64
	Currency string `gorm:"type:varchar(8);default:'INR'"`

	// ReferenceCode is the payer-supplied UPI reference, unique across
	// non-null values. TransactionID is payer-supplied and not unique.
	ReferenceCode *string `gorm:"uniqueIndex"`
	TransactionID string

	ScreenshotURL  string
	ScreenshotPath string // storage path, kept for replacement/deletion

	SubmittedAt   *time.Time
	StartDate     *time.Time
	EndDate       *time.Time
	LastPaymentAt *time.Time

	// Audit fields, set only by an admin decision.
	AdminNotes string
	VerifiedBy string `gorm:"type:uuid"`
	VerifiedAt *time.Time
}

// IsTerminal reports whether the subscription can never leave its status.
func (s *Subscription) IsTerminal() bool {
	return s.Status == SubscriptionStatusCancelled || s.Status == SubscriptionStatusExpired
}

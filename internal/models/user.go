package models

import "time"

type User struct {
	BaseModel
	Name              string     `gorm:"not null"`
	Email             string     `gorm:"uniqueIndex;not null"`
	PasswordHash      string     `gorm:"not null"`
	Role              UserRole   `gorm:"type:varchar(20);not null;default:'user'"`
	Status            UserStatus `gorm:"type:varchar(20);default:'active'"`
	IsVerified        bool       `gorm:"default:false"`
	VerificationToken string
	LastLoginAt       *time.Time

	// IsPremium is the single authorization flag the rest of the system
	// consumes. Invariant: true iff the user's latest subscription is active;
	// the subscription lifecycle keeps it synchronized on every transition
	// and on read-time reconciliation.
	IsPremium      bool    `gorm:"default:false"`
	SubscriptionID *string `gorm:"type:uuid"`

	// Relations
	Subscription *Subscription `gorm:"foreignKey:SubscriptionID"`
}

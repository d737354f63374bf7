package models

type NewsletterSubscriber struct {
	BaseModel
	Email            string `gorm:"uniqueIndex;not null"`
	UnsubscribeToken string `gorm:"uniqueIndex;not null"`
	IsActive         bool   `gorm:"default:true"`
}
